package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postplannerhq/postplanner/internal/models"
)

func TestDecodePresetsJSONArray(t *testing.T) {
	codec := NewCodecService()

	presets, dropped, err := codec.DecodePresets([]byte(`[
		{"name": "Week A", "schedule": [{"topic": "sale", "time": "10:00"}, {}, {}, {}, {}, {}, {}]},
		{"schedule": []}
	]`))
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, "Week A", presets[0].Name)
	require.Len(t, dropped, 1)
	assert.Equal(t, "missing name", dropped[0].Reason)
}

func TestDecodePresetsSingleObject(t *testing.T) {
	codec := NewCodecService()

	presets, _, err := codec.DecodePresets([]byte(`{"name": "Solo", "schedule": {"monday": {"topic": "x", "time": "09:00"}}}`))
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, "Solo", presets[0].Name)
}

func TestDecodePresetsRejectsBinary(t *testing.T) {
	codec := NewCodecService()

	// PNG magic bytes.
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	_, _, err := codec.DecodePresets(png)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = codec.DecodePresets([]byte("   "))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDecodePresetsCSV(t *testing.T) {
	codec := NewCodecService()

	csvData := strings.Join([]string{
		`Name,Description,Monday,Tuesday,Wednesday,Thursday,Friday,Saturday,Sunday,Instagram,LinkedIn,Facebook,Twitter`,
		`Week B,,fitness@08:00,,,,,,,"No","Yes","No",`,
		`,description only,x@09:00,,,,,,,,,,`,
	}, "\n")

	presets, dropped, err := codec.DecodePresets([]byte(csvData))
	require.NoError(t, err)
	require.Len(t, presets, 1)

	preset := presets[0]
	assert.Equal(t, "Week B", preset.Name)

	monday := preset.Schedule["monday"]
	assert.True(t, monday.Enabled)
	assert.Equal(t, "fitness", monday.Topic)
	assert.Equal(t, "08:00", monday.Time)
	assert.False(t, preset.Schedule["tuesday"].Enabled)

	// Explicit "No" beats the Instagram blank-means-yes rule.
	assert.False(t, preset.Platforms["instagram"])
	assert.True(t, preset.Platforms["linkedin"])
	assert.False(t, preset.Platforms["facebook"])

	require.Len(t, dropped, 1)
	assert.Equal(t, "missing name", dropped[0].Reason)
}

func TestDecodePresetsCSVInstagramDefault(t *testing.T) {
	codec := NewCodecService()

	csvData := strings.Join([]string{
		`Name,Description,Monday,Tuesday,Wednesday,Thursday,Friday,Saturday,Sunday,Instagram,LinkedIn,Facebook,Twitter`,
		`Blanks,,tips@09:00,,,,,,,,,,`,
	}, "\n")

	presets, _, err := codec.DecodePresets([]byte(csvData))
	require.NoError(t, err)
	require.Len(t, presets, 1)

	assert.True(t, presets[0].Platforms["instagram"], "blank Instagram cell defaults on")
	assert.False(t, presets[0].Platforms["linkedin"])
	assert.False(t, presets[0].Platforms["twitter"])
}

func TestDecodePresetsCSVHeaderFuzzyMatch(t *testing.T) {
	codec := NewCodecService()

	csvData := strings.Join([]string{
		`Preset Name,Short Description,monday topic,TUESDAY,Wednesday,Thursday,Friday,Saturday,Sunday,instagram?,LinkedIn,Facebook,Twitter`,
		`Fuzzy,,launch@10:00,,,,,,,Yes,,,`,
	}, "\n")

	presets, _, err := codec.DecodePresets([]byte(csvData))
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, "Fuzzy", presets[0].Name)
	assert.True(t, presets[0].Schedule["monday"].Enabled)
}

func TestPresetCSVRoundTrip(t *testing.T) {
	codec := NewCodecService()

	csvData := strings.Join([]string{
		`Name,Description,Monday,Tuesday,Wednesday,Thursday,Friday,Saturday,Sunday,Instagram,LinkedIn,Facebook,Twitter`,
		`Round,trip test,fitness@08:00,,recipes@12:30,,,,,No,Yes,No,Yes`,
	}, "\n")

	first, dropped, err := codec.DecodePresets([]byte(csvData))
	require.NoError(t, err)
	require.Empty(t, dropped)
	require.Len(t, first, 1)

	encoded, err := codec.EncodePresetsCSV(first)
	require.NoError(t, err)

	second, dropped, err := codec.DecodePresets(encoded)
	require.NoError(t, err)
	require.Empty(t, dropped)
	require.Len(t, second, 1)

	assert.Equal(t, first[0].Name, second[0].Name)
	assert.Equal(t, first[0].Description, second[0].Description)
	assert.Equal(t, first[0].Schedule, second[0].Schedule)
	assert.Equal(t, first[0].Platforms, second[0].Platforms)
}

func TestPresetJSONRoundTrip(t *testing.T) {
	codec := NewCodecService()

	first, _, err := codec.DecodePresets([]byte(`[{
		"name": "JSON trip",
		"schedule": [{"topic": "sale", "time": "10:00"}, {}, {}, {}, {"topic": "qa", "time": "16:00"}, {}, {}],
		"platforms": {"instagram": true, "twitter": true}
	}]`))
	require.NoError(t, err)
	require.Len(t, first, 1)

	encoded, err := codec.EncodePresetsJSON(first)
	require.NoError(t, err)

	second, dropped, err := codec.DecodePresets(encoded)
	require.NoError(t, err)
	require.Empty(t, dropped)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Schedule, second[0].Schedule)
	assert.Equal(t, first[0].Platforms, second[0].Platforms)
}

func TestEncodeScheduleCSV(t *testing.T) {
	codec := NewCodecService()

	entries := []*models.ScheduledContent{
		{
			Content:   "Line one\n\nLine two",
			Date:      "2026-09-07",
			Time:      "10:30",
			Platforms: []string{"instagram", "linkedin"},
		},
		{
			Content:   "Solo post",
			Date:      "2026-09-08",
			Platforms: []string{"twitter"},
		},
	}

	data, err := codec.EncodeScheduleCSV(entries)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4, "header plus one row per post-platform pair")
	assert.Equal(t, "Text,Profile,Date,Time,Link,Media", lines[0])
	assert.Contains(t, lines[1], "Line one Line two")
	assert.Contains(t, lines[1], "instagram")
	assert.Contains(t, lines[2], "linkedin")
	assert.Contains(t, lines[3], "12:00", "missing time falls back to noon")
}
