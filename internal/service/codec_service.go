package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/h2non/filetype"

	"github.com/postplannerhq/postplanner/internal/models"
	"github.com/postplannerhq/postplanner/internal/transfer"
)

// Historical CSV exports used these fillers for disabled days.
const (
	csvDefaultTopic = "recipes"
	csvDefaultTime  = "09:00"
)

// CodecService converts presets and scheduled content between the canonical
// model and the JSON/CSV interchange shapes, including files produced by
// earlier product generations and third-party tools.
type CodecService interface {
	DecodePresets(data []byte) ([]*models.Preset, []transfer.DroppedPreset, error)
	EncodePresetsJSON(presets []*models.Preset) ([]byte, error)
	EncodePresetsCSV(presets []*models.Preset) ([]byte, error)
	EncodeScheduleJSON(entries []*models.ScheduledContent) ([]byte, error)
	EncodeScheduleCSV(entries []*models.ScheduledContent) ([]byte, error)
}

type codecService struct {
	normalizer *Normalizer
}

func NewCodecService() CodecService {
	return &codecService{normalizer: NewNormalizer()}
}

// DecodePresets sniffs the payload and dispatches to the JSON or CSV parser.
// Known binary formats (images, archives, media) are rejected outright.
func (s *codecService) DecodePresets(data []byte) ([]*models.Preset, []transfer.DroppedPreset, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, fmt.Errorf("%w: empty file", ErrValidation)
	}
	if kind, _ := filetype.Match(data); kind != filetype.Unknown {
		return nil, nil, fmt.Errorf("%w: %s files are not importable", ErrValidation, kind.Extension)
	}

	trimmed := bytes.TrimSpace(data)
	if trimmed[0] == '[' || trimmed[0] == '{' {
		return s.decodePresetsJSON(trimmed)
	}
	return s.decodePresetsCSV(data)
}

func (s *codecService) decodePresetsJSON(data []byte) ([]*models.Preset, []transfer.DroppedPreset, error) {
	var items []json.RawMessage
	if data[0] == '{' {
		// A single preset object imports as a one-element batch.
		items = []json.RawMessage{json.RawMessage(data)}
	} else if err := json.Unmarshal(data, &items); err != nil {
		return nil, nil, fmt.Errorf("%w: not a JSON preset list", ErrValidation)
	}

	presets, dropped := s.normalizer.NormalizeAll(items)
	return presets, dropped, nil
}

var presetCSVHeader = []string{
	"Name", "Description",
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	"Instagram", "LinkedIn", "Facebook", "Twitter",
}

// columnIndexes maps canonical column names to positions in the actual
// header, matching case-insensitively on substring so minor header edits
// survive.
func columnIndexes(header []string) map[string]int {
	cols := make(map[string]int)
	for i, cell := range header {
		cell = strings.ToLower(strings.TrimSpace(cell))
		for _, want := range presetCSVHeader {
			key := strings.ToLower(want)
			if _, taken := cols[key]; !taken && strings.Contains(cell, key) {
				cols[key] = i
			}
		}
	}
	return cols
}

func (s *codecService) decodePresetsCSV(data []byte) ([]*models.Preset, []transfer.DroppedPreset, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: malformed CSV", ErrValidation)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("%w: CSV has no data rows", ErrValidation)
	}

	cols := columnIndexes(records[0])
	if _, ok := cols["name"]; !ok {
		return nil, nil, fmt.Errorf("%w: CSV is missing a Name column", ErrValidation)
	}

	var presets []*models.Preset
	var dropped []transfer.DroppedPreset

	for i, row := range records[1:] {
		cell := func(key string) string {
			idx, ok := cols[key]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		name := cell("name")
		if name == "" {
			dropped = append(dropped, transfer.DroppedPreset{Index: i, Reason: "missing name"})
			continue
		}

		schedule := make(map[string]models.DayConfig, len(models.Weekdays))
		recognized := 0
		for _, day := range models.Weekdays {
			cfg, ok := parseDayCell(cell(day))
			schedule[day] = cfg
			if ok {
				recognized++
			}
		}
		if recognized == 0 {
			dropped = append(dropped, transfer.DroppedPreset{Index: i, Name: name, Reason: "schedule has no recognized days"})
			continue
		}

		presets = append(presets, &models.Preset{
			Name:        name,
			Description: cell("description"),
			Schedule:    schedule,
			Platforms:   parsePlatformCells(cols, cell),
		})
	}
	return presets, dropped, nil
}

// parseDayCell reads the "topic@time" cell form. Anything without the
// separator means the day was not exported as enabled.
func parseDayCell(cell string) (models.DayConfig, bool) {
	topic, timeStr, found := strings.Cut(cell, "@")
	topic = strings.TrimSpace(topic)
	timeStr = strings.TrimSpace(timeStr)
	if !found || topic == "" || timeStr == "" {
		return models.DayConfig{Enabled: false, Topic: csvDefaultTopic, Time: csvDefaultTime}, cell != ""
	}
	return models.DayConfig{Enabled: true, Topic: topic, Time: timeStr}, true
}

func parsePlatformCells(cols map[string]int, cell func(string) string) map[string]bool {
	platforms := make(map[string]bool, len(models.KnownPlatforms))
	for _, p := range models.KnownPlatforms {
		val := strings.ToLower(cell(p))
		// Instagram was the product's home platform, so old exports left the
		// column blank when it was on. Blank means yes for Instagram only.
		if p == "instagram" {
			platforms[p] = val != "no" && val != "false"
			continue
		}
		platforms[p] = val == "yes" || val == "true"
	}
	return platforms
}

func (s *codecService) EncodePresetsJSON(presets []*models.Preset) ([]byte, error) {
	return json.MarshalIndent(presets, "", "  ")
}

func (s *codecService) EncodePresetsCSV(presets []*models.Preset) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(presetCSVHeader); err != nil {
		return nil, err
	}

	for _, preset := range presets {
		row := []string{preset.Name, preset.Description}
		for _, day := range models.Weekdays {
			cfg := preset.Schedule[day]
			if cfg.Enabled {
				row = append(row, cfg.Topic+"@"+cfg.Time)
			} else {
				row = append(row, "")
			}
		}
		for _, p := range models.KnownPlatforms {
			row = append(row, yesNo(preset.Platforms[p]))
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

func (s *codecService) EncodeScheduleJSON(entries []*models.ScheduledContent) ([]byte, error) {
	return json.MarshalIndent(entries, "", "  ")
}

var scheduleCSVHeader = []string{"Text", "Profile", "Date", "Time", "Link", "Media"}

// EncodeScheduleCSV writes the Buffer bulk-upload layout, one row per
// post-platform pair. Newlines collapse to spaces because Buffer treats each
// line as a separate record.
func (s *codecService) EncodeScheduleCSV(entries []*models.ScheduledContent) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(scheduleCSVHeader); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		text := strings.Join(strings.Fields(entry.Content), " ")
		postTime := entry.Time
		if postTime == "" {
			postTime = "12:00"
		}

		platforms := entry.Platforms
		if len(platforms) == 0 {
			platforms = []string{""}
		}
		for _, platform := range platforms {
			row := []string{text, platform, entry.Date, postTime, "", ""}
			if err := writer.Write(row); err != nil {
				return nil, err
			}
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
