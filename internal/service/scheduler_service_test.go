package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postplannerhq/postplanner/internal/models"
	"github.com/postplannerhq/postplanner/internal/transfer"
)

func newScheduler(t *testing.T, provider Provider) (*schedulerService, *fakePresetRepo, *fakeContentRepo, *fakeUsageRepo) {
	t.Helper()
	presets := newFakePresetRepo()
	content := newFakeContentRepo()
	usage := newFakeUsageRepo()
	subs := newFakeSubscriptionRepo()

	svc := NewSchedulerService(
		presets,
		content,
		NewGenerationService(provider),
		NewUsageService(usage, subs),
	).(*schedulerService)
	return svc, presets, content, usage
}

func storedPreset(t *testing.T, repo *fakePresetRepo, userID int64, topics map[string]string) int64 {
	t.Helper()
	schedule := make(map[string]models.DayConfig)
	for _, day := range models.Weekdays {
		schedule[day] = models.DayConfig{Topic: "motivational", Time: "09:00"}
	}
	for day, topic := range topics {
		schedule[day] = models.DayConfig{Enabled: true, Topic: topic, Time: "10:30"}
	}
	id, err := repo.Create(context.Background(), &models.Preset{
		UserID:    userID,
		Name:      "Weekly",
		Schedule:  schedule,
		Platforms: map[string]bool{"instagram": true, "linkedin": true},
	})
	require.NoError(t, err)
	return id
}

func TestGenerateWeekHappyPath(t *testing.T) {
	provider := &stubProvider{name: "openai"}
	svc, presets, content, _ := newScheduler(t, provider)
	// Wednesday 2026-09-02; the following week starts Monday 2026-09-07.
	svc.now = func() time.Time { return time.Date(2026, 9, 2, 15, 0, 0, 0, time.UTC) }

	id := storedPreset(t, presets, 1, map[string]string{
		"monday":   "product tips",
		"thursday": "behind the scenes",
	})

	summary, err := svc.GenerateWeek(context.Background(), 1, &transfer.GenerateWeekRequest{PresetID: id})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Attempted)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Zero(t, summary.Failed)

	entries, err := content.GetByUserID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Monday: product tips", entries[0].Title)
	assert.Equal(t, "2026-09-07", entries[0].Date)
	assert.Equal(t, "10:30", entries[0].Time)
	assert.Equal(t, models.ContentStatusScheduled, entries[0].Status)
	assert.Equal(t, []string{"instagram", "linkedin"}, entries[0].Platforms)

	assert.Equal(t, "Thursday: behind the scenes", entries[1].Title)
	assert.Equal(t, "2026-09-10", entries[1].Date)
}

func TestGenerateWeekSequentialOrder(t *testing.T) {
	provider := &stubProvider{name: "openai"}
	svc, presets, _, _ := newScheduler(t, provider)

	id := storedPreset(t, presets, 1, map[string]string{
		"friday": "recap",
		"monday": "kickoff",
		"sunday": "preview",
	})

	_, err := svc.GenerateWeek(context.Background(), 1, &transfer.GenerateWeekRequest{PresetID: id})
	require.NoError(t, err)

	require.Len(t, provider.calls, 3)
	assert.Contains(t, provider.calls[0], "kickoff")
	assert.Contains(t, provider.calls[1], "recap")
	assert.Contains(t, provider.calls[2], "preview")
}

func TestGenerateWeekStartDay(t *testing.T) {
	provider := &stubProvider{name: "openai"}
	svc, presets, _, _ := newScheduler(t, provider)
	svc.now = func() time.Time { return time.Date(2026, 9, 2, 15, 0, 0, 0, time.UTC) }

	id := storedPreset(t, presets, 1, map[string]string{
		"monday":    "kickoff",
		"wednesday": "midweek",
		"friday":    "recap",
	})

	summary, err := svc.GenerateWeek(context.Background(), 1, &transfer.GenerateWeekRequest{
		PresetID: id,
		StartDay: "Wednesday",
	})
	require.NoError(t, err)
	require.Len(t, summary.Outcomes, 3)

	// Generation wraps the week starting at the requested day; each day keeps
	// its own calendar date.
	assert.Equal(t, "wednesday", summary.Outcomes[0].Day)
	assert.Equal(t, "2026-09-09", summary.Outcomes[0].Date)
	assert.Equal(t, "friday", summary.Outcomes[1].Day)
	assert.Equal(t, "2026-09-11", summary.Outcomes[1].Date)
	assert.Equal(t, "monday", summary.Outcomes[2].Day)
	assert.Equal(t, "2026-09-07", summary.Outcomes[2].Date)

	require.Len(t, provider.calls, 3)
	assert.Contains(t, provider.calls[0], "midweek")
	assert.Contains(t, provider.calls[2], "kickoff")
}

func TestGenerateWeekStartDayUnrecognized(t *testing.T) {
	provider := &stubProvider{name: "openai"}
	svc, presets, _, _ := newScheduler(t, provider)

	id := storedPreset(t, presets, 1, map[string]string{
		"monday": "kickoff",
		"friday": "recap",
	})

	summary, err := svc.GenerateWeek(context.Background(), 1, &transfer.GenerateWeekRequest{
		PresetID: id,
		StartDay: "someday",
	})
	require.NoError(t, err)
	require.Len(t, summary.Outcomes, 2)
	assert.Equal(t, "monday", summary.Outcomes[0].Day)
	assert.Equal(t, "friday", summary.Outcomes[1].Day)
}

func TestGenerateWeekPartialFailure(t *testing.T) {
	provider := &stubProvider{
		name: "openai",
		failWhen: func(prompt string) error {
			if strings.Contains(prompt, "broken") {
				return errors.New("provider exploded")
			}
			return nil
		},
	}
	svc, presets, content, _ := newScheduler(t, provider)

	id := storedPreset(t, presets, 1, map[string]string{
		"monday":    "kickoff",
		"wednesday": "broken topic",
		"saturday":  "weekend",
	})

	summary, err := svc.GenerateWeek(context.Background(), 1, &transfer.GenerateWeekRequest{PresetID: id})
	require.NoError(t, err, "partial failure is a summary, not an error")
	assert.Equal(t, 3, summary.Attempted)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)

	require.Len(t, summary.Outcomes, 3)
	assert.Empty(t, summary.Outcomes[0].Error)
	assert.Contains(t, summary.Outcomes[1].Error, "provider exploded")
	assert.Zero(t, summary.Outcomes[1].ContentID)
	assert.Empty(t, summary.Outcomes[2].Error)

	// Successes before and after the failed day stay persisted.
	entries, err := content.GetByUserID(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestGenerateWeekEmptyPreset(t *testing.T) {
	svc, presets, _, _ := newScheduler(t, &stubProvider{name: "openai"})
	id := storedPreset(t, presets, 1, nil)

	_, err := svc.GenerateWeek(context.Background(), 1, &transfer.GenerateWeekRequest{PresetID: id})
	assert.ErrorIs(t, err, ErrEmptyPreset)
}

func TestGenerateWeekOwnership(t *testing.T) {
	svc, presets, _, _ := newScheduler(t, &stubProvider{name: "openai"})
	id := storedPreset(t, presets, 1, map[string]string{"monday": "kickoff"})

	_, err := svc.GenerateWeek(context.Background(), 2, &transfer.GenerateWeekRequest{PresetID: id})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateWeekInlinePreset(t *testing.T) {
	provider := &stubProvider{name: "openai"}
	svc, _, _, _ := newScheduler(t, provider)

	summary, err := svc.GenerateWeek(context.Background(), 1, &transfer.GenerateWeekRequest{
		Preset: &transfer.RawPreset{
			Name:     "Inline",
			Schedule: []byte(`[{"topic": "sale", "time": "10:00"}, {}, {}, {}, {}, {}, {}]`),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Attempted)
	assert.Equal(t, 1, summary.Succeeded)
}

func TestGenerateWeekTierLimit(t *testing.T) {
	provider := &stubProvider{name: "openai"}
	presets := newFakePresetRepo()
	usage := newFakeUsageRepo()
	subs := newFakeSubscriptionRepo()

	svc := NewSchedulerService(
		presets,
		newFakeContentRepo(),
		NewGenerationService(provider),
		NewUsageService(usage, subs),
	).(*schedulerService)

	id := storedPreset(t, presets, 1, map[string]string{"monday": "kickoff"})

	// Free tier allows five generations a month.
	require.NoError(t, usage.Increment(context.Background(), 1, models.MetricAIGenerations, currentMonth(time.Now()), 5))

	_, err := svc.GenerateWeek(context.Background(), 1, &transfer.GenerateWeekRequest{PresetID: id})
	assert.ErrorIs(t, err, ErrLimitReached)
	assert.Empty(t, provider.calls, "limit is checked before any provider call")
}

func TestNextMonday(t *testing.T) {
	tests := []struct {
		now  string
		want string
	}{
		{"2026-09-02", "2026-09-07"}, // Wednesday
		{"2026-09-07", "2026-09-14"}, // Monday itself still jumps a week
		{"2026-09-06", "2026-09-07"}, // Sunday belongs to the outgoing week
	}
	for _, tt := range tests {
		now, err := time.Parse("2006-01-02", tt.now)
		require.NoError(t, err)
		assert.Equal(t, tt.want, nextMonday(now).Format("2006-01-02"), "now=%s", tt.now)
	}
}
