package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/postplannerhq/postplanner/internal/models"
	"github.com/postplannerhq/postplanner/internal/repository"
	"github.com/postplannerhq/postplanner/internal/transfer"
)

// SchedulerService applies a preset prospectively: one generated post per
// enabled day, landing in the week after the current one. Presets are
// templates, so applying one never touches the running week.
type SchedulerService interface {
	GenerateWeek(ctx context.Context, userID int64, req *transfer.GenerateWeekRequest) (*transfer.WeekSummary, error)
}

type schedulerService struct {
	presets    repository.PresetRepository
	content    repository.ScheduledContentRepository
	generation GenerationService
	usage      UsageService
	normalizer *Normalizer
	now        func() time.Time
}

func NewSchedulerService(
	presets repository.PresetRepository,
	content repository.ScheduledContentRepository,
	generation GenerationService,
	usage UsageService) SchedulerService {
	return &schedulerService{
		presets:    presets,
		content:    content,
		generation: generation,
		usage:      usage,
		normalizer: NewNormalizer(),
		now:        time.Now,
	}
}

func (s *schedulerService) GenerateWeek(ctx context.Context, userID int64, req *transfer.GenerateWeekRequest) (*transfer.WeekSummary, error) {
	preset, err := s.resolvePreset(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	days := preset.EnabledDays()
	if len(days) == 0 {
		return nil, ErrEmptyPreset
	}
	days = rotateDays(days, req.StartDay)

	if err := s.usage.CheckLimit(ctx, userID, models.MetricAIGenerations); err != nil {
		return nil, err
	}

	weekStart := nextMonday(s.now())
	summary := &transfer.WeekSummary{}

	// Providers are called one day at a time. A failed day is recorded and
	// the loop moves on; earlier successes stay persisted.
	for _, day := range days {
		summary.Attempted++

		cfg := preset.Schedule[day]
		date := weekStart.AddDate(0, 0, dayIndex(day)).Format("2006-01-02")
		outcome := transfer.DayOutcome{Day: day, Date: date}

		result, err := s.generation.Generate(ctx, req.Model, &transfer.GenerationRequest{
			Prompt: dayPrompt(cfg),
		})
		if err != nil {
			slog.Info(err.Error())
			summary.Failed++
			outcome.Error = err.Error()
			summary.Outcomes = append(summary.Outcomes, outcome)
			continue
		}

		entry := &models.ScheduledContent{
			UserID:    userID,
			Title:     fmt.Sprintf("%s: %s", capitalize(day), cfg.Topic),
			Content:   result.Content,
			Date:      date,
			Time:      cfg.Time,
			Platforms: dayPlatforms(preset, cfg),
			Status:    models.ContentStatusScheduled,
		}
		id, err := s.content.Create(ctx, entry)
		if err != nil {
			slog.Info(err.Error())
			summary.Failed++
			outcome.Error = err.Error()
			summary.Outcomes = append(summary.Outcomes, outcome)
			continue
		}

		if err := s.usage.Record(ctx, userID, models.MetricAIGenerations, 1); err != nil {
			slog.Info(err.Error())
		}

		summary.Succeeded++
		outcome.ContentID = id
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	return summary, nil
}

func (s *schedulerService) resolvePreset(ctx context.Context, userID int64, req *transfer.GenerateWeekRequest) (*models.Preset, error) {
	if req.Preset != nil {
		preset, err := s.normalizer.Normalize(req.Preset)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
		}
		return preset, nil
	}

	if req.PresetID == 0 {
		return nil, fmt.Errorf("%w: preset_id or preset is required", ErrValidation)
	}

	preset, err := s.presets.GetByID(ctx, req.PresetID)
	if err != nil {
		return nil, err
	}
	if preset == nil || preset.UserID != userID {
		return nil, ErrNotFound
	}
	return preset, nil
}

// nextMonday returns midnight of the Monday after the week containing now.
func nextMonday(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// Weekday is Sunday-based; shift so Monday is zero.
	sinceMonday := (int(today.Weekday()) + 6) % 7
	return today.AddDate(0, 0, 7-sinceMonday)
}

// rotateDays orders days to begin at start, wrapping around the week. Each
// day keeps its own calendar date; only the generation order moves. An empty
// or unrecognized start keeps Monday-first order.
func rotateDays(days []string, start string) []string {
	day, ok := canonicalDay(start)
	if !ok {
		return days
	}
	pivot := dayIndex(day)

	rotated := make([]string, 0, len(days))
	for _, d := range days {
		if dayIndex(d) >= pivot {
			rotated = append(rotated, d)
		}
	}
	for _, d := range days {
		if dayIndex(d) < pivot {
			rotated = append(rotated, d)
		}
	}
	return rotated
}

func dayIndex(day string) int {
	for i, d := range models.Weekdays {
		if d == day {
			return i
		}
	}
	return 0
}

func dayPrompt(cfg models.DayConfig) string {
	return fmt.Sprintf("Write an engaging social media post about %s. Keep it under 300 characters and include relevant hashtags.", cfg.Topic)
}

// dayPlatforms prefers the day's own platform override and falls back to the
// preset's global selection.
func dayPlatforms(preset *models.Preset, cfg models.DayConfig) []string {
	if len(cfg.Platforms) > 0 {
		return cfg.Platforms
	}
	var platforms []string
	for _, p := range models.KnownPlatforms {
		if preset.Platforms[p] {
			platforms = append(platforms, p)
		}
	}
	return platforms
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
