package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postplannerhq/postplanner/internal/models"
	"github.com/postplannerhq/postplanner/internal/transfer"
)

func samplePreset(name string) *models.Preset {
	schedule := make(map[string]models.DayConfig, len(models.Weekdays))
	for _, day := range models.Weekdays {
		schedule[day] = models.DayConfig{Topic: "motivational", Time: "09:00"}
	}
	schedule["monday"] = models.DayConfig{Enabled: true, Topic: "tips", Time: "10:00"}
	return &models.Preset{Name: name, Schedule: schedule, Platforms: map[string]bool{"instagram": true}}
}

func TestPresetServiceCreateNormalizes(t *testing.T) {
	repo := newFakePresetRepo()
	svc := NewPresetService(repo)
	ctx := context.Background()

	raw := false
	preset, err := svc.Create(ctx, 1, &transfer.PresetUpsert{
		Name: "Launch week",
		Schedule: map[string]transfer.RawDayConfig{
			"monday": {Topic: "launch", Time: "10:00"},
			"friday": {Enabled: &raw, Topic: "recap"},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, preset.ID)
	assert.Len(t, preset.Schedule, 7)
	assert.True(t, preset.Schedule["monday"].Enabled)
	assert.False(t, preset.Schedule["friday"].Enabled)
}

func TestPresetServiceCreateRejectsBadInput(t *testing.T) {
	svc := NewPresetService(newFakePresetRepo())

	_, err := svc.Create(context.Background(), 1, &transfer.PresetUpsert{Name: ""})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestPresetServiceOwnership(t *testing.T) {
	repo := newFakePresetRepo()
	svc := NewPresetService(repo)
	ctx := context.Background()

	p := samplePreset("Mine")
	p.UserID = 1
	id, err := repo.Create(ctx, p)
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, 2, id)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Remove(ctx, 2, id)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.GetByID(ctx, 1, id)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Name)
}

func TestPresetServiceUpdateKeepsCreatedAt(t *testing.T) {
	repo := newFakePresetRepo()
	svc := NewPresetService(repo)
	ctx := context.Background()

	p := samplePreset("Mine")
	p.UserID = 1
	p.CreatedAt = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	id, err := repo.Create(ctx, p)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 1, id, &transfer.PresetUpsert{
		Name: "Renamed",
		Schedule: map[string]transfer.RawDayConfig{
			"tuesday": {Topic: "news", Time: "08:00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)

	_, err = svc.Update(ctx, 2, id, &transfer.PresetUpsert{
		Name:     "Stolen",
		Schedule: map[string]transfer.RawDayConfig{"monday": {Topic: "x", Time: "09:00"}},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPresetServiceImportMerge(t *testing.T) {
	repo := newFakePresetRepo()
	svc := NewPresetService(repo)
	ctx := context.Background()

	existing := samplePreset("Week A")
	existing.UserID = 1
	_, err := repo.Create(ctx, existing)
	require.NoError(t, err)

	incoming := []*models.Preset{
		samplePreset("week a"), // collides case-insensitively
		samplePreset("Week B"),
	}
	dropped := []transfer.DroppedPreset{{Index: 2, Reason: "missing name"}}

	result, err := svc.Import(ctx, 1, incoming, dropped)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Duplicates)
	assert.Len(t, result.Dropped, 1)

	all, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPresetServiceImportIdempotent(t *testing.T) {
	repo := newFakePresetRepo()
	svc := NewPresetService(repo)
	ctx := context.Background()

	batch := func() []*models.Preset {
		return []*models.Preset{samplePreset("Week A"), samplePreset("Week B")}
	}

	first, err := svc.Import(ctx, 1, batch(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Imported)

	second, err := svc.Import(ctx, 1, batch(), nil)
	require.NoError(t, err)
	assert.Zero(t, second.Imported)
	assert.Equal(t, 2, second.Duplicates)

	all, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPresetServiceImportDedupsWithinBatch(t *testing.T) {
	svc := NewPresetService(newFakePresetRepo())

	result, err := svc.Import(context.Background(), 1, []*models.Preset{
		samplePreset("Same"),
		samplePreset("SAME"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Duplicates)
}
