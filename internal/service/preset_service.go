package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/postplannerhq/postplanner/internal/models"
	"github.com/postplannerhq/postplanner/internal/repository"
	"github.com/postplannerhq/postplanner/internal/transfer"
)

type PresetService interface {
	Create(ctx context.Context, userID int64, req *transfer.PresetUpsert) (*models.Preset, error)
	GetByID(ctx context.Context, userID, id int64) (*models.Preset, error)
	List(ctx context.Context, userID int64) ([]*models.Preset, error)
	Update(ctx context.Context, userID, id int64, req *transfer.PresetUpsert) (*models.Preset, error)
	Remove(ctx context.Context, userID, id int64) error
	Import(ctx context.Context, userID int64, presets []*models.Preset, dropped []transfer.DroppedPreset) (*transfer.ImportResult, error)
}

type presetService struct {
	presets    repository.PresetRepository
	normalizer *Normalizer
}

func NewPresetService(presets repository.PresetRepository) PresetService {
	return &presetService{
		presets:    presets,
		normalizer: NewNormalizer(),
	}
}

func (s *presetService) Create(ctx context.Context, userID int64, req *transfer.PresetUpsert) (*models.Preset, error) {
	preset, err := s.normalizer.NormalizeUpsert(req)
	if err != nil {
		return nil, err
	}
	preset.UserID = userID

	id, err := s.presets.Create(ctx, preset)
	if err != nil {
		return nil, err
	}
	preset.ID = id
	return preset, nil
}

func (s *presetService) GetByID(ctx context.Context, userID, id int64) (*models.Preset, error) {
	preset, err := s.presets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if preset == nil || preset.UserID != userID {
		return nil, ErrNotFound
	}
	return preset, nil
}

func (s *presetService) List(ctx context.Context, userID int64) ([]*models.Preset, error) {
	return s.presets.GetByUserID(ctx, userID)
}

func (s *presetService) Update(ctx context.Context, userID, id int64, req *transfer.PresetUpsert) (*models.Preset, error) {
	stored, err := s.presets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.UserID != userID {
		return nil, ErrNotFound
	}

	preset, err := s.normalizer.NormalizeUpsert(req)
	if err != nil {
		return nil, err
	}
	preset.ID = id
	preset.UserID = userID
	// The row's creation time survives edits; only updated_at moves.
	preset.CreatedAt = stored.CreatedAt

	if err := s.presets.Update(ctx, preset); err != nil {
		return nil, err
	}
	return preset, nil
}

func (s *presetService) Remove(ctx context.Context, userID, id int64) error {
	owned, err := s.presets.CheckByUserID(ctx, id, userID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotFound
	}
	return s.presets.Remove(ctx, id)
}

// Import merges normalized presets into the user's collection. Names collide
// case-insensitively; a colliding preset is counted as a duplicate and left
// alone, so re-importing the same file is a no-op.
func (s *presetService) Import(ctx context.Context, userID int64, presets []*models.Preset, dropped []transfer.DroppedPreset) (*transfer.ImportResult, error) {
	existing, err := s.presets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[strings.ToLower(p.Name)] = true
	}

	result := &transfer.ImportResult{Dropped: dropped}
	for _, preset := range presets {
		key := strings.ToLower(preset.Name)
		if seen[key] {
			result.Duplicates++
			continue
		}

		preset.UserID = userID
		if _, err := s.presets.Create(ctx, preset); err != nil {
			return nil, fmt.Errorf("import %q: %w", preset.Name, err)
		}
		seen[key] = true
		result.Imported++
	}
	return result, nil
}
