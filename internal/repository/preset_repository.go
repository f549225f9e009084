package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/postplannerhq/postplanner/internal/models"
)

type PresetRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Preset, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.Preset, error)
	Create(ctx context.Context, preset *models.Preset) (int64, error)
	Update(ctx context.Context, preset *models.Preset) error
	CheckByUserID(ctx context.Context, presetID, userID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type presetRepository struct {
	db *sql.DB
}

func NewPresetRepository(db *sql.DB) PresetRepository {
	return &presetRepository{db: db}
}

func (r *presetRepository) Create(ctx context.Context, preset *models.Preset) (int64, error) {
	scheduleJSON, err := json.Marshal(preset.Schedule)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	platformsJSON, err := json.Marshal(preset.Platforms)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	query := `
		INSERT INTO presets (user_id, name, description, schedule, platforms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	createdAt := preset.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var id int64
	err = r.db.QueryRowContext(ctx, query, preset.UserID, preset.Name, preset.Description, scheduleJSON, platformsJSON, createdAt).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *presetRepository) GetByID(ctx context.Context, id int64) (*models.Preset, error) {
	query := `SELECT id, user_id, name, description, schedule, platforms, created_at, updated_at FROM presets WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	preset, err := scanPreset(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return preset, nil
}

func (r *presetRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Preset, error) {
	query := `SELECT id, user_id, name, description, schedule, platforms, created_at, updated_at FROM presets WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var presets []*models.Preset
	for rows.Next() {
		preset, err := scanPreset(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		presets = append(presets, preset)
	}
	return presets, nil
}

func (r *presetRepository) Update(ctx context.Context, preset *models.Preset) error {
	scheduleJSON, err := json.Marshal(preset.Schedule)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	platformsJSON, err := json.Marshal(preset.Platforms)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	query := `
		UPDATE presets
		SET name = $1,
			description = $2,
			schedule = $3,
			platforms = $4,
			updated_at = $5
		WHERE id = $6
	`
	_, err = r.db.ExecContext(ctx, query, preset.Name, preset.Description, scheduleJSON, platformsJSON, time.Now(), preset.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *presetRepository) CheckByUserID(ctx context.Context, presetID, userID int64) (bool, error) {
	query := "SELECT 1 FROM presets WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, presetID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *presetRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM presets WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPreset(row rowScanner) (*models.Preset, error) {
	var preset models.Preset
	var scheduleJSON, platformsJSON []byte

	err := row.Scan(&preset.ID, &preset.UserID, &preset.Name, &preset.Description, &scheduleJSON, &platformsJSON, &preset.CreatedAt, &preset.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(scheduleJSON, &preset.Schedule); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(platformsJSON, &preset.Platforms); err != nil {
		return nil, err
	}

	return &preset, nil
}
