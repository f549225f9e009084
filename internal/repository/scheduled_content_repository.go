package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/postplannerhq/postplanner/internal/models"
)

type ScheduledContentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.ScheduledContent, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.ScheduledContent, error)
	GetByDateRange(ctx context.Context, userID int64, from, to string) ([]*models.ScheduledContent, error)
	Create(ctx context.Context, content *models.ScheduledContent) (int64, error)
	Update(ctx context.Context, content *models.ScheduledContent) error
	UpdateStatus(ctx context.Context, status string, contentID int64) error
	CheckByUserID(ctx context.Context, contentID, userID int64) (bool, error)
	CountByUserID(ctx context.Context, userID int64) (int, error)
	Remove(ctx context.Context, id int64) error
}

type scheduledContentRepository struct {
	db *sql.DB
}

func NewScheduledContentRepository(db *sql.DB) ScheduledContentRepository {
	return &scheduledContentRepository{db: db}
}

const scheduledContentColumns = `id, user_id, title, content, date, time, platforms, status, tags, created_at, updated_at`

func (r *scheduledContentRepository) Create(ctx context.Context, content *models.ScheduledContent) (int64, error) {
	query := `
		INSERT INTO scheduled_content (user_id, title, content, date, time, platforms, status, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		content.UserID, content.Title, content.Content, content.Date, content.Time,
		pq.Array(content.Platforms), content.Status, content.Tags).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *scheduledContentRepository) GetByID(ctx context.Context, id int64) (*models.ScheduledContent, error) {
	query := `SELECT ` + scheduledContentColumns + ` FROM scheduled_content WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var sc models.ScheduledContent
	err := row.Scan(&sc.ID, &sc.UserID, &sc.Title, &sc.Content, &sc.Date, &sc.Time,
		pq.Array(&sc.Platforms), &sc.Status, &sc.Tags, &sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &sc, nil
}

func (r *scheduledContentRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.ScheduledContent, error) {
	query := `SELECT ` + scheduledContentColumns + ` FROM scheduled_content WHERE user_id = $1 ORDER BY date, time`
	return r.queryMany(ctx, query, userID)
}

func (r *scheduledContentRepository) GetByDateRange(ctx context.Context, userID int64, from, to string) ([]*models.ScheduledContent, error) {
	query := `SELECT ` + scheduledContentColumns + ` FROM scheduled_content WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY date, time`
	return r.queryMany(ctx, query, userID, from, to)
}

func (r *scheduledContentRepository) queryMany(ctx context.Context, query string, args ...any) ([]*models.ScheduledContent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var contents []*models.ScheduledContent
	for rows.Next() {
		var sc models.ScheduledContent
		err := rows.Scan(&sc.ID, &sc.UserID, &sc.Title, &sc.Content, &sc.Date, &sc.Time,
			pq.Array(&sc.Platforms), &sc.Status, &sc.Tags, &sc.CreatedAt, &sc.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		contents = append(contents, &sc)
	}
	return contents, nil
}

func (r *scheduledContentRepository) Update(ctx context.Context, content *models.ScheduledContent) error {
	query := `
		UPDATE scheduled_content
		SET title = $1,
			content = $2,
			date = $3,
			time = $4,
			platforms = $5,
			tags = $6,
			updated_at = $7
		WHERE id = $8
	`
	_, err := r.db.ExecContext(ctx, query, content.Title, content.Content, content.Date, content.Time,
		pq.Array(content.Platforms), content.Tags, time.Now(), content.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *scheduledContentRepository) UpdateStatus(ctx context.Context, status string, contentID int64) error {
	query := `
		UPDATE scheduled_content
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), contentID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *scheduledContentRepository) CheckByUserID(ctx context.Context, contentID, userID int64) (bool, error) {
	query := "SELECT 1 FROM scheduled_content WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, contentID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *scheduledContentRepository) CountByUserID(ctx context.Context, userID int64) (int, error) {
	query := "SELECT COUNT(*) FROM scheduled_content WHERE user_id = $1"

	var count int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

func (r *scheduledContentRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM scheduled_content WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
