package repository

import (
	"context"
	"database/sql"
	"log/slog"
)

// UsageRepository tracks monthly metered usage (AI generations, scheduled
// posts). Counters key on (user, metric, YYYY-MM); a new month starts at zero
// without any reset job.
type UsageRepository interface {
	Increment(ctx context.Context, userID int64, metric, month string, amount int) error
	GetCount(ctx context.Context, userID int64, metric, month string) (int, error)
}

type usageRepository struct {
	db *sql.DB
}

func NewUsageRepository(db *sql.DB) UsageRepository {
	return &usageRepository{db: db}
}

func (r *usageRepository) Increment(ctx context.Context, userID int64, metric, month string, amount int) error {
	query := `
		INSERT INTO usage_counters (user_id, metric, month, count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, metric, month)
		DO UPDATE SET count = usage_counters.count + $4
	`
	_, err := r.db.ExecContext(ctx, query, userID, metric, month, amount)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *usageRepository) GetCount(ctx context.Context, userID int64, metric, month string) (int, error) {
	query := `SELECT count FROM usage_counters WHERE user_id = $1 AND metric = $2 AND month = $3`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, metric, month).Scan(&count)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}
