package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/postplannerhq/postplanner/internal/models"
)

type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Subscription, bool, error)
	GetByStripeSubscriptionID(ctx context.Context, subscriptionID string) (*models.Subscription, bool, error)
	Create(ctx context.Context, subscription *models.Subscription) (int64, error)
	Update(ctx context.Context, subscription *models.Subscription) error
}

type subscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

const subscriptionColumns = `id, user_id, tier, status, stripe_customer_id, stripe_subscription_id, current_period_end, cancel_at_period_end, created_at, updated_at`

func (r *subscriptionRepository) GetByUserID(ctx context.Context, userID int64) (*models.Subscription, bool, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1`
	return r.queryOne(ctx, query, userID)
}

func (r *subscriptionRepository) GetByStripeSubscriptionID(ctx context.Context, subscriptionID string) (*models.Subscription, bool, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE stripe_subscription_id = $1`
	return r.queryOne(ctx, query, subscriptionID)
}

func (r *subscriptionRepository) queryOne(ctx context.Context, query string, arg any) (*models.Subscription, bool, error) {
	row := r.db.QueryRowContext(ctx, query, arg)

	var s models.Subscription
	err := row.Scan(&s.ID, &s.UserID, &s.Tier, &s.Status, &s.StripeCustomerID, &s.StripeSubscriptionID,
		&s.CurrentPeriodEnd, &s.CancelAtPeriodEnd, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &s, true, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) (int64, error) {
	query := `
		INSERT INTO subscriptions (user_id, tier, status, stripe_customer_id, stripe_subscription_id, current_period_end, cancel_at_period_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, subscription.UserID, subscription.Tier, subscription.Status,
		subscription.StripeCustomerID, subscription.StripeSubscriptionID,
		subscription.CurrentPeriodEnd, subscription.CancelAtPeriodEnd).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, subscription *models.Subscription) error {
	query := `
		UPDATE subscriptions
		SET tier = $1,
			status = $2,
			stripe_customer_id = $3,
			stripe_subscription_id = $4,
			current_period_end = $5,
			cancel_at_period_end = $6,
			updated_at = $7
		WHERE user_id = $8
	`
	_, err := r.db.ExecContext(ctx, query, subscription.Tier, subscription.Status,
		subscription.StripeCustomerID, subscription.StripeSubscriptionID,
		subscription.CurrentPeriodEnd, subscription.CancelAtPeriodEnd, time.Now(), subscription.UserID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
