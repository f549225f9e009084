package service

import (
	"context"
	"fmt"
	"time"

	"github.com/postplannerhq/postplanner/internal/models"
	"github.com/postplannerhq/postplanner/internal/repository"
)

// UsageService enforces subscription tier quotas on metered actions and
// records consumption. Months key as "YYYY-MM" in UTC.
type UsageService interface {
	Tier(ctx context.Context, userID int64) (string, models.TierLimits, error)
	CheckLimit(ctx context.Context, userID int64, metric string) error
	Record(ctx context.Context, userID int64, metric string, amount int) error
	Remaining(ctx context.Context, userID int64, metric string) (int, error)
}

type usageService struct {
	usage         repository.UsageRepository
	subscriptions repository.SubscriptionRepository
	now           func() time.Time
}

func NewUsageService(usage repository.UsageRepository, subscriptions repository.SubscriptionRepository) UsageService {
	return &usageService{
		usage:         usage,
		subscriptions: subscriptions,
		now:           time.Now,
	}
}

func currentMonth(now time.Time) string {
	return now.UTC().Format("2006-01")
}

func (s *usageService) Tier(ctx context.Context, userID int64) (string, models.TierLimits, error) {
	sub, found, err := s.subscriptions.GetByUserID(ctx, userID)
	if err != nil {
		return "", models.TierLimits{}, err
	}
	// No subscription row and lapsed subscriptions both mean the free tier.
	tier := models.TierFree
	if found && sub.Status == "active" {
		tier = sub.Tier
	}
	return tier, models.LimitsForTier(tier), nil
}

func limitFor(limits models.TierLimits, metric string) int {
	switch metric {
	case models.MetricAIGenerations:
		return limits.AIGenerations
	case models.MetricScheduledPosts:
		return limits.ScheduledPosts
	default:
		return models.Unlimited
	}
}

func (s *usageService) CheckLimit(ctx context.Context, userID int64, metric string) error {
	tier, limits, err := s.Tier(ctx, userID)
	if err != nil {
		return err
	}

	limit := limitFor(limits, metric)
	if limit == models.Unlimited {
		return nil
	}

	used, err := s.usage.GetCount(ctx, userID, metric, currentMonth(s.now()))
	if err != nil {
		return err
	}
	if used >= limit {
		return fmt.Errorf("%w: %s allows %d %s per month", ErrLimitReached, tier, limit, metric)
	}
	return nil
}

func (s *usageService) Record(ctx context.Context, userID int64, metric string, amount int) error {
	return s.usage.Increment(ctx, userID, metric, currentMonth(s.now()), amount)
}

func (s *usageService) Remaining(ctx context.Context, userID int64, metric string) (int, error) {
	_, limits, err := s.Tier(ctx, userID)
	if err != nil {
		return 0, err
	}

	limit := limitFor(limits, metric)
	if limit == models.Unlimited {
		return models.Unlimited, nil
	}

	used, err := s.usage.GetCount(ctx, userID, metric, currentMonth(s.now()))
	if err != nil {
		return 0, err
	}
	if used >= limit {
		return 0, nil
	}
	return limit - used, nil
}
