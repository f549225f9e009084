package models

import "time"

const (
	TierFree    = "free"
	TierStarter = "starter"
	TierPro     = "pro"
	TierAgency  = "agency"
)

// Unlimited marks a tier limit with no cap.
const Unlimited = -1

// TierLimits caps monthly metered usage per subscription tier.
type TierLimits struct {
	AIGenerations  int
	ScheduledPosts int
	CanExport      bool
}

var tierLimits = map[string]TierLimits{
	TierFree:    {AIGenerations: 5, ScheduledPosts: 10, CanExport: false},
	TierStarter: {AIGenerations: 50, ScheduledPosts: 100, CanExport: true},
	TierPro:     {AIGenerations: 200, ScheduledPosts: 500, CanExport: true},
	TierAgency:  {AIGenerations: Unlimited, ScheduledPosts: Unlimited, CanExport: true},
}

// LimitsForTier returns the limits for tier, falling back to free.
func LimitsForTier(tier string) TierLimits {
	if limits, ok := tierLimits[tier]; ok {
		return limits
	}
	return tierLimits[TierFree]
}

type Subscription struct {
	ID                   int64     `db:"id" json:"id"`
	UserID               int64     `db:"user_id" json:"user_id"`
	Tier                 string    `db:"tier" json:"tier"`
	Status               string    `db:"status" json:"status"`
	StripeCustomerID     string    `db:"stripe_customer_id" json:"stripe_customer_id"`
	StripeSubscriptionID string    `db:"stripe_subscription_id" json:"stripe_subscription_id"`
	CurrentPeriodEnd     time.Time `db:"current_period_end" json:"current_period_end"`
	CancelAtPeriodEnd    bool      `db:"cancel_at_period_end" json:"cancel_at_period_end"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// Usage is a monthly metered-usage counter. Month uses the YYYY-MM form.
type Usage struct {
	ID     int64  `db:"id" json:"id"`
	UserID int64  `db:"user_id" json:"user_id"`
	Metric string `db:"metric" json:"metric"`
	Month  string `db:"month" json:"month"`
	Count  int    `db:"count" json:"count"`
}

const (
	MetricAIGenerations  = "ai_generations"
	MetricScheduledPosts = "scheduled_posts"
)
