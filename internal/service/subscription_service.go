package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	config "github.com/postplannerhq/postplanner/configs"
	"github.com/postplannerhq/postplanner/internal/models"
	"github.com/postplannerhq/postplanner/internal/repository"
	"github.com/postplannerhq/postplanner/internal/transfer"
)

// SubscriptionService keeps the local subscription rows in step with Stripe.
// Stripe is the billing source of truth; webhooks are the only writer here.
type SubscriptionService interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	GetByUserID(ctx context.Context, userID int64) (*models.Subscription, error)
}

type subscriptionService struct {
	cfg           config.Config
	subscriptions repository.SubscriptionRepository
	now           func() time.Time
}

func NewSubscriptionService(cfg config.Config, subscriptions repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{
		cfg:           cfg,
		subscriptions: subscriptions,
		now:           time.Now,
	}
}

func (s *subscriptionService) GetByUserID(ctx context.Context, userID int64) (*models.Subscription, error) {
	sub, found, err := s.subscriptions.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		// Every account has an implicit free subscription.
		return &models.Subscription{UserID: userID, Tier: models.TierFree, Status: "active"}, nil
	}
	return sub, nil
}

func (s *subscriptionService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if err := s.verifySignature(payload, signature); err != nil {
		return err
	}

	var event transfer.StripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("%w: malformed webhook payload", ErrValidation)
	}

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, &event.Data.Object)
	case "customer.subscription.updated":
		return s.handleSubscriptionUpdated(ctx, &event.Data.Object)
	case "customer.subscription.deleted":
		return s.handleSubscriptionDeleted(ctx, &event.Data.Object)
	case "invoice.payment_failed":
		return s.handlePaymentFailed(ctx, &event.Data.Object)
	default:
		slog.Info("ignoring stripe event", "type", event.Type)
		return nil
	}
}

// verifySignature checks the Stripe-Signature header: HMAC-SHA256 of
// "<timestamp>.<payload>" with the webhook secret.
func (s *subscriptionService) verifySignature(payload []byte, header string) error {
	if s.cfg.StripeWebhookSecret == "" {
		return nil
	}

	var timestamp, received string
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			received = value
		}
	}
	if timestamp == "" || received == "" {
		return fmt.Errorf("%w: missing webhook signature", ErrValidation)
	}

	mac := hmac.New(sha256.New, []byte(s.cfg.StripeWebhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(received)) {
		return fmt.Errorf("%w: webhook signature mismatch", ErrValidation)
	}
	return nil
}

// tierForPrice maps a Stripe price id to a plan tier. Unknown prices fall
// back to free so a misconfigured price never grants paid limits.
func (s *subscriptionService) tierForPrice(priceID string) string {
	switch priceID {
	case s.cfg.StripePrices.Starter:
		return models.TierStarter
	case s.cfg.StripePrices.Pro:
		return models.TierPro
	case s.cfg.StripePrices.Agency:
		return models.TierAgency
	default:
		return models.TierFree
	}
}

func (s *subscriptionService) handleCheckoutCompleted(ctx context.Context, obj *transfer.StripeObject) error {
	userID, err := strconv.ParseInt(obj.Metadata.UserID, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: checkout session has no userId metadata", ErrValidation)
	}

	sub := &models.Subscription{
		UserID:               userID,
		Tier:                 s.tierForPrice(obj.PriceID()),
		Status:               "active",
		StripeCustomerID:     obj.Customer,
		StripeSubscriptionID: obj.Subscription,
	}

	existing, found, err := s.subscriptions.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if found {
		sub.ID = existing.ID
		if sub.Tier == models.TierFree && existing.Tier != models.TierFree {
			// Checkout sessions do not always carry line items; keep the
			// tier until the subscription.updated event confirms it.
			sub.Tier = existing.Tier
		}
		return s.subscriptions.Update(ctx, sub)
	}
	_, err = s.subscriptions.Create(ctx, sub)
	return err
}

func (s *subscriptionService) handleSubscriptionUpdated(ctx context.Context, obj *transfer.StripeObject) error {
	existing, found, err := s.subscriptions.GetByStripeSubscriptionID(ctx, obj.ID)
	if err != nil {
		return err
	}
	if !found {
		slog.Info("stripe subscription not found", "subscription_id", obj.ID)
		return nil
	}

	existing.Tier = s.tierForPrice(obj.PriceID())
	existing.Status = obj.Status
	existing.CancelAtPeriodEnd = obj.CancelAtPeriodEnd
	if obj.CurrentPeriodEnd > 0 {
		existing.CurrentPeriodEnd = time.Unix(obj.CurrentPeriodEnd, 0).UTC()
	}
	return s.subscriptions.Update(ctx, existing)
}

func (s *subscriptionService) handleSubscriptionDeleted(ctx context.Context, obj *transfer.StripeObject) error {
	existing, found, err := s.subscriptions.GetByStripeSubscriptionID(ctx, obj.ID)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	existing.Tier = models.TierFree
	existing.Status = "canceled"
	existing.CancelAtPeriodEnd = false
	return s.subscriptions.Update(ctx, existing)
}

func (s *subscriptionService) handlePaymentFailed(ctx context.Context, obj *transfer.StripeObject) error {
	existing, found, err := s.subscriptions.GetByStripeSubscriptionID(ctx, obj.Subscription)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	existing.Status = "past_due"
	return s.subscriptions.Update(ctx, existing)
}
