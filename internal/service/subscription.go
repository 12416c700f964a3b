package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hongminglow/financas-be/internal/auth"
	"github.com/hongminglow/financas-be/internal/billing"
	"github.com/hongminglow/financas-be/internal/metrics"
	"github.com/hongminglow/financas-be/internal/models"
	"github.com/hongminglow/financas-be/internal/models/dto"
	"github.com/hongminglow/financas-be/internal/storage"
)

// SubscriptionConfig carries the billing settings from the environment.
type SubscriptionConfig struct {
	PriceID     string
	FrontendURL string
	TrialDays   int
}

// Subscriptions reconciles local profiles with the billing provider.
type Subscriptions struct {
	users   storage.UserStore
	billing billing.Provider
	cfg     SubscriptionConfig
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

func NewSubscriptions(users storage.UserStore, provider billing.Provider, cfg SubscriptionConfig, m *metrics.Metrics, logger *slog.Logger) *Subscriptions {
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	return &Subscriptions{users: users, billing: provider, cfg: cfg, metrics: m, logger: logger, now: time.Now}
}

// Checkout opens a hosted checkout for the caller, creating the billing
// customer on first use.
func (s *Subscriptions) Checkout(ctx context.Context, id auth.Identity, priceID string) (string, error) {
	price := strings.TrimSpace(priceID)
	if price == "" {
		price = s.cfg.PriceID
	}
	if price == "" {
		return "", invalid("priceId", "is required")
	}

	customerID, err := s.ensureCustomer(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.billing.CreateCheckoutSession(ctx, billing.CheckoutRequest{
		CustomerID: customerID,
		PriceID:    price,
		TrialDays:  s.cfg.TrialDays,
		SuccessURL: s.cfg.FrontendURL + "/dashboard?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.cfg.FrontendURL + "/subscription-plans",
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

// Portal opens the self-service billing portal for the caller.
func (s *Subscriptions) Portal(ctx context.Context, id auth.Identity) (string, error) {
	customerID, err := s.ensureCustomer(ctx, id)
	if err != nil {
		return "", err
	}
	return s.billing.CreatePortalSession(ctx, customerID, s.cfg.FrontendURL+"/dashboard")
}

func (s *Subscriptions) ensureCustomer(ctx context.Context, id auth.Identity) (string, error) {
	u, err := EnsureProfile(ctx, s.users, id)
	if err != nil {
		return "", fmt.Errorf("load profile: %w", err)
	}
	if u.HasBillingCustomer() {
		return *u.BillingCustomerID, nil
	}

	name := u.Name
	if name == "" {
		name = id.DisplayName()
	}
	customerID, err := s.billing.CreateCustomer(ctx, u.Email, name, u.ID)
	if err != nil {
		return "", err
	}
	if err := s.users.SetBillingCustomer(ctx, u.ID, customerID, s.now().UTC()); err != nil {
		return "", fmt.Errorf("link billing customer: %w", err)
	}
	s.logger.InfoContext(ctx, "billing customer created", "user_id", u.ID, "customer_id", customerID)
	return customerID, nil
}

// Status reports the caller's subscription. The provider's subscription is
// authoritative when one is linked; otherwise the trial runs from the
// profile creation time.
func (s *Subscriptions) Status(ctx context.Context, id auth.Identity) (dto.SubscriptionStatus, error) {
	now := s.now()
	u, err := EnsureProfile(ctx, s.users, id)
	if err != nil {
		return dto.SubscriptionStatus{}, fmt.Errorf("load profile: %w", err)
	}

	status := string(u.SubscriptionStatus)
	if status == "" || u.SubscriptionStatus == models.SubscriptionNone {
		status = string(models.SubscriptionTrialing)
	}
	trialEnd := u.CreatedAt.Add(time.Duration(s.cfg.TrialDays) * 24 * time.Hour)

	if u.SubscriptionID != nil && *u.SubscriptionID != "" {
		sub, err := s.billing.Subscription(ctx, *u.SubscriptionID)
		switch {
		case err == nil:
			status = sub.Status
			if !sub.TrialEnd.IsZero() {
				trialEnd = sub.TrialEnd
			}
		case !errors.Is(err, billing.ErrDisabled):
			s.logger.WarnContext(ctx, "subscription lookup failed; using stored status",
				"user_id", u.ID, "subscription_id", *u.SubscriptionID, "error", err)
		}
	}

	out := dto.SubscriptionStatus{
		Status:         status,
		TrialEnd:       trialEnd.Unix(),
		ServerTime:     now.Unix(),
		SubscriptionID: u.SubscriptionID,
	}
	if s.cfg.PriceID != "" {
		price, err := s.billing.Price(ctx, s.cfg.PriceID)
		switch {
		case err == nil:
			out.Price = &price
		case !errors.Is(err, billing.ErrDisabled):
			s.logger.WarnContext(ctx, "price lookup failed", "price_id", s.cfg.PriceID, "error", err)
		}
	}
	return out, nil
}

// HandleWebhook verifies a raw webhook delivery and applies it.
func (s *Subscriptions) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	ev, err := s.billing.ParseEvent(payload, signature)
	if err != nil {
		return err
	}
	return s.ApplyEvent(ctx, ev)
}

// ApplyEvent moves every profile of the event's customer to the status the
// event implies. Re-applying an event overwrites with the same values, so
// redeliveries are harmless.
func (s *Subscriptions) ApplyEvent(ctx context.Context, ev billing.Event) error {
	status, subscriptionID, ok := transition(ev)
	if !ok {
		s.logger.DebugContext(ctx, "unhandled billing event", "type", ev.Type, "event_id", ev.ID)
		s.metrics.WebhookEvent(ev.Type, "ignored")
		return nil
	}
	if ev.CustomerID == "" {
		s.logger.WarnContext(ctx, "billing event without customer", "type", ev.Type, "event_id", ev.ID)
		s.metrics.WebhookEvent(ev.Type, "ignored")
		return nil
	}

	n, err := s.users.UpdateSubscriptionByCustomer(ctx, ev.CustomerID, status, subscriptionID, s.now().UTC())
	if err != nil {
		s.metrics.WebhookEvent(ev.Type, "failed")
		return fmt.Errorf("update subscription: %w", err)
	}
	if n == 0 {
		s.logger.WarnContext(ctx, "billing event for unknown customer",
			"type", ev.Type, "customer_id", ev.CustomerID, "event_id", ev.ID)
		s.metrics.WebhookEvent(ev.Type, "unmatched")
		return nil
	}
	s.logger.InfoContext(ctx, "subscription updated",
		"customer_id", ev.CustomerID, "status", status, "type", ev.Type)
	s.metrics.WebhookEvent(ev.Type, "applied")
	return nil
}

func transition(ev billing.Event) (models.SubscriptionStatus, *string, bool) {
	var ref *string
	if ev.SubscriptionID != "" {
		id := ev.SubscriptionID
		ref = &id
	}
	switch ev.Type {
	case billing.EventCheckoutCompleted:
		return models.SubscriptionActive, ref, true
	case billing.EventInvoicePaymentFailed:
		return models.SubscriptionPastDue, ref, true
	case billing.EventSubscriptionDeleted:
		return models.SubscriptionCanceled, ref, true
	case billing.EventSubscriptionUpdated:
		if ev.Status == "" {
			return "", nil, false
		}
		return models.SubscriptionStatus(ev.Status), ref, true
	default:
		return "", nil, false
	}
}
