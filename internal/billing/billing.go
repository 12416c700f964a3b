// Package billing wraps the subscription billing provider.
package billing

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidSignature rejects a webhook payload that fails verification.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrDisabled is returned by every call when no provider key is configured.
	ErrDisabled = errors.New("billing is not configured")
)

// Event types that change a subscription status.
const (
	EventCheckoutCompleted    = "checkout.session.completed"
	EventInvoicePaymentFailed = "invoice.payment_failed"
	EventSubscriptionDeleted  = "customer.subscription.deleted"
	EventSubscriptionUpdated  = "customer.subscription.updated"
)

// CheckoutRequest describes a hosted subscription checkout.
type CheckoutRequest struct {
	CustomerID string
	PriceID    string
	TrialDays  int
	SuccessURL string
	CancelURL  string
}

// Subscription is the provider's view of a subscription.
type Subscription struct {
	ID       string
	Status   string
	TrialEnd time.Time
}

type Price struct {
	UnitAmount int64  `json:"unit_amount"`
	Currency   string `json:"currency"`
}

// Event is a verified webhook event reduced to the fields status sync needs.
// Status is only set for subscription objects.
type Event struct {
	ID             string
	Type           string
	CustomerID     string
	SubscriptionID string
	Status         string
}

// Provider is the billing collaborator.
type Provider interface {
	CreateCustomer(ctx context.Context, email, name, userID string) (string, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
	Subscription(ctx context.Context, id string) (Subscription, error)
	Price(ctx context.Context, id string) (Price, error)
	ParseEvent(payload []byte, signature string) (Event, error)
}

// Disabled is the provider used when billing is not configured.
type Disabled struct{}

var _ Provider = Disabled{}

func (Disabled) CreateCustomer(context.Context, string, string, string) (string, error) {
	return "", ErrDisabled
}

func (Disabled) CreateCheckoutSession(context.Context, CheckoutRequest) (string, error) {
	return "", ErrDisabled
}

func (Disabled) CreatePortalSession(context.Context, string, string) (string, error) {
	return "", ErrDisabled
}

func (Disabled) Subscription(context.Context, string) (Subscription, error) {
	return Subscription{}, ErrDisabled
}

func (Disabled) Price(context.Context, string) (Price, error) { return Price{}, ErrDisabled }

func (Disabled) ParseEvent([]byte, string) (Event, error) { return Event{}, ErrDisabled }
