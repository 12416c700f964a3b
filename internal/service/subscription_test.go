package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/financas-be/internal/auth"
	"github.com/hongminglow/financas-be/internal/billing"
	"github.com/hongminglow/financas-be/internal/logging"
	"github.com/hongminglow/financas-be/internal/metrics"
	"github.com/hongminglow/financas-be/internal/models"
	"github.com/hongminglow/financas-be/internal/storage/memory"
)

// fakeBilling records calls and answers from canned values.
type fakeBilling struct {
	customers     int
	lastCheckout  billing.CheckoutRequest
	lastReturnURL string
	subscription  billing.Subscription
	subErr        error
	price         billing.Price
	event         billing.Event
	eventErr      error
}

func (f *fakeBilling) CreateCustomer(context.Context, string, string, string) (string, error) {
	f.customers++
	return "cus_new", nil
}

func (f *fakeBilling) CreateCheckoutSession(_ context.Context, req billing.CheckoutRequest) (string, error) {
	f.lastCheckout = req
	return "https://checkout.example/s", nil
}

func (f *fakeBilling) CreatePortalSession(_ context.Context, _ string, returnURL string) (string, error) {
	f.lastReturnURL = returnURL
	return "https://portal.example/s", nil
}

func (f *fakeBilling) Subscription(context.Context, string) (billing.Subscription, error) {
	return f.subscription, f.subErr
}

func (f *fakeBilling) Price(context.Context, string) (billing.Price, error) { return f.price, nil }

func (f *fakeBilling) ParseEvent([]byte, string) (billing.Event, error) { return f.event, f.eventErr }

var created = time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

func newSubscriptions(t *testing.T, fb billing.Provider) (*Subscriptions, *memory.Store) {
	t.Helper()
	store := memory.New()
	s := NewSubscriptions(store, fb, SubscriptionConfig{
		PriceID:     "price_default",
		FrontendURL: "https://app.example/",
		TrialDays:   7,
	}, metrics.New(), logging.Discard())
	s.now = func() time.Time { return created.Add(48 * time.Hour) }
	return s, store
}

func identity(id string) auth.Identity {
	return auth.Identity{ID: id, Email: id + "@example.com", Metadata: map[string]any{"nome": "Ana"}, CreatedAt: created}
}

func TestCheckoutCreatesCustomerOnce(t *testing.T) {
	ctx := context.Background()
	fb := &fakeBilling{}
	s, store := newSubscriptions(t, fb)

	url, err := s.Checkout(ctx, identity("u1"), "")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/s", url)
	assert.Equal(t, "price_default", fb.lastCheckout.PriceID)
	assert.Equal(t, 7, fb.lastCheckout.TrialDays)
	assert.Equal(t, "https://app.example/dashboard?session_id={CHECKOUT_SESSION_ID}", fb.lastCheckout.SuccessURL)
	assert.Equal(t, "https://app.example/subscription-plans", fb.lastCheckout.CancelURL)

	_, err = s.Checkout(ctx, identity("u1"), "price_other")
	require.NoError(t, err)
	assert.Equal(t, "price_other", fb.lastCheckout.PriceID)

	_, err = s.Portal(ctx, identity("u1"))
	require.NoError(t, err)
	assert.Equal(t, "https://app.example/dashboard", fb.lastReturnURL)

	assert.Equal(t, 1, fb.customers, "customer is created lazily and reused")
	u, err := store.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, u.BillingCustomerID)
	assert.Equal(t, "cus_new", *u.BillingCustomerID)
	assert.Equal(t, "Ana", u.Name)
}

func TestStatusFallsBackToProfileTrial(t *testing.T) {
	ctx := context.Background()
	s, _ := newSubscriptions(t, &fakeBilling{price: billing.Price{UnitAmount: 1990, Currency: "brl"}})

	st, err := s.Status(ctx, identity("u1"))
	require.NoError(t, err)
	assert.Equal(t, "trialing", st.Status)
	assert.Equal(t, created.Add(7*24*time.Hour).Unix(), st.TrialEnd)
	assert.Equal(t, created.Add(48*time.Hour).Unix(), st.ServerTime)
	assert.Nil(t, st.SubscriptionID)
	require.NotNil(t, st.Price)
	assert.EqualValues(t, 1990, st.Price.UnitAmount)
}

func TestStatusPrefersProviderSubscription(t *testing.T) {
	ctx := context.Background()
	trialEnd := created.Add(14 * 24 * time.Hour)
	fb := &fakeBilling{subscription: billing.Subscription{ID: "sub_1", Status: "active", TrialEnd: trialEnd}}
	s, store := newSubscriptions(t, fb)

	_, err := s.Checkout(ctx, identity("u1"), "")
	require.NoError(t, err)
	require.NoError(t, s.ApplyEvent(ctx, billing.Event{Type: billing.EventCheckoutCompleted, CustomerID: "cus_new", SubscriptionID: "sub_1"}))

	st, err := s.Status(ctx, identity("u1"))
	require.NoError(t, err)
	assert.Equal(t, "active", st.Status)
	assert.Equal(t, trialEnd.Unix(), st.TrialEnd)
	require.NotNil(t, st.SubscriptionID)
	assert.Equal(t, "sub_1", *st.SubscriptionID)

	fb.subErr = errors.New("stripe down")
	_, err = store.UpdateSubscriptionByCustomer(ctx, "cus_new", models.SubscriptionPastDue, nil, created)
	require.NoError(t, err)
	st, err = s.Status(ctx, identity("u1"))
	require.NoError(t, err)
	assert.Equal(t, "past_due", st.Status, "stored status is used when the provider fails")
}

func TestApplyEventTransitions(t *testing.T) {
	ctx := context.Background()
	s, store := newSubscriptions(t, &fakeBilling{})
	_, err := s.Portal(ctx, identity("u1"))
	require.NoError(t, err)

	steps := []struct {
		ev   billing.Event
		want models.SubscriptionStatus
		sub  string
	}{
		{billing.Event{Type: billing.EventCheckoutCompleted, CustomerID: "cus_new", SubscriptionID: "sub_1"}, models.SubscriptionActive, "sub_1"},
		{billing.Event{Type: billing.EventInvoicePaymentFailed, CustomerID: "cus_new"}, models.SubscriptionPastDue, "sub_1"},
		{billing.Event{Type: billing.EventSubscriptionUpdated, CustomerID: "cus_new", SubscriptionID: "sub_1", Status: "unpaid"}, "unpaid", "sub_1"},
		{billing.Event{Type: billing.EventSubscriptionDeleted, CustomerID: "cus_new", SubscriptionID: "sub_1"}, models.SubscriptionCanceled, "sub_1"},
		{billing.Event{Type: "invoice.paid", CustomerID: "cus_new"}, models.SubscriptionCanceled, "sub_1"},
	}
	for _, step := range steps {
		require.NoError(t, s.ApplyEvent(ctx, step.ev), step.ev.Type)
		u, err := store.GetUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, step.want, u.SubscriptionStatus, step.ev.Type)
		require.NotNil(t, u.SubscriptionID)
		assert.Equal(t, step.sub, *u.SubscriptionID)
	}
}

func TestApplyEventIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, store := newSubscriptions(t, &fakeBilling{})
	_, err := s.Portal(ctx, identity("u1"))
	require.NoError(t, err)

	ev := billing.Event{Type: billing.EventSubscriptionUpdated, CustomerID: "cus_new", SubscriptionID: "sub_1", Status: "active"}
	for i := 0; i < 2; i++ {
		require.NoError(t, s.ApplyEvent(ctx, ev))
		u, err := store.GetUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, models.SubscriptionActive, u.SubscriptionStatus)
	}
}

func TestUnknownCustomerIsAcknowledged(t *testing.T) {
	s, _ := newSubscriptions(t, &fakeBilling{})
	err := s.ApplyEvent(context.Background(), billing.Event{Type: billing.EventCheckoutCompleted, CustomerID: "cus_nobody"})
	assert.NoError(t, err)
}

func TestHandleWebhookPropagatesSignatureFailure(t *testing.T) {
	s, _ := newSubscriptions(t, &fakeBilling{eventErr: billing.ErrInvalidSignature})
	err := s.HandleWebhook(context.Background(), []byte("{}"), "bad")
	assert.ErrorIs(t, err, billing.ErrInvalidSignature)
}
