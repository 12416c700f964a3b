package models

import "time"

// SubscriptionStatus mirrors the billing provider's subscription state.
// Values outside the constants below are stored verbatim when the provider
// reports them.
type SubscriptionStatus string

const (
	SubscriptionNone     SubscriptionStatus = "none"
	SubscriptionTrialing SubscriptionStatus = "trialing"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// User is the local profile row kept next to the identity provider account.
type User struct {
	ID                 string             `json:"id"`
	Email              string             `json:"email"`
	Name               string             `json:"nome"`
	BillingCustomerID  *string            `json:"stripe_customer_id"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	SubscriptionID     *string            `json:"subscription_id"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// HasBillingCustomer reports whether a billing customer is linked.
func (u User) HasBillingCustomer() bool {
	return u.BillingCustomerID != nil && *u.BillingCustomerID != ""
}

// Credential is a locally managed login used by the built-in identity provider.
type Credential struct {
	UserID       string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
