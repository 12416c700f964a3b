package dto

import "github.com/hongminglow/financas-be/internal/billing"

type CheckoutRequest struct {
	PriceID string `json:"priceId"`
}

type URLResponse struct {
	URL string `json:"url"`
}

// SubscriptionStatus carries unix-second timestamps so the client can
// compute the remaining trial against server_time instead of its own clock.
type SubscriptionStatus struct {
	Status         string         `json:"status"`
	TrialEnd       int64          `json:"trial_end"`
	ServerTime     int64          `json:"server_time"`
	SubscriptionID *string        `json:"subscription_id"`
	Price          *billing.Price `json:"price,omitempty"`
}
