package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/hongminglow/financas-be/internal/billing"
	"github.com/hongminglow/financas-be/internal/http/respond"
	"github.com/hongminglow/financas-be/internal/middleware"
	"github.com/hongminglow/financas-be/internal/models/dto"
	"github.com/hongminglow/financas-be/internal/service"
)

const maxWebhookBytes = 64 << 10

// BillingHandler exposes checkout, portal, status and the provider webhook.
type BillingHandler struct {
	subscriptions *service.Subscriptions
	failures      *Failures
	logger        *slog.Logger
}

func NewBillingHandler(subscriptions *service.Subscriptions, failures *Failures, logger *slog.Logger) *BillingHandler {
	return &BillingHandler{subscriptions: subscriptions, failures: failures, logger: logger}
}

// Register guards everything but the webhook, which is authenticated by
// its signature instead.
func (h *BillingHandler) Register(mux *http.ServeMux, gate *middleware.Gate) {
	mux.Handle("POST /api/stripe/create-checkout-session", gate.Require(h.checkout))
	mux.Handle("POST /api/stripe/create-portal-session", gate.Require(h.portal))
	mux.Handle("GET /api/stripe/status", gate.Require(h.status))
	mux.HandleFunc("POST /api/stripe/webhook", h.webhook)
}

func (h *BillingHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		h.failures.Write(w, r, err)
		return
	}
	id, _ := middleware.IdentityFrom(r.Context())
	url, err := h.subscriptions.Checkout(r.Context(), id, req.PriceID)
	if err != nil {
		h.failures.Write(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.URLResponse{URL: url})
}

func (h *BillingHandler) portal(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	url, err := h.subscriptions.Portal(r.Context(), id)
	if err != nil {
		h.failures.Write(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.URLResponse{URL: url})
}

func (h *BillingHandler) status(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	st, err := h.subscriptions.Status(r.Context(), id)
	if err != nil {
		h.failures.Write(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, st)
}

// webhook verifies the raw body before decoding anything. A failure after
// verification answers 500 so the provider redelivers.
func (h *BillingHandler) webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "could not read webhook body")
		return
	}

	err = h.subscriptions.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, map[string]bool{"received": true})
	case errors.Is(err, billing.ErrInvalidSignature):
		h.logger.WarnContext(r.Context(), "webhook signature verification failed", "error", err)
		respond.Error(w, http.StatusBadRequest, "Webhook Error: "+err.Error())
	case errors.Is(err, billing.ErrDisabled):
		h.failures.Write(w, r, err)
	default:
		h.logger.ErrorContext(r.Context(), "webhook handling failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "webhook handler failed")
	}
}
