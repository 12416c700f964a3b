package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hongminglow/financas-be/internal/auth"
	"github.com/hongminglow/financas-be/internal/billing"
	"github.com/hongminglow/financas-be/internal/http/respond"
	"github.com/hongminglow/financas-be/internal/service"
	"github.com/hongminglow/financas-be/internal/storage"
)

const upstreamMessage = "upstream service failure"

// Failures maps service errors onto HTTP statuses and the error envelope.
// Upstream error text is only passed through when expose is set.
type Failures struct {
	logger *slog.Logger
	expose bool
}

func NewFailures(logger *slog.Logger, expose bool) *Failures {
	return &Failures{logger: logger, expose: expose}
}

func (f *Failures) Write(w http.ResponseWriter, r *http.Request, err error) {
	status, message := f.classify(err)
	if status >= 500 {
		f.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	respond.Error(w, status, message)
}

func (f *Failures) classify(err error) (int, string) {
	var (
		verr *service.ValidationError
		perr *auth.ProviderError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrAlreadyRegistered),
		errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &perr) && perr.Status < 500:
		return http.StatusBadRequest, perr.Message
	case errors.Is(err, billing.ErrInvalidSignature):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, billing.ErrDisabled):
		return http.StatusServiceUnavailable, err.Error()
	}
	if f.expose {
		return http.StatusBadGateway, err.Error()
	}
	return http.StatusBadGateway, upstreamMessage
}
