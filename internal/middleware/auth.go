package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hongminglow/financas-be/internal/auth"
	"github.com/hongminglow/financas-be/internal/http/respond"
)

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity stores the authenticated identity in ctx.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the identity stored by the Gate.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

// UserID returns the authenticated user id, or "" on public routes.
func UserID(ctx context.Context) string {
	id, _ := IdentityFrom(ctx)
	return id.ID
}

// Gate resolves bearer tokens through the identity provider. Each guarded
// request costs exactly one Verify call; a request without a token costs
// none.
type Gate struct {
	provider auth.Provider
	logger   *slog.Logger
}

func NewGate(provider auth.Provider, logger *slog.Logger) *Gate {
	return &Gate{provider: provider, logger: logger}
}

// Require rejects the request with 401 unless it carries a valid token.
func (g *Gate) Require(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := auth.BearerToken(r.Header.Get("Authorization"))
		if !ok {
			respond.Error(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
			return
		}

		id, err := g.provider.Verify(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				g.logger.DebugContext(r.Context(), "token rejected", "error", err)
				respond.Error(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
				return
			}
			g.logger.ErrorContext(r.Context(), "identity provider unavailable", "error", err)
			respond.Error(w, http.StatusBadGateway, "authentication service unavailable")
			return
		}

		setUser(r.Context(), id.ID)
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
