// Package auth resolves bearer tokens and credentials into user identities
// through a pluggable identity provider.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingToken       = errors.New("authorization token required")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyRegistered  = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)

// Identity is the provider-issued user as seen by request handlers.
type Identity struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Metadata  map[string]any `json:"user_metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// DisplayName reads the name stored in the identity metadata.
func (i Identity) DisplayName() string {
	for _, key := range []string{"nome", "full_name", "name"} {
		if v, ok := i.Metadata[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Session is the token bundle returned on login.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Provider is the identity collaborator. Verify is the single upstream call
// made per authenticated request.
type Provider interface {
	SignUp(ctx context.Context, email, password, name string) (Identity, error)
	SignIn(ctx context.Context, email, password string) (Identity, Session, error)
	Verify(ctx context.Context, token string) (Identity, error)
}

// ProviderError carries an upstream rejection with its original message.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string { return e.Message }

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
