package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	gotrue "github.com/supabase-community/auth-go"
	"github.com/supabase-community/auth-go/types"
)

// SupabaseConfig points the provider at a hosted GoTrue instance.
type SupabaseConfig struct {
	URL            string
	AnonKey        string
	ServiceRoleKey string
	Timeout        time.Duration
}

// SupabaseProvider talks to GoTrue through the auth-go client. Accounts are
// created through the admin endpoint so they start out confirmed.
type SupabaseProvider struct {
	public gotrue.Client
	admin  gotrue.Client
}

var _ Provider = (*SupabaseProvider)(nil)

func NewSupabaseProvider(cfg SupabaseConfig) *SupabaseProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	authURL := strings.TrimRight(cfg.URL, "/") + "/auth/v1"
	httpClient := http.Client{Timeout: timeout}

	public := gotrue.New("", cfg.AnonKey).WithCustomAuthURL(authURL).WithClient(httpClient)
	admin := gotrue.New("", cfg.ServiceRoleKey).WithCustomAuthURL(authURL).WithClient(httpClient)
	return &SupabaseProvider{public: public, admin: admin.WithToken(cfg.ServiceRoleKey)}
}

func identityOf(u types.User) Identity {
	return Identity{ID: u.ID.String(), Email: u.Email, Metadata: u.UserMetadata, CreatedAt: u.CreatedAt}
}

func (p *SupabaseProvider) SignUp(ctx context.Context, email, password, name string) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}
	resp, err := p.admin.AdminCreateUser(types.AdminCreateUserRequest{
		Email:        strings.TrimSpace(email),
		Password:     &password,
		EmailConfirm: true,
		UserMetadata: map[string]any{"nome": name, "full_name": name},
	})
	if err != nil {
		return Identity{}, providerError(err)
	}
	return identityOf(resp.User), nil
}

func (p *SupabaseProvider) SignIn(ctx context.Context, email, password string) (Identity, Session, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, Session{}, err
	}
	resp, err := p.public.SignInWithEmailPassword(strings.TrimSpace(email), password)
	if err != nil {
		return Identity{}, Session{}, providerError(err)
	}
	session := Session{
		AccessToken:  resp.AccessToken,
		TokenType:    resp.TokenType,
		ExpiresIn:    int64(resp.ExpiresIn),
		ExpiresAt:    resp.ExpiresAt,
		RefreshToken: resp.RefreshToken,
	}
	return identityOf(resp.User), session, nil
}

// Verify makes exactly one call to the user endpoint. Any 401 or 403 from
// the provider means the token is not usable.
func (p *SupabaseProvider) Verify(ctx context.Context, token string) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}
	resp, err := p.public.WithToken(token).GetUser()
	if err != nil {
		perr := providerError(err)
		if pe, ok := perr.(*ProviderError); ok && (pe.Status == http.StatusUnauthorized || pe.Status == http.StatusForbidden) {
			return Identity{}, fmt.Errorf("%w: %s", ErrInvalidToken, pe.Message)
		}
		return Identity{}, perr
	}
	if resp.User.ID == uuid.Nil {
		return Identity{}, ErrInvalidToken
	}
	return identityOf(resp.User), nil
}

// providerError recovers the upstream status from the client's
// "response status code N: body" errors. Transport failures stay wrapped.
func providerError(err error) error {
	msg := err.Error()
	var status int
	if n, _ := fmt.Sscanf(msg, "response status code %d", &status); n != 1 {
		return fmt.Errorf("identity provider: %w", err)
	}
	body := ""
	if _, rest, ok := strings.Cut(msg, ": "); ok {
		body = rest
	}
	return &ProviderError{Status: status, Message: gotrueMessage([]byte(body), http.StatusText(status))}
}

// gotrueMessage picks the human readable field out of the several error
// shapes GoTrue has used across versions.
func gotrueMessage(raw []byte, fallback string) string {
	var e struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	if json.Unmarshal(raw, &e) == nil {
		for _, m := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
			if m != "" {
				return m
			}
		}
	}
	return fallback
}
