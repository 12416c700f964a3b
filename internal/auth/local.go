package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/financas-be/internal/models"
	"github.com/hongminglow/financas-be/internal/storage"
)

// LocalProvider keeps credentials in the record store and issues its own
// HS256 access tokens. It stands in for the hosted provider in development
// and tests.
type LocalProvider struct {
	store  storage.CredentialStore
	tokens *TokenManager
	now    func() time.Time
}

var _ Provider = (*LocalProvider)(nil)

func NewLocalProvider(store storage.CredentialStore, tokens *TokenManager) *LocalProvider {
	return &LocalProvider{store: store, tokens: tokens, now: time.Now}
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password, name string) (Identity, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return Identity{}, &ProviderError{Status: 400, Message: "a valid email is required"}
	}
	if utf8.RuneCountInString(password) < 6 {
		return Identity{}, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, fmt.Errorf("hash password: %w", err)
	}

	cred := models.Credential{
		UserID:       uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		CreatedAt:    p.now().UTC(),
	}
	if err := p.store.CreateCredential(ctx, cred); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return Identity{}, ErrAlreadyRegistered
		}
		return Identity{}, fmt.Errorf("store credential: %w", err)
	}
	return credentialIdentity(cred), nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (Identity, Session, error) {
	cred, err := p.store.FindCredentialByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Identity{}, Session{}, ErrInvalidCredentials
		}
		return Identity{}, Session{}, fmt.Errorf("find credential: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return Identity{}, Session{}, ErrInvalidCredentials
	}

	id := credentialIdentity(cred)
	token, exp, err := p.tokens.Generate(id)
	if err != nil {
		return Identity{}, Session{}, err
	}
	session := Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(exp.Sub(p.now()).Seconds()),
		ExpiresAt:   exp.Unix(),
	}
	return id, session, nil
}

// Verify never touches the store: the signed claims are the identity.
func (p *LocalProvider) Verify(_ context.Context, token string) (Identity, error) {
	claims, err := p.tokens.Validate(token)
	if err != nil {
		return Identity{}, err
	}
	id := Identity{ID: claims.Subject, Email: claims.Email}
	if claims.Name != "" {
		id.Metadata = map[string]any{"nome": claims.Name}
	}
	return id, nil
}

func credentialIdentity(c models.Credential) Identity {
	return Identity{
		ID:        c.UserID,
		Email:     c.Email,
		Metadata:  map[string]any{"nome": c.Name, "full_name": c.Name},
		CreatedAt: c.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
