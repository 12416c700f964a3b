package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hongminglow/financas-be/internal/auth"
	"github.com/hongminglow/financas-be/internal/models"
	"github.com/hongminglow/financas-be/internal/storage"
)

// Accounts registers identities and keeps the local profile row next to
// them.
type Accounts struct {
	identity auth.Provider
	users    storage.UserStore
	logger   *slog.Logger
}

func NewAccounts(identity auth.Provider, users storage.UserStore, logger *slog.Logger) *Accounts {
	return &Accounts{identity: identity, users: users, logger: logger}
}

// Register creates the identity, then the profile. A failed profile insert
// is logged and does not undo the registration; the profile is recreated
// lazily on first billing use.
func (a *Accounts) Register(ctx context.Context, email, password, name string) (auth.Identity, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" {
		return auth.Identity{}, invalid("", "email and password are required")
	}

	id, err := a.identity.SignUp(ctx, email, password, name)
	if err != nil {
		return auth.Identity{}, err
	}

	profile := models.User{
		ID:                 id.ID,
		Email:              id.Email,
		Name:               name,
		SubscriptionStatus: models.SubscriptionTrialing,
		CreatedAt:          id.CreatedAt,
	}
	if _, err := a.users.CreateUser(ctx, profile); err != nil {
		a.logger.WarnContext(ctx, "profile insert failed after sign up", "user_id", id.ID, "error", err)
	} else {
		a.logger.InfoContext(ctx, "user registered", "user_id", id.ID)
	}
	return id, nil
}

func (a *Accounts) Login(ctx context.Context, email, password string) (auth.Identity, auth.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return auth.Identity{}, auth.Session{}, invalid("", "email and password are required")
	}
	return a.identity.SignIn(ctx, email, password)
}

// EnsureProfile returns the profile of an authenticated identity, creating
// it when registration never managed to.
func EnsureProfile(ctx context.Context, users storage.UserStore, id auth.Identity) (models.User, error) {
	u, err := users.GetUser(ctx, id.ID)
	if err == nil || !errors.Is(err, storage.ErrNotFound) {
		return u, err
	}
	u, err = users.CreateUser(ctx, models.User{
		ID:                 id.ID,
		Email:              id.Email,
		Name:               id.DisplayName(),
		SubscriptionStatus: models.SubscriptionTrialing,
		CreatedAt:          id.CreatedAt,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return users.GetUser(ctx, id.ID)
	}
	return u, err
}
