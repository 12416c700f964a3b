package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/financas-be/internal/auth"
	"github.com/hongminglow/financas-be/internal/logging"
	"github.com/hongminglow/financas-be/internal/models"
	"github.com/hongminglow/financas-be/internal/storage"
	"github.com/hongminglow/financas-be/internal/storage/memory"
)

func newAccounts(t *testing.T) (*Accounts, *memory.Store) {
	t.Helper()
	store := memory.New()
	tokens := auth.NewTokenManager("test-secret", "financas-test", time.Hour)
	return NewAccounts(auth.NewLocalProvider(store, tokens), store, logging.Discard()), store
}

func TestRegisterCreatesProfile(t *testing.T) {
	ctx := context.Background()
	a, store := newAccounts(t)

	id, err := a.Register(ctx, " ana@example.com ", "secret123", "Ana")
	require.NoError(t, err)
	assert.Equal(t, "Ana", id.DisplayName())

	u, err := store.GetUser(ctx, id.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, models.SubscriptionTrialing, u.SubscriptionStatus)

	_, err = a.Register(ctx, "ana@example.com", "secret123", "Ana")
	assert.ErrorIs(t, err, auth.ErrAlreadyRegistered)
}

func TestRegisterValidates(t *testing.T) {
	a, _ := newAccounts(t)
	_, err := a.Register(context.Background(), "", "secret123", "Ana")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = a.Register(context.Background(), "ana@example.com", "123", "Ana")
	assert.ErrorIs(t, err, auth.ErrWeakPassword)
}

func TestLoginIssuesVerifiableSession(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	tokens := auth.NewTokenManager("test-secret", "financas-test", time.Hour)
	provider := auth.NewLocalProvider(store, tokens)
	a := NewAccounts(provider, store, logging.Discard())

	registered, err := a.Register(ctx, "ana@example.com", "secret123", "Ana")
	require.NoError(t, err)

	id, session, err := a.Login(ctx, "ANA@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, id.ID)
	assert.NotEmpty(t, session.AccessToken)

	verified, err := provider.Verify(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, verified.ID)

	_, _, err = a.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

// failingUsers refuses profile inserts.
type failingUsers struct{ storage.UserStore }

func (failingUsers) CreateUser(context.Context, models.User) (models.User, error) {
	return models.User{}, errors.New("db down")
}

func TestRegisterSurvivesProfileFailure(t *testing.T) {
	store := memory.New()
	tokens := auth.NewTokenManager("test-secret", "financas-test", time.Hour)
	a := NewAccounts(auth.NewLocalProvider(store, tokens), failingUsers{store}, logging.Discard())

	id, err := a.Register(context.Background(), "ana@example.com", "secret123", "Ana")
	require.NoError(t, err)
	assert.NotEmpty(t, id.ID)
}

func TestEnsureProfileHealsMissingRow(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	id := auth.Identity{ID: "u9", Email: "z@example.com", Metadata: map[string]any{"full_name": "Zé"}}

	u, err := EnsureProfile(ctx, store, id)
	require.NoError(t, err)
	assert.Equal(t, "Zé", u.Name)

	again, err := EnsureProfile(ctx, store, id)
	require.NoError(t, err)
	assert.Equal(t, u.CreatedAt, again.CreatedAt)
}
