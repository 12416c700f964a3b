package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "financas-test", time.Hour)
	id := Identity{ID: "u1", Email: "ana@example.com", Metadata: map[string]any{"nome": "Ana"}}

	token, exp, err := tm.Generate(id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana", claims.Name)
}

func TestTokenRejections(t *testing.T) {
	tm := NewTokenManager("secret", "financas-test", time.Hour)
	token, _, err := tm.Generate(Identity{ID: "u1"})
	require.NoError(t, err)

	other := NewTokenManager("other-secret", "financas-test", time.Hour)
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong secret")

	foreign := NewTokenManager("secret", "someone-else", time.Hour)
	_, err = foreign.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong issuer")

	later := NewTokenManager("secret", "financas-test", time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")

	_, err = tm.Validate("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer   abc ", "abc", true},
		{"", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"abc", "", false},
	}
	for _, tt := range tests {
		token, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ana", Identity{Metadata: map[string]any{"nome": "Ana", "full_name": "Ana Maria"}}.DisplayName())
	assert.Equal(t, "Ana Maria", Identity{Metadata: map[string]any{"nome": " ", "full_name": "Ana Maria"}}.DisplayName())
	assert.Equal(t, "Bia", Identity{Metadata: map[string]any{"name": "Bia"}}.DisplayName())
	assert.Equal(t, "", Identity{}.DisplayName())
}
