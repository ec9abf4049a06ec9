package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.CreateAccessToken("user-1", "player", "asha@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.ParseValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, "player", claims.Role)
	assert.Equal(t, "asha@example.com", claims.Email)
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)
	other := NewTokenIssuer("secret-b", time.Hour)

	token, err := issuer.CreateAccessToken("user-1", "owner", "o@example.com")
	require.NoError(t, err)

	_, err = other.ParseValidate(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute)

	token, err := issuer.CreateAccessToken("user-1", "player", "p@example.com")
	require.NoError(t, err)

	_, err = issuer.ParseValidate(token)
	assert.Error(t, err)
}
