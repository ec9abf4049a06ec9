package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/api/middleware"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/auth"
)

func newMiddleware(t *testing.T) (*middleware.AuthMiddleware, *auth.TokenIssuer) {
	t.Helper()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	return middleware.NewAuthMiddleware(issuer), issuer
}

func TestRequireAuth_MissingHeaderIsUnauthorized(t *testing.T) {
	mw, _ := newMiddleware(t)

	called := false
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("GET", "/api/bookings", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestRequireAuth_GarbageTokenIsUnauthorized(t *testing.T) {
	mw, _ := newMiddleware(t)

	called := false
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("GET", "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestRequireAuth_ValidTokenPutsClaimsOnContext(t *testing.T) {
	mw, issuer := newMiddleware(t)

	token, err := issuer.CreateAccessToken("user-1", "player", "rohan@playnest.in")
	require.NoError(t, err)

	var got *auth.Claims
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		require.True(t, ok)
		got = claims
	})

	req := httptest.NewRequest("GET", "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.Sub)
	assert.Equal(t, "player", got.Role)
}

func TestRequireRole_WrongRoleIsForbidden(t *testing.T) {
	mw, issuer := newMiddleware(t)

	token, err := issuer.CreateAccessToken("user-1", "player", "rohan@playnest.in")
	require.NoError(t, err)

	called := false
	handler := mw.RequireRole("owner", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("GET", "/api/owner/turfs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, called)
}
