package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/auth"
)

// AuthMiddleware validates bearer tokens and stores the claims on the request
// context
type AuthMiddleware struct {
	issuer *auth.TokenIssuer
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(issuer *auth.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer}
}

// RequireAuth rejects requests without a valid access token
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := extractBearer(r)
		if token == "" {
			unauthorized(w, "missing bearer token")
			return
		}

		claims, err := m.issuer.ParseValidate(token)
		if err != nil {
			unauthorized(w, "invalid or expired token")
			return
		}

		next(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	}
}

// RequireRole rejects authenticated requests whose token carries a different
// role
func (m *AuthMiddleware) RequireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok || claims.Role != role {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "insufficient permissions"})
			return
		}
		next(w, r)
	})
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
