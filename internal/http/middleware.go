package httpapi

import (
	"context"
	"net/http"
	"strings"

	"imovelhub-api/internal/domain"
	"imovelhub-api/internal/service"

	"go.uber.org/zap"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionFrom returns the authenticated session, if any.
func SessionFrom(ctx context.Context) *domain.Session {
	s, _ := ctx.Value(sessionContextKey).(*domain.Session)
	return s
}

// AuthMiddleware resolves the bearer token into a session and scopes the
// request to the session's company. Unauthenticated requests get the 60401
// envelope so the front end redirects to login.
type AuthMiddleware struct {
	auth   service.AuthService
	logger *zap.Logger
}

func NewAuthMiddleware(auth service.AuthService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, logger: logger}
}

func (m *AuthMiddleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, TokenExpired())
			return
		}
		session, err := m.auth.ResolveSession(r.Context(), token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, TokenExpired())
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin stacks a role check on top of Require.
func (m *AuthMiddleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.Require(func(w http.ResponseWriter, r *http.Request) {
		session := SessionFrom(r.Context())
		if session == nil || session.Role != domain.RoleAdmin {
			writeJSON(w, http.StatusOK, Fail("admin role required"))
			return
		}
		next(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
