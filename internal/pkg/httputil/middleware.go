package httputil

import (
	"context"
	"net/http"
	"strings"
)

// CORSMiddleware creates CORS middleware that handles preflight requests
// and adds appropriate CORS headers to responses.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	originsSet := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originsSet[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if originsSet[origin] || originsSet["*"] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Max-Age", "86400")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type contextKey string

// Context keys for the authenticated caller. The identity asserted by
// the token travels as explicit context values; there is no ambient
// security-context state.
const (
	SubjectKey contextKey = "subject"
	RoleKey    contextKey = "role"
)

// TokenValidator validates bearer tokens and returns their claims.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (subject string, role string, err error)
}

// AuthMiddleware creates authentication middleware. It expects an
// Authorization header of the form "Bearer <token>" and, on success,
// stores the token's subject and role claims in the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				Error(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				Error(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			subject, role, err := validator.ValidateToken(r.Context(), parts[1])
			if err != nil {
				Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, subject)
			ctx = context.WithValue(ctx, RoleKey, role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole creates middleware allowing only callers whose role
// claim matches one of the given role names. Roles are arbitrary rows
// rather than an ordered hierarchy, so this is an exact allow-list.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(RoleKey).(string)
			if !ok {
				Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if !allowed[role] {
				Error(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetSubject extracts the authenticated subject from context.
func GetSubject(ctx context.Context) string {
	if subject, ok := ctx.Value(SubjectKey).(string); ok {
		return subject
	}
	return ""
}

// GetRole extracts the authenticated caller's role name from context.
func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(RoleKey).(string); ok {
		return role
	}
	return ""
}
