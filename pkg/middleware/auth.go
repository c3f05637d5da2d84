package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fkhayef/billsplit/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// UsernameKey is the context key for the authenticated username
const UsernameKey ContextKey = "username"

// TokenValidator validates a bearer token and returns the username it was
// issued to
type TokenValidator interface {
	Validate(token string) (string, error)
}

// RequireAuth validates the Authorization bearer token and adds the
// authenticated username to the request context
func RequireAuth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			username, err := tokens.Validate(parts[1])
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UsernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUsername extracts the authenticated username from the request context
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok && username != ""
}
