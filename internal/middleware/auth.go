package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/peopledir/peopledir-api/internal/pkg/response"
	"github.com/peopledir/peopledir-api/internal/pkg/token"
)

type contextKey string

// UserIDKey is the context key holding the authenticated user ID
const UserIDKey contextKey = "user_id"

// Auth returns middleware that validates the bearer identity token.
// A missing or malformed Authorization header is a 400; a token that fails
// verification is a 401.
func Auth(tokenService *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.BadRequest(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.BadRequest(w, "Invalid authorization header format")
				return
			}

			userID, err := tokenService.Validate(parts[1])
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
