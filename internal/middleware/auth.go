package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/idoevents/api/internal/model"
	"github.com/idoevents/api/pkg/token"
)

// TokenValidator defines the interface for session token validation
type TokenValidator interface {
	Validate(raw string) (*token.Claims, error)
}

// Auth returns a middleware that gates requests on a valid session token.
// A missing or malformed Authorization header is 401; a present token that
// fails verification (expired, bad signature, malformed) is 403.
func Auth(tokens TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				model.NewUnauthorizedError("Authentication required").WriteJSON(w)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				model.NewUnauthorizedError("Authentication required").WriteJSON(w)
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				switch err {
				case token.ErrTokenExpired:
					model.NewForbiddenError("Token expired").WriteJSON(w)
				case token.ErrInvalidSignature:
					model.NewForbiddenError("Invalid token").WriteJSON(w)
				default:
					model.NewForbiddenError("Invalid token").WriteJSON(w)
				}
				return
			}

			// Add the caller identity to context
			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleKey is the context key for the caller's role
const RoleKey contextKey = "role"

// GetUserID extracts the user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetRole extracts the caller's role from context
func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(RoleKey).(string); ok {
		return role
	}
	return ""
}
