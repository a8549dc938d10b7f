// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/bazario/bazario-api/internal/core"
)

const (
	UserIDKey   contextKey = "user_id"
	UserRoleKey contextKey = "user_role"
)

// SessionVerifier checks a signed session token and returns the embedded
// user id.
type SessionVerifier interface {
	VerifySessionToken(ctx context.Context, token string) (string, error)
}

// UserResolver maps a verified user id back to a live account. A token whose
// user has since been deleted does not authenticate.
type UserResolver interface {
	ResolveUser(ctx context.Context, userID string) (*SessionUser, error)
}

type SessionUser struct {
	ID   string
	Role string
}

// Authenticator resolves the acting user from the accessToken cookie or the
// Authorization header. Failures are reported on the envelope with
// status:false, matching the rest of the API surface.
func Authenticator(
	verifier SessionVerifier,
	resolver UserResolver,
	cookieName string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r, cookieName)

			if token == "" {
				core.Fail(w, "Unauthorized: No token provided")
				return
			}

			userID, err := verifier.VerifySessionToken(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, core.ErrTokenExpired):
					core.Fail(w, "Token expired. Please login again.")
				default:
					core.Fail(w, "Invalid token. Please login again.")
				}
				return
			}

			user, err := resolver.ResolveUser(r.Context(), userID)
			if err != nil {
				if errors.Is(err, core.ErrNotFound) {
					core.Fail(w, "User not found")
					return
				}
				core.Internal(w, err)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, UserIDKey, user.ID)
			ctx = context.WithValue(ctx, UserRoleKey, user.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken prefers the session cookie, falling back to a bearer header.
func ExtractToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func GetUserRole(ctx context.Context) string {
	if role, ok := ctx.Value(UserRoleKey).(string); ok {
		return role
	}
	return ""
}

func IsAuthenticated(ctx context.Context) bool {
	return GetUserID(ctx) != ""
}
