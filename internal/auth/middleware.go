package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/errors"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/httpclient"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/httputil"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/logger"
)

type contextKey struct{}

var userKey contextKey

// ContextWithUser returns a context carrying the authenticated user.
func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user stored by Middleware, or
// nil when the request was not authenticated.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userKey).(*User)
	return user
}

// Middleware verifies the bearer token on every request and stores the
// resolved user in the request context. Requests without a valid token are
// rejected with 401. An open circuit to the auth provider maps to 503
// rather than 401 so clients do not discard valid tokens.
func Middleware(client *Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.WriteError(w, r, apperrors.Unauthorized("missing authorization header"), nil)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				httputil.WriteError(w, r, apperrors.Unauthorized("invalid authorization header format"), nil)
				return
			}

			user, err := client.VerifyToken(r.Context(), parts[1])
			if err != nil {
				if errors.Is(err, httpclient.ErrCircuitOpen) {
					httputil.WriteJSON(w, http.StatusServiceUnavailable, httputil.Response{
						Error: &httputil.ErrorResponse{
							Code:    "SERVICE_UNAVAILABLE",
							Message: "authentication temporarily unavailable",
						},
					})
					return
				}
				httputil.WriteError(w, r, err, nil)
				return
			}

			ctx := ContextWithUser(r.Context(), user)
			ctx = logger.WithUserID(ctx, user.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated users whose role does not match. It
// must run after Middleware.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), nil)
				return
			}
			if user.Role != role {
				httputil.WriteError(w, r, apperrors.Forbidden("insufficient role"), nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
