package middlewares

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/oauth"
)

type contextKey string

const userKey contextKey = "currentUser"

// Authenticated validates the bearer token and stashes the owning
// username in the request context for the admin controllers.
func Authenticated(tokenSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chi.Chain(oauth.Authorize(tokenSecret, nil), requireUser).Handler(next)
	}
}

func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := r.Context().Value(oauth.ClaimsContext).(map[string]string)

		username := claims["username"]
		if username == "" {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), username)))
	})
}

// WithUser returns a context carrying the authenticated username.
func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey, username)
}

// CurrentUser returns the authenticated username, or "" outside the
// Authenticated middleware.
func CurrentUser(r *http.Request) string {
	username, _ := r.Context().Value(userKey).(string)
	return username
}
