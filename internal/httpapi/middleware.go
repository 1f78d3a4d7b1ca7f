package httpapi

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
)

// Identity is the verified caller the session supplies. Handlers trust it
// unconditionally.
type Identity struct {
	UserID  string
	IsAdmin bool
}

type contextKey string

const identityKey contextKey = "identity"

const (
	sessionUserID  = "userID"
	sessionIsAdmin = "isAdmin"
)

func identityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// RequireAuth resolves the session into an Identity and rejects anonymous
// requests.
func RequireAuth(sessions *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessions.GetString(r.Context(), sessionUserID)
			if userID == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}

			id := Identity{
				UserID:  userID,
				IsAdmin: sessions.GetBool(r.Context(), sessionIsAdmin),
			}
			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin guards the elevated endpoints; it must sit behind RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identityFromContext(r.Context())
		if !ok || !id.IsAdmin {
			respondError(w, http.StatusForbidden, "forbidden", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
