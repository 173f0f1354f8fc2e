package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

const isAdminKey contextKey = "is_admin"

// ErrUnknownUser is returned by a RoleLookup when the session names a user
// that no longer exists.
var ErrUnknownUser = errors.New("auth: unknown user")

// Role is what LoadRole needs to know about the signed-in user.
type Role struct {
	Admin     bool
	Suspended bool
}

// RoleLookup loads the role of a user.
type RoleLookup func(ctx context.Context, userID string) (Role, error)

// WithIsAdmin stores the admin flag in the context.
func WithIsAdmin(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, isAdminKey, isAdmin)
}

// IsAdminFromContext reports whether the signed-in user is an admin.
// Returns false when not set.
func IsAdminFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(isAdminKey).(bool)
	return v
}

// LoadRole runs after RequireAuth or DevAuth. It turns away suspended users
// and records the admin flag. Requests without a user pass through unchanged.
func LoadRole(lookup RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			role, err := lookup(r.Context(), userID)
			if errors.Is(err, ErrUnknownUser) {
				writeError(w, http.StatusUnauthorized, "invalid_session")
				return
			}
			if err != nil {
				slog.Error("role lookup failed", "error", err, "user_id", userID)
				writeError(w, http.StatusInternalServerError, "internal_error")
				return
			}
			if role.Suspended {
				writeError(w, http.StatusForbidden, "account_suspended")
				return
			}

			ctx := WithIsAdmin(r.Context(), role.Admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
