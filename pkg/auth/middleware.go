package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserIDFromContext returns the signed-in user's ID.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok && v != ""
}

// WithUserID stores the signed-in user's ID in the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// RequireAuth rejects requests without a valid session cookie and puts the
// user ID in the context.
func RequireAuth(sessionSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName())
			if err != nil {
				writeError(w, http.StatusUnauthorized, "sign_in_required")
				return
			}

			userID, err := VerifySessionToken(cookie.Value, sessionSecret, time.Now())
			if errors.Is(err, ErrExpiredToken) {
				writeError(w, http.StatusUnauthorized, "session_expired")
				return
			}
			if err != nil || userID == "" {
				writeError(w, http.StatusUnauthorized, "invalid_session")
				return
			}

			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DevAuth signs every request in as userID. Only used when AUTH_REQUIRED is false.
func DevAuth(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth puts the user ID in the context when the request carries a
// valid session cookie. Requests without one pass through signed out.
func OptionalAuth(sessionSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(SessionCookieName()); err == nil {
				if userID, err := VerifySessionToken(cookie.Value, sessionSecret, time.Now()); err == nil && userID != "" {
					r = r.WithContext(WithUserID(r.Context(), userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
