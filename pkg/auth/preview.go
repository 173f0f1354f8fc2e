package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	previewCookieName            = "neighborly_preview"
	previewMaxAge                = 30 * 24 * 60 * 60
	sessionIDKey      contextKey = "preview_session_id"
)

// PreviewCookieName is the name of the preview session cookie.
func PreviewCookieName() string {
	return previewCookieName
}

// WithSessionID stores the preview session ID in the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDFromContext returns the preview session ID.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(sessionIDKey).(string)
	return v, ok && v != ""
}

// PreviewSession gives visitors who have not signed up a random session ID
// so they can try the cost form. The ID lives in a cookie; anything that is
// not a UUID is replaced.
func PreviewSession(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if c, err := r.Cookie(previewCookieName); err == nil {
				if id, err := uuid.Parse(c.Value); err == nil {
					sessionID = id.String()
				}
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     previewCookieName,
					Value:    sessionID,
					Path:     "/api/preview",
					MaxAge:   previewMaxAge,
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sessionID)))
		})
	}
}
