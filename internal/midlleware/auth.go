package middleware

import (
	"net/http"

	"carprice/internal/logging"
	"carprice/internal/session"
)

// RequireAuth lets the request through only for a logged in session.
// Others are sent back to the auth panel with a warning.
func RequireAuth(sessions *session.Manager, logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st, err := sessions.Get(r)
			if err != nil {
				logger.Warn(r.Context(), "session decode failed", "error", err)
			}

			if !st.Session.LoggedIn {
				st.AddFlash(session.FlashWarning, "Please log in first.")
				if err := sessions.Save(w, r, st); err != nil {
					logger.Error(r.Context(), "save session", "error", err)
				}
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
