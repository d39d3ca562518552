package handler

import (
	"net/http"

	"carprice/internal/session"
)

// Logout always succeeds, also for a session that is already logged out.
// The redirect makes the browser re-render the whole page in the logged
// out state.
func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	st, err := h.sessions.Get(r)
	if err != nil {
		h.logger.Warn(r.Context(), "session decode failed", "error", err)
	}

	wasLoggedIn := st.Session.LoggedIn
	h.auth.Logout(r.Context(), &st.Session)
	if wasLoggedIn {
		st.AddFlash(session.FlashSuccess, "You have been logged out.")
	}

	h.redirect(w, r, st, "/")
}
