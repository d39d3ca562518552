package handler

import (
	"errors"
	"net/http"
	"strings"

	"carprice/internal/common"
	"carprice/internal/logging"
	"carprice/internal/service"
	"carprice/internal/session"
)

type RegistrationHandler struct {
	login  *LoginHandler
	auth   *service.AuthService
	logger logging.Logger
}

func NewRegistrationHandler(login *LoginHandler) *RegistrationHandler {
	return &RegistrationHandler{
		login:  login,
		auth:   login.auth,
		logger: login.logger,
	}
}

// Register creates an account. The session state does not change; the user
// still has to log in.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "could not read form", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	st, err := h.login.sessions.Get(r)
	if err != nil {
		h.logger.Warn(ctx, "session decode failed", "error", err)
	}

	target := "/?mode=create"
	err = h.auth.CreateAccount(ctx, username, password)
	switch {
	case err == nil:
		st.AddFlash(session.FlashSuccess, "Account created! You can now log in.")
		target = "/?mode=login"
	case errors.Is(err, common.ErrValidation):
		if username == "" || password == "" {
			st.AddFlash(session.FlashWarning, "Please fill both fields.")
		} else {
			st.AddFlash(session.FlashWarning, "Password is too long.")
		}
	case errors.Is(err, common.ErrConflict):
		st.AddFlash(session.FlashError, "Username already exists.")
	default:
		h.logger.Error(ctx, "create account", "user", username, "error", err)
		st.AddFlash(session.FlashError, "Could not create the account. Please try again later.")
	}

	h.login.redirect(w, r, st, target)
}
