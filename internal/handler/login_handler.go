package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"carprice/internal/common"
	"carprice/internal/logging"
	"carprice/internal/service"
	"carprice/internal/session"
)

type LoginHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	logger   logging.Logger
}

func NewLoginHandler(auth *service.AuthService, sessions *session.Manager, logger logging.Logger) *LoginHandler {
	return &LoginHandler{
		auth:     auth,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "could not read form", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	st, err := h.sessions.Get(r)
	if err != nil {
		h.logger.Warn(ctx, "session decode failed", "error", err)
	}

	target := "/"
	err = h.auth.Login(ctx, &st.Session, username, password)
	switch {
	case err == nil:
		st.AddFlash(session.FlashSuccess, fmt.Sprintf("Welcome, %s!", username))
	case errors.Is(err, common.ErrAuth):
		st.AddFlash(session.FlashError, "Invalid username or password.")
		target = "/?mode=login"
	default:
		h.logger.Error(ctx, "login", "user", username, "error", err)
		st.AddFlash(session.FlashError, "Login is unavailable right now. Please try again later.")
		target = "/?mode=login"
	}

	h.redirect(w, r, st, target)
}

func (h *LoginHandler) redirect(w http.ResponseWriter, r *http.Request, st *session.State, target string) {
	if err := h.sessions.Save(w, r, st); err != nil {
		h.logger.Error(r.Context(), "save session", "error", err)
		http.Error(w, "could not save session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
