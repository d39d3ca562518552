package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"carprice/internal/common"
	"carprice/internal/entity"
	"carprice/internal/logging"
	"carprice/internal/service"
)

const maxEstimateBody = 1 << 16

type estimateResponse struct {
	Car entity.CarForm `json:"car"`
	service.Estimate
}

type errorResponse struct {
	Error string `json:"error"`
}

// APIHandler exposes the estimator to scripts. Every call carries its own
// HTTP Basic credentials; no browser session is read or written.
type APIHandler struct {
	auth      *service.AuthService
	estimator *service.Estimator
	logger    logging.Logger
}

func NewAPIHandler(auth *service.AuthService, estimator *service.Estimator, logger logging.Logger) *APIHandler {
	return &APIHandler{
		auth:      auth,
		estimator: estimator,
		logger:    logger,
	}
}

func (h *APIHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	username, password, ok := r.BasicAuth()
	if !ok {
		h.unauthorized(w)
		return
	}
	var sess entity.Session
	if err := h.auth.Login(ctx, &sess, username, password); err != nil {
		if !errors.Is(err, common.ErrAuth) {
			h.logger.Error(ctx, "api login", "user", username, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "credentials are unavailable"})
			return
		}
		h.unauthorized(w)
		return
	}

	form := entity.DefaultCarForm()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEstimateBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&form); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	form, err := form.Normalize()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	est, err := h.estimator.Estimate(ctx, sess.CurrentUser, form)
	if err != nil {
		h.logger.Error(ctx, "api estimate", "user", sess.CurrentUser, "error", err)
		if errors.Is(err, common.ErrModel) {
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "the price model is unavailable"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "prediction failed"})
		return
	}

	writeJSON(w, http.StatusOK, estimateResponse{Car: form, Estimate: est})
}

func (h *APIHandler) unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="carprice", charset="UTF-8"`)
	writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid username or password"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
