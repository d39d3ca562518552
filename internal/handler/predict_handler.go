package handler

import (
	"errors"
	"net/http"

	"carprice/internal/common"
	"carprice/internal/entity"
)

type PredictHandler struct {
	page *Page
}

func NewPredictHandler(page *Page) *PredictHandler {
	return &PredictHandler{page: page}
}

// Predict runs behind RequireAuth.
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, err := h.page.sessions.Get(r)
	if err != nil {
		h.page.logger.Warn(ctx, "session decode failed", "error", err)
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "could not read form", http.StatusBadRequest)
		return
	}

	form, err := entity.ParseCarForm(r.PostForm)
	if err != nil {
		h.page.render(w, r, st, pageData{Form: form, Error: err.Error()}, http.StatusUnprocessableEntity)
		return
	}

	est, err := h.page.estimator.Estimate(ctx, st.Session.CurrentUser, form)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "Prediction failed."
		if errors.Is(err, common.ErrModel) {
			status = http.StatusBadGateway
			msg = "Prediction failed: the price model is unavailable."
		}
		h.page.logger.Error(ctx, "estimate failed", "user", st.Session.CurrentUser, "error", err)
		h.page.render(w, r, st, pageData{Form: form, Error: msg}, status)
		return
	}

	h.page.render(w, r, st, pageData{Form: form, Result: est.Formatted}, http.StatusOK)
}
