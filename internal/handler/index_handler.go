package handler

import (
	"net/http"

	"carprice/internal/entity"
)

type IndexHandler struct {
	page *Page
}

func NewIndexHandler(page *Page) *IndexHandler {
	return &IndexHandler{page: page}
}

// Index is the render loop entry point. For a logged in session the model
// is loaded first so the form is only offered when it can be used.
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	st, err := h.page.sessions.Get(r)
	if err != nil {
		h.page.logger.Warn(r.Context(), "session decode failed", "error", err)
	}

	data := pageData{Form: entity.DefaultCarForm()}
	status := http.StatusOK

	if st.Session.LoggedIn {
		if err := h.page.estimator.Ready(r.Context()); err != nil {
			h.page.logger.Error(r.Context(), "model unavailable", "error", err)
			data.ModelError = "The price model could not be loaded. Please contact the administrator."
			status = http.StatusServiceUnavailable
		}
	}

	h.page.render(w, r, st, data, status)
}
