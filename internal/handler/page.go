package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"carprice/internal/entity"
	"carprice/internal/logging"
	"carprice/internal/service"
	"carprice/internal/session"
	"carprice/internal/templates"
)

type formOptions struct {
	FuelTypes     []string
	Ownerships    []string
	Transmissions []string

	MinYear, MaxYear                             int
	MinKilometers, MaxKilometers, StepKilometers int
	MinMileage, MaxMileage, StepMileage          float64
	MinEngine, MaxEngine, StepEngine             int
}

func newFormOptions() formOptions {
	return formOptions{
		FuelTypes:      entity.FuelTypes(),
		Ownerships:     entity.Ownerships(),
		Transmissions:  entity.Transmissions(),
		MinYear:        entity.MinYear,
		MaxYear:        entity.MaxYear,
		MinKilometers:  entity.MinKilometers,
		MaxKilometers:  entity.MaxKilometers,
		StepKilometers: entity.StepKilometers,
		MinMileage:     entity.MinMileage,
		MaxMileage:     entity.MaxMileage,
		StepMileage:    entity.StepMileage,
		MinEngine:      entity.MinEngine,
		MaxEngine:      entity.MaxEngine,
		StepEngine:     entity.StepEngine,
	}
}

type historyRow struct {
	When  string
	Car   entity.CarForm
	Price string
}

type pageData struct {
	Title   string
	Mode    string
	Session entity.Session
	Flashes []session.Flash
	Options formOptions

	Form       entity.CarForm
	Result     string
	Error      string
	ModelError string
	History    []historyRow
}

// Page renders the single interactive surface. What it shows depends only
// on the session: logged out gets the auth panel, logged in also gets the
// prediction panel.
type Page struct {
	tmpl         *template.Template
	sessions     *session.Manager
	estimator    *service.Estimator
	historyLimit int
	logger       logging.Logger
	options      formOptions
}

func NewPage(sessions *session.Manager, estimator *service.Estimator, historyLimit int, logger logging.Logger) *Page {
	return &Page{
		tmpl:         templates.Must(),
		sessions:     sessions,
		estimator:    estimator,
		historyLimit: historyLimit,
		logger:       logger,
		options:      newFormOptions(),
	}
}

func (p *Page) render(w http.ResponseWriter, r *http.Request, st *session.State, data pageData, status int) {
	ctx := r.Context()

	data.Title = "Car Price Predictor"
	data.Session = st.Session
	data.Options = p.options
	data.Flashes = st.Flashes()
	if data.Mode == "" {
		data.Mode = modeFromQuery(r)
	}

	if st.Session.LoggedIn && data.ModelError == "" {
		list, err := p.estimator.History(ctx, st.Session.CurrentUser, p.historyLimit)
		if err != nil {
			p.logger.Error(ctx, "load history", "user", st.Session.CurrentUser, "error", err)
		}
		for _, h := range list {
			data.History = append(data.History, historyRow{
				When:  h.CreatedAt.Format("2006-01-02 15:04"),
				Car:   h.Car,
				Price: service.FormatPrice(h.Price),
			})
		}
	}

	// flashes were drained above
	if err := p.sessions.Save(w, r, st); err != nil {
		p.logger.Error(ctx, "save session", "error", err)
	}

	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, templates.Page, data); err != nil {
		p.logger.Error(ctx, "render page", "error", err)
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func modeFromQuery(r *http.Request) string {
	if r.URL.Query().Get("mode") == "create" {
		return "create"
	}
	return "login"
}
