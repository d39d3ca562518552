package handler

import (
	"net/http"

	"carprice/internal/logging"
	middleware "carprice/internal/midlleware"
	"carprice/internal/service"
	"carprice/internal/session"
	"github.com/rs/cors"
)

type RouterDeps struct {
	Auth         *service.AuthService
	Estimator    *service.Estimator
	Sessions     *session.Manager
	Limiter      *middleware.RateLimiter
	CORSOrigins  []string
	HistoryLimit int
	Logger       logging.Logger
}

func NewRouter(d RouterDeps) http.Handler {
	page := NewPage(d.Sessions, d.Estimator, d.HistoryLimit, d.Logger)
	index := NewIndexHandler(page)
	predict := NewPredictHandler(page)
	login := NewLoginHandler(d.Auth, d.Sessions, d.Logger)
	register := NewRegistrationHandler(login)
	api := NewAPIHandler(d.Auth, d.Estimator, d.Logger)

	limit := middleware.RateLimit(d.Limiter)
	requireAuth := middleware.RequireAuth(d.Sessions, d.Logger)
	apiCORS := cors.New(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", index.Index)
	mux.Handle("POST /login", limit(http.HandlerFunc(login.Login)))
	mux.Handle("POST /register", limit(http.HandlerFunc(register.Register)))
	mux.HandleFunc("POST /logout", login.Logout)
	mux.Handle("POST /predict", requireAuth(http.HandlerFunc(predict.Predict)))
	mux.Handle("/api/estimate", apiCORS.Handler(limit(http.HandlerFunc(api.Estimate))))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return middleware.RequestLogger(d.Logger)(mux)
}
