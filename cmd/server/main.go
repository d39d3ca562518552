package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carprice/internal/config"
	"carprice/internal/database"
	"carprice/internal/handler"
	"carprice/internal/logging"
	middleware "carprice/internal/midlleware"
	"carprice/internal/model"
	"carprice/internal/repository"
	"carprice/internal/service"
	"carprice/internal/session"
	"github.com/gorilla/sessions"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log.Format, cfg.Log.Level)
	if err := run(cfg, logger); err != nil {
		logger.Error(context.Background(), "server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger logging.Logger) error {
	ctx := context.Background()

	var db *sql.DB
	if cfg.UsesPostgres() {
		var err error
		db, err = database.Open(ctx, database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.Name,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			return err
		}
		logger.Info(ctx, "database ready", "host", cfg.Database.Host, "name", cfg.Database.Name)
	}

	store := credentialStore(cfg, db)
	// a corrupt store is fatal here and never overwritten
	creds, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}
	logger.Info(ctx, "credentials loaded", "backend", cfg.Credentials.Backend, "accounts", len(creds))

	history := predictionRepository(cfg, db)
	auth := service.NewAuthService(store, cfg.Credentials.HashPasswords, logger)
	estimator := service.NewEstimator(modelLoader(cfg), history, logger)

	sessStore, closeStore, err := sessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	limiter := middleware.NewRateLimiter(cfg.Credentials.LoginRateLimit, cfg.Credentials.LoginRateWindow)
	defer limiter.Stop()

	server := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: handler.NewRouter(handler.RouterDeps{
			Auth:         auth,
			Estimator:    estimator,
			Sessions:     session.NewManager(sessStore, cfg.Session.Name),
			Limiter:      limiter,
			CORSOrigins:  cfg.HTTP.CORSAllowedOrigins,
			HistoryLimit: cfg.History.Limit,
			Logger:       logger,
		}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		logger.Info(ctx, "shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info(ctx, "server exited")
	return nil
}

func credentialStore(cfg *config.Config, db *sql.DB) repository.CredentialStore {
	if cfg.Credentials.Backend == config.BackendPostgres {
		return repository.NewPostgresCredentialStore(db)
	}
	return repository.NewFileCredentialStore(cfg.Credentials.File)
}

func predictionRepository(cfg *config.Config, db *sql.DB) repository.PredictionRepository {
	if cfg.History.Backend == config.BackendPostgres {
		return repository.NewPostgresPredictionRepository(db)
	}
	return repository.NewMemoryPredictionRepository()
}

func modelLoader(cfg *config.Config) *model.Loader {
	if cfg.Model.URL != "" {
		remote := model.NewRemote(cfg.Model.URL, cfg.Model.Timeout)
		return model.Static(remote)
	}
	return model.FileLoader(cfg.Model.Path)
}

func sessionStore(ctx context.Context, cfg *config.Config) (sessions.Store, func(), error) {
	authKey, encKey := session.Keys(cfg.Session.AuthKey, cfg.Session.EncKey)
	opts := session.Options(cfg.Session.MaxAge, cfg.Session.Secure)

	if cfg.Session.Backend != config.BackendRedis {
		return session.NewCookieStore(authKey, encKey, opts), func() {}, nil
	}

	client := session.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
	}
	closeFn := func() { _ = client.Close() }
	return session.NewRedisStore(client, cfg.Redis.TTL, opts, authKey, encKey), closeFn, nil
}
