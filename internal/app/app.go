// Package app assembles the service: configuration, logging,
// telemetry, the middleware chain, routes and the HTTP server
// lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"sheetviz/internal/config"
	apierrors "sheetviz/internal/errors"
	"sheetviz/internal/infrastructure"
	"sheetviz/internal/middleware"
	"sheetviz/internal/services"
	transporthttp "sheetviz/internal/transport/http"
	"sheetviz/pkg/contracts"
)

// Application holds the assembled service.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Router    chi.Router
	Server    *http.Server
	Providers *infrastructure.OTelProviders
}

// NewApplication builds the application from configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	providers, err := infrastructure.InitializeOTel(nil, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize telemetry: %w", err)
	}

	app := &Application{
		Config:    cfg,
		Logger:    logger,
		Providers: providers,
	}

	router, err := app.setupRouter()
	if err != nil {
		return nil, fmt.Errorf("setup router: %w", err)
	}
	app.Router = router
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

func (a *Application) setupRouter() (chi.Router, error) {
	telemetry, err := middleware.NewTelemetry(a.Providers)
	if err != nil {
		return nil, err
	}

	errorHandler := apierrors.NewErrorHandler(a.Logger)
	sheetService := services.NewSheetService(a.Config.Data, a.Logger)
	sheetHandler := transporthttp.NewSheetHandler(sheetService, errorHandler, a.Config.Data)
	healthHandler := transporthttp.NewHealthHandler()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(telemetry.Handler)
	r.Use(middleware.StructuredLogger(a.Logger))
	r.Use(middleware.Recoverer(a.Logger))
	r.Use(middleware.SecurityHeaders)
	if a.Config.Security.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		)
		r.Use(limiter.Handler)
	}
	r.Use(middleware.Timeout(a.Config.Server.WriteTimeout))

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Mount("/", healthHandler.Routes())
		r.Mount("/sheets", sheetHandler.Routes())
	})

	if a.Providers.PrometheusHTTP != nil {
		r.Handle("/metrics", a.Providers.PrometheusHTTP)
	}

	return r, nil
}

// Run starts the server and blocks until SIGINT/SIGTERM, then shuts
// down gracefully within the configured timeout.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server starting",
			slog.String("addr", a.Server.Addr),
			slog.String("version", contracts.Version))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		a.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := a.Providers.Shutdown(ctx); err != nil {
		a.Logger.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
	}

	a.Logger.Info("server stopped")
	return nil
}
