package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/volunteerhub/webclient/config"
	httpx "github.com/volunteerhub/webclient/internal/http"
)

// HTTPServerConfig contains configuration for the UI server.
type HTTPServerConfig struct {
	Config  *config.AppConfig
	Session *SessionDeps
	Logger  *slog.Logger
}

// StartHTTPServer creates and starts the UI server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) (*http.Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer, err := httpx.NewTemplateRenderer(logger)
	if err != nil {
		return nil, err
	}

	router := httpx.NewRouter(httpx.RouterServices{
		Session:    cfg.Session.Controller,
		Activities: cfg.Session.Client,
		Accounts:   cfg.Session.Client,
		Users:      cfg.Session.Client,
		Renderer:   renderer,
		Logger:     logger,
	})

	// Order: Recover -> Logging -> Router
	h := httpx.Logging(logger)(router)
	h = httpx.Recover(logger)(h)

	server := &http.Server{
		Addr:         cfg.Config.HTTP.Addr,
		Handler:      h,
		ReadTimeout:  time.Duration(cfg.Config.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Config.HTTP.WriteTimeoutSec) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting UI server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("UI server failed", "error", err)
		}
	}()

	return server, nil
}

// ShutdownHTTPServer gracefully shuts down the UI server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger != nil {
		logger.Info("shutting down UI server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("UI server stopped")
	}
	return nil
}
