package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	linkedroles "github.com/blitzforge/linked-roles"
	"github.com/blitzforge/linked-roles/config"
	httpx "github.com/blitzforge/linked-roles/internal/http"
)

// shutdownTimeout bounds graceful drain on SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// BuildHTTPHandler assembles the router with middleware applied.
func BuildHTTPHandler(cfg *HTTPServerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := httpx.NewRouter(httpx.RouterServices{
		Auth:             cfg.Services.Auth,
		Sync:             cfg.Services.Sync,
		Memberships:      cfg.Services.Memberships,
		Identities:       cfg.Services.Discord,
		CookieSecret:     cfg.Config.HTTP.CookieSecret,
		CookieDomain:     cfg.Config.HTTP.CookieDomain,
		StateTTL:         cfg.Config.HTTP.StateTTL,
		ConfirmationPage: linkedroles.ConfirmationPage,
		Logger:           logger,
	})

	handler := httpx.Logging(logger)(router)
	handler = httpx.Recover(logger)(handler)
	return handler
}

// RunHTTPServer starts the HTTP server and blocks until it fails or the
// process receives SIGINT/SIGTERM, then drains gracefully.
func RunHTTPServer(ctx context.Context, cfg *HTTPServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              cfg.Config.HTTP.Addr,
		Handler:           BuildHTTPHandler(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(ctx, "starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
