package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"

	"github.com/jmanzanog/t212-tickers/internal/application"
	"github.com/jmanzanog/t212-tickers/internal/infrastructure/config"
	httpHandler "github.com/jmanzanog/t212-tickers/internal/interfaces/http"
)

type serveCmd struct{ app *app }

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the tables over a read-only HTTP API" }
func (*serveCmd) Usage() string {
	return `tickers serve

  Loads the tables once and serves them on SERVER_HOST:SERVER_PORT. With
  REFRESH_INTERVAL set the tables are reloaded periodically.
`
}
func (*serveCmd) SetFlags(_ *flag.FlagSet) {}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx); err != nil {
		slog.Error("Application error", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// buildServer creates and configures the HTTP server with all routes and handlers
func buildServer(cfg *config.Config, source httpHandler.ClientSource) *http.Server {
	router := gin.Default()
	handler := httpHandler.NewHandler(source)
	httpHandler.SetupRoutes(router, handler)

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// App wraps the server components for easier testing
type App struct {
	Server        *http.Server
	Refresher     *application.Refresher
	CancelContext context.CancelFunc
	refreshing    bool
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if a.refreshing {
		a.Refresher.Stop()
	}
	a.CancelContext()

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	return nil
}

func (c *serveCmd) run(ctx context.Context) error {
	client, err := c.app.client(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tables: %w", err)
	}
	cfg := c.app.cfg
	slog.Info("Tables loaded", "mode", client.Mode().String(), "loaded_at", client.LoadedAt())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	refresher := application.NewRefresher(client, c.app.client, cfg.RefreshInterval)
	app := &App{
		Server:        buildServer(cfg, refresher),
		Refresher:     refresher,
		CancelContext: cancel,
	}

	if cfg.RefreshInterval > 0 {
		app.refreshing = true
		go refresher.Start(ctx)
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "host", cfg.ServerHost, "port", cfg.ServerPort)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
		slog.Info("Received shutdown signal")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	slog.Info("Server exited gracefully")
	return nil
}
