package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/infra/config"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/infra/scoring"
)

const shutdownTimeout = 10 * time.Second

// App encapsulates the HTTP server lifecycle together with the background
// scoring-table watcher.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	scoring *scoring.Watcher
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, watcher *scoring.Watcher) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, scoring: watcher}
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server
// fails. A failing watcher stops hot reload but not the server.
func (a *App) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutdown signal received")
		return a.server.Shutdown(shutdownCtx)
	})

	if a.scoring != nil {
		go func() {
			if err := a.scoring.Run(ctx); err != nil {
				a.logger.Error("scoring watcher stopped", "error", err)
			}
		}()
	}

	return group.Wait()
}
