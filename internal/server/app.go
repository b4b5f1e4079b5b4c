// Package server initializes and runs the application server.
// It opens the database, applies migrations, wires the services into the
// HTTP API, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/auth"
	"github.com/dmitrijs2005/contactbook/internal/server/config"
	"github.com/dmitrijs2005/contactbook/internal/server/httpapi"
	"github.com/dmitrijs2005/contactbook/internal/server/metrics"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/contactbook/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	limiter *httpapi.RateLimiter
	handler http.Handler
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(db, m, auth.NewBcryptHasher(), c)
	cs := services.NewContactService(db, m)

	// 10 credential attempts per client IP, refilling one per second
	limiter := httpapi.NewRateLimiter(rate.Limit(1), 10)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	handler := httpapi.NewRouter(httpapi.RouterConfig{
		Users:     us,
		Contacts:  cs,
		Logger:    logger,
		Limiter:   limiter,
		Collector: collector,
		Registry:  registry,
	})

	return &App{config: c, logger: logger, db: db, limiter: limiter, handler: handler}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, err.Error())
		}
	case <-ctx.Done():
		app.logger.Info(ctx, "Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}

	app.limiter.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
