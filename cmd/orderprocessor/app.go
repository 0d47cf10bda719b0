package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nkiryanov/orderprocessor/internal/db"
	"github.com/nkiryanov/orderprocessor/internal/handlers"
	"github.com/nkiryanov/orderprocessor/internal/logger"
	"github.com/nkiryanov/orderprocessor/internal/metrics"
	"github.com/nkiryanov/orderprocessor/internal/repository/postgres"
	"github.com/nkiryanov/orderprocessor/internal/scheduler"
	"github.com/nkiryanov/orderprocessor/internal/service/classifier"
	"github.com/nkiryanov/orderprocessor/internal/service/export"
	"github.com/nkiryanov/orderprocessor/internal/service/orderprocessor"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	ListenAddr string
	Handler    http.Handler

	pool      *pgxpool.Pool
	scheduler *scheduler.Scheduler // nil if not configured
	logger    logger.Logger
}

func NewApp(ctx context.Context, c *Config) (*App, error) {
	// Initialize logger
	l, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db: %w", err)
	}
	orderRepo := &postgres.OrderRepo{DB: pool}

	// Order processing collaborators
	cl := classifier.NewClient(c.ClassifierAddr, l)
	if c.ClassifierBreaker {
		cl = cl.WithBreaker(classifier.DefaultBreakerSettings)
	}

	var sink orderprocessor.ExportSink
	switch c.ExportFormat {
	case ExportFormatXLSX:
		sink = export.NewXLSXSink(c.ExportDir, l)
	default:
		sink = export.NewCSVSink(c.ExportDir, l)
	}

	m := metrics.NewProcessorMetrics()
	service := orderprocessor.New(
		orderRepo,
		orderprocessor.NewFactory(sink, cl, l),
		m,
		l,
	)

	app := &App{
		ListenAddr: c.ListenAddr,
		Handler:    handlers.NewRouter(orderRepo, service, m.Handler(), l),
		pool:       pool,
		logger:     l,
	}

	if c.SchedulerEnabled() {
		app.scheduler, err = scheduler.New(c.Schedule, c.ScheduleUsers, service, l)
		if err != nil {
			pool.Close()
			return nil, err
		}
	}

	return app, nil
}

// Run starts http server (and scheduler if any), stops gracefully on context cancellation
func (a *App) Run(ctx context.Context) error {
	defer a.pool.Close()

	httpServer := &http.Server{
		Addr:    a.ListenAddr,
		Handler: a.Handler,
	}

	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	var schedulerStopped <-chan struct{}
	if a.scheduler != nil {
		schedulerStopped = a.scheduler.Run(srvCtx)
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); errors.Is(err, context.DeadlineExceeded) {
			a.logger.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		a.logger.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	a.logger.Info("Starting server", "address", a.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed
	if schedulerStopped != nil {
		<-schedulerStopped
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
