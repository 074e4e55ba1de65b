package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	domrepo "PriceCast/internal/domain/repository"
	"PriceCast/internal/usecase"
	pkgch "PriceCast/pkg/clickhouse"
	"PriceCast/pkg/config"
	xhttp "PriceCast/pkg/http"
	applogger "PriceCast/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	pipeline    *usecase.Pipeline
	httpHandler xhttp.Handler
	httpServer  *xhttp.Server
	chClient    *pkgch.Client
	publisher   domrepo.Publisher
	sink        domrepo.RecordSink
	store       domrepo.ObjectStore
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	pipeline *usecase.Pipeline,
	httpHandler xhttp.Handler,
	chClient *pkgch.Client,
	publisher domrepo.Publisher,
	sink domrepo.RecordSink,
	store domrepo.ObjectStore,
) *App {
	return &App{
		cfg:         cfg,
		logger:      logger,
		pipeline:    pipeline,
		httpHandler: httpHandler,
		chClient:    chClient,
		publisher:   publisher,
		sink:        sink,
		store:       store,
	}
}

// Run starts the application and blocks until interrupted.
//
// On startup the persisted model artifact is restored if one exists;
// otherwise a full pipeline pass trains a fresh model before the HTTP
// server accepts traffic.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.sink.Init(ctx); err != nil {
		return fmt.Errorf("init record sink: %w", err)
	}

	if err := a.pipeline.Restore(ctx); err != nil {
		if !errors.Is(err, domrepo.ErrNotFound) {
			return fmt.Errorf("restore model: %w", err)
		}
		a.logger.Info("no model artifact found, running bootstrap pipeline",
			applogger.Int("count", a.cfg.Generator.Count),
			applogger.Int64("seed", a.cfg.Generator.Seed),
		)
		if _, err := a.pipeline.Run(ctx, a.cfg.Generator.Count, a.cfg.Generator.Seed); err != nil {
			return fmt.Errorf("bootstrap pipeline: %w", err)
		}
	}

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.sink != nil {
		if err := a.sink.Close(); err != nil {
			a.logger.Warn("record sink close error", applogger.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("object store close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
