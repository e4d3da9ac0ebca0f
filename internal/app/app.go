// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/Wobas/ngw-geofencer/internal/adapter"
	"github.com/Wobas/ngw-geofencer/internal/config"
	"github.com/Wobas/ngw-geofencer/internal/geometry"
	"github.com/Wobas/ngw-geofencer/internal/handler"
	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/internal/notify"
	"github.com/Wobas/ngw-geofencer/internal/server"
	"github.com/Wobas/ngw-geofencer/internal/service"
	"github.com/Wobas/ngw-geofencer/internal/store"
	"github.com/Wobas/ngw-geofencer/internal/workers"
	"github.com/Wobas/ngw-geofencer/models"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	storages *store.Storages
	workers  *workers.Workers

	// server is nil when the status endpoint is disabled.
	server server.Server

	logger *logger.Logger
}

// NewApp builds every component of the daemon from cfg. Nothing runs until
// Run is called.
func NewApp(ctx context.Context, cfg *config.Config, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	layerAdapter, err := adapter.NewHTTPLayerAdapter(cfg.Remote, log)
	if err != nil {
		return nil, fmt.Errorf("create layer adapter: %w", err)
	}

	notifier, err := notify.New(cfg.Notifier)
	if err != nil {
		return nil, fmt.Errorf("create notifier: %w", err)
	}

	decoder := geometry.NewDecoder()
	storages, err := store.NewStorages(ctx, cfg.Storage, decoder, log)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	orchestrator := service.NewSyncOrchestrator(cfg, layerAdapter, storages.Replica, storages.Watermarks, notifier, decoder, log)
	syncWorker := workers.NewSyncWorker(orchestrator, cfg.SyncInterval, log)

	a := &App{
		storages: storages,
		workers:  workers.NewWorkers(syncWorker),
		logger:   log,
	}

	handlers, err := handler.NewHandlers(orchestrator, syncWorker, buildInfo, cfg, log)
	switch {
	case errors.Is(err, handler.ErrNoHandlersAreCreated):
		log.Info().Msg("status endpoint disabled")
	case err != nil:
		return nil, errors.Join(fmt.Errorf("create handlers: %w", err), storages.Close())
	default:
		if a.server, err = server.NewServer(handlers, cfg, log); err != nil {
			return nil, errors.Join(fmt.Errorf("create server: %w", err), storages.Close())
		}
	}

	log.Info().
		Str("version", buildInfo.BuildVersion()).
		Int64("top_layer", cfg.Top.ID).
		Int64("bottom_layer", cfg.Bottom.ID).
		Dur("interval", cfg.SyncInterval).
		Msg("geofencer initialised")

	return a, nil
}

// Run implements [Runner]. It starts the workers and the status server and
// blocks until ctx is done or a termination signal arrives, then shuts
// everything down in reverse order.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	a.workers.Start(ctx)
	if a.server != nil {
		go a.server.RunServer()
	}

	<-ctx.Done()
	a.logger.Info().Msg("shutting down")

	if a.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.server.Shutdown(shutdownCtx)
	}
	a.workers.Stop()

	if err := a.storages.Close(); err != nil {
		return fmt.Errorf("close storages: %w", err)
	}
	return nil
}
