// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/Wobas/ngw-geofencer/internal/config"
	"github.com/Wobas/ngw-geofencer/internal/handler/http"
	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/internal/service"
	"github.com/Wobas/ngw-geofencer/models"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transport handlers enabled in cfg. It returns
// [ErrNoHandlersAreCreated] when the status endpoint is disabled.
func NewHandlers(
	orchestrator service.SyncOrchestrator,
	scheduler http.Scheduler,
	buildInfo models.AppBuildInfo,
	cfg *config.Config,
	logger *logger.Logger,
) (*Handlers, error) {
	if cfg.StatusAddress == "" {
		return nil, ErrNoHandlersAreCreated
	}

	logger.Info().Msg("creating new handlers...")
	return &Handlers{
		HTTP: http.NewHandler(orchestrator, scheduler, buildInfo, logger),
	}, nil
}
