// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/internal/service"
	"github.com/Wobas/ngw-geofencer/models"
)

// Scheduler is the part of the tick scheduler the API drives.
type Scheduler interface {
	// Trigger queues an extra cycle and reports whether it was queued.
	Trigger() bool

	// Skipped returns the number of ticks dropped while a cycle ran.
	Skipped() int64
}

// Handler serves the JSON API. It reads the synchronization status from
// the orchestrator and forwards operator actions to the orchestrator and
// the scheduler; it never runs a cycle itself.
type Handler struct {
	orchestrator service.SyncOrchestrator
	scheduler    Scheduler
	buildInfo    models.AppBuildInfo

	logger *logger.Logger
}

// NewHandler constructs a [Handler].
//
// Parameters:
//
//	orchestrator - source of the sync status and target of resync requests
//	scheduler    - queues manual cycles and counts skipped ticks
//	buildInfo    - version information served by /api/version
//	logger       - base logger; every request gets a child carrying its id
//
// Returns:
//
//	*Handler - ready to be mounted with [Handler.Init]
func NewHandler(orchestrator service.SyncOrchestrator, scheduler Scheduler, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		orchestrator: orchestrator,
		scheduler:    scheduler,
		buildInfo:    buildInfo,
		logger:       logger,
	}
}
