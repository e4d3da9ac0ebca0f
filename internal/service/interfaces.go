// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the geofencing core: version checks against
// the remote server, incremental diff retrieval, replica mutation and the
// buffered spatial correlation of changed features with the opposite layer.
//
// One polling cycle is driven by [SyncOrchestrator]. It either applies every
// change of the cycle and advances the watermarks, or leaves the replica and
// the watermarks exactly as they were.
package service

import (
	"context"

	"github.com/Wobas/ngw-geofencer/internal/config"
	"github.com/Wobas/ngw-geofencer/internal/store"
	"github.com/Wobas/ngw-geofencer/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// VersionOracle reports the current remote state of a layer.
type VersionOracle interface {
	// Latest returns the latest version, epoch and field maps of layer.
	// DisplayedFields is the remote field list restricted to layer.Fields.
	// Fails with [ErrVersioningDisabled] when versioning is off and with an
	// adapter.ErrRemote error on transport failures.
	Latest(ctx context.Context, layer config.LayerConfig) (models.LayerState, error)
}

// ChangeFetcher retrieves the changes of a layer between two versions.
type ChangeFetcher interface {
	// Diff returns the changes of binding's layer between from and to,
	// stable-sorted by timestamp. Records whose version has no resolvable
	// timestamp sort first. Feed entries lacking a version id or a feature
	// id are dropped. Fails with [ErrPartialVersionFetch] when any
	// per-version metadata request fails.
	Diff(ctx context.Context, binding models.LayerBinding, from, to, epoch int64) ([]models.ChangeRecord, error)
}

// SpatialCorrelator finds the features of the opposite layer a change
// relates to.
type SpatialCorrelator interface {
	// Correlate returns one event per feature of the opposite layer that
	// intersects the changed feature, both buffered by their layer buffer.
	// replica must reflect the state the change is evaluated against.
	Correlate(ctx context.Context, replica store.ReplicaReader, bindings models.Bindings, change models.ChangeRecord) ([]models.GeofenceEvent, error)
}

// SyncOrchestrator drives the polling cycles.
type SyncOrchestrator interface {
	// RunCycle runs one polling cycle. Fails with [ErrCycleInProgress] when
	// another cycle is running.
	RunCycle(ctx context.Context) (models.CycleReport, error)

	// RequestResync marks the layer playing role for a full resync on the
	// next cycle.
	RequestResync(role models.LayerRole) error

	// Status returns a snapshot of the orchestrator state.
	Status() models.SyncStatus
}
