// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store holds the local persistent state of the geofencer: the
// per-layer feature replicas ([ReplicaStore]) and the synchronization
// watermarks ([WatermarkStore]).
//
// Replicas are kept in a SQL database (sqlite by default, postgres
// optionally) or in process memory. Watermarks are kept in a JSON file, a
// bbolt database or in memory.
package store

import (
	"context"

	"github.com/Wobas/ngw-geofencer/internal/geometry"
	"github.com/Wobas/ngw-geofencer/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ReplicaReader gives read access to the replicated features of a layer.
type ReplicaReader interface {
	// Get returns the feature fid of layerID or [ErrUnknownFeature].
	Get(ctx context.Context, layerID, fid int64) (models.ReplicaFeature, error)

	// FindInEnvelope returns the features of layerID whose bounding box
	// intersects env, ordered by fid.
	FindInEnvelope(ctx context.Context, layerID int64, env geometry.Envelope) ([]models.ReplicaFeature, error)
}

// ReplicaWriter mutates the replicated features of a layer.
type ReplicaWriter interface {
	// Create adds a new feature. A nil geometry fails with
	// [ErrMissingGeometry], an existing fid with [ErrDuplicateFeature].
	Create(ctx context.Context, layerID, fid int64, geom []byte, attributes map[string]any) error

	// Update replaces the geometry when geom is non-nil and merges patch
	// into the attributes. A missing fid fails with [ErrUnknownFeature].
	Update(ctx context.Context, layerID, fid int64, geom []byte, patch map[string]any) error

	// Delete removes a feature. A missing fid fails with [ErrUnknownFeature].
	Delete(ctx context.Context, layerID, fid int64) error

	// Truncate removes every feature of layerID.
	Truncate(ctx context.Context, layerID int64) error
}

// ReplicaTx is a unit of replica mutations that is either fully applied by
// Commit or fully discarded by Rollback. Rollback after Commit is a no-op.
type ReplicaTx interface {
	ReplicaReader
	ReplicaWriter

	Commit() error
	Rollback() error
}

// ReplicaStore is the local mirror of both geofence layers. Every mutation
// goes through a transaction.
type ReplicaStore interface {
	ReplicaReader

	Begin(ctx context.Context) (ReplicaTx, error)
	Close() error
}

// WatermarkStore persists the last synchronized version of every layer.
type WatermarkStore interface {
	// Get returns the watermark of layerID. ok is false when none was saved.
	Get(ctx context.Context, layerID int64) (wm models.LayerWatermark, ok bool, err error)

	// Save stores all given watermarks in a single write.
	Save(ctx context.Context, watermarks ...models.LayerWatermark) error

	// Delete forgets the watermarks of layerIDs in a single write. Unknown
	// ids are ignored.
	Delete(ctx context.Context, layerIDs ...int64) error

	Close() error
}
