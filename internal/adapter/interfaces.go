// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the remote layer server.
//
// The primary abstraction is [LayerAdapter], which decouples the service layer
// from the REST protocol of the server. The package ships an HTTP
// implementation built on resty ([NewHTTPLayerAdapter]).
//
// Every non-success response and every transport failure (including a
// timeout) is returned as a [*RemoteError] that matches [ErrRemote] with
// [errors.Is], so callers can treat all remote failures as recoverable.
package adapter

import (
	"context"
	"io"

	"github.com/Wobas/ngw-geofencer/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/layer_adapter_mock.go -package=mock

// LayerAdapter defines read-only access to the versioned feature layers of
// the remote server. Implementations authenticate every call and bound it by
// the configured request timeout.
type LayerAdapter interface {
	// GetResource returns the resource description of layerID, including
	// its versioning block and field list.
	GetResource(ctx context.Context, layerID int64) (models.ResourceResponse, error)

	// CheckChanges asks the server for a change feed between initial and
	// target versions of layerID within epoch. The returned Fetch url is
	// empty when there is nothing to fetch.
	CheckChanges(ctx context.Context, layerID, epoch, initial, target int64) (models.ChangesCheck, error)

	// FetchChanges retrieves one page of a change feed. fetchURL is either
	// the url returned by CheckChanges or the url of a continuation entry.
	FetchChanges(ctx context.Context, fetchURL string) ([]models.RawChange, error)

	// GetVersion returns the metadata of a single version of layerID.
	GetVersion(ctx context.Context, layerID, version int64) (models.VersionInfo, error)

	// ExportLayer streams a full GeoPackage snapshot of layerID into dst.
	// A zero srs exports in the layer's own spatial reference.
	ExportLayer(ctx context.Context, layerID int64, srs int, dst io.Writer) error
}
