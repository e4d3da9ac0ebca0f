// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/Wobas/ngw-geofencer/internal/adapter"
	"github.com/Wobas/ngw-geofencer/internal/config"
	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/models"
)

type versionOracle struct {
	adapter adapter.LayerAdapter
}

// NewVersionOracle constructs a [VersionOracle] that reads the layer
// resource through layerAdapter.
func NewVersionOracle(layerAdapter adapter.LayerAdapter) VersionOracle {
	return &versionOracle{adapter: layerAdapter}
}

// Latest implements [VersionOracle].
func (o *versionOracle) Latest(ctx context.Context, layer config.LayerConfig) (models.LayerState, error) {
	res, err := o.adapter.GetResource(ctx, layer.ID)
	if err != nil {
		return models.LayerState{}, fmt.Errorf("get %s layer %d: %w", layer.Role, layer.ID, err)
	}

	versioning := res.FeatureLayer.Versioning
	if !versioning.Enabled {
		return models.LayerState{}, fmt.Errorf("%w: %s layer %d", ErrVersioningDisabled, layer.Role, layer.ID)
	}

	state := models.LayerState{
		LayerID:         layer.ID,
		Version:         versioning.Latest,
		Epoch:           versioning.Epoch,
		Fields:          make(map[int64]string, len(res.FeatureLayer.Fields)),
		DisplayedFields: make(map[int64]string, len(layer.Fields)),
	}
	if res.VectorLayer != nil {
		state.SRS = res.VectorLayer.SRS.ID
	}

	for _, f := range res.FeatureLayer.Fields {
		state.Fields[f.ID] = f.Keyname
		if slices.Contains(layer.Fields, f.Keyname) {
			state.DisplayedFields[f.ID] = f.Keyname
		}
	}

	if len(state.DisplayedFields) < len(layer.Fields) {
		logger.FromContext(ctx).Warn().
			Int64("layer_id", layer.ID).
			Strs("allowed", layer.Fields).
			Int("matched", len(state.DisplayedFields)).
			Msg("some allowed fields do not exist on the remote layer")
	}

	return state, nil
}
