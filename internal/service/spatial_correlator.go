// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/Wobas/ngw-geofencer/internal/geometry"
	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/internal/store"
	"github.com/Wobas/ngw-geofencer/models"
)

// envelopeMargin is added to the candidate search box so that features
// lying exactly on its boundary are not lost to rounding.
const envelopeMargin = 1.0

type spatialCorrelator struct {
	decoder geometry.Decoder
}

// NewSpatialCorrelator constructs a [SpatialCorrelator] that decodes
// geometries with decoder.
func NewSpatialCorrelator(decoder geometry.Decoder) SpatialCorrelator {
	return &spatialCorrelator{decoder: decoder}
}

// Correlate implements [SpatialCorrelator].
//
// The geometry of the change comes from its payload, or from the replica
// when the payload carries none (deletes and attribute-only updates). A
// create reports the attributes of its payload; updates and deletes report
// the attributes of the replica feature. Deletes are evaluated against the
// last known geometry, so they must be correlated before they are applied.
func (c *spatialCorrelator) Correlate(ctx context.Context, replica store.ReplicaReader, bindings models.Bindings, change models.ChangeRecord) ([]models.GeofenceEvent, error) {
	source := bindings.ByRole(change.Role)
	opposite := bindings.ByRole(change.Role.Opposite())

	encoded := change.Geometry
	var sourceAttributes map[string]any
	if change.Action == models.ActionCreate {
		sourceAttributes = displayedFromPayload(change.Fields, source.DisplayedFields)
	}

	if change.Action != models.ActionCreate || len(encoded) == 0 {
		current, err := replica.Get(ctx, source.LayerID, change.FID)
		if err != nil {
			return nil, fmt.Errorf("correlate %s: %w", change, err)
		}
		if len(encoded) == 0 {
			encoded = current.Geometry
		}
		if change.Action != models.ActionCreate {
			sourceAttributes = displayedFromReplica(current.Attributes, source.DisplayedFields)
		}
	}

	geom, err := c.decoder.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("correlate %s: %w", change, err)
	}
	buffered := geom.Buffer(source.Buffer)

	searchBox := geom.Envelope().Expand(source.Buffer + opposite.Buffer + envelopeMargin)
	candidates, err := replica.FindInEnvelope(ctx, opposite.LayerID, searchBox)
	if err != nil {
		return nil, fmt.Errorf("correlate %s: %w", change, err)
	}

	var events []models.GeofenceEvent
	for _, candidate := range candidates {
		other, decodeErr := c.decoder.Decode(candidate.Geometry)
		if decodeErr != nil {
			return nil, fmt.Errorf("correlate %s with fid %d: %w", change, candidate.FID, decodeErr)
		}
		if !buffered.Intersects(other.Buffer(opposite.Buffer)) {
			continue
		}

		events = append(events, newEvent(change, sourceAttributes, candidate.FID,
			displayedFromReplica(candidate.Attributes, opposite.DisplayedFields)))
	}

	logger.FromContext(ctx).Debug().
		Str("change", change.String()).
		Int("candidates", len(candidates)).
		Int("events", len(events)).
		Msg("change correlated")

	return events, nil
}

func newEvent(change models.ChangeRecord, changedAttributes map[string]any, otherFID int64, otherAttributes map[string]any) models.GeofenceEvent {
	event := models.GeofenceEvent{
		Action:      change.Action,
		ChangedRole: change.Role,
	}

	if change.Role == models.LayerTop {
		event.TopFID, event.TopAttributes = change.FID, changedAttributes
		event.BottomFID, event.BottomAttributes = otherFID, otherAttributes
		return event
	}

	event.BottomFID, event.BottomAttributes = change.FID, changedAttributes
	event.TopFID, event.TopAttributes = otherFID, otherAttributes
	return event
}
