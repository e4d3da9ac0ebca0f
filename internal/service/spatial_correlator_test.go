// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Wobas/ngw-geofencer/internal/geometry"
	"github.com/Wobas/ngw-geofencer/internal/mock"
	"github.com/Wobas/ngw-geofencer/internal/store"
	"github.com/Wobas/ngw-geofencer/models"
)

const (
	topLayerID    int64 = 1
	bottomLayerID int64 = 2

	squareZone = "POLYGON ((0 0, 20 0, 20 20, 0 20, 0 0))"
)

func testBindings(topBuffer, bottomBuffer float64) models.Bindings {
	return models.Bindings{
		Top: models.LayerBinding{
			Role: models.LayerTop, LayerID: topLayerID, Buffer: topBuffer,
			Fields:          map[int64]string{11: "name", 12: "driver"},
			DisplayedFields: map[int64]string{11: "name"},
		},
		Bottom: models.LayerBinding{
			Role: models.LayerBottom, LayerID: bottomLayerID, Buffer: bottomBuffer,
			Fields:          map[int64]string{21: "zone", 22: "owner"},
			DisplayedFields: map[int64]string{21: "zone"},
		},
	}
}

func newReplica(t *testing.T) store.ReplicaStore {
	t.Helper()
	return store.NewMemoryReplicaStore(geometry.NewDecoder())
}

func seed(t *testing.T, s store.ReplicaStore, layerID, fid int64, wkt string, attributes map[string]any) {
	t.Helper()
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Create(ctx, layerID, fid, []byte(wkt), attributes))
	require.NoError(t, tx.Commit())
}

func createTop(fid int64, wkt string, fields ...models.FieldValue) models.ChangeRecord {
	return models.ChangeRecord{
		Role: models.LayerTop, LayerID: topLayerID, FID: fid,
		Action: models.ActionCreate, Geometry: []byte(wkt), Fields: fields,
	}
}

// ── scenarios ──

func TestSpatialCorrelator_PointInsidePolygon(t *testing.T) {
	replica := newReplica(t)
	seed(t, replica, bottomLayerID, 100, squareZone, map[string]any{"zone": "north", "owner": "city"})

	change := createTop(7, "POINT (10 10)",
		models.FieldValue{FieldID: 11, Value: "truck"},
		models.FieldValue{FieldID: 12, Value: "kim"},
	)

	events, err := NewSpatialCorrelator(geometry.NewDecoder()).
		Correlate(context.Background(), replica, testBindings(0, 0), change)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, models.GeofenceEvent{
		TopFID:           7,
		BottomFID:        100,
		Action:           models.ActionCreate,
		ChangedRole:      models.LayerTop,
		TopAttributes:    map[string]any{"name": "truck"},
		BottomAttributes: map[string]any{"zone": "north"},
	}, events[0])
}

func TestSpatialCorrelator_BufferDistance(t *testing.T) {
	tests := []struct {
		name       string
		topBuffer  float64
		wantEvents int
	}{
		{name: "buffer 5 stays clear of the zone", topBuffer: 5, wantEvents: 0},
		{name: "buffer 7 reaches the zone", topBuffer: 7, wantEvents: 1},
		{name: "buffer 6 touches the zone edge", topBuffer: 6, wantEvents: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replica := newReplica(t)
			seed(t, replica, bottomLayerID, 100, squareZone, nil)

			events, err := NewSpatialCorrelator(geometry.NewDecoder()).
				Correlate(context.Background(), replica, testBindings(tt.topBuffer, 0), createTop(7, "POINT (26 10)"))
			require.NoError(t, err)
			assert.Len(t, events, tt.wantEvents)
		})
	}
}

func TestSpatialCorrelator_BufferSymmetry(t *testing.T) {
	// squares of side 2; the gap between them is x - 2
	for _, x := range []float64{3, 6, 7, 7.5, 8, 12} {
		t.Run(fmt.Sprintf("x=%v", x), func(t *testing.T) {
			replica := newReplica(t)
			seed(t, replica, bottomLayerID, 1,
				fmt.Sprintf("POLYGON ((%[1]v 0, %[2]v 0, %[2]v 2, %[1]v 2, %[1]v 0))", x, x+2), nil)

			change := createTop(9, "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))")
			correlator := NewSpatialCorrelator(geometry.NewDecoder())

			results := make([]bool, 0, 3)
			for _, buffers := range [][2]float64{{2, 3}, {5, 0}, {0, 5}} {
				events, err := correlator.Correlate(context.Background(), replica, testBindings(buffers[0], buffers[1]), change)
				require.NoError(t, err)
				results = append(results, len(events) > 0)
			}

			assert.Equal(t, results[0], results[1])
			assert.Equal(t, results[0], results[2])
			assert.Equal(t, x-2 <= 5, results[0])
		})
	}
}

func TestSpatialCorrelator_ManyCandidates(t *testing.T) {
	replica := newReplica(t)
	seed(t, replica, bottomLayerID, 1, squareZone, map[string]any{"zone": "a"})
	seed(t, replica, bottomLayerID, 2, "POLYGON ((5 5, 15 5, 15 15, 5 15, 5 5))", map[string]any{"zone": "b"})
	seed(t, replica, bottomLayerID, 3, "POLYGON ((100 100, 110 100, 110 110, 100 110, 100 100))", map[string]any{"zone": "far"})
	// same layer features are never candidates
	seed(t, replica, topLayerID, 4, "POINT (10 10)", nil)

	events, err := NewSpatialCorrelator(geometry.NewDecoder()).
		Correlate(context.Background(), replica, testBindings(0, 0), createTop(7, "POINT (10 10)"))
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, int64(1), events[0].BottomFID)
	assert.Equal(t, int64(2), events[1].BottomFID)
}

// ── attribute and geometry sources ──

func TestSpatialCorrelator_DeleteUsesReplica(t *testing.T) {
	replica := newReplica(t)
	seed(t, replica, bottomLayerID, 100, squareZone, map[string]any{"zone": "north"})
	seed(t, replica, topLayerID, 7, "POINT (10 10)", map[string]any{"name": "truck", "driver": "kim"})

	change := models.ChangeRecord{Role: models.LayerTop, LayerID: topLayerID, FID: 7, Action: models.ActionDelete}

	events, err := NewSpatialCorrelator(geometry.NewDecoder()).
		Correlate(context.Background(), replica, testBindings(0, 0), change)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, int64(7), events[0].TopFID)
	assert.Equal(t, models.ActionDelete, events[0].Action)
	assert.Equal(t, map[string]any{"name": "truck"}, events[0].TopAttributes)
}

func TestSpatialCorrelator_UpdateUsesReplicaAttributes(t *testing.T) {
	replica := newReplica(t)
	seed(t, replica, topLayerID, 100, "POINT (10 10)", map[string]any{"name": "truck"})
	seed(t, replica, bottomLayerID, 7, squareZone, map[string]any{"zone": "renamed", "owner": "x"})

	// a bottom attribute-only update: geometry comes from the replica
	change := models.ChangeRecord{
		Role: models.LayerBottom, LayerID: bottomLayerID, FID: 7, Action: models.ActionUpdate,
		Fields: []models.FieldValue{{FieldID: 21, Value: "payload value"}},
	}

	events, err := NewSpatialCorrelator(geometry.NewDecoder()).
		Correlate(context.Background(), replica, testBindings(0, 0), change)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, models.GeofenceEvent{
		TopFID:           100,
		BottomFID:        7,
		Action:           models.ActionUpdate,
		ChangedRole:      models.LayerBottom,
		TopAttributes:    map[string]any{"name": "truck"},
		BottomAttributes: map[string]any{"zone": "renamed"},
	}, events[0])
}

func TestSpatialCorrelator_UpdateUsesPayloadGeometry(t *testing.T) {
	replica := newReplica(t)
	seed(t, replica, bottomLayerID, 100, squareZone, nil)
	seed(t, replica, topLayerID, 7, "POINT (500 500)", nil)

	change := models.ChangeRecord{
		Role: models.LayerTop, LayerID: topLayerID, FID: 7, Action: models.ActionUpdate,
		Geometry: []byte("POINT (1 1)"),
	}

	events, err := NewSpatialCorrelator(geometry.NewDecoder()).
		Correlate(context.Background(), replica, testBindings(0, 0), change)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestSpatialCorrelator_UnknownFeature(t *testing.T) {
	replica := newReplica(t)

	change := models.ChangeRecord{Role: models.LayerTop, LayerID: topLayerID, FID: 7, Action: models.ActionDelete}

	_, err := NewSpatialCorrelator(geometry.NewDecoder()).
		Correlate(context.Background(), replica, testBindings(0, 0), change)
	assert.ErrorIs(t, err, store.ErrUnknownFeature)
}

func TestSpatialCorrelator_InvalidGeometry(t *testing.T) {
	_, err := NewSpatialCorrelator(geometry.NewDecoder()).
		Correlate(context.Background(), newReplica(t), testBindings(0, 0), createTop(7, "POINT (x y)"))
	assert.ErrorIs(t, err, geometry.ErrInvalidGeometry)
}

func TestSpatialCorrelator_SearchBox(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := mock.NewMockReplicaReader(ctrl)
	reader.EXPECT().
		FindInEnvelope(gomock.Any(), bottomLayerID, geometry.Envelope{MinX: 4, MinY: 4, MaxX: 16, MaxY: 16}).
		Return(nil, nil)

	events, err := NewSpatialCorrelator(geometry.NewDecoder()).
		Correlate(context.Background(), reader, testBindings(2, 3), createTop(7, "POINT (10 10)"))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSpatialCorrelator_FindError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := mock.NewMockReplicaReader(ctrl)
	reader.EXPECT().FindInEnvelope(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: disk", store.ErrPersistence))

	_, err := NewSpatialCorrelator(geometry.NewDecoder()).
		Correlate(context.Background(), reader, testBindings(0, 0), createTop(7, "POINT (10 10)"))
	assert.True(t, errors.Is(err, store.ErrPersistence))
}
