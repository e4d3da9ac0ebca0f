// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Wobas/ngw-geofencer/internal/adapter"
	"github.com/Wobas/ngw-geofencer/internal/config"
	"github.com/Wobas/ngw-geofencer/internal/geometry"
	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/internal/mock"
	"github.com/Wobas/ngw-geofencer/internal/store"
	"github.com/Wobas/ngw-geofencer/models"
)

var (
	topField    = models.Field{ID: 11, Keyname: "name"}
	bottomField = models.Field{ID: 21, Keyname: "zone"}
)

type orchestratorFixture struct {
	orchestrator *syncOrchestrator
	adapter      *mock.MockLayerAdapter
	notifier     *mock.MockNotifier
	replica      store.ReplicaStore
	watermarks   store.WatermarkStore
}

func testConfig(t *testing.T, topBuffer float64) *config.Config {
	t.Helper()
	return &config.Config{
		Top:     config.LayerConfig{Role: models.LayerTop, ID: topLayerID, Buffer: topBuffer, Fields: []string{"name"}},
		Bottom:  config.LayerConfig{Role: models.LayerBottom, ID: bottomLayerID, Fields: []string{"zone"}},
		Storage: config.StorageConfig{SnapshotDir: t.TempDir()},
	}
}

func newFixture(t *testing.T, ctrl *gomock.Controller, cfg *config.Config) *orchestratorFixture {
	t.Helper()
	f := &orchestratorFixture{
		adapter:    mock.NewMockLayerAdapter(ctrl),
		notifier:   mock.NewMockNotifier(ctrl),
		replica:    store.NewMemoryReplicaStore(geometry.NewDecoder()),
		watermarks: store.NewMemoryWatermarkStore(),
	}
	f.orchestrator = NewSyncOrchestrator(cfg, f.adapter, f.replica, f.watermarks, f.notifier,
		geometry.NewDecoder(), logger.Nop()).(*syncOrchestrator)
	return f
}

func (f *orchestratorFixture) saveWatermarks(t *testing.T, wms ...models.LayerWatermark) {
	t.Helper()
	require.NoError(t, f.watermarks.Save(context.Background(), wms...))
}

func (f *orchestratorFixture) expectLayer(layerID, version, epoch int64, fields ...models.Field) {
	f.adapter.EXPECT().GetResource(gomock.Any(), layerID).Return(resource(version, epoch, fields...), nil)
}

// expectDiff wires one change page of layerID between from and to. Every
// version of the range is stamped at the minute given by stamps, or at
// minute zero.
func (f *orchestratorFixture) expectDiff(layerID, epoch, from, to int64, changes []models.RawChange, stamps map[int64]int) {
	url := "changes/" + strings.Repeat("x", int(layerID))
	f.adapter.EXPECT().CheckChanges(gomock.Any(), layerID, epoch, from, to).Return(models.ChangesCheck{Fetch: url}, nil)
	f.adapter.EXPECT().FetchChanges(gomock.Any(), url).Return(changes, nil)
	for v := from; v <= to; v++ {
		f.adapter.EXPECT().GetVersion(gomock.Any(), layerID, v).Return(version(v, at(stamps[v])), nil)
	}
}

func watermark(layerID, version, epoch int64) models.LayerWatermark {
	return models.LayerWatermark{LayerID: layerID, Version: version, Epoch: epoch}
}

func storedVersion(t *testing.T, s store.WatermarkStore, layerID int64) int64 {
	t.Helper()
	wm, ok, err := s.Get(context.Background(), layerID)
	require.NoError(t, err)
	require.True(t, ok)
	return wm.Version
}

func rawCreate(fid, vid int64, wkt string, fields ...models.FieldValue) models.RawChange {
	r := raw("feature.create", fid, vid)
	r.Geom = ptr(wkt)
	r.Fields = fields
	return r
}

// ── end-to-end cycles ──

func TestSyncOrchestrator_CreateInsideZone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, testConfig(t, 0))
	seed(t, f.replica, bottomLayerID, 100, squareZone, map[string]any{"zone": "north"})
	f.saveWatermarks(t, watermark(topLayerID, 5, 1), watermark(bottomLayerID, 3, 1))

	f.expectLayer(topLayerID, 6, 1, topField)
	f.expectLayer(bottomLayerID, 3, 1, bottomField)
	f.expectDiff(topLayerID, 1, 5, 6, []models.RawChange{
		rawCreate(7, 6, "POINT (10 10)", models.FieldValue{FieldID: 11, Value: "truck"}),
	}, nil)

	f.notifier.EXPECT().Send(gomock.Any(),
		"[geofence] top fid 7 create intersects bottom fid 100\ntop: name=truck\nbottom: zone=north")

	report, err := f.orchestrator.RunCycle(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.CycleID)
	assert.Equal(t, []models.LayerRole{models.LayerTop}, report.Advanced)
	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, 1, report.Events)

	assert.Equal(t, int64(6), storedVersion(t, f.watermarks, topLayerID))
	assert.Equal(t, int64(3), storedVersion(t, f.watermarks, bottomLayerID))

	got, err := f.replica.Get(context.Background(), topLayerID, 7)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "truck"}, got.Attributes)

	status := f.orchestrator.Status()
	assert.Equal(t, models.StateIdle, status.State)
	require.NotNil(t, status.LastCycle)
	assert.Equal(t, report.CycleID, status.LastCycle.CycleID)
	assert.Equal(t, int64(6), status.Watermarks[models.LayerTop].Version)
}

func TestSyncOrchestrator_BufferedCreate(t *testing.T) {
	tests := []struct {
		name       string
		buffer     float64
		wantEvents int
	}{
		{name: "buffer 5", buffer: 5, wantEvents: 0},
		{name: "buffer 7", buffer: 7, wantEvents: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(t, ctrl, testConfig(t, tt.buffer))
			seed(t, f.replica, bottomLayerID, 100, squareZone, nil)
			f.saveWatermarks(t, watermark(topLayerID, 1, 1), watermark(bottomLayerID, 1, 1))

			f.expectLayer(topLayerID, 2, 1)
			f.expectLayer(bottomLayerID, 1, 1)
			f.expectDiff(topLayerID, 1, 1, 2, []models.RawChange{rawCreate(7, 2, "POINT (26 10)")}, nil)
			f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Times(tt.wantEvents)

			report, err := f.orchestrator.RunCycle(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantEvents, report.Events)
		})
	}
}

func TestSyncOrchestrator_DeleteStillCorrelates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, testConfig(t, 0))
	seed(t, f.replica, bottomLayerID, 100, squareZone, map[string]any{"zone": "north"})
	seed(t, f.replica, topLayerID, 7, "POINT (10 10)", map[string]any{"name": "truck"})
	f.saveWatermarks(t, watermark(topLayerID, 5, 1), watermark(bottomLayerID, 3, 1))

	f.expectLayer(topLayerID, 6, 1, topField)
	f.expectLayer(bottomLayerID, 3, 1, bottomField)
	f.expectDiff(topLayerID, 1, 5, 6, []models.RawChange{raw("feature.delete", 7, 6)}, nil)

	f.notifier.EXPECT().Send(gomock.Any(),
		"[geofence] top fid 7 delete intersects bottom fid 100\ntop: name=truck\nbottom: zone=north")

	_, err := f.orchestrator.RunCycle(context.Background())
	require.NoError(t, err)

	_, err = f.replica.Get(context.Background(), topLayerID, 7)
	assert.ErrorIs(t, err, store.ErrUnknownFeature)
}

func TestSyncOrchestrator_EpochMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, testConfig(t, 0))
	f.saveWatermarks(t, watermark(topLayerID, 5, 1), watermark(bottomLayerID, 3, 1))

	// no change check is expected for either layer
	f.expectLayer(topLayerID, 9, 2)
	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, message string) {
			assert.True(t, strings.HasPrefix(message, "[error] cycle "))
			assert.Contains(t, message, "epoch")
		})

	_, err := f.orchestrator.RunCycle(context.Background())
	require.ErrorIs(t, err, ErrEpochMismatch)

	assert.Equal(t, int64(5), storedVersion(t, f.watermarks, topLayerID))
	status := f.orchestrator.Status()
	assert.Equal(t, models.StateError, status.State)
	assert.Contains(t, status.LastError, "epoch")

	// the next cycle mirrors the layer from a snapshot
	snapshot := writeSnapshot(t, snapshotFeature{fid: 1, point: orb.Point{1, 1}, name: "restored"})

	f.expectLayer(topLayerID, 9, 2, topField)
	f.expectLayer(bottomLayerID, 3, 1)
	f.adapter.EXPECT().ExportLayer(gomock.Any(), topLayerID, 0, gomock.Any()).DoAndReturn(copySnapshot(snapshot))

	report, err := f.orchestrator.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.LayerRole{models.LayerTop}, report.Resynced)

	wm, _, err := f.watermarks.Get(context.Background(), topLayerID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), wm.Version)
	assert.Equal(t, int64(2), wm.Epoch)

	got, err := f.replica.Get(context.Background(), topLayerID, 1)
	require.NoError(t, err)
	assert.Equal(t, "restored", got.Attributes["name"])
}

// ── cycle properties ──

func TestSyncOrchestrator_NoOpCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdapter := mock.NewMockLayerAdapter(ctrl)
	mockReplica := mock.NewMockReplicaStore(ctrl)
	mockWatermarks := mock.NewMockWatermarkStore(ctrl)
	mockNotifier := mock.NewMockNotifier(ctrl)

	o := NewSyncOrchestrator(testConfig(t, 0), mockAdapter, mockReplica, mockWatermarks, mockNotifier,
		geometry.NewDecoder(), logger.Nop())

	mockAdapter.EXPECT().GetResource(gomock.Any(), topLayerID).Return(resource(5, 1), nil)
	mockAdapter.EXPECT().GetResource(gomock.Any(), bottomLayerID).Return(resource(3, 1), nil)
	mockWatermarks.EXPECT().Get(gomock.Any(), topLayerID).Return(watermark(topLayerID, 5, 1), true, nil)
	mockWatermarks.EXPECT().Get(gomock.Any(), bottomLayerID).Return(watermark(bottomLayerID, 3, 1), true, nil)
	// no Begin, no Save, no Send

	report, err := o.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Applied)
	assert.Empty(t, report.Advanced)
	assert.Equal(t, models.StateIdle, o.Status().State)
}

func TestSyncOrchestrator_MergesLayersByTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdapter := mock.NewMockLayerAdapter(ctrl)
	mockReplica := mock.NewMockReplicaStore(ctrl)
	mockTx := mock.NewMockReplicaTx(ctrl)
	mockCorrelator := mock.NewMockSpatialCorrelator(ctrl)
	watermarks := store.NewMemoryWatermarkStore()
	require.NoError(t, watermarks.Save(context.Background(),
		watermark(topLayerID, 5, 1), watermark(bottomLayerID, 3, 1)))

	o := NewSyncOrchestrator(testConfig(t, 0), mockAdapter, mockReplica, watermarks, mock.NewMockNotifier(ctrl),
		geometry.NewDecoder(), logger.Nop()).(*syncOrchestrator)
	o.correlator = mockCorrelator

	f := &orchestratorFixture{adapter: mockAdapter}
	f.expectLayer(topLayerID, 7, 1)
	f.expectLayer(bottomLayerID, 4, 1)
	// top: t=1 and t=4, bottom: t=2 and t=3
	f.expectDiff(topLayerID, 1, 5, 7, []models.RawChange{
		rawCreate(70, 7, "POINT (1 1)"),
		rawCreate(60, 6, "POINT (2 2)"),
	}, map[int64]int{6: 1, 7: 4})
	f.expectDiff(bottomLayerID, 1, 3, 4, []models.RawChange{
		rawCreate(40, 4, "POINT (3 3)"),
		raw("feature.delete", 30, 3),
	}, map[int64]int{3: 2, 4: 3})

	mockReplica.EXPECT().Begin(gomock.Any()).Return(mockTx, nil)
	gomock.InOrder(
		mockTx.EXPECT().Create(gomock.Any(), topLayerID, int64(60), []byte("POINT (2 2)"), map[string]any{}).Return(nil),
		mockTx.EXPECT().Delete(gomock.Any(), bottomLayerID, int64(30)).Return(nil),
		mockTx.EXPECT().Create(gomock.Any(), bottomLayerID, int64(40), []byte("POINT (3 3)"), map[string]any{}).Return(nil),
		mockTx.EXPECT().Create(gomock.Any(), topLayerID, int64(70), []byte("POINT (1 1)"), map[string]any{}).Return(nil),
		mockTx.EXPECT().Commit().Return(nil),
	)
	mockTx.EXPECT().Rollback().Return(nil).AnyTimes()
	mockCorrelator.EXPECT().Correlate(gomock.Any(), mockTx, gomock.Any(), gomock.Any()).Return(nil, nil).Times(4)

	report, err := o.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, report.Applied)
	assert.ElementsMatch(t, []models.LayerRole{models.LayerTop, models.LayerBottom}, report.Advanced)
	assert.Equal(t, int64(7), storedVersion(t, watermarks, topLayerID))
	assert.Equal(t, int64(4), storedVersion(t, watermarks, bottomLayerID))
}

func TestSyncOrchestrator_DeleteCorrelatedBeforeApply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdapter := mock.NewMockLayerAdapter(ctrl)
	mockReplica := mock.NewMockReplicaStore(ctrl)
	mockTx := mock.NewMockReplicaTx(ctrl)
	mockCorrelator := mock.NewMockSpatialCorrelator(ctrl)
	watermarks := store.NewMemoryWatermarkStore()
	require.NoError(t, watermarks.Save(context.Background(),
		watermark(topLayerID, 1, 1), watermark(bottomLayerID, 1, 1)))

	o := NewSyncOrchestrator(testConfig(t, 0), mockAdapter, mockReplica, watermarks, mock.NewMockNotifier(ctrl),
		geometry.NewDecoder(), logger.Nop()).(*syncOrchestrator)
	o.correlator = mockCorrelator

	f := &orchestratorFixture{adapter: mockAdapter}
	f.expectLayer(topLayerID, 2, 1)
	f.expectLayer(bottomLayerID, 1, 1)
	f.expectDiff(topLayerID, 1, 1, 2, []models.RawChange{
		raw("feature.update", 5, 2),
		raw("feature.delete", 6, 2),
	}, nil)

	isFID := func(fid int64) gomock.Matcher {
		return gomock.Cond(func(c models.ChangeRecord) bool { return c.FID == fid })
	}

	mockReplica.EXPECT().Begin(gomock.Any()).Return(mockTx, nil)
	gomock.InOrder(
		mockTx.EXPECT().Update(gomock.Any(), topLayerID, int64(5), gomock.Nil(), map[string]any{}).Return(nil),
		mockCorrelator.EXPECT().Correlate(gomock.Any(), mockTx, gomock.Any(), isFID(5)).Return(nil, nil),
		mockCorrelator.EXPECT().Correlate(gomock.Any(), mockTx, gomock.Any(), isFID(6)).Return(nil, nil),
		mockTx.EXPECT().Delete(gomock.Any(), topLayerID, int64(6)).Return(nil),
		mockTx.EXPECT().Commit().Return(nil),
	)
	mockTx.EXPECT().Rollback().Return(nil).AnyTimes()

	_, err := o.RunCycle(context.Background())
	require.NoError(t, err)
}

func TestSyncOrchestrator_FailedChangeAbortsCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, testConfig(t, 0))
	f.saveWatermarks(t, watermark(topLayerID, 1, 1), watermark(bottomLayerID, 1, 1))

	f.expectLayer(topLayerID, 2, 1)
	f.expectLayer(bottomLayerID, 1, 1)
	f.expectDiff(topLayerID, 1, 1, 2, []models.RawChange{
		rawCreate(7, 2, "POINT (1 1)"),
		raw("feature.update", 8, 2), // fid 8 was never created
	}, nil)
	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, message string) {
			assert.True(t, strings.HasPrefix(message, "[error]"))
		})

	_, err := f.orchestrator.RunCycle(context.Background())
	require.ErrorIs(t, err, store.ErrUnknownFeature)

	// the create of the same cycle was rolled back
	_, err = f.replica.Get(context.Background(), topLayerID, 7)
	assert.ErrorIs(t, err, store.ErrUnknownFeature)
	assert.Equal(t, int64(1), storedVersion(t, f.watermarks, topLayerID))
}

func TestSyncOrchestrator_CreateWithoutGeometry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, testConfig(t, 0))
	f.saveWatermarks(t, watermark(topLayerID, 1, 1), watermark(bottomLayerID, 1, 1))

	f.expectLayer(topLayerID, 2, 1)
	f.expectLayer(bottomLayerID, 1, 1)
	f.expectDiff(topLayerID, 1, 1, 2, []models.RawChange{raw("feature.create", 7, 2)}, nil)
	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any())

	_, err := f.orchestrator.RunCycle(context.Background())
	assert.ErrorIs(t, err, store.ErrMissingGeometry)
}

func TestSyncOrchestrator_PartialVersionFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReplica := mock.NewMockReplicaStore(ctrl)
	f := newFixture(t, ctrl, testConfig(t, 0))
	f.orchestrator.replica = mockReplica // no Begin expected
	f.saveWatermarks(t, watermark(topLayerID, 1, 1), watermark(bottomLayerID, 1, 1))

	f.expectLayer(topLayerID, 2, 1)
	f.expectLayer(bottomLayerID, 1, 1)
	f.adapter.EXPECT().CheckChanges(gomock.Any(), topLayerID, int64(1), int64(1), int64(2)).
		Return(models.ChangesCheck{Fetch: "page"}, nil)
	f.adapter.EXPECT().FetchChanges(gomock.Any(), "page").Return([]models.RawChange{raw("feature.delete", 1, 2)}, nil)
	f.adapter.EXPECT().GetVersion(gomock.Any(), topLayerID, int64(1)).
		Return(models.VersionInfo{}, &adapter.RemoteError{Op: "get version", Status: 502})
	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any())

	_, err := f.orchestrator.RunCycle(context.Background())
	require.ErrorIs(t, err, ErrPartialVersionFetch)
	assert.Equal(t, int64(1), storedVersion(t, f.watermarks, topLayerID))
}

func TestSyncOrchestrator_RemoteErrorKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, testConfig(t, 0))
	f.saveWatermarks(t, watermark(topLayerID, 1, 1), watermark(bottomLayerID, 1, 1))

	f.adapter.EXPECT().GetResource(gomock.Any(), topLayerID).
		Return(models.ResourceResponse{}, &adapter.RemoteError{Op: "get resource", Timeout: true, Err: context.DeadlineExceeded})
	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any())

	_, err := f.orchestrator.RunCycle(context.Background())
	require.ErrorIs(t, err, adapter.ErrRemote)
	assert.Equal(t, models.StateError, f.orchestrator.Status().State)
}

// ── bootstrap and resync ──

func TestSyncOrchestrator_Bootstrap(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, testConfig(t, 0))

	top := writeSnapshot(t, snapshotFeature{fid: 1, point: orb.Point{10, 10}, name: "truck"})
	bottom := writeSnapshot(t, snapshotFeature{fid: 2, point: orb.Point{50, 50}, name: "post"})

	f.expectLayer(topLayerID, 4, 1, topField)
	f.expectLayer(bottomLayerID, 8, 2, bottomField)
	f.adapter.EXPECT().ExportLayer(gomock.Any(), topLayerID, 0, gomock.Any()).DoAndReturn(copySnapshot(top))
	f.adapter.EXPECT().ExportLayer(gomock.Any(), bottomLayerID, 0, gomock.Any()).DoAndReturn(copySnapshot(bottom))
	// a mirror raises no geofence events

	report, err := f.orchestrator.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.LayerRole{models.LayerTop, models.LayerBottom}, report.Resynced)
	assert.Zero(t, report.Events)

	assert.Equal(t, int64(4), storedVersion(t, f.watermarks, topLayerID))
	assert.Equal(t, int64(8), storedVersion(t, f.watermarks, bottomLayerID))

	_, err = f.replica.Get(context.Background(), bottomLayerID, 2)
	require.NoError(t, err)

	// snapshots are removed once mirrored
	entries, err := os.ReadDir(f.orchestrator.cfg.Storage.SnapshotDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSyncOrchestrator_ExportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, testConfig(t, 0))
	f.saveWatermarks(t, watermark(bottomLayerID, 1, 1))

	f.expectLayer(topLayerID, 4, 1)
	f.expectLayer(bottomLayerID, 1, 1)
	f.adapter.EXPECT().ExportLayer(gomock.Any(), topLayerID, 0, gomock.Any()).
		Return(&adapter.RemoteError{Op: "export layer", Status: 500})
	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any())

	_, err := f.orchestrator.RunCycle(context.Background())
	require.ErrorIs(t, err, adapter.ErrRemote)

	_, ok, err := f.watermarks.Get(context.Background(), topLayerID)
	require.NoError(t, err)
	assert.False(t, ok)

	entries, err := os.ReadDir(f.orchestrator.cfg.Storage.SnapshotDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSyncOrchestrator_RequestResync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, testConfig(t, 0))
	f.saveWatermarks(t, watermark(topLayerID, 4, 1), watermark(bottomLayerID, 8, 1))
	seed(t, f.replica, bottomLayerID, 99, "POINT (0 0)", nil)

	require.ErrorIs(t, f.orchestrator.RequestResync("sideways"), ErrUnknownLayerRole)
	require.NoError(t, f.orchestrator.RequestResync(models.LayerBottom))

	bottom := writeSnapshot(t, snapshotFeature{fid: 2, point: orb.Point{5, 5}, name: "fresh"})

	f.expectLayer(topLayerID, 4, 1)
	f.expectLayer(bottomLayerID, 8, 1)
	f.adapter.EXPECT().ExportLayer(gomock.Any(), bottomLayerID, 0, gomock.Any()).DoAndReturn(copySnapshot(bottom))

	report, err := f.orchestrator.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.LayerRole{models.LayerBottom}, report.Resynced)

	_, err = f.replica.Get(context.Background(), bottomLayerID, 99)
	assert.ErrorIs(t, err, store.ErrUnknownFeature)

	// the request is consumed
	f.expectLayer(topLayerID, 4, 1)
	f.expectLayer(bottomLayerID, 8, 1)
	_, err = f.orchestrator.RunCycle(context.Background())
	require.NoError(t, err)
}

func TestSyncOrchestrator_CycleInProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, testConfig(t, 0))

	f.orchestrator.running.Lock()
	defer f.orchestrator.running.Unlock()

	_, err := f.orchestrator.RunCycle(context.Background())
	assert.ErrorIs(t, err, ErrCycleInProgress)
}

// ── persistence failures ──

// flakyWatermarks fails the Save calls listed in failOn, counted from 1.
type flakyWatermarks struct {
	store.WatermarkStore
	saves  int
	failOn map[int]bool
}

func (w *flakyWatermarks) Save(ctx context.Context, watermarks ...models.LayerWatermark) error {
	w.saves++
	if w.failOn[w.saves] {
		return fmt.Errorf("%w: disk full", store.ErrPersistence)
	}
	return w.WatermarkStore.Save(ctx, watermarks...)
}

func TestSyncOrchestrator_WatermarkSaveFailureRollsBackReplica(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, testConfig(t, 0))
	seed(t, f.replica, bottomLayerID, 100, squareZone, map[string]any{"zone": "north"})
	f.saveWatermarks(t, watermark(topLayerID, 5, 1), watermark(bottomLayerID, 3, 1))
	f.orchestrator.watermarks = &flakyWatermarks{WatermarkStore: f.watermarks, failOn: map[int]bool{1: true}}

	create := rawCreate(7, 6, "POINT (10 10)", models.FieldValue{FieldID: 11, Value: "truck"})
	for range 2 {
		f.expectLayer(topLayerID, 6, 1, topField)
		f.expectLayer(bottomLayerID, 3, 1, bottomField)
		f.expectDiff(topLayerID, 1, 5, 6, []models.RawChange{create}, nil)
	}
	gomock.InOrder(
		f.notifier.EXPECT().Send(gomock.Any(), gomock.Cond(func(message string) bool {
			return strings.HasPrefix(message, "[error]")
		})),
		f.notifier.EXPECT().Send(gomock.Any(),
			"[geofence] top fid 7 create intersects bottom fid 100\ntop: name=truck\nbottom: zone=north"),
	)

	_, err := f.orchestrator.RunCycle(context.Background())
	require.ErrorIs(t, err, store.ErrPersistence)

	// neither the replica nor the watermark moved
	_, err = f.replica.Get(context.Background(), topLayerID, 7)
	assert.ErrorIs(t, err, store.ErrUnknownFeature)
	assert.Equal(t, int64(5), storedVersion(t, f.watermarks, topLayerID))

	// the next cycle replays the same versions cleanly
	report, err := f.orchestrator.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Events)
	assert.Equal(t, int64(6), storedVersion(t, f.watermarks, topLayerID))
	_, err = f.replica.Get(context.Background(), topLayerID, 7)
	assert.NoError(t, err)
}

func TestSyncOrchestrator_CommitFailureRestoresWatermarks(t *testing.T) {
	tests := []struct {
		name           string
		failOn         map[int]bool
		wantTopVersion int64
		wantPending    bool
	}{
		{
			name:           "previous watermarks restored",
			wantTopVersion: 5,
		},
		{
			name:           "restore fails",
			failOn:         map[int]bool{2: true},
			wantTopVersion: 6,
			wantPending:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAdapter := mock.NewMockLayerAdapter(ctrl)
			mockReplica := mock.NewMockReplicaStore(ctrl)
			mockTx := mock.NewMockReplicaTx(ctrl)
			mockCorrelator := mock.NewMockSpatialCorrelator(ctrl)
			mockNotifier := mock.NewMockNotifier(ctrl)

			// top is diffed, bottom has never been mirrored
			watermarks := store.NewMemoryWatermarkStore()
			require.NoError(t, watermarks.Save(context.Background(), watermark(topLayerID, 5, 1)))

			o := NewSyncOrchestrator(testConfig(t, 0), mockAdapter, mockReplica,
				&flakyWatermarks{WatermarkStore: watermarks, failOn: tt.failOn}, mockNotifier,
				geometry.NewDecoder(), logger.Nop()).(*syncOrchestrator)
			o.correlator = mockCorrelator

			f := &orchestratorFixture{adapter: mockAdapter}
			f.expectLayer(topLayerID, 6, 1)
			f.expectLayer(bottomLayerID, 8, 2)
			f.expectDiff(topLayerID, 1, 5, 6, []models.RawChange{rawCreate(7, 6, "POINT (1 1)")}, nil)
			snapshot := writeSnapshot(t, snapshotFeature{fid: 2, point: orb.Point{5, 5}, name: "zone"})
			mockAdapter.EXPECT().ExportLayer(gomock.Any(), bottomLayerID, 0, gomock.Any()).DoAndReturn(copySnapshot(snapshot))

			mockReplica.EXPECT().Begin(gomock.Any()).Return(mockTx, nil)
			mockTx.EXPECT().Truncate(gomock.Any(), bottomLayerID).Return(nil)
			mockTx.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
			mockTx.EXPECT().Commit().Return(errors.New("disk I/O error"))
			mockTx.EXPECT().Rollback().Return(nil).AnyTimes()
			mockCorrelator.EXPECT().Correlate(gomock.Any(), mockTx, gomock.Any(), gomock.Any()).Return(nil, nil)
			mockNotifier.EXPECT().Send(gomock.Any(), gomock.Any())

			_, err := o.RunCycle(context.Background())
			require.ErrorContains(t, err, "commit replica")

			assert.Equal(t, tt.wantTopVersion, storedVersion(t, watermarks, topLayerID))
			_, ok, err := watermarks.Get(context.Background(), bottomLayerID)
			require.NoError(t, err)
			assert.False(t, ok, "bottom watermark must not survive a failed commit")

			assert.Equal(t, tt.wantPending, o.pending[models.LayerTop])
			assert.Equal(t, tt.wantPending, o.pending[models.LayerBottom])
		})
	}
}

// ── snapshot helpers ──

type snapshotFeature struct {
	fid   int64
	point orb.Point
	name  string
}

// writeSnapshot writes a minimal GeoPackage with one feature table.
func writeSnapshot(t *testing.T, features ...snapshotFeature) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.gpkg")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range []string{
		`CREATE TABLE gpkg_contents (table_name TEXT PRIMARY KEY, data_type TEXT NOT NULL)`,
		`CREATE TABLE gpkg_geometry_columns (table_name TEXT, column_name TEXT)`,
		`INSERT INTO gpkg_contents VALUES ('layer', 'features')`,
		`INSERT INTO gpkg_geometry_columns VALUES ('layer', 'geom')`,
		`CREATE TABLE layer (fid INTEGER PRIMARY KEY, geom BLOB, ngw_id INTEGER, name TEXT)`,
	} {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}

	for i, f := range features {
		body, marshalErr := wkb.Marshal(f.point, binary.LittleEndian)
		require.NoError(t, marshalErr)
		blob := append([]byte{'G', 'P', 0, 0x01, 0, 0, 0, 0}, body...)

		_, err = db.Exec(`INSERT INTO layer (fid, geom, ngw_id, name) VALUES (?, ?, ?, ?)`, i+1, blob, f.fid, f.name)
		require.NoError(t, err)
	}

	return path
}

func copySnapshot(path string) func(context.Context, int64, int, io.Writer) error {
	return func(_ context.Context, _ int64, _ int, dst io.Writer) error {
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		_, err = io.Copy(dst, src)
		return err
	}
}
