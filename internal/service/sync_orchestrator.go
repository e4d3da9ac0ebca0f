// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/Wobas/ngw-geofencer/internal/adapter"
	"github.com/Wobas/ngw-geofencer/internal/config"
	"github.com/Wobas/ngw-geofencer/internal/geometry"
	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/internal/notify"
	"github.com/Wobas/ngw-geofencer/internal/store"
	"github.com/Wobas/ngw-geofencer/internal/utils"
	"github.com/Wobas/ngw-geofencer/models"
)

type syncOrchestrator struct {
	cfg        *config.Config
	adapter    adapter.LayerAdapter
	oracle     VersionOracle
	fetcher    ChangeFetcher
	correlator SpatialCorrelator
	replica    store.ReplicaStore
	watermarks store.WatermarkStore
	notifier   notify.Notifier
	ids        *utils.IDGenerator
	now        func() time.Time

	logger *logger.Logger

	// running is held for the whole cycle.
	running sync.Mutex

	mu         sync.RWMutex
	state      models.SyncState
	lastCycle  *models.CycleReport
	lastError  string
	lastRunAt  time.Time
	pending    map[models.LayerRole]bool
	knownMarks map[models.LayerRole]models.LayerWatermark
}

// layerPlan is what a cycle does with one layer.
type layerPlan struct {
	state     models.LayerState
	binding   models.LayerBinding
	watermark models.LayerWatermark
	// stored is false when the layer had no watermark before the cycle.
	stored    bool
	diff      bool
	resync    bool
	snapshot  string
}

// NewSyncOrchestrator constructs the [SyncOrchestrator] of the layers in
// cfg. Remote calls go through layerAdapter, replicated features live in
// replica and the synchronized versions in watermarks.
func NewSyncOrchestrator(
	cfg *config.Config,
	layerAdapter adapter.LayerAdapter,
	replica store.ReplicaStore,
	watermarks store.WatermarkStore,
	notifier notify.Notifier,
	decoder geometry.Decoder,
	logger *logger.Logger,
) SyncOrchestrator {
	return &syncOrchestrator{
		cfg:        cfg,
		adapter:    layerAdapter,
		oracle:     NewVersionOracle(layerAdapter),
		fetcher:    NewChangeFetcher(layerAdapter),
		correlator: NewSpatialCorrelator(decoder),
		replica:    replica,
		watermarks: watermarks,
		notifier:   notifier,
		ids:        utils.NewIDGenerator(),
		now:        time.Now,
		logger:     logger,
		state:      models.StateIdle,
		pending:    make(map[models.LayerRole]bool),
		knownMarks: make(map[models.LayerRole]models.LayerWatermark),
	}
}

// RunCycle implements [SyncOrchestrator].
//
// A failed cycle leaves the replica and the watermarks untouched, reports
// the failure through the notifier and ends in [models.StateError]. The next
// cycle starts again from the stored watermarks.
func (o *syncOrchestrator) RunCycle(ctx context.Context) (models.CycleReport, error) {
	if !o.running.TryLock() {
		return models.CycleReport{}, ErrCycleInProgress
	}
	defer o.running.Unlock()

	report := models.CycleReport{CycleID: o.ids.Generate()}
	ctx, log := o.logger.WithCycle(utils.WithCycleID(ctx, report.CycleID), report.CycleID)

	o.mu.Lock()
	o.lastRunAt = o.now()
	o.mu.Unlock()

	log.Debug().Msg("sync cycle started")

	events, err := o.runCycle(ctx, &report)
	if err != nil {
		o.fail(ctx, report, err)
		return report, err
	}

	for _, event := range events {
		o.notifier.Send(ctx, notify.FormatEvent(event))
	}

	o.mu.Lock()
	o.state = models.StateIdle
	o.lastCycle = &report
	o.lastError = ""
	o.mu.Unlock()

	log.Info().
		Int("applied", report.Applied).
		Int("events", report.Events).
		Interface("advanced", report.Advanced).
		Interface("resynced", report.Resynced).
		Msg("sync cycle finished")

	return report, nil
}

// runCycle performs one cycle under the cycle lock and fills report.
//
// Steps: plan every layer against its watermark, download snapshots for
// layers that need a full mirror and diffs for the others, merge the
// changes in timestamp order, apply them and correlate inside one replica
// transaction, save the new watermarks, then commit.
//
// Returns:
//
//	[]models.GeofenceEvent - events to notify; nil when the cycle fails
//	error                  - the first failure; the replica and the
//	                         watermarks are left as before the cycle, or
//	                         the active layers are marked for resync when
//	                         the watermarks cannot be put back
func (o *syncOrchestrator) runCycle(ctx context.Context, report *models.CycleReport) ([]models.GeofenceEvent, error) {
	o.setState(models.StateCheckingVersions)

	plans, err := o.plan(ctx)
	if err != nil {
		return nil, err
	}

	var active []*layerPlan
	for _, p := range plans {
		if p.diff || p.resync {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		logger.FromContext(ctx).Debug().Msg("no layer advanced")
		return nil, nil
	}

	o.setState(models.StateFetchingChanges)

	defer o.removeSnapshots(ctx, active)

	var changes []models.ChangeRecord
	for _, p := range active {
		if p.resync {
			path, snapErr := o.downloadSnapshot(ctx, p.binding)
			if snapErr != nil {
				return nil, snapErr
			}
			p.snapshot = path
			continue
		}

		diff, diffErr := o.fetcher.Diff(ctx, p.binding, p.watermark.Version, p.state.Version, p.state.Epoch)
		if diffErr != nil {
			return nil, diffErr
		}
		changes = append(changes, diff...)
	}

	// both layers are replayed in one timeline
	SortByTimestamp(changes)

	tx, err := o.replica.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin replica transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.FromContext(ctx).Err(rbErr).Msg("failed to roll back replica transaction")
		}
	}()

	bindings := bindingsOf(plans)
	events, err := o.apply(ctx, tx, active, bindings, changes)
	if err != nil {
		return nil, err
	}

	saved := make([]models.LayerWatermark, 0, len(active))
	for _, p := range active {
		saved = append(saved, models.WatermarkOf(p.state))
		if p.resync {
			report.Resynced = append(report.Resynced, p.binding.Role)
		} else {
			report.Advanced = append(report.Advanced, p.binding.Role)
		}
	}
	report.Applied = len(changes)
	report.Events = len(events)

	// Watermarks are written while the replica changes are still
	// uncommitted: a failed save rolls the replica back, a failed commit
	// puts the previous watermarks back.
	o.setState(models.StatePersistingWatermark)
	if err = o.watermarks.Save(ctx, saved...); err != nil {
		return nil, fmt.Errorf("save watermarks: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return nil, o.restoreWatermarks(ctx, active, fmt.Errorf("commit replica: %w", err))
	}

	o.mu.Lock()
	for _, p := range active {
		o.knownMarks[p.binding.Role] = models.WatermarkOf(p.state)
		if p.resync {
			delete(o.pending, p.binding.Role)
		}
	}
	o.mu.Unlock()

	return events, nil
}

// plan asks the remote for the state of both layers and decides, per layer,
// whether the cycle diffs it, resyncs it or leaves it alone.
func (o *syncOrchestrator) plan(ctx context.Context) ([]*layerPlan, error) {
	log := logger.FromContext(ctx)
	plans := make([]*layerPlan, 0, 2)

	for _, role := range models.Roles() {
		layer := o.cfg.Layer(role)

		state, err := o.oracle.Latest(ctx, layer)
		if err != nil {
			return nil, err
		}

		wm, found, err := o.watermarks.Get(ctx, layer.ID)
		if err != nil {
			return nil, fmt.Errorf("read watermark of %s layer: %w", role, err)
		}

		o.mu.Lock()
		pending := o.pending[role]
		if found {
			o.knownMarks[role] = wm
		}
		o.mu.Unlock()

		p := &layerPlan{
			state:     state,
			watermark: wm,
			stored:    found,
			binding: models.LayerBinding{
				Role:            role,
				LayerID:         layer.ID,
				Buffer:          layer.Buffer,
				Fields:          state.Fields,
				DisplayedFields: state.DisplayedFields,
			},
		}

		switch {
		case !found:
			log.Info().Str("layer", p.binding.String()).Msg("no watermark, mirroring the full layer")
			p.resync = true
		case pending:
			p.resync = true
		case wm.Epoch != state.Epoch:
			o.markPending(role)
			return nil, fmt.Errorf("%w: %s: stored epoch %d, remote epoch %d",
				ErrEpochMismatch, p.binding, wm.Epoch, state.Epoch)
		case state.Version < wm.Version:
			o.markPending(role)
			return nil, fmt.Errorf("%w: %s: remote version %d is behind stored version %d",
				ErrEpochMismatch, p.binding, state.Version, wm.Version)
		case state.Version > wm.Version:
			p.diff = true
		}

		plans = append(plans, p)
	}

	return plans, nil
}

// apply replays changes onto tx and correlates every change. Resynced
// layers are replaced by their snapshot first. Deletes are correlated before
// they are applied, every other action after. The caller commits tx.
func (o *syncOrchestrator) apply(ctx context.Context, tx store.ReplicaTx, active []*layerPlan, bindings models.Bindings, changes []models.ChangeRecord) ([]models.GeofenceEvent, error) {
	o.setState(models.StateApplying)

	for _, p := range active {
		if !p.resync {
			continue
		}
		n, replaceErr := store.ReplaceLayer(ctx, tx, p.binding.LayerID, p.snapshot)
		if replaceErr != nil {
			return nil, fmt.Errorf("mirror %s: %w", p.binding, replaceErr)
		}
		logger.FromContext(ctx).Info().Str("layer", p.binding.String()).Int("features", n).Msg("layer mirrored")
	}

	var events []models.GeofenceEvent
	for _, change := range changes {
		if change.Action == models.ActionDelete {
			found, corrErr := o.correlate(ctx, tx, bindings, change)
			if corrErr != nil {
				return nil, corrErr
			}
			events = append(events, found...)
		}

		o.setState(models.StateApplying)
		if err := applyChange(ctx, tx, bindings.ByRole(change.Role), change); err != nil {
			return nil, fmt.Errorf("apply %s: %w", change, err)
		}

		if change.Action != models.ActionDelete {
			found, corrErr := o.correlate(ctx, tx, bindings, change)
			if corrErr != nil {
				return nil, corrErr
			}
			events = append(events, found...)
		}
	}

	return events, nil
}

// restoreWatermarks reverts the watermarks of active to what they were
// before the cycle, after the replica refused to commit. A layer that
// cannot be reverted is marked for a full resync.
func (o *syncOrchestrator) restoreWatermarks(ctx context.Context, active []*layerPlan, cause error) error {
	var previous []models.LayerWatermark
	var unknown []int64
	for _, p := range active {
		if p.stored {
			previous = append(previous, p.watermark)
		} else {
			unknown = append(unknown, p.binding.LayerID)
		}
	}

	var errs []error
	if len(previous) > 0 {
		errs = append(errs, o.watermarks.Save(ctx, previous...))
	}
	if len(unknown) > 0 {
		errs = append(errs, o.watermarks.Delete(ctx, unknown...))
	}

	if err := errors.Join(errs...); err != nil {
		logger.FromContext(ctx).Err(err).Msg("failed to restore watermarks, layers marked for resync")
		for _, p := range active {
			o.markPending(p.binding.Role)
		}
		return errors.Join(cause, fmt.Errorf("restore watermarks: %w", err))
	}

	return cause
}

func (o *syncOrchestrator) correlate(ctx context.Context, replica store.ReplicaReader, bindings models.Bindings, change models.ChangeRecord) ([]models.GeofenceEvent, error) {
	o.setState(models.StateCorrelating)
	return o.correlator.Correlate(ctx, replica, bindings, change)
}

// applyChange issues exactly one replica mutation for change.
func applyChange(ctx context.Context, w store.ReplicaWriter, binding models.LayerBinding, change models.ChangeRecord) error {
	switch change.Action {
	case models.ActionCreate:
		return w.Create(ctx, binding.LayerID, change.FID, change.Geometry, attributesOf(change.Fields, binding.Fields))
	case models.ActionUpdate:
		return w.Update(ctx, binding.LayerID, change.FID, change.Geometry, attributesOf(change.Fields, binding.Fields))
	case models.ActionDelete:
		return w.Delete(ctx, binding.LayerID, change.FID)
	default:
		return fmt.Errorf("unsupported action %q", change.Action)
	}
}

// downloadSnapshot exports the full layer into a temporary GeoPackage file
// and returns its path.
func (o *syncOrchestrator) downloadSnapshot(ctx context.Context, binding models.LayerBinding) (string, error) {
	file, err := os.CreateTemp(o.cfg.Storage.SnapshotDir, fmt.Sprintf("layer-%d-*.gpkg", binding.LayerID))
	if err != nil {
		return "", fmt.Errorf("%w: create snapshot file: %w", store.ErrPersistence, err)
	}

	exportErr := o.adapter.ExportLayer(ctx, binding.LayerID, o.cfg.Layer(binding.Role).SRS, file)
	closeErr := file.Close()
	if err = errors.Join(exportErr, closeErr); err != nil {
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("export %s: %w", binding, err)
	}

	return file.Name(), nil
}

func (o *syncOrchestrator) removeSnapshots(ctx context.Context, plans []*layerPlan) {
	for _, p := range plans {
		if p.snapshot == "" {
			continue
		}
		if err := os.Remove(p.snapshot); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.FromContext(ctx).Warn().Err(err).Str("path", p.snapshot).Msg("failed to remove snapshot")
		}
		p.snapshot = ""
	}
}

func (o *syncOrchestrator) fail(ctx context.Context, report models.CycleReport, err error) {
	o.mu.Lock()
	o.state = models.StateError
	o.lastError = err.Error()
	o.mu.Unlock()

	logger.FromContext(ctx).Err(err).
		Bool("epoch_mismatch", errors.Is(err, ErrEpochMismatch)).
		Bool("remote", errors.Is(err, adapter.ErrRemote)).
		Msg("sync cycle failed")

	o.notifier.Send(ctx, notify.FormatFailure(report.CycleID, err))
}

// RequestResync implements [SyncOrchestrator].
func (o *syncOrchestrator) RequestResync(role models.LayerRole) error {
	if role != models.LayerTop && role != models.LayerBottom {
		return fmt.Errorf("%w: %q", ErrUnknownLayerRole, role)
	}
	o.markPending(role)
	return nil
}

func (o *syncOrchestrator) markPending(role models.LayerRole) {
	o.mu.Lock()
	o.pending[role] = true
	o.mu.Unlock()
}

// Status implements [SyncOrchestrator].
func (o *syncOrchestrator) Status() models.SyncStatus {
	o.mu.RLock()
	defer o.mu.RUnlock()

	status := models.SyncStatus{
		State:      o.state,
		LastError:  o.lastError,
		LastRunAt:  o.lastRunAt,
		Watermarks: maps.Clone(o.knownMarks),
	}
	if o.lastCycle != nil {
		report := *o.lastCycle
		report.Advanced = slices.Clone(report.Advanced)
		report.Resynced = slices.Clone(report.Resynced)
		status.LastCycle = &report
	}
	return status
}

func (o *syncOrchestrator) setState(state models.SyncState) {
	o.mu.Lock()
	o.state = state
	o.mu.Unlock()
}

func bindingsOf(plans []*layerPlan) models.Bindings {
	var b models.Bindings
	for _, p := range plans {
		b.Set(p.binding)
	}
	return b
}
