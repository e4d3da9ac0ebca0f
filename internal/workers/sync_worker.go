// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/internal/service"
)

const defaultSyncInterval = time.Minute

// SyncWorker runs one synchronization cycle per tick. Cycles never overlap:
// a tick that arrives while a cycle is still running is skipped and
// counted.
type SyncWorker struct {
	orchestrator service.SyncOrchestrator
	interval     time.Duration
	logger       *logger.Logger

	// busy is held by the goroutine running the current cycle.
	busy    sync.Mutex
	skipped atomic.Int64
	trigger chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncWorker creates a SyncWorker that drives orchestrator every
// interval. If interval is zero or negative it defaults to one minute. The
// worker is idle until Start is called.
func NewSyncWorker(orchestrator service.SyncOrchestrator, interval time.Duration, log *logger.Logger) *SyncWorker {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	return &SyncWorker{
		orchestrator: orchestrator,
		interval:     interval,
		logger:       log,
		trigger:      make(chan struct{}, 1),
	}
}

// Start implements [Worker]. It stops any previously running loop, runs a
// first cycle right away and then one cycle per interval.
func (w *SyncWorker) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	w.logger.Info().Dur("interval", w.interval).Msg("sync worker started")

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		w.tick(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				w.tick(jobCtx)
			case <-w.trigger:
				w.tick(jobCtx)
			}
		}
	}()
}

// Stop implements [Worker]. It cancels the loop, waits for a running cycle
// to return and is a no-op when the worker is not running.
func (w *SyncWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

// Trigger asks the loop for an extra cycle. It returns false when a request
// is already queued.
func (w *SyncWorker) Trigger() bool {
	select {
	case w.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Skipped returns the number of ticks dropped because a cycle was running.
func (w *SyncWorker) Skipped() int64 {
	return w.skipped.Load()
}

func (w *SyncWorker) tick(ctx context.Context) {
	if !w.busy.TryLock() {
		skipped := w.skipped.Add(1)
		w.logger.Warn().Int64("skipped", skipped).Msg("previous cycle still running, tick skipped")
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.busy.Unlock()

		// failures are logged and notified by the orchestrator
		report, err := w.orchestrator.RunCycle(ctx)
		if err != nil {
			return
		}
		w.logger.Debug().Str("cycle_id", report.CycleID).Msg("tick done")
	}()
}
