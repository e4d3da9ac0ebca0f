// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background jobs of the daemon.
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers in a unified way.
package workers

import "context"

// Worker is a background job with an explicit lifetime.
//
// Start must not block: implementations spawn their own goroutines, which
// exit when ctx is cancelled or Stop is called. Stop blocks until every
// goroutine of the worker has returned and is safe to call more than once.
//
// Example implementation:
//
//	type MyWorker struct{ cancel context.CancelFunc }
//
//	func (w *MyWorker) Start(ctx context.Context) {
//	    ctx, w.cancel = context.WithCancel(ctx)
//	    go process(ctx)
//	}
//
//	func (w *MyWorker) Stop() { w.cancel() }
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
