// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/Wobas/ngw-geofencer/internal/logger"
)

type consoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleNotifier returns a [Notifier] that prints every message on its
// own line to out.
func NewConsoleNotifier(out io.Writer) Notifier {
	return &consoleNotifier{out: out}
}

func (c *consoleNotifier) Send(ctx context.Context, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := fmt.Fprintln(c.out, message); err != nil {
		logger.FromContext(ctx).Err(err).Msg("failed to print notification")
	}
}
