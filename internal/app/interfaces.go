// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app assembles the daemon from its configuration and runs it until
// a termination signal arrives.
package app

import "context"

// Runner defines the minimal lifecycle contract of a runnable application.
type Runner interface {
	// Run starts the application and blocks until exit.
	Run(ctx context.Context) error
}
