// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the optional status API of the daemon.
//
// It owns the HTTP server lifecycle: startup and graceful shutdown.
// Signal handling lives in the application package.
package server
