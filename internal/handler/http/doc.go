// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the status surface of the daemon.
//
// It exposes route wiring, request handlers and middleware for a small
// JSON API: health and version checks, the synchronization status, and
// operator actions that queue an extra cycle or a full layer resync.
// Request ids and access logging are handled in this package before
// requests reach the orchestrator.
package http
