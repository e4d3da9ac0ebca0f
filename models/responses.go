// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatusResponse is the body of the status endpoint: the orchestrator view
// plus the scheduler counters.
type StatusResponse struct {
	SyncStatus

	// SkippedTicks counts the ticks dropped because a cycle was still
	// running.
	SkippedTicks int64 `json:"skipped_ticks"`
}

// VersionResponse describes the running build.
type VersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// TriggerResponse reports whether a manual cycle was queued. Queued is false
// when an earlier request is still waiting for the scheduler.
type TriggerResponse struct {
	Queued bool `json:"queued"`
}

// ResyncResponse acknowledges a resync request for one layer.
type ResyncResponse struct {
	Role    LayerRole `json:"role"`
	Pending bool      `json:"pending"`
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}
