// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncState is the state of the synchronization state machine.
type SyncState string

const (
	StateIdle                SyncState = "idle"
	StateCheckingVersions    SyncState = "checking_versions"
	StateFetchingChanges     SyncState = "fetching_changes"
	StateApplying            SyncState = "applying"
	StateCorrelating         SyncState = "correlating"
	StatePersistingWatermark SyncState = "persisting_watermark"
	StateError               SyncState = "error"
)

// CycleReport summarizes a finished cycle.
type CycleReport struct {
	CycleID string `json:"cycle_id"`

	// Advanced lists the roles whose changes were replayed.
	Advanced []LayerRole `json:"advanced,omitempty"`

	// Resynced lists the roles that were mirrored from a full snapshot.
	Resynced []LayerRole `json:"resynced,omitempty"`

	Applied int `json:"applied"`
	Events  int `json:"events"`
}

// SyncStatus is a point-in-time view of the orchestrator exposed by the
// status endpoint.
type SyncStatus struct {
	State      SyncState                    `json:"state"`
	LastCycle  *CycleReport                 `json:"last_cycle,omitempty"`
	LastError  string                       `json:"last_error,omitempty"`
	LastRunAt  time.Time                    `json:"last_run_at"`
	Watermarks map[LayerRole]LayerWatermark `json:"watermarks,omitempty"`
}
