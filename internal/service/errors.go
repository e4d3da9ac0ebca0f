// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrVersioningDisabled is returned when the remote layer has
	// versioning turned off. No diff is possible for such a layer until the
	// remote configuration changes.
	ErrVersioningDisabled = errors.New("layer versioning is disabled")

	// ErrEpochMismatch is returned when the stored epoch of a layer differs
	// from the remote one. The layer is resynced from a full snapshot on the
	// next cycle.
	ErrEpochMismatch = errors.New("layer epoch mismatch")

	// ErrPartialVersionFetch is returned when the metadata of at least one
	// version of a diff range could not be retrieved.
	ErrPartialVersionFetch = errors.New("partial version metadata fetch")

	// ErrCycleInProgress is returned by RunCycle when another cycle holds
	// the replica.
	ErrCycleInProgress = errors.New("sync cycle already in progress")

	ErrUnknownLayerRole = errors.New("unknown layer role")
)
