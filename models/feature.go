// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ReplicaFeature is the locally mirrored copy of a remote feature.
// Geometry is kept in its encoded (WKT) form; Attributes are keyed by the
// field keyname.
type ReplicaFeature struct {
	FID        int64
	Geometry   []byte
	Attributes map[string]any
}

// GeofenceEvent is a detected buffered intersection between a changed
// feature and a feature of the opposite layer.
type GeofenceEvent struct {
	TopFID           int64
	BottomFID        int64
	Action           Action
	ChangedRole      LayerRole
	TopAttributes    map[string]any
	BottomAttributes map[string]any
}
