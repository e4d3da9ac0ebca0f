// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// LayerRole identifies which side of the geofence a layer plays.
type LayerRole string

const (
	// LayerTop is the layer of moving or point-like features (e.g. vehicles,
	// sensors) that are checked against the bottom layer.
	LayerTop LayerRole = "top"
	// LayerBottom is the layer of area features (zones, parcels) the top
	// layer features are checked against.
	LayerBottom LayerRole = "bottom"
)

// Opposite returns the role on the other side of the geofence.
func (r LayerRole) Opposite() LayerRole {
	if r == LayerTop {
		return LayerBottom
	}
	return LayerTop
}

// Roles lists both layer roles in the fixed processing order.
func Roles() []LayerRole {
	return []LayerRole{LayerTop, LayerBottom}
}

// Field describes a single attribute column of a remote feature layer.
type Field struct {
	ID          int64  `json:"id"`
	Keyname     string `json:"keyname"`
	DisplayName string `json:"display_name"`
	DataType    string `json:"datatype"`
}

// Versioning is the versioning block of a remote feature layer.
type Versioning struct {
	Enabled bool  `json:"enabled"`
	Latest  int64 `json:"latest"`
	Epoch   int64 `json:"epoch"`
}

// ResourceResponse is the subset of GET /api/resource/{id} the geofencer
// relies on.
type ResourceResponse struct {
	FeatureLayer struct {
		Versioning Versioning `json:"versioning"`
		Fields     []Field    `json:"fields"`
	} `json:"feature_layer"`

	VectorLayer *struct {
		SRS struct {
			ID int `json:"id"`
		} `json:"srs"`
	} `json:"vector_layer,omitempty"`
}

// LayerState is the current remote state of a layer as reported by the
// version oracle.
type LayerState struct {
	LayerID int64
	Version int64
	Epoch   int64
	SRS     int

	// Fields maps every remote field id to its keyname.
	Fields map[int64]string

	// DisplayedFields is Fields restricted to the configured allow-list.
	DisplayedFields map[int64]string
}

// LayerWatermark is the last synchronized state of a layer persisted
// between cycles.
type LayerWatermark struct {
	LayerID         int64            `json:"id"`
	Version         int64            `json:"version"`
	Epoch           int64            `json:"epoch"`
	DisplayedFields map[int64]string `json:"displayed_fields"`
}

// WatermarkOf builds the watermark that records state as synchronized.
func WatermarkOf(state LayerState) LayerWatermark {
	return LayerWatermark{
		LayerID:         state.LayerID,
		Version:         state.Version,
		Epoch:           state.Epoch,
		DisplayedFields: state.DisplayedFields,
	}
}

// LayerBinding carries everything needed to process one side of the
// geofence during a cycle: static settings from the configuration and the
// field maps resolved from the remote layer.
type LayerBinding struct {
	Role    LayerRole
	LayerID int64
	Buffer  float64

	Fields          map[int64]string
	DisplayedFields map[int64]string
}

func (b LayerBinding) String() string {
	return fmt.Sprintf("%s layer %d", b.Role, b.LayerID)
}

// Bindings holds the two sides of the geofence.
type Bindings struct {
	Top    LayerBinding
	Bottom LayerBinding
}

// ByRole returns the binding of the given role.
func (b Bindings) ByRole(role LayerRole) LayerBinding {
	if role == LayerBottom {
		return b.Bottom
	}
	return b.Top
}

// Set replaces the binding of binding.Role.
func (b *Bindings) Set(binding LayerBinding) {
	if binding.Role == LayerBottom {
		b.Bottom = binding
		return
	}
	b.Top = binding
}
