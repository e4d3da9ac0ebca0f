// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package geometry defines the narrow geometry capability the geofencing
// core depends on and ships a planar backend built on paulmach/orb.
//
// The core never inspects coordinates directly: it decodes encoded
// geometries through a [Decoder], asks for an [Envelope] for the
// bounding-box pre-filter, and tests buffered shapes with
// [Geometry.Intersects]. Any backend satisfying these interfaces can be
// substituted, which keeps the correlator testable with synthetic shapes.
package geometry

import "errors"

var (
	// ErrEmptyGeometry is returned when the encoded payload is empty.
	ErrEmptyGeometry = errors.New("empty geometry")
	// ErrUnsupportedGeometry is returned for geometry types the backend
	// cannot evaluate.
	ErrUnsupportedGeometry = errors.New("unsupported geometry type")
	// ErrInvalidGeometry is returned when the payload cannot be parsed.
	ErrInvalidGeometry = errors.New("invalid geometry")
)

// Geometry is the capability set required from a geometry backend.
type Geometry interface {
	// Envelope returns the axis-aligned bounding box of the (buffered)
	// geometry.
	Envelope() Envelope

	// Buffer returns the geometry expanded by distance in every direction.
	// A zero or negative distance returns the receiver unchanged.
	Buffer(distance float64) Geometry

	// Intersects reports whether the two geometries share at least one
	// point, boundaries included.
	Intersects(other Geometry) bool
}

// Decoder turns an encoded geometry (as carried by change payloads and the
// replica) into a [Geometry].
type Decoder interface {
	Decode(encoded []byte) (Geometry, error)
}

// Envelope is an axis-aligned bounding box.
type Envelope struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Expand grows the envelope by d in every direction.
func (e Envelope) Expand(d float64) Envelope {
	return Envelope{
		MinX: e.MinX - d,
		MinY: e.MinY - d,
		MaxX: e.MaxX + d,
		MaxY: e.MaxY + d,
	}
}

// Intersects reports whether the two envelopes overlap or touch.
func (e Envelope) Intersects(o Envelope) bool {
	return e.MinX <= o.MaxX && o.MinX <= e.MaxX &&
		e.MinY <= o.MaxY && o.MinY <= e.MaxY
}
