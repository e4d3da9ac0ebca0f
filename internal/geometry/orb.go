// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package geometry

import (
	"bytes"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/encoding/wkt"
)

type wktDecoder struct{}

// NewDecoder returns a [Decoder] for WKT (and EWKT) encoded geometries, the
// format used by the remote change feed and by the replica.
func NewDecoder() Decoder {
	return wktDecoder{}
}

// Decode implements [Decoder].
func (wktDecoder) Decode(encoded []byte) (Geometry, error) {
	text := bytes.TrimSpace(encoded)
	if len(text) == 0 {
		return nil, ErrEmptyGeometry
	}

	// EWKT carries an SRID prefix: "SRID=3857;POINT(1 2)"
	if bytes.HasPrefix(bytes.ToUpper(text), []byte("SRID=")) {
		if idx := bytes.IndexByte(text, ';'); idx != -1 {
			text = text[idx+1:]
		}
	}

	g, err := wkt.Unmarshal(string(text))
	if err != nil {
		return nil, fmt.Errorf("%w: decode wkt: %w", ErrInvalidGeometry, err)
	}

	return newShape(g)
}

// WKBToWKT re-encodes a WKB geometry as WKT so that every geometry in the
// replica shares one encoding.
func WKBToWKT(b []byte) ([]byte, error) {
	g, err := wkb.Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("%w: decode wkb: %w", ErrInvalidGeometry, err)
	}
	return []byte(wkt.MarshalString(g)), nil
}

// EnvelopeOf decodes encoded and returns its envelope.
func EnvelopeOf(decoder Decoder, encoded []byte) (Envelope, error) {
	g, err := decoder.Decode(encoded)
	if err != nil {
		return Envelope{}, err
	}
	return g.Envelope(), nil
}

// shape is an orb geometry plus an accumulated buffer radius. Buffering is
// kept symbolic: two shapes intersect when the distance between their cores
// does not exceed the sum of their radii.
type shape struct {
	core   orb.Geometry
	parts  parts
	radius float64
}

func newShape(g orb.Geometry) (*shape, error) {
	p, err := decompose(g)
	if err != nil {
		return nil, err
	}
	if p.isEmpty() {
		return nil, ErrEmptyGeometry
	}
	return &shape{core: g, parts: p}, nil
}

func (s *shape) Envelope() Envelope {
	b := s.core.Bound()
	return Envelope{
		MinX: b.Min.X(),
		MinY: b.Min.Y(),
		MaxX: b.Max.X(),
		MaxY: b.Max.Y(),
	}.Expand(s.radius)
}

func (s *shape) Buffer(distance float64) Geometry {
	if distance <= 0 {
		return s
	}
	return &shape{core: s.core, parts: s.parts, radius: s.radius + distance}
}

// Intersects only compares shapes produced by this backend; a foreign
// geometry never intersects.
func (s *shape) Intersects(other Geometry) bool {
	o, ok := other.(*shape)
	if !ok || o == nil {
		return false
	}
	if !s.Envelope().Intersects(o.Envelope()) {
		return false
	}
	return distance(s.parts, o.parts) <= s.radius+o.radius
}
