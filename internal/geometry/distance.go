// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

type segment [2]orb.Point

// parts is a geometry flattened into the primitives the distance
// computation works on.
type parts struct {
	points   []orb.Point
	segments []segment
	polygons []orb.Polygon
}

func (p parts) isEmpty() bool {
	return len(p.points) == 0 && len(p.segments) == 0
}

func decompose(g orb.Geometry) (parts, error) {
	var p parts
	if err := p.add(g); err != nil {
		return parts{}, err
	}
	return p, nil
}

func (p *parts) add(g orb.Geometry) error {
	switch v := g.(type) {
	case orb.Point:
		p.points = append(p.points, v)
	case orb.MultiPoint:
		p.points = append(p.points, v...)
	case orb.LineString:
		p.addPath(v)
	case orb.MultiLineString:
		for _, ls := range v {
			p.addPath(ls)
		}
	case orb.Ring:
		p.addPolygon(orb.Polygon{v})
	case orb.Polygon:
		p.addPolygon(v)
	case orb.MultiPolygon:
		for _, poly := range v {
			p.addPolygon(poly)
		}
	case orb.Bound:
		p.addPolygon(v.ToPolygon())
	case orb.Collection:
		for _, item := range v {
			if err := p.add(item); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedGeometry, g)
	}
	return nil
}

func (p *parts) addPath(path []orb.Point) {
	switch len(path) {
	case 0:
		return
	case 1:
		p.points = append(p.points, path[0])
		return
	}
	for i := 1; i < len(path); i++ {
		p.segments = append(p.segments, segment{path[i-1], path[i]})
	}
}

func (p *parts) addPolygon(poly orb.Polygon) {
	if len(poly) == 0 || len(poly[0]) == 0 {
		return
	}
	p.polygons = append(p.polygons, poly)
	for _, ring := range poly {
		p.addPath(ring)
		if n := len(ring); n > 1 && ring[0] != ring[n-1] {
			p.segments = append(p.segments, segment{ring[n-1], ring[0]})
		}
	}
}

// vertices returns one representative point per primitive plus every
// segment endpoint.
func (p parts) vertices() []orb.Point {
	out := make([]orb.Point, 0, len(p.points)+2*len(p.segments))
	out = append(out, p.points...)
	for _, s := range p.segments {
		out = append(out, s[0], s[1])
	}
	return out
}

// containsAnyOf reports whether a polygon of p contains a vertex of other.
func (p parts) containsAnyOf(other parts) bool {
	if len(p.polygons) == 0 {
		return false
	}
	for _, v := range other.vertices() {
		for _, poly := range p.polygons {
			if planar.PolygonContains(poly, v) {
				return true
			}
		}
	}
	return false
}

// distance returns the minimal planar distance between two flattened
// geometries; zero when they touch, cross or one contains the other.
func distance(a, b parts) float64 {
	if a.containsAnyOf(b) || b.containsAnyOf(a) {
		return 0
	}

	best := math.Inf(1)
	for _, pa := range a.points {
		for _, pb := range b.points {
			best = math.Min(best, planar.Distance(pa, pb))
		}
		for _, sb := range b.segments {
			best = math.Min(best, planar.DistanceFromSegment(sb[0], sb[1], pa))
		}
	}
	for _, sa := range a.segments {
		for _, pb := range b.points {
			best = math.Min(best, planar.DistanceFromSegment(sa[0], sa[1], pb))
		}
		for _, sb := range b.segments {
			best = math.Min(best, segmentDistance(sa, sb))
			if best == 0 {
				return 0
			}
		}
	}
	return best
}

func segmentDistance(a, b segment) float64 {
	if segmentsIntersect(a, b) {
		return 0
	}
	return math.Min(
		math.Min(planar.DistanceFromSegment(b[0], b[1], a[0]), planar.DistanceFromSegment(b[0], b[1], a[1])),
		math.Min(planar.DistanceFromSegment(a[0], a[1], b[0]), planar.DistanceFromSegment(a[0], a[1], b[1])),
	)
}

func segmentsIntersect(a, b segment) bool {
	d1 := orientation(b[0], b[1], a[0])
	d2 := orientation(b[0], b[1], a[1])
	d3 := orientation(a[0], a[1], b[0])
	d4 := orientation(a[0], a[1], b[1])

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(b, a[0]):
		return true
	case d2 == 0 && onSegment(b, a[1]):
		return true
	case d3 == 0 && onSegment(a, b[0]):
		return true
	case d4 == 0 && onSegment(a, b[1]):
		return true
	}
	return false
}

func orientation(a, b, c orb.Point) float64 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
}

// onSegment assumes p is collinear with s.
func onSegment(s segment, p orb.Point) bool {
	return math.Min(s[0].X(), s[1].X()) <= p.X() && p.X() <= math.Max(s[0].X(), s[1].X()) &&
		math.Min(s[0].Y(), s[1].Y()) <= p.Y() && p.Y() <= math.Max(s[0].Y(), s[1].Y())
}
