// Package geokit answers distance, intersection, containment, measurement
// and ray casting questions about 2D shapes, and optionally delegates range
// queries to an R-Tree of items.
package geokit

import (
	"fmt"

	"github.com/peterstace/geokit/geom"
	"github.com/peterstace/geokit/rtree"
	"github.com/sirupsen/logrus"
)

// Engine composes the predicates from package geom. The zero value is ready
// to use and has no index attached.
type Engine struct {
	// Index, if set, is used by the query methods.
	Index *rtree.RTree[*Item]

	// Log receives warnings about unsupported requests. The standard logrus
	// logger is used when it is nil.
	Log logrus.FieldLogger
}

// NewEngine creates an engine that queries index. The index may be nil.
func NewEngine(index *rtree.RTree[*Item]) *Engine {
	return &Engine{Index: index, Log: logrus.StandardLogger()}
}

func (e *Engine) log() logrus.FieldLogger {
	if e.Log == nil {
		return logrus.StandardLogger()
	}
	return e.Log
}

// rank orders the variants so that pairwise predicates only need to handle
// one orientation of each pair.
func rank(s geom.Shape) int {
	switch s.(type) {
	case geom.Point:
		return 0
	case geom.Segment:
		return 1
	case geom.Circle:
		return 2
	case geom.Polygon:
		return 3
	}
	panic(fmt.Sprintf("geokit: unknown shape %T", s))
}

func ordered(a, b geom.Shape) (geom.Shape, geom.Shape) {
	if rank(a) > rank(b) {
		return b, a
	}
	return a, b
}

// Distance gives the smallest distance between a and b. It is 0 whenever the
// shapes intersect. Distances to polygons are measured to their exterior
// rings.
func (e *Engine) Distance(a, b geom.Shape) float64 {
	a, b = ordered(a, b)
	switch a := a.(type) {
	case geom.Point:
		switch b := b.(type) {
		case geom.Point:
			return geom.PointToPointDistance(a, b)
		case geom.Segment:
			return geom.PointToSegmentDistance(a, b)
		case geom.Circle:
			return geom.PointToCircleDistance(a, b)
		case geom.Polygon:
			return geom.PointToPolygonDistance(a, b)
		}
	case geom.Segment:
		switch b := b.(type) {
		case geom.Segment:
			return geom.SegmentToSegmentDistance(a, b)
		case geom.Circle:
			return geom.SegmentToCircleDistance(a, b)
		case geom.Polygon:
			return geom.SegmentToPolygonDistance(a, b)
		}
	case geom.Circle:
		switch b := b.(type) {
		case geom.Circle:
			return geom.CircleToCircleDistance(a, b)
		case geom.Polygon:
			return geom.CircleToPolygonDistance(a, b)
		}
	case geom.Polygon:
		if b, ok := b.(geom.Polygon); ok {
			return geom.PolygonToPolygonDistance(a, b)
		}
	}
	panic(fmt.Sprintf("geokit: unhandled shapes %T and %T", a, b))
}

// Intersects reports whether a and b share at least one point. Touching
// shapes intersect, and Intersects(a, b) == Intersects(b, a).
func (e *Engine) Intersects(a, b geom.Shape) bool {
	a, b = ordered(a, b)
	switch a := a.(type) {
	case geom.Point:
		switch b := b.(type) {
		case geom.Point:
			return geom.PointToPointDistance(a, b) < geom.Epsilon
		case geom.Segment:
			return geom.PointOnSegment(a, b)
		case geom.Circle:
			return geom.PointToCircleDistance(a, b) == 0
		case geom.Polygon:
			return geom.PointIntersectsPolygon(a, b)
		}
	case geom.Segment:
		switch b := b.(type) {
		case geom.Segment:
			return geom.SegmentsIntersect(a, b)
		case geom.Circle:
			return geom.SegmentIntersectsCircle(a, b)
		case geom.Polygon:
			return geom.SegmentIntersectsPolygon(a, b)
		}
	case geom.Circle:
		switch b := b.(type) {
		case geom.Circle:
			return geom.CirclesIntersect(a, b)
		case geom.Polygon:
			return geom.CircleIntersectsPolygon(a, b)
		}
	case geom.Polygon:
		if b, ok := b.(geom.Polygon); ok {
			return geom.PolygonsIntersect(a, b)
		}
	}
	panic(fmt.Sprintf("geokit: unhandled shapes %T and %T", a, b))
}

// Contains reports whether contained lies strictly inside container.
// Boundaries are excluded, so Contains implies Intersects but not the other
// way around. Points and segments have no interior and contain nothing.
func (e *Engine) Contains(container, contained geom.Shape) bool {
	switch c := container.(type) {
	case geom.Point, geom.Segment:
		return false
	case geom.Circle:
		switch s := contained.(type) {
		case geom.Point:
			return geom.CircleContainsPoint(c, s)
		case geom.Segment:
			return geom.CircleContainsSegment(c, s)
		case geom.Circle:
			return geom.CircleContainsCircle(c, s)
		case geom.Polygon:
			return geom.CircleContainsPolygon(c, s)
		}
	case geom.Polygon:
		switch s := contained.(type) {
		case geom.Point:
			return geom.PolygonContainsPoint(c, s)
		case geom.Segment:
			return geom.PolygonContainsSegment(c, s)
		case geom.Circle:
			return geom.PolygonContainsCircle(c, s)
		case geom.Polygon:
			return geom.PolygonContainsPolygon(c, s)
		}
	}
	panic(fmt.Sprintf("geokit: unhandled shapes %T and %T", container, contained))
}
