package geom

import "math"

// circleSamples is the number of points on a circle's circumference tested
// by PolygonContainsCircle.
const circleSamples = 16

// CircleContainsPoint reports whether p is strictly inside c. Points on the
// circumference are not contained.
func CircleContainsPoint(c Circle, p Point) bool {
	return p.DistanceTo(c.center) < c.radius-Epsilon
}

// CircleContainsSegment reports whether both endpoints of s are strictly
// inside c. Discs are convex, so this covers the whole segment.
func CircleContainsSegment(c Circle, s Segment) bool {
	return CircleContainsPoint(c, s.Start) && CircleContainsPoint(c, s.End)
}

// CircleContainsCircle reports whether inner lies strictly inside outer.
func CircleContainsCircle(outer, inner Circle) bool {
	return outer.center.DistanceTo(inner.center)+inner.radius < outer.radius-Epsilon
}

// CircleContainsPolygon reports whether every exterior vertex of poly is
// strictly inside c.
func CircleContainsPolygon(c Circle, poly Polygon) bool {
	for _, v := range poly.exterior {
		if !CircleContainsPoint(c, v) {
			return false
		}
	}
	return true
}

// PolygonContainsPoint reports whether p is inside poly and not within
// Epsilon of any of its rings.
func PolygonContainsPoint(poly Polygon, p Point) bool {
	return PointInPolygon(p, poly) && pointToBoundaryDistance(p, poly) > Epsilon
}

// PolygonContainsSegment reports whether s is strictly inside poly. Both
// endpoints must be contained, and s may only touch a ring of poly at a
// shared endpoint.
func PolygonContainsSegment(poly Polygon, s Segment) bool {
	if !PolygonContainsPoint(poly, s.Start) || !PolygonContainsPoint(poly, s.End) {
		return false
	}
	return !crossesRings(s, poly)
}

// PolygonContainsCircle approximates containment by sampling 16 evenly
// spaced points on the circumference of c and requiring each of them to be
// inside poly.
func PolygonContainsCircle(poly Polygon, c Circle) bool {
	for i := 0; i < circleSamples; i++ {
		theta := 2 * math.Pi * float64(i) / circleSamples
		p := Point{
			c.center.X + c.radius*math.Cos(theta),
			c.center.Y + c.radius*math.Sin(theta),
		}
		if !PointInPolygon(p, poly) {
			return false
		}
	}
	return true
}

// PolygonContainsPolygon reports whether every exterior vertex of inner is
// contained in outer and no exterior edge of inner crosses a ring of outer.
func PolygonContainsPolygon(outer, inner Polygon) bool {
	for _, v := range inner.exterior {
		if !PolygonContainsPoint(outer, v) {
			return false
		}
	}
	return forEachEdge(inner.exterior, func(e Segment) bool {
		return !crossesRings(e, outer)
	})
}

// crossesRings reports whether s intersects an edge of any ring of poly
// anywhere other than at an endpoint the two share.
func crossesRings(s Segment, poly Polygon) bool {
	return !poly.forEachRingEdge(func(e Segment) bool {
		if !SegmentsIntersect(s, e) {
			return true
		}
		return sharesEndpoint(s, e)
	})
}

func sharesEndpoint(a, b Segment) bool {
	for _, p := range [...]Point{a.Start, a.End} {
		for _, q := range [...]Point{b.Start, b.End} {
			if p.DistanceTo(q) < Epsilon {
				return true
			}
		}
	}
	return false
}
