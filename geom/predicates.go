package geom

import "math"

// PointToPointDistance gives the Euclidean distance between p and q.
func PointToPointDistance(p, q Point) float64 {
	return p.DistanceTo(q)
}

// PointToSegmentDistance gives the distance from p to the closest point on
// s. A segment shorter than Epsilon is treated as a point.
func PointToSegmentDistance(p Point, s Segment) float64 {
	d := s.End.Sub(s.Start)
	lenSq := d.Dot(d)
	if lenSq < Epsilon {
		return p.DistanceTo(s.Start)
	}
	t := p.Sub(s.Start).Dot(d) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.DistanceTo(s.Start.Add(d.Scale(t)))
}

// PointOnSegment reports whether p lies on s (within Epsilon).
func PointOnSegment(p Point, s Segment) bool {
	return PointToSegmentDistance(p, s) < Epsilon
}

// PointToCircleDistance gives the distance from p to the disc c. Points on
// or inside the circle are at distance 0.
func PointToCircleDistance(p Point, c Circle) float64 {
	d := p.DistanceTo(c.center)
	if d <= c.radius+Epsilon {
		return 0
	}
	return d - c.radius
}

// PointInPolygon reports whether p is inside the exterior ring of poly and
// inside none of its holes. Classification of points exactly on a ring is
// left to the even-odd rule.
func PointInPolygon(p Point, poly Polygon) bool {
	if !poly.bbox.Expand(Epsilon).ContainsPoint(p) {
		return false
	}
	if !pointInRing(p, poly.exterior) {
		return false
	}
	for _, h := range poly.holes {
		if pointInRing(p, h) {
			return false
		}
	}
	return true
}

func pointInRing(p Point, ring []Point) bool {
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// PointToPolygonDistance is 0 if p is inside poly, otherwise the distance
// to the nearest exterior edge. Holes are not considered.
func PointToPolygonDistance(p Point, poly Polygon) float64 {
	if PointInPolygon(p, poly) {
		return 0
	}
	return pointToRingDistance(p, poly.exterior)
}

func pointToRingDistance(p Point, ring []Point) float64 {
	min := math.Inf(+1)
	forEachEdge(ring, func(e Segment) bool {
		min = math.Min(min, PointToSegmentDistance(p, e))
		return true
	})
	return min
}

// pointToBoundaryDistance includes hole rings.
func pointToBoundaryDistance(p Point, poly Polygon) float64 {
	min := math.Inf(+1)
	poly.forEachRingEdge(func(e Segment) bool {
		min = math.Min(min, PointToSegmentDistance(p, e))
		return true
	})
	return min
}

// Collinear reports whether a, b and c lie on one line, by testing that the
// (doubled) area of the triangle they form is below Epsilon.
func Collinear(a, b, c Point) bool {
	return almostZero(b.Sub(a).Cross(c.Sub(a)))
}

// SegmentsIntersect reports whether a and b share at least one point.
//
// Parallel segments intersect only if they are collinear and their bounding
// boxes overlap. The box test stands in for a 1D projection overlap test;
// other predicates rely on exactly this behaviour. Collinearity is checked
// from both segments so that a zero length segment is only collinear with
// lines passing through it.
func SegmentsIntersect(a, b Segment) bool {
	r := a.End.Sub(a.Start)
	s := b.End.Sub(b.Start)
	den := r.Cross(s)
	if almostZero(den) {
		if !Collinear(a.Start, a.End, b.Start) || !Collinear(b.Start, b.End, a.Start) {
			return false
		}
		return a.BBox().Intersects(b.BBox())
	}
	qp := b.Start.Sub(a.Start)
	t := qp.Cross(s) / den
	u := qp.Cross(r) / den
	return inUnitInterval(t) && inUnitInterval(u)
}

func inUnitInterval(t float64) bool {
	return t >= -Epsilon && t <= 1+Epsilon
}

// SegmentToSegmentDistance is 0 for intersecting segments, otherwise the
// smallest distance from an endpoint of one segment to the other segment.
func SegmentToSegmentDistance(a, b Segment) float64 {
	if SegmentsIntersect(a, b) {
		return 0
	}
	return math.Min(
		math.Min(PointToSegmentDistance(a.Start, b), PointToSegmentDistance(a.End, b)),
		math.Min(PointToSegmentDistance(b.Start, a), PointToSegmentDistance(b.End, a)),
	)
}

// SegmentToCircleDistance gives the distance between s and the disc c.
func SegmentToCircleDistance(s Segment, c Circle) float64 {
	return gap(PointToSegmentDistance(c.center, s) - c.radius)
}

// SegmentToPolygonDistance is 0 when s and poly intersect, otherwise the
// smallest distance between s and an exterior edge.
func SegmentToPolygonDistance(s Segment, poly Polygon) float64 {
	if SegmentIntersectsPolygon(s, poly) {
		return 0
	}
	min := math.Inf(+1)
	forEachEdge(poly.exterior, func(e Segment) bool {
		min = math.Min(min, SegmentToSegmentDistance(s, e))
		return true
	})
	return min
}

// CircleToCircleDistance gives the gap between two discs.
func CircleToCircleDistance(a, b Circle) float64 {
	return gap(a.center.DistanceTo(b.center) - a.radius - b.radius)
}

// CircleToPolygonDistance is 0 when c and poly intersect, otherwise the gap
// between the disc and the nearest exterior edge.
func CircleToPolygonDistance(c Circle, poly Polygon) float64 {
	if CircleIntersectsPolygon(c, poly) {
		return 0
	}
	return gap(pointToRingDistance(c.center, poly.exterior) - c.radius)
}

// PolygonToPolygonDistance is 0 when a and b intersect, otherwise the
// smallest distance between their exterior edges.
func PolygonToPolygonDistance(a, b Polygon) float64 {
	if PolygonsIntersect(a, b) {
		return 0
	}
	min := math.Inf(+1)
	forEachEdge(a.exterior, func(ea Segment) bool {
		forEachEdge(b.exterior, func(eb Segment) bool {
			min = math.Min(min, SegmentToSegmentDistance(ea, eb))
			return true
		})
		return true
	})
	return min
}

// gap clamps separations within Epsilon of touching to 0, so that distance
// agrees with the intersection predicates.
func gap(d float64) float64 {
	if d <= Epsilon {
		return 0
	}
	return d
}

// CirclesIntersect reports whether two discs share a point.
func CirclesIntersect(a, b Circle) bool {
	return a.center.DistanceTo(b.center) <= a.radius+b.radius+Epsilon
}

// SegmentIntersectsCircle reports whether s touches or enters the disc c.
func SegmentIntersectsCircle(s Segment, c Circle) bool {
	return PointToSegmentDistance(c.center, s) <= c.radius+Epsilon
}

// PointIntersectsPolygon reports whether p is inside poly or on any of its
// rings, hole rings included.
func PointIntersectsPolygon(p Point, poly Polygon) bool {
	return PointInPolygon(p, poly) || pointToBoundaryDistance(p, poly) < Epsilon
}

// SegmentIntersectsPolygon reports whether s has an endpoint inside poly or
// touches any of its rings.
func SegmentIntersectsPolygon(s Segment, poly Polygon) bool {
	if !s.BBox().Intersects(poly.bbox) {
		return false
	}
	if PointInPolygon(s.Start, poly) || PointInPolygon(s.End, poly) {
		return true
	}
	return !poly.forEachRingEdge(func(e Segment) bool {
		return !SegmentsIntersect(s, e)
	})
}

// CircleIntersectsPolygon reports whether c has its center inside poly or
// comes within its radius of any ring.
func CircleIntersectsPolygon(c Circle, poly Polygon) bool {
	if !c.BBox().Intersects(poly.bbox) {
		return false
	}
	if PointInPolygon(c.center, poly) {
		return true
	}
	return !poly.forEachRingEdge(func(e Segment) bool {
		return PointToSegmentDistance(c.center, e) > c.radius+Epsilon
	})
}

// PolygonsIntersect reports whether the rings of a and b cross, or one of
// them has a vertex inside the other.
func PolygonsIntersect(a, b Polygon) bool {
	if !a.bbox.Intersects(b.bbox) {
		return false
	}
	crossing := !a.forEachRingEdge(func(ea Segment) bool {
		return b.forEachRingEdge(func(eb Segment) bool {
			return !SegmentsIntersect(ea, eb)
		})
	})
	return crossing || PointInPolygon(a.exterior[0], b) || PointInPolygon(b.exterior[0], a)
}
