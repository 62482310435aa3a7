package geom

import "math"

// RaySegment intersects r with s. Only hits in front of the origin count.
// Segments parallel to the ray are never hit.
func RaySegment(r Ray, s Segment) (Hit, bool) {
	if r.Direction == (Point{}) {
		return Hit{}, false
	}
	e := s.End.Sub(s.Start)
	den := r.Direction.Cross(e)
	if almostZero(den) {
		return Hit{}, false
	}
	ao := s.Start.Sub(r.Origin)
	t := ao.Cross(e) / den
	u := ao.Cross(r.Direction) / den
	if t < 0 || !inUnitInterval(u) {
		return Hit{}, false
	}
	return r.hitAt(t), true
}

// RayCircle intersects r with c and returns the nearest non-negative root of
// |O + tD - C|² = r². A ray starting inside the circle hits its far side.
func RayCircle(r Ray, c Circle) (Hit, bool) {
	a := r.Direction.Dot(r.Direction)
	if a == 0 {
		return Hit{}, false
	}
	oc := r.Origin.Sub(c.center)
	b := 2 * r.Direction.Dot(oc)
	cc := oc.Dot(oc) - c.radius*c.radius
	disc := b*b - 4*a*cc
	if disc < 0 {
		if disc < -Epsilon {
			return Hit{}, false
		}
		disc = 0
	}
	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	switch {
	case t1 >= 0:
		return r.hitAt(t1), true
	case t2 >= 0:
		return r.hitAt(t2), true
	default:
		return Hit{}, false
	}
}

// RayPolygon intersects r with every exterior edge of poly and returns the
// hit closest to the ray origin.
func RayPolygon(r Ray, poly Polygon) (Hit, bool) {
	var best Hit
	found := false
	forEachEdge(poly.exterior, func(e Segment) bool {
		h, ok := RaySegment(r, e)
		if ok && (!found || h.Distance < best.Distance) {
			best, found = h, true
		}
		return true
	})
	return best, found
}

// RayPoint reports whether p lies on r (within Epsilon).
func RayPoint(r Ray, p Point) (Hit, bool) {
	a := r.Direction.Dot(r.Direction)
	if a == 0 {
		return Hit{}, false
	}
	t := p.Sub(r.Origin).Dot(r.Direction) / a
	if t < 0 {
		t = 0
	}
	if r.pointAt(t).DistanceTo(p) >= Epsilon {
		return Hit{}, false
	}
	return Hit{Point: p, Distance: p.DistanceTo(r.Origin)}, true
}

func (r Ray) pointAt(t float64) Point {
	return r.Origin.Add(r.Direction.Scale(t))
}

func (r Ray) hitAt(t float64) Hit {
	return Hit{
		Point:    r.pointAt(t),
		Distance: t * r.Direction.Length(),
	}
}
