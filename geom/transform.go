package geom

import (
	"fmt"
	"math"
)

// Transform is a 2D affine transformation, stored as the top two rows of a
// 3x3 matrix:
//
//	| a  b  c |
//	| d  e  f |
//
// which maps (x, y) to (a*x + b*y + c, d*x + e*y + f). The zero value is not
// useful; start from Identity.
type Transform struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the transform that leaves geometries unchanged.
func Identity() Transform {
	return Transform{A: 1, E: 1}
}

// Then returns the transform that applies t followed by next.
func (t Transform) Then(next Transform) Transform {
	return Transform{
		A: next.A*t.A + next.B*t.D,
		B: next.A*t.B + next.B*t.E,
		C: next.A*t.C + next.B*t.F + next.C,
		D: next.D*t.A + next.E*t.D,
		E: next.D*t.B + next.E*t.E,
		F: next.D*t.C + next.E*t.F + next.F,
	}
}

// Translate appends a translation.
func (t Transform) Translate(x, y float64) Transform {
	return t.Then(Transform{A: 1, C: x, E: 1, F: y})
}

// Scale appends a scaling about the origin.
func (t Transform) Scale(x, y float64) Transform {
	return t.Then(Transform{A: x, E: y})
}

// Rotate appends a counter-clockwise rotation about the origin (angle in
// radians).
func (t Transform) Rotate(angle float64) Transform {
	sin, cos := math.Sincos(angle)
	return t.Then(Transform{A: cos, B: -sin, D: sin, E: cos})
}

// Point applies the transform to p.
func (t Transform) Point(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// Vector applies the transform to v, ignoring translation.
func (t Transform) Vector(v Point) Point {
	return Point{
		X: t.A*v.X + t.B*v.Y,
		Y: t.D*v.X + t.E*v.Y,
	}
}

// Apply transforms s and returns a shape of the same variant. Circles can
// only be transformed by similarity transforms (rotation, translation,
// uniform scaling, reflection); anything that would turn a circle into an
// ellipse gives ErrUnsupportedGeometry.
func (t Transform) Apply(s Shape) (Shape, error) {
	switch s := s.(type) {
	case Point:
		return t.Point(s), nil
	case Segment:
		return Segment{t.Point(s.Start), t.Point(s.End)}, nil
	case Circle:
		sx := math.Hypot(t.A, t.D)
		sy := math.Hypot(t.B, t.E)
		if !almostEqual(sx, sy) || !almostZero(t.A*t.B+t.D*t.E) {
			return nil, fmt.Errorf("%w: non-uniform transform of a circle", ErrUnsupportedGeometry)
		}
		c, err := NewCircle(t.Point(s.center), s.radius*sx)
		if err != nil {
			return nil, err
		}
		return c, nil
	case Polygon:
		holes := make([][]Point, len(s.holes))
		for i, h := range s.holes {
			holes[i] = t.points(h)
		}
		p, err := NewPolygon(t.points(s.exterior), holes...)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedGeometry, s)
	}
}

// ApplyRay transforms both the origin and the direction of r.
func (t Transform) ApplyRay(r Ray) Ray {
	return Ray{Origin: t.Point(r.Origin), Direction: t.Vector(r.Direction)}
}

func (t Transform) points(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = t.Point(p)
	}
	return out
}
