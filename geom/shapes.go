package geom

import (
	"fmt"
	"math"
)

// Point is a holder for 2D coordinates X and Y. It doubles as a vector.
type Point struct {
	X, Y float64
}

// BBox gives the degenerate box at p.
func (p Point) BBox() BBox {
	return BBox{p.X, p.Y, p.X, p.Y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Dot is the dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross is the z component of the cross product of p and q.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Length of p, treated as a vector.
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// DistanceTo gives the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 { return p.Sub(q).Length() }

// Segment is the straight line between Start and End. Start and End may
// coincide.
type Segment struct {
	Start, End Point
}

// BBox gives the bounding box of the segment.
func (s Segment) BBox() BBox {
	return NewBBox(s.Start.X, s.Start.Y, s.End.X, s.End.Y)
}

// Length of the segment.
func (s Segment) Length() float64 {
	return s.Start.DistanceTo(s.End)
}

// Circle is a disc with positive radius.
type Circle struct {
	center Point
	radius float64
}

// NewCircle creates a circle. The radius must be strictly positive.
func NewCircle(center Point, radius float64) (Circle, error) {
	if !(radius > 0) {
		return Circle{}, fmt.Errorf("%w: circle radius %v is not positive", ErrInvalidGeometry, radius)
	}
	return Circle{center, radius}, nil
}

// Center of the circle.
func (c Circle) Center() Point { return c.center }

// Radius of the circle.
func (c Circle) Radius() float64 { return c.radius }

// BBox gives the bounding box of the circle.
func (c Circle) BBox() BBox {
	return BBox{
		c.center.X - c.radius, c.center.Y - c.radius,
		c.center.X + c.radius, c.center.Y + c.radius,
	}
}

// Polygon is an exterior ring with zero or more holes. Rings are implicitly
// closed: the last vertex connects back to the first and must not repeat
// it.
type Polygon struct {
	exterior []Point
	holes    [][]Point
	bbox     BBox
}

// NewPolygon creates a polygon. Every ring must have at least 3 vertices.
// The rings are copied.
func NewPolygon(exterior []Point, holes ...[]Point) (Polygon, error) {
	if len(exterior) < 3 {
		return Polygon{}, fmt.Errorf("%w: exterior ring has %d vertices", ErrInvalidGeometry, len(exterior))
	}
	p := Polygon{exterior: append([]Point(nil), exterior...)}
	for i, h := range holes {
		if len(h) < 3 {
			return Polygon{}, fmt.Errorf("%w: hole %d has %d vertices", ErrInvalidGeometry, i, len(h))
		}
		p.holes = append(p.holes, append([]Point(nil), h...))
	}
	p.bbox = BBoxOf(p.exterior)
	return p, nil
}

// Exterior returns a copy of the exterior ring.
func (p Polygon) Exterior() []Point {
	return append([]Point(nil), p.exterior...)
}

// Holes returns a copy of the hole rings.
func (p Polygon) Holes() [][]Point {
	holes := make([][]Point, len(p.holes))
	for i, h := range p.holes {
		holes[i] = append([]Point(nil), h...)
	}
	return holes
}

// NumHoles gives the number of hole rings.
func (p Polygon) NumHoles() int { return len(p.holes) }

// BBox gives the bounding box of the exterior ring.
func (p Polygon) BBox() BBox { return p.bbox }

// Edges gives the edges of the exterior ring.
func (p Polygon) Edges() []Segment {
	return ringEdges(p.exterior)
}

// forEachRingEdge calls fn for every edge of every ring, exterior first,
// stopping early if fn returns false.
func (p Polygon) forEachRingEdge(fn func(Segment) bool) bool {
	if !forEachEdge(p.exterior, fn) {
		return false
	}
	for _, h := range p.holes {
		if !forEachEdge(h, fn) {
			return false
		}
	}
	return true
}

func forEachEdge(ring []Point, fn func(Segment) bool) bool {
	for i := range ring {
		j := (i + 1) % len(ring)
		if !fn(Segment{ring[i], ring[j]}) {
			return false
		}
	}
	return true
}

func ringEdges(ring []Point) []Segment {
	edges := make([]Segment, 0, len(ring))
	forEachEdge(ring, func(s Segment) bool {
		edges = append(edges, s)
		return true
	})
	return edges
}

// Ray is a half-line starting at Origin and heading in Direction. Direction
// needn't be of unit length. A zero Direction never hits anything.
type Ray struct {
	Origin, Direction Point
}

// Hit is the result of a successful ray cast.
type Hit struct {
	Point    Point
	Distance float64

	// Index is the position of the hit shape in the list passed to a
	// multi-shape cast, or zero.
	Index int
}
