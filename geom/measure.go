package geom

import "math"

// Area of the disc.
func (c Circle) Area() float64 {
	return math.Pi * c.radius * c.radius
}

// Circumference of the circle.
func (c Circle) Circumference() float64 {
	return 2 * math.Pi * c.radius
}

// Area gives the area enclosed by the exterior ring, computed with the
// shoelace formula. Holes are not subtracted.
func (p Polygon) Area() float64 {
	var sum float64
	for i, a := range p.exterior {
		b := p.exterior[(i+1)%len(p.exterior)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// Perimeter gives the length of the exterior ring. Holes are not included.
func (p Polygon) Perimeter() float64 {
	var sum float64
	forEachEdge(p.exterior, func(e Segment) bool {
		sum += e.Length()
		return true
	})
	return sum
}
