package geokit

import (
	"fmt"

	"github.com/peterstace/geokit/geom"
)

// Area gives the area of a circle or of the exterior ring of a polygon.
// Points and segments give ErrUnsupportedGeometry.
func (e *Engine) Area(s geom.Shape) (float64, error) {
	switch s := s.(type) {
	case geom.Circle:
		return s.Area(), nil
	case geom.Polygon:
		return s.Area(), nil
	}
	return 0, e.unsupported("area", s)
}

// Perimeter gives the circumference of a circle, the length of the exterior
// ring of a polygon, or the length of a segment. Points give
// ErrUnsupportedGeometry.
func (e *Engine) Perimeter(s geom.Shape) (float64, error) {
	switch s := s.(type) {
	case geom.Circle:
		return s.Circumference(), nil
	case geom.Polygon:
		return s.Perimeter(), nil
	case geom.Segment:
		return s.Length(), nil
	}
	return 0, e.unsupported("perimeter", s)
}

func (e *Engine) unsupported(op string, s geom.Shape) error {
	e.log().WithField("shape", fmt.Sprintf("%T", s)).Warnf("geokit: %s requested for unsupported shape", op)
	return fmt.Errorf("%w: %s of %T", geom.ErrUnsupportedGeometry, op, s)
}
