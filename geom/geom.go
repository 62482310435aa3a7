// Package geom holds the 2D geometry values used throughout geokit and the
// epsilon-tolerant predicates that operate on them.
package geom

import (
	"errors"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the tolerance used by every comparison in this package.
const Epsilon = 1e-10

var (
	// ErrInvalidGeometry is returned by constructors when the requested value
	// would violate its invariants.
	ErrInvalidGeometry = errors.New("geom: invalid geometry")

	// ErrUnsupportedGeometry is returned when an operation is requested for a
	// geometry variant it is not defined on.
	ErrUnsupportedGeometry = errors.New("geom: unsupported geometry")
)

// Shape is one of Point, Segment, Circle or Polygon. The set is closed: the
// interface cannot be implemented outside of this package.
type Shape interface {
	BBox() BBox
	shape()
}

func (Point) shape()   {}
func (Segment) shape() {}
func (Circle) shape()  {}
func (Polygon) shape() {}

func almostEqual(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, Epsilon)
}

func almostZero(a float64) bool {
	return scalar.EqualWithinAbs(a, 0, Epsilon)
}
