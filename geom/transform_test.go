package geom

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func pointsClose(a, b Point) bool {
	return scalar.EqualWithinAbs(a.X, b.X, 1e-9) && scalar.EqualWithinAbs(a.Y, b.Y, 1e-9)
}

func TestTransformChaining(t *testing.T) {
	tr := Identity().Translate(1, 0).Rotate(math.Pi / 2).Scale(2, 2)
	got := tr.Point(Point{1, 0})
	if want := (Point{0, 4}); !pointsClose(got, want) {
		t.Errorf("got %v want %v", got, want)
	}
	if got := tr.Vector(Point{1, 0}); !pointsClose(got, Point{0, 2}) {
		t.Errorf("vector: got %v", got)
	}
}

func TestTransformApplyKeepsVariant(t *testing.T) {
	c, err := NewCircle(Point{1, 1}, 1)
	if err != nil {
		t.Fatal(err)
	}
	poly, err := NewPolygon(
		[]Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}},
		[]Point{{1, 1}, {2, 1}, {2, 2}},
	)
	if err != nil {
		t.Fatal(err)
	}
	tr := Identity().Scale(3, 3).Translate(1, 2)
	for _, s := range []Shape{Point{1, 1}, Segment{Point{0, 0}, Point{1, 1}}, c, poly} {
		out, err := tr.Apply(s)
		if err != nil {
			t.Fatalf("%T: %v", s, err)
		}
		switch s.(type) {
		case Point:
			_, ok := out.(Point)
			if !ok {
				t.Errorf("point became %T", out)
			}
		case Segment:
			if _, ok := out.(Segment); !ok {
				t.Errorf("segment became %T", out)
			}
		case Circle:
			oc, ok := out.(Circle)
			if !ok {
				t.Fatalf("circle became %T", out)
			}
			if oc.Radius() != 3 || oc.Center() != (Point{4, 5}) {
				t.Errorf("circle: got %v r=%v", oc.Center(), oc.Radius())
			}
		case Polygon:
			op, ok := out.(Polygon)
			if !ok {
				t.Fatalf("polygon became %T", out)
			}
			if op.NumHoles() != 1 || op.BBox() != (BBox{1, 2, 13, 14}) {
				t.Errorf("polygon: got bbox %v holes %d", op.BBox(), op.NumHoles())
			}
		}
	}

	if _, err := Identity().Scale(1, 2).Apply(c); !errors.Is(err, ErrUnsupportedGeometry) {
		t.Errorf("non-uniform circle scale: got err %v", err)
	}
}

func TestTransformApplyRay(t *testing.T) {
	r := Identity().Translate(5, 5).ApplyRay(Ray{Point{0, 0}, Point{1, 0}})
	if r.Origin != (Point{5, 5}) || r.Direction != (Point{1, 0}) {
		t.Errorf("got %+v", r)
	}
}
