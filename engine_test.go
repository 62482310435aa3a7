package geokit

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/peterstace/geokit/geom"
	"gonum.org/v1/gonum/floats/scalar"
)

func mustCircle(t *testing.T, x, y, r float64) geom.Circle {
	t.Helper()
	c, err := geom.NewCircle(geom.Point{X: x, Y: y}, r)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func mustPolygon(t *testing.T, exterior []geom.Point, holes ...[]geom.Point) geom.Polygon {
	t.Helper()
	p, err := geom.NewPolygon(exterior, holes...)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func square(t *testing.T, x0, y0, x1, y1 float64) geom.Polygon {
	return mustPolygon(t, []geom.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}})
}

func randomShape(t *testing.T, rnd *rand.Rand) geom.Shape {
	pt := func() geom.Point {
		return geom.Point{X: float64(rnd.Intn(21)), Y: float64(rnd.Intn(21))}
	}
	switch rnd.Intn(5) {
	case 0:
		return pt()
	case 1:
		return geom.Segment{Start: pt(), End: pt()}
	case 2:
		return mustCircle(t, float64(rnd.Intn(21)), float64(rnd.Intn(21)), float64(1+rnd.Intn(6)))
	case 3:
		x, y := float64(rnd.Intn(15)), float64(rnd.Intn(15))
		w, h := float64(1+rnd.Intn(6)), float64(1+rnd.Intn(6))
		return square(t, x, y, x+w, y+h)
	default:
		x, y := float64(rnd.Intn(12)), float64(rnd.Intn(12))
		return mustPolygon(t,
			[]geom.Point{{X: x, Y: y}, {X: x + 8, Y: y}, {X: x + 8, Y: y + 8}, {X: x, Y: y + 8}},
			[]geom.Point{{X: x + 2, Y: y + 2}, {X: x + 6, Y: y + 2}, {X: x + 6, Y: y + 6}, {X: x + 2, Y: y + 6}},
		)
	}
}

func TestIntersectsIsSymmetric(t *testing.T) {
	var e Engine
	rnd := rand.New(rand.NewSource(0))
	for i := 0; i < 3000; i++ {
		a, b := randomShape(t, rnd), randomShape(t, rnd)
		if e.Intersects(a, b) != e.Intersects(b, a) {
			t.Fatalf("asymmetric intersection for %#v and %#v", a, b)
		}
		if e.Distance(a, b) != e.Distance(b, a) {
			t.Fatalf("asymmetric distance for %#v and %#v", a, b)
		}
	}
}

func TestContainsImpliesIntersects(t *testing.T) {
	var e Engine
	rnd := rand.New(rand.NewSource(1))
	var contained int
	for i := 0; i < 5000; i++ {
		a, b := randomShape(t, rnd), randomShape(t, rnd)
		if !e.Contains(a, b) {
			continue
		}
		contained++
		if !e.Intersects(a, b) {
			t.Fatalf("%#v contains %#v but does not intersect it", a, b)
		}
	}
	if contained == 0 {
		t.Fatal("no containment cases were generated")
	}
}

func TestBoundaryIntersectsButIsNotContained(t *testing.T) {
	var e Engine
	sq := square(t, 0, 0, 10, 10)
	c := mustCircle(t, 0, 0, 5)
	for _, tc := range []struct {
		container, s geom.Shape
	}{
		{sq, geom.Point{X: 10, Y: 5}},
		{sq, geom.Point{X: 0, Y: 0}},
		{c, geom.Point{X: 0, Y: 5}},
		{c, geom.Point{X: -5, Y: 0}},
	} {
		if !e.Intersects(tc.container, tc.s) {
			t.Errorf("%#v should intersect %v", tc.container, tc.s)
		}
		if e.Contains(tc.container, tc.s) {
			t.Errorf("%#v should not contain %v", tc.container, tc.s)
		}
	}
}

func TestPointDistanceToItself(t *testing.T) {
	var e Engine
	for _, p := range []geom.Point{{}, {X: 1e9, Y: -3}, {X: 0.1, Y: 0.2}} {
		if d := e.Distance(p, p); d != 0 {
			t.Errorf("%v: got %v", p, d)
		}
	}
}

func TestDistanceScenarios(t *testing.T) {
	var e Engine
	for i, tc := range []struct {
		a, b geom.Shape
		want float64
	}{
		{square(t, 0, 0, 10, 10), geom.Point{X: 15, Y: 5}, 5},
		{mustCircle(t, 0, 0, 5), mustCircle(t, 15, 0, 5), 5},
		{square(t, 0, 0, 10, 10), square(t, 20, 20, 30, 30), 14.142135623730951},
		{geom.Segment{End: geom.Point{X: 10}}, geom.Point{X: 5, Y: 2}, 2},
		{geom.Segment{End: geom.Point{X: 10}}, geom.Segment{Start: geom.Point{X: 5, Y: -1}, End: geom.Point{X: 5, Y: 1}}, 0},
		{mustCircle(t, 0, 0, 1), square(t, 3, -1, 5, 1), 2},
	} {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			if got := e.Distance(tc.a, tc.b); !scalar.EqualWithinAbs(got, tc.want, 1e-9) {
				t.Errorf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestIntersectsDonut(t *testing.T) {
	var e Engine
	donut := mustPolygon(t,
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		[]geom.Point{{X: 3, Y: 3}, {X: 7, Y: 3}, {X: 7, Y: 7}, {X: 3, Y: 7}},
	)
	if e.Intersects(donut, geom.Point{X: 5, Y: 5}) {
		t.Error("point in hole should not intersect")
	}
	if !e.Intersects(geom.Point{X: 1, Y: 1}, donut) {
		t.Error("point in ring should intersect")
	}
	if e.Contains(donut, mustCircle(t, 5, 5, 1)) {
		t.Error("circle in hole should not be contained")
	}
	if !e.Contains(donut, mustCircle(t, 1.5, 5, 1)) {
		t.Error("circle in ring should be contained")
	}
}

func TestMeasures(t *testing.T) {
	var e Engine
	if a, err := e.Area(square(t, 0, 0, 2, 3)); err != nil || a != 6 {
		t.Errorf("polygon area: got %v, %v", a, err)
	}
	if p, err := e.Perimeter(geom.Segment{End: geom.Point{X: 3, Y: 4}}); err != nil || p != 5 {
		t.Errorf("segment perimeter: got %v, %v", p, err)
	}
	if _, err := e.Area(geom.Point{}); !errors.Is(err, geom.ErrUnsupportedGeometry) {
		t.Errorf("point area: got err %v", err)
	}
	if _, err := e.Area(geom.Segment{}); !errors.Is(err, geom.ErrUnsupportedGeometry) {
		t.Errorf("segment area: got err %v", err)
	}
	if _, err := e.Perimeter(geom.Point{}); !errors.Is(err, geom.ErrUnsupportedGeometry) {
		t.Errorf("point perimeter: got err %v", err)
	}
}

func TestRaycastAll(t *testing.T) {
	var e Engine
	shapes := []geom.Shape{
		square(t, 20, -1, 22, 1),
		geom.Segment{Start: geom.Point{X: 30, Y: -5}, End: geom.Point{X: 30, Y: 5}},
		mustCircle(t, 10, 0, 2),
		geom.Point{X: 5, Y: 1},
	}
	r := geom.Ray{Direction: geom.Point{X: 1}}
	h, ok := e.RaycastAll(r, shapes)
	if !ok {
		t.Fatal("expected a hit")
	}
	if h.Index != 2 {
		t.Errorf("hit shape %d, want 2", h.Index)
	}
	if !scalar.EqualWithinAbs(h.Distance, 8, 1e-9) || !scalar.EqualWithinAbs(h.Point.X, 8, 1e-9) {
		t.Errorf("got hit %+v", h)
	}

	backwards := geom.Ray{Direction: geom.Point{X: -1}}
	if _, ok := e.RaycastAll(backwards, shapes); ok {
		t.Error("ray pointing away from every shape should miss")
	}
	if _, ok := e.RaycastAll(geom.Ray{}, shapes); ok {
		t.Error("zero direction should miss")
	}
	if _, ok := e.RaycastAll(r, nil); ok {
		t.Error("no shapes should miss")
	}
}

func testItems(t *testing.T) []*Item {
	return []*Item{
		{ID: "a", Geometry: geom.Point{X: 1, Y: 1}},
		{ID: "b", Geometry: mustCircle(t, 10, 10, 1)},
		{ID: "c", Geometry: geom.Segment{Start: geom.Point{X: 0, Y: 10}, End: geom.Point{X: 10, Y: 0}}},
		{ID: "d", Geometry: square(t, 50, 50, 60, 60), Metadata: map[string]interface{}{"kind": "block"}},
		{ID: "e", Geometry: geom.Point{X: 100, Y: 100}},
	}
}

func itemIDs(items []*Item) map[string]bool {
	ids := make(map[string]bool)
	for _, it := range items {
		ids[it.ID] = true
	}
	return ids
}

func TestEngineQueries(t *testing.T) {
	for _, bulk := range []bool{false, true} {
		t.Run(fmt.Sprintf("bulk=%v", bulk), func(t *testing.T) {
			index, err := NewIndex(testItems(t), 4, bulk)
			if err != nil {
				t.Fatal(err)
			}
			if index.Len() != 5 {
				t.Fatalf("len: got %d", index.Len())
			}
			e := NewEngine(index)

			// The segment's box covers (1, 1) even though the segment
			// itself passes well clear of it.
			probe := mustCircle(t, 1, 1, 0.5)
			got := itemIDs(e.Query(probe))
			if len(got) != 2 || !got["a"] || !got["c"] {
				t.Errorf("query: got %v", got)
			}
			got = itemIDs(e.QueryIntersecting(probe))
			if len(got) != 1 || !got["a"] {
				t.Errorf("query intersecting: got %v", got)
			}

			near := e.Nearest(geom.Point{X: 58, Y: 58}, 2)
			if len(near) != 2 || near[0].ID != "d" {
				t.Errorf("nearest: got %v", near)
			}
			if all := e.Nearest(geom.Point{}, 10); len(all) != 5 {
				t.Errorf("nearest with large k: got %d items", len(all))
			}
		})
	}
}

func TestEngineWithoutIndex(t *testing.T) {
	var e Engine
	if got := e.Query(geom.Point{}); len(got) != 0 {
		t.Errorf("query: got %v", got)
	}
	if got := e.QueryIntersecting(geom.Point{}); len(got) != 0 {
		t.Errorf("query intersecting: got %v", got)
	}
	if got := e.Nearest(geom.Point{}, 3); len(got) != 0 {
		t.Errorf("nearest: got %v", got)
	}
}

func TestNewIndexRejectsSmallFanout(t *testing.T) {
	if _, err := NewIndex(testItems(t), 2, true); err == nil {
		t.Error("expected an error")
	}
}
