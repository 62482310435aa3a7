package featureio

import (
	"errors"
	"path/filepath"
	"testing"

	ctgeom "github.com/ctessum/geom"
	"github.com/peterstace/geokit/geom"
)

func TestFromCtessum(t *testing.T) {
	square := []ctgeom.Point{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 0}, {X: 0, Y: 0}}
	hole := []ctgeom.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 1}}

	for _, tc := range []struct {
		name  string
		g     ctgeom.Geom
		count int
	}{
		{"point", ctgeom.Point{X: 1, Y: 1}, 1},
		{"multipoint", ctgeom.MultiPoint{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}, 3},
		{"linestring", ctgeom.LineString{{X: 0, Y: 0}, {X: 1, Y: 0}}, 1},
		{"multilinestring", ctgeom.MultiLineString{
			{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
			{{X: 5, Y: 5}, {X: 6, Y: 6}},
		}, 3},
		{"polygon", ctgeom.Polygon{square, hole}, 1},
		{"multipolygon", ctgeom.MultiPolygon{{square}, {square, hole}}, 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			shapes, err := fromCtessum(tc.g)
			if err != nil {
				t.Fatal(err)
			}
			if len(shapes) != tc.count {
				t.Errorf("got %d shapes, want %d", len(shapes), tc.count)
			}
		})
	}

	shapes, err := fromCtessum(ctgeom.Polygon{square, hole})
	if err != nil {
		t.Fatal(err)
	}
	poly := shapes[0].(geom.Polygon)
	if len(poly.Exterior()) != 4 || poly.NumHoles() != 1 || len(poly.Holes()[0]) != 3 {
		t.Errorf("closing vertices not dropped: %#v", poly)
	}
	if poly.Area() != 16 {
		t.Errorf("area: got %v", poly.Area())
	}
}

func TestFromCtessumInvalid(t *testing.T) {
	if _, err := fromCtessum(ctgeom.Polygon{}); !errors.Is(err, geom.ErrInvalidGeometry) {
		t.Errorf("empty polygon: got %v", err)
	}
	short := ctgeom.Polygon{{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}}
	if _, err := fromCtessum(short); !errors.Is(err, geom.ErrInvalidGeometry) {
		t.Errorf("short ring: got %v", err)
	}
	if _, err := fromCtessum(ctgeom.GeometryCollection{}); !errors.Is(err, geom.ErrUnsupportedGeometry) {
		t.Errorf("collection: got %v", err)
	}
}

func TestReadShapefileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.shp")
	if _, err := ReadShapefile(path, "", nil); err == nil {
		t.Error("expected an error")
	}
}
