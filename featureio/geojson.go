// Package featureio converts between geokit items and the GeoJSON and ESRI
// shapefile formats.
package featureio

import (
	"errors"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/peterstace/geokit"
	"github.com/peterstace/geokit/geom"
	"github.com/spf13/cast"
)

// RadiusProperty is the feature property that turns a GeoJSON Point into a
// circle.
const RadiusProperty = "radius"

// ErrNoGeometry is returned for features without a geometry.
var ErrNoGeometry = errors.New("featureio: feature has no geometry")

// ReadGeoJSON reads a GeoJSON FeatureCollection. Item ids are taken from the
// idField property if idField is set, otherwise from the feature id, and
// otherwise from the feature's position in the collection. Feature
// properties become item metadata.
func ReadGeoJSON(r io.Reader, idField string) ([]*geokit.Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("featureio: reading GeoJSON: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("featureio: decoding GeoJSON: %w", err)
	}
	var items []*geokit.Item
	for i, f := range fc.Features {
		id := featureID(f, idField, i)
		if f.Geometry == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoGeometry, id)
		}
		shapes, err := FromOrb(f.Geometry, f.Properties)
		if err != nil {
			return nil, fmt.Errorf("featureio: feature %s: %w", id, err)
		}
		items = append(items, newItems(id, shapes, f.Properties)...)
	}
	return items, nil
}

func copyProps(props map[string]interface{}) map[string]interface{} {
	if props == nil {
		return nil
	}
	m := make(map[string]interface{}, len(props))
	for k, v := range props {
		m[k] = v
	}
	return m
}

func featureID(f *geojson.Feature, idField string, i int) string {
	if idField != "" {
		if v, ok := f.Properties[idField]; ok {
			return cast.ToString(v)
		}
	}
	if id := cast.ToString(f.ID); id != "" {
		return id
	}
	return cast.ToString(i)
}

// newItems wraps shapes read from one feature. A feature that yields more
// than one shape gives ids of the form id/i. Each item gets its own copy of
// props.
func newItems(id string, shapes []geom.Shape, props map[string]interface{}) []*geokit.Item {
	items := make([]*geokit.Item, len(shapes))
	for i, s := range shapes {
		it := &geokit.Item{ID: id, Geometry: s, Metadata: copyProps(props)}
		if len(shapes) > 1 {
			it.ID = fmt.Sprintf("%s/%d", id, i)
		}
		items[i] = it
	}
	return items
}

// FromOrb converts g to shapes. Points with a positive radius property become
// circles. Each edge of a line string becomes its own segment, and multi
// geometries and collections are split into their members.
func FromOrb(g orb.Geometry, props map[string]interface{}) ([]geom.Shape, error) {
	switch g := g.(type) {
	case orb.Point:
		if r, ok := props[RadiusProperty]; ok {
			radius, err := cast.ToFloat64E(r)
			if err != nil {
				return nil, fmt.Errorf("featureio: radius property: %w", err)
			}
			c, err := geom.NewCircle(fromOrbPoint(g), radius)
			if err != nil {
				return nil, err
			}
			return []geom.Shape{c}, nil
		}
		return []geom.Shape{fromOrbPoint(g)}, nil
	case orb.MultiPoint:
		shapes := make([]geom.Shape, len(g))
		for i, p := range g {
			shapes[i] = fromOrbPoint(p)
		}
		return shapes, nil
	case orb.LineString:
		return lineSegments(g), nil
	case orb.MultiLineString:
		var shapes []geom.Shape
		for _, ls := range g {
			shapes = append(shapes, lineSegments(ls)...)
		}
		return shapes, nil
	case orb.Ring:
		return FromOrb(orb.Polygon{g}, props)
	case orb.Polygon:
		poly, err := fromOrbPolygon(g)
		if err != nil {
			return nil, err
		}
		return []geom.Shape{poly}, nil
	case orb.MultiPolygon:
		shapes := make([]geom.Shape, len(g))
		for i, p := range g {
			poly, err := fromOrbPolygon(p)
			if err != nil {
				return nil, err
			}
			shapes[i] = poly
		}
		return shapes, nil
	case orb.Bound:
		return FromOrb(g.ToPolygon(), props)
	case orb.Collection:
		var shapes []geom.Shape
		for _, member := range g {
			s, err := FromOrb(member, props)
			if err != nil {
				return nil, err
			}
			shapes = append(shapes, s...)
		}
		return shapes, nil
	}
	return nil, fmt.Errorf("%w: %T", geom.ErrUnsupportedGeometry, g)
}

func fromOrbPoint(p orb.Point) geom.Point {
	return geom.Point{X: p.X(), Y: p.Y()}
}

func lineSegments(ls orb.LineString) []geom.Shape {
	var shapes []geom.Shape
	for i := 1; i < len(ls); i++ {
		shapes = append(shapes, geom.Segment{
			Start: fromOrbPoint(ls[i-1]),
			End:   fromOrbPoint(ls[i]),
		})
	}
	return shapes
}

func fromOrbPolygon(p orb.Polygon) (geom.Polygon, error) {
	if len(p) == 0 {
		return geom.Polygon{}, fmt.Errorf("%w: polygon has no rings", geom.ErrInvalidGeometry)
	}
	rings := make([][]geom.Point, len(p))
	for i, r := range p {
		rings[i] = openRing(r)
	}
	return geom.NewPolygon(rings[0], rings[1:]...)
}

// openRing drops the closing vertex that GeoJSON repeats at the end of each
// ring.
func openRing(r orb.Ring) []geom.Point {
	if len(r) > 1 && r[0].Equal(r[len(r)-1]) {
		r = r[:len(r)-1]
	}
	pts := make([]geom.Point, len(r))
	for i, p := range r {
		pts[i] = fromOrbPoint(p)
	}
	return pts
}

// WriteGeoJSON writes items as a FeatureCollection. Item metadata becomes
// feature properties, and circles are written as points with a radius
// property.
func WriteGeoJSON(w io.Writer, items []*geokit.Item) error {
	fc := geojson.NewFeatureCollection()
	for _, it := range items {
		f := geojson.NewFeature(ToOrb(it.Geometry))
		f.ID = it.ID
		for k, v := range it.Metadata {
			f.Properties[k] = v
		}
		if c, ok := it.Geometry.(geom.Circle); ok {
			f.Properties[RadiusProperty] = c.Radius()
		}
		fc.Append(f)
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("featureio: encoding GeoJSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("featureio: writing GeoJSON: %w", err)
	}
	return nil
}

// ToOrb converts s to an orb geometry. A circle becomes its center point.
func ToOrb(s geom.Shape) orb.Geometry {
	switch s := s.(type) {
	case geom.Point:
		return toOrbPoint(s)
	case geom.Segment:
		return orb.LineString{toOrbPoint(s.Start), toOrbPoint(s.End)}
	case geom.Circle:
		return toOrbPoint(s.Center())
	case geom.Polygon:
		p := orb.Polygon{closedRing(s.Exterior())}
		for _, h := range s.Holes() {
			p = append(p, closedRing(h))
		}
		return p
	}
	panic(fmt.Sprintf("featureio: unknown shape %T", s))
}

func toOrbPoint(p geom.Point) orb.Point {
	return orb.Point{p.X, p.Y}
}

func closedRing(pts []geom.Point) orb.Ring {
	r := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		r = append(r, toOrbPoint(p))
	}
	return append(r, r[0])
}
