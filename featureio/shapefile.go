package featureio

import (
	"fmt"

	ctgeom "github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/peterstace/geokit"
	"github.com/peterstace/geokit/geom"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// ReadShapefile reads every record of the shapefile at path. Item ids come
// from the idField attribute column if idField is set, and from the record
// number otherwise. Records without a shape are skipped.
func ReadShapefile(path, idField string, log logrus.FieldLogger) ([]*geokit.Item, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	dec, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("featureio: opening shapefile: %w", err)
	}
	defer dec.Close()

	var fieldNames []string
	if idField != "" {
		fieldNames = append(fieldNames, idField)
	}
	var items []*geokit.Item
	for row := 0; ; row++ {
		g, fields, more := dec.DecodeRowFields(fieldNames...)
		if !more || dec.Error() != nil {
			break
		}
		if g == nil {
			log.WithField("row", row).Debug("featureio: skipping null shape")
			continue
		}
		id := cast.ToString(row)
		if idField != "" {
			id = fields[idField]
		}
		shapes, err := fromCtessum(g)
		if err != nil {
			return nil, fmt.Errorf("featureio: shapefile record %s: %w", id, err)
		}
		var meta map[string]interface{}
		if len(fields) > 0 {
			meta = make(map[string]interface{}, len(fields))
			for k, v := range fields {
				meta[k] = v
			}
		}
		items = append(items, newItems(id, shapes, meta)...)
	}
	if err := dec.Error(); err != nil {
		return nil, fmt.Errorf("featureio: reading shapefile: %w", err)
	}
	log.WithFields(logrus.Fields{"path": path, "items": len(items)}).Info("featureio: read shapefile")
	return items, nil
}

// fromCtessum converts a decoded shapefile geometry. Polygon parts are
// treated as one polygon whose first ring is the exterior and whose other
// rings are holes.
func fromCtessum(g ctgeom.Geom) ([]geom.Shape, error) {
	switch g := g.(type) {
	case ctgeom.Point:
		return []geom.Shape{fromCtessumPoint(g)}, nil
	case ctgeom.MultiPoint:
		shapes := make([]geom.Shape, len(g))
		for i, p := range g {
			shapes[i] = fromCtessumPoint(p)
		}
		return shapes, nil
	case ctgeom.LineString:
		return ctessumSegments(g), nil
	case ctgeom.MultiLineString:
		var shapes []geom.Shape
		for _, ls := range g {
			shapes = append(shapes, ctessumSegments(ls)...)
		}
		return shapes, nil
	case ctgeom.Polygon:
		poly, err := fromCtessumPolygon(g)
		if err != nil {
			return nil, err
		}
		return []geom.Shape{poly}, nil
	case ctgeom.MultiPolygon:
		shapes := make([]geom.Shape, len(g))
		for i, p := range g {
			poly, err := fromCtessumPolygon(p)
			if err != nil {
				return nil, err
			}
			shapes[i] = poly
		}
		return shapes, nil
	}
	return nil, fmt.Errorf("%w: %T", geom.ErrUnsupportedGeometry, g)
}

func fromCtessumPolygon(p ctgeom.Polygon) (geom.Polygon, error) {
	if len(p) == 0 {
		return geom.Polygon{}, fmt.Errorf("%w: polygon has no rings", geom.ErrInvalidGeometry)
	}
	rings := make([][]geom.Point, len(p))
	for i, r := range p {
		rings[i] = openCtessumRing(r)
	}
	return geom.NewPolygon(rings[0], rings[1:]...)
}

func fromCtessumPoint(p ctgeom.Point) geom.Point {
	return geom.Point{X: p.X, Y: p.Y}
}

func ctessumSegments(ls ctgeom.LineString) []geom.Shape {
	var shapes []geom.Shape
	for i := 1; i < len(ls); i++ {
		shapes = append(shapes, geom.Segment{
			Start: fromCtessumPoint(ls[i-1]),
			End:   fromCtessumPoint(ls[i]),
		})
	}
	return shapes
}

// openCtessumRing drops the closing vertex that shapefiles repeat at the end
// of each ring.
func openCtessumRing(r []ctgeom.Point) []geom.Point {
	if len(r) > 1 && r[0].Equals(r[len(r)-1]) {
		r = r[:len(r)-1]
	}
	pts := make([]geom.Point, len(r))
	for i, p := range r {
		pts[i] = fromCtessumPoint(p)
	}
	return pts
}
