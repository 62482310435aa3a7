package geokit

import (
	"fmt"

	"github.com/peterstace/geokit/geom"
)

// Raycast finds where r first meets s. Only polygon exterior rings are
// tested. The second return value is false if r misses s.
func (e *Engine) Raycast(r geom.Ray, s geom.Shape) (geom.Hit, bool) {
	switch s := s.(type) {
	case geom.Point:
		return geom.RayPoint(r, s)
	case geom.Segment:
		return geom.RaySegment(r, s)
	case geom.Circle:
		return geom.RayCircle(r, s)
	case geom.Polygon:
		return geom.RayPolygon(r, s)
	}
	panic(fmt.Sprintf("geokit: unhandled shape %T", s))
}

// RaycastAll casts r against every shape and returns the hit closest to the
// ray origin. Hit.Index identifies the shape that was hit.
func (e *Engine) RaycastAll(r geom.Ray, shapes []geom.Shape) (geom.Hit, bool) {
	var best geom.Hit
	found := false
	for i, s := range shapes {
		h, ok := e.Raycast(r, s)
		if !ok {
			continue
		}
		if !found || h.Distance < best.Distance {
			h.Index = i
			best, found = h, true
		}
	}
	return best, found
}
