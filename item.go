package geokit

import (
	"github.com/peterstace/geokit/geom"
	"github.com/peterstace/geokit/rtree"
)

// Item is a shape with an identifier and optional metadata, suitable for
// storing in an index. Items are stored and removed by pointer.
type Item struct {
	ID       string
	Geometry geom.Shape
	Metadata map[string]interface{}
}

// BBox gives the bounding box of the item's geometry.
func (it *Item) BBox() geom.BBox {
	return it.Geometry.BBox()
}

// NewIndex builds an index over items. With bulk set, the index is built
// with a single bulk load rather than by repeated insertion.
func NewIndex(items []*Item, maxEntries int, bulk bool) (*rtree.RTree[*Item], error) {
	index, err := rtree.New[*Item](maxEntries)
	if err != nil {
		return nil, err
	}
	if bulk {
		index.BulkLoad(items)
		return index, nil
	}
	for _, it := range items {
		index.Insert(it)
	}
	return index, nil
}

// Query returns the indexed items whose bounding boxes overlap the bounding
// box of s. It returns nothing if no index is attached.
func (e *Engine) Query(s geom.Shape) []*Item {
	if e.Index == nil {
		return nil
	}
	return e.Index.Search(s.BBox())
}

// QueryIntersecting is like Query, but only returns items whose geometry
// actually intersects s.
func (e *Engine) QueryIntersecting(s geom.Shape) []*Item {
	if e.Index == nil {
		return nil
	}
	var items []*Item
	e.Index.SearchFunc(s.BBox(), func(it *Item) bool {
		if e.Intersects(it.Geometry, s) {
			items = append(items, it)
		}
		return true
	})
	return items
}

// Nearest returns up to k indexed items, closest first, measuring distance
// from p to each item's bounding box.
func (e *Engine) Nearest(p geom.Point, k int) []*Item {
	if e.Index == nil {
		return nil
	}
	return e.Index.Nearest(p, k)
}
