package rtree

import "github.com/peterstace/geokit/geom"

// nodeBBox gives the smallest bounding box that fits node n, recomputing it
// if the node is dirty. Recomputing an intermediate node first refreshes the
// entry boxes of its children, so on return no node under n is dirty.
func (t *RTree[T]) nodeBBox(n int) geom.BBox {
	nd := &t.nodes[n]
	if !nd.dirty {
		return nd.bbox
	}
	var bb geom.BBox
	for i := range nd.entries {
		e := &nd.entries[i]
		if !nd.isLeaf {
			e.bbox = t.nodeBBox(e.child)
		}
		if i == 0 {
			bb = e.bbox
		} else {
			bb = bb.Union(e.bbox)
		}
	}
	nd.bbox = bb
	nd.dirty = false
	return bb
}

// invalidate marks n and its ancestors as dirty. It stops at the first node
// that is already dirty, since that node's ancestors must be dirty too.
func (t *RTree[T]) invalidate(n int) {
	for n != -1 && !t.nodes[n].dirty {
		t.nodes[n].dirty = true
		n = t.nodes[n].parent
	}
}
