package rtree

import (
	"github.com/peterstace/geokit/geom"
	"github.com/peterstace/geokit/internal/pqueue"
)

type candidate[T Bounded] struct {
	node   int
	item   T
	isItem bool
}

// Nearest returns up to k items in order of increasing distance from p.
// Distance is measured to the bounding box of each item.
//
// The search is best-first: nodes and items are visited in order of the
// minimum possible distance from p to their boxes. No unvisited node can
// hold anything closer than its own box, so items come out of the queue in
// order.
func (t *RTree[T]) Nearest(p geom.Point, k int) []T {
	if k <= 0 || t.count == 0 {
		return nil
	}
	queue := pqueue.New[candidate[T]]()
	queue.Push(candidate[T]{node: t.root}, t.nodeBBox(t.root).MinDist(p))

	var items []T
	for len(items) < k {
		c, _, ok := queue.Pop()
		if !ok {
			break
		}
		if c.isItem {
			items = append(items, c.item)
			continue
		}
		nd := &t.nodes[c.node]
		for _, e := range nd.entries {
			next := candidate[T]{node: e.child}
			if nd.isLeaf {
				next = candidate[T]{item: e.item, isItem: true}
			}
			queue.Push(next, e.bbox.MinDist(p))
		}
	}
	return items
}
