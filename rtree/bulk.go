package rtree

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

// BulkLoad replaces the contents of the tree with items, using the
// Sort-Tile-Recursive algorithm. The resulting tree has much less node
// overlap than one built by repeated insertion, which allows for fast
// searching.
func (t *RTree[T]) BulkLoad(items []T) {
	t.Clear()
	if len(items) == 0 {
		return
	}
	t.nodes = t.nodes[:0]

	entries := make([]entry[T], len(items))
	for i, item := range items {
		entries[i] = entry[T]{bbox: item.BBox(), item: item}
	}
	level := t.packLevel(entries, true)
	for len(level) > 1 {
		entries = make([]entry[T], len(level))
		for i, n := range level {
			entries[i] = entry[T]{bbox: t.nodeBBox(n), child: n}
		}
		level = t.packLevel(entries, false)
	}
	t.root = level[0]
	t.count = len(items)

	t.log().WithFields(logrus.Fields{
		"items":  t.count,
		"nodes":  len(t.nodes),
		"height": t.Height(),
	}).Debug("rtree: bulk loaded")
}

// packLevel sorts entries into vertical slices by their min x, then packs
// each slice into nodes in order of min y. It returns the new nodes.
func (t *RTree[T]) packLevel(entries []entry[T], isLeaf bool) []int {
	maxFill := t.maxFill()
	slices := int(math.Ceil(math.Sqrt(float64(len(entries)) / float64(maxFill))))
	sliceSize := (len(entries) + slices - 1) / slices

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].bbox.MinX < entries[j].bbox.MinX
	})

	var level []int
	for start := 0; start < len(entries); start += sliceSize {
		slice := entries[start:min(start+sliceSize, len(entries))]
		sort.Slice(slice, func(i, j int) bool {
			return slice[i].bbox.MinY < slice[j].bbox.MinY
		})
		for i := 0; i < len(slice); i += maxFill {
			group := slice[i:min(i+maxFill, len(slice))]
			n := t.newNode(isLeaf, -1)
			t.nodes[n].entries = append([]entry[T](nil), group...)
			if !isLeaf {
				for _, e := range group {
					t.nodes[e.child].parent = n
				}
			}
			level = append(level, n)
		}
	}
	return level
}
