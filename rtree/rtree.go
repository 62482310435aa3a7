// Package rtree implements an in-memory R-Tree over items with bounding
// boxes.
//
// Nodes are held in an arena owned by the tree and refer to each other by
// index. A node's bounding box is computed lazily from its entries and
// cached until something beneath it changes.
//
// An RTree is not safe for concurrent use. Callers that share a tree between
// goroutines must serialise access to it.
package rtree

import (
	"errors"
	"math"

	"github.com/peterstace/geokit/geom"
	"github.com/sirupsen/logrus"
)

// DefaultMaxEntries is the node fan-out used by the zero value RTree.
const DefaultMaxEntries = 9

// Bounded is an item that can be stored in an RTree. Items are matched on
// removal with ==, so pointer types give identity semantics.
type Bounded interface {
	comparable
	BBox() geom.BBox
}

// node is a node in an R-Tree. Nodes can either be leaf nodes holding entries
// for terminal items, or intermediate nodes holding entries for more nodes.
type node[T Bounded] struct {
	isLeaf  bool
	parent  int
	entries []entry[T]

	// bbox is only meaningful when dirty is false. A dirty node always has
	// dirty ancestors.
	bbox  geom.BBox
	dirty bool
}

// entry is an entry under a node, leading either to a terminal item, or to
// another node.
type entry[T Bounded] struct {
	bbox  geom.BBox
	child int
	item  T
}

// RTree is an in-memory R-Tree data structure. Its zero value is an empty
// R-Tree with DefaultMaxEntries.
type RTree[T Bounded] struct {
	// Log receives debug messages about structural changes to the tree. The
	// standard logrus logger is used when it is nil.
	Log logrus.FieldLogger

	nodes      []node[T]
	free       []int
	root       int
	maxEntries int
	count      int
}

// New creates an empty RTree whose nodes hold at most maxEntries entries.
func New[T Bounded](maxEntries int) (*RTree[T], error) {
	if maxEntries < 3 {
		return nil, errors.New("rtree: max entries must be at least 3")
	}
	t := &RTree[T]{maxEntries: maxEntries, Log: logrus.StandardLogger()}
	t.Clear()
	return t, nil
}

func (t *RTree[T]) maxFill() int {
	if t.maxEntries == 0 {
		return DefaultMaxEntries
	}
	return t.maxEntries
}

// minFill is the fill below which a non-root node is dissolved.
func (t *RTree[T]) minFill() int {
	m := int(math.Ceil(0.4 * float64(t.maxFill())))
	if m < 2 {
		return 2
	}
	return m
}

func (t *RTree[T]) log() logrus.FieldLogger {
	if t.Log == nil {
		return logrus.StandardLogger()
	}
	return t.Log
}

func (t *RTree[T]) init() {
	if len(t.nodes) == 0 {
		t.Clear()
	}
}

// Clear removes all items from the tree.
func (t *RTree[T]) Clear() {
	t.nodes = append(t.nodes[:0], node[T]{isLeaf: true, parent: -1})
	t.free = t.free[:0]
	t.root = 0
	t.count = 0
}

// Len gives the number of items in the tree.
func (t *RTree[T]) Len() int {
	return t.count
}

// Extent gives the bounding box of every item in the tree. The second return
// value is false if the tree is empty.
func (t *RTree[T]) Extent() (geom.BBox, bool) {
	if t.count == 0 {
		return geom.BBox{}, false
	}
	return t.nodeBBox(t.root), true
}

// Height gives the number of levels in the tree. An empty tree has height 1.
func (t *RTree[T]) Height() int {
	t.init()
	h := 1
	for n := t.root; !t.nodes[n].isLeaf; n = t.nodes[n].entries[0].child {
		h++
	}
	return h
}

// SearchFunc looks for any items in the tree that overlap with the given
// bounding box. The callback is called for each found item, and the search
// stops early if it returns false. The callback must not modify the tree.
func (t *RTree[T]) SearchFunc(bb geom.BBox, callback func(item T) bool) {
	if t.count == 0 {
		return
	}
	t.nodeBBox(t.root)

	var recurse func(int) bool
	recurse = func(n int) bool {
		nd := &t.nodes[n]
		for _, e := range nd.entries {
			if !e.bbox.Intersects(bb) {
				continue
			}
			if nd.isLeaf {
				if !callback(e.item) {
					return false
				}
			} else if !recurse(e.child) {
				return false
			}
		}
		return true
	}
	recurse(t.root)
}

// Search returns every item whose bounding box overlaps bb.
func (t *RTree[T]) Search(bb geom.BBox) []T {
	var items []T
	t.SearchFunc(bb, func(item T) bool {
		items = append(items, item)
		return true
	})
	return items
}

// newNode allocates a dirty node, reusing a discarded slot where possible.
// Any pointers into the arena are invalidated by calling it.
func (t *RTree[T]) newNode(isLeaf bool, parent int) int {
	nd := node[T]{isLeaf: isLeaf, parent: parent, dirty: true}
	if k := len(t.free); k > 0 {
		n := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[n] = nd
		return n
	}
	t.nodes = append(t.nodes, nd)
	return len(t.nodes) - 1
}

func (t *RTree[T]) freeNode(n int) {
	t.nodes[n] = node[T]{parent: -1}
	t.free = append(t.free, n)
}

// entryIndex finds the position of the entry in parent leading to child.
func (t *RTree[T]) entryIndex(parent, child int) int {
	for i, e := range t.nodes[parent].entries {
		if e.child == child {
			return i
		}
	}
	panic("rtree: could not find parent entry")
}
