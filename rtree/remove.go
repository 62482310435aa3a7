package rtree

import (
	"github.com/peterstace/geokit/geom"
	"github.com/sirupsen/logrus"
)

// Remove deletes item from the tree. Items are found by comparing them with
// == and searching under item.BBox(), so the bounding box of an item must not
// change while it is in the tree. The return value is false if the item
// could not be found.
func (t *RTree[T]) Remove(item T) bool {
	if t.count == 0 {
		return false
	}
	t.nodeBBox(t.root)
	leaf, idx := t.findLeaf(t.root, item, item.BBox())
	if leaf == -1 {
		return false
	}
	entries := t.nodes[leaf].entries
	t.nodes[leaf].entries = append(entries[:idx], entries[idx+1:]...)
	t.count--
	t.invalidate(leaf)
	t.condenseTree(leaf)
	return true
}

// findLeaf locates the leaf entry holding item, only descending into
// subtrees whose boxes overlap bb. It returns -1 if there is no such entry.
func (t *RTree[T]) findLeaf(n int, item T, bb geom.BBox) (int, int) {
	nd := &t.nodes[n]
	for i, e := range nd.entries {
		if nd.isLeaf {
			if e.item == item {
				return n, i
			}
			continue
		}
		if !e.bbox.Intersects(bb) {
			continue
		}
		if leaf, idx := t.findLeaf(e.child, item, bb); leaf != -1 {
			return leaf, idx
		}
	}
	return -1, -1
}

// condenseTree walks from n up to the root. Nodes that have fallen below the
// minimum fill are unlinked from their parents and every item beneath them
// is inserted again from the root. Afterwards, a root with a single child is
// replaced by that child.
func (t *RTree[T]) condenseTree(n int) {
	var orphans []T
	for n != t.root {
		parent := t.nodes[n].parent
		idx := t.entryIndex(parent, n)
		if len(t.nodes[n].entries) < t.minFill() {
			entries := t.nodes[parent].entries
			t.nodes[parent].entries = append(entries[:idx], entries[idx+1:]...)
			orphans = t.collect(n, orphans)
			t.invalidate(parent)
		} else {
			t.nodes[parent].entries[idx].bbox = t.nodeBBox(n)
		}
		n = parent
	}

	if len(orphans) > 0 {
		t.log().WithField("items", len(orphans)).Debug("rtree: reinserting orphaned items")
	}
	for _, item := range orphans {
		t.insert(item, item.BBox())
	}

	for !t.nodes[t.root].isLeaf && len(t.nodes[t.root].entries) == 1 {
		old := t.root
		t.root = t.nodes[old].entries[0].child
		t.nodes[t.root].parent = -1
		t.freeNode(old)
		t.log().WithFields(logrus.Fields{
			"height": t.Height(),
		}).Debug("rtree: collapsed root")
	}
}

// collect appends every item under n to items, and releases n and all of
// its descendants back to the arena.
func (t *RTree[T]) collect(n int, items []T) []T {
	nd := t.nodes[n]
	for _, e := range nd.entries {
		if nd.isLeaf {
			items = append(items, e.item)
		} else {
			items = t.collect(e.child, items)
		}
	}
	t.freeNode(n)
	return items
}
