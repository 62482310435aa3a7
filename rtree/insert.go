package rtree

import (
	"math"

	"github.com/peterstace/geokit/geom"
	"github.com/sirupsen/logrus"
)

// Insert adds a new item to the RTree.
func (t *RTree[T]) Insert(item T) {
	t.init()
	t.insert(item, item.BBox())
	t.count++
}

func (t *RTree[T]) insert(item T, bb geom.BBox) {
	t.nodeBBox(t.root)
	leaf := t.chooseLeafNode(bb)
	t.nodes[leaf].entries = append(t.nodes[leaf].entries, entry[T]{bbox: bb, item: item})
	t.invalidate(leaf)
	if len(t.nodes[leaf].entries) > t.maxFill() {
		t.splitNode(leaf)
	}
}

// chooseLeafNode descends from the root, at each level following the entry
// that needs the least enlargement to cover bb.
func (t *RTree[T]) chooseLeafNode(bb geom.BBox) int {
	n := t.root
	for !t.nodes[n].isLeaf {
		entries := t.nodes[n].entries
		bestEntry := 0
		bestDelta := entries[0].bbox.Enlargement(bb)
		bestArea := entries[0].bbox.Area()
		for i := 1; i < len(entries); i++ {
			delta := entries[i].bbox.Enlargement(bb)
			area := entries[i].bbox.Area()
			// Area is used as a tie breaker if the enlargements are the same.
			if delta < bestDelta || (delta == bestDelta && area < bestArea) {
				bestEntry, bestDelta, bestArea = i, delta, area
			}
		}
		n = entries[bestEntry].child
	}
	return n
}

// splitNode splits the overflowing node n in two. The first group replaces
// the entries of n, and the second goes into a new sibling. Splitting the
// root grows the tree by one level. Splitting any other node may cause its
// parent to overflow and split in turn.
func (t *RTree[T]) splitNode(n int) {
	t.nodeBBox(n)
	groupA, groupB := t.quadraticSplit(t.nodes[n].entries)

	isLeaf := t.nodes[n].isLeaf
	parent := t.nodes[n].parent
	sibling := t.newNode(isLeaf, parent)
	t.nodes[n].entries = groupA
	t.nodes[n].dirty = true
	t.nodes[sibling].entries = groupB
	if !isLeaf {
		for _, e := range groupB {
			t.nodes[e.child].parent = sibling
		}
	}

	if n == t.root {
		root := t.newNode(false, -1)
		t.nodes[root].entries = []entry[T]{{child: n}, {child: sibling}}
		t.nodes[n].parent = root
		t.nodes[sibling].parent = root
		t.root = root
		t.log().WithFields(logrus.Fields{
			"height": t.Height(),
			"items":  t.count,
		}).Debug("rtree: split root")
		return
	}

	t.nodes[parent].entries = append(t.nodes[parent].entries, entry[T]{child: sibling})
	t.invalidate(parent)
	if len(t.nodes[parent].entries) > t.maxFill() {
		t.splitNode(parent)
	}
}

// quadraticSplit partitions entries into two groups, each holding at least
// the minimum fill. The seeds are the pair of entries that would waste the
// most area if put together. The remaining entries are then assigned one at
// a time, most decisive first, to the group that needs less enlargement.
func (t *RTree[T]) quadraticSplit(entries []entry[T]) ([]entry[T], []entry[T]) {
	seedA, seedB := 0, 1
	worst := math.Inf(-1)
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i].bbox, entries[j].bbox
			waste := a.Union(b).Area() - a.Area() - b.Area()
			if waste > worst {
				seedA, seedB, worst = i, j, waste
			}
		}
	}

	groupA := []entry[T]{entries[seedA]}
	groupB := []entry[T]{entries[seedB]}
	bboxA, bboxB := entries[seedA].bbox, entries[seedB].bbox
	remaining := make([]entry[T], 0, len(entries)-2)
	for i, e := range entries {
		if i != seedA && i != seedB {
			remaining = append(remaining, e)
		}
	}

	minFill := t.minFill()
	for len(remaining) > 0 {
		if len(groupA)+len(remaining) <= minFill {
			groupA = append(groupA, remaining...)
			break
		}
		if len(groupB)+len(remaining) <= minFill {
			groupB = append(groupB, remaining...)
			break
		}

		next := 0
		bestDiff := math.Inf(-1)
		for i, e := range remaining {
			diff := math.Abs(bboxA.Enlargement(e.bbox) - bboxB.Enlargement(e.bbox))
			if diff > bestDiff {
				next, bestDiff = i, diff
			}
		}
		e := remaining[next]
		remaining = append(remaining[:next], remaining[next+1:]...)

		if preferFirstGroup(bboxA, bboxB, e.bbox, len(groupA), len(groupB)) {
			groupA = append(groupA, e)
			bboxA = bboxA.Union(e.bbox)
		} else {
			groupB = append(groupB, e)
			bboxB = bboxB.Union(e.bbox)
		}
	}
	return groupA, groupB
}

// preferFirstGroup decides which group an entry joins: the one needing less
// enlargement, then the one with less area, then the one with fewer
// entries, and finally the first group.
func preferFirstGroup(a, b, bb geom.BBox, lenA, lenB int) bool {
	da, db := a.Enlargement(bb), b.Enlargement(bb)
	if da != db {
		return da < db
	}
	if areaA, areaB := a.Area(), b.Area(); areaA != areaB {
		return areaA < areaB
	}
	return lenA <= lenB
}
