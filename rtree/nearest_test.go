package rtree

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/peterstace/geokit/geom"
)

func TestNearest(t *testing.T) {
	for _, bulk := range []bool{false, true} {
		for _, population := range []int{1, 7, 50, 300} {
			name := fmt.Sprintf("bulk_%t_pop_%d", bulk, population)
			t.Run(name, func(t *testing.T) {
				rnd := rand.New(rand.NewSource(int64(population)))
				items := randomItems(rnd, population)
				var rt RTree[*testItem]
				if bulk {
					rt.BulkLoad(items)
				} else {
					for _, it := range items {
						rt.Insert(it)
					}
				}

				for i := 0; i < 20; i++ {
					p := geom.Point{X: rnd.Float64()*1.4 - 0.2, Y: rnd.Float64()*1.4 - 0.2}
					k := rnd.Intn(population + 3)

					var want []float64
					for _, it := range items {
						want = append(want, it.bb.MinDist(p))
					}
					sort.Float64s(want)
					if k < len(want) {
						want = want[:k]
					}

					got := rt.Nearest(p, k)
					if len(got) != len(want) {
						t.Fatalf("k=%d: got %d items want %d", k, len(got), len(want))
					}
					for j, it := range got {
						if d := it.bb.MinDist(p); d != want[j] {
							t.Fatalf("k=%d: result %d has distance %v want %v", k, j, d, want[j])
						}
					}
				}
			})
		}
	}
}

func TestNearestAfterRemove(t *testing.T) {
	var rt RTree[*testItem]
	var items []*testItem
	for i := 0; i < 40; i++ {
		it := &testItem{id: i, bb: geom.Point{X: float64(i), Y: 0}.BBox()}
		items = append(items, it)
		rt.Insert(it)
	}
	for _, it := range items[:10] {
		rt.Remove(it)
	}
	got := rt.Nearest(geom.Point{X: -5, Y: 0}, 3)
	if len(got) != 3 || got[0].id != 10 || got[1].id != 11 || got[2].id != 12 {
		t.Errorf("got %v", ids(got))
	}
	if got := rt.Nearest(geom.Point{}, 0); got != nil {
		t.Errorf("k=0: got %v", got)
	}
}
