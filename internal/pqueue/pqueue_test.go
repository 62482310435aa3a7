package pqueue

import (
	"math/rand"
	"sort"
	"testing"
)

func TestPopsInPriorityOrder(t *testing.T) {
	rnd := rand.New(rand.NewSource(0))
	q := New[int]()
	var want []float64
	for i := 0; i < 200; i++ {
		p := rnd.Float64()
		want = append(want, p)
		q.Push(i, p)
	}
	sort.Float64s(want)

	if q.Len() != len(want) {
		t.Fatalf("len: got %d want %d", q.Len(), len(want))
	}
	for i, w := range want {
		_, p, ok := q.Pop()
		if !ok || p != w {
			t.Fatalf("pop %d: got %v want %v", i, p, w)
		}
	}
	if _, _, ok := q.Pop(); ok {
		t.Error("pop on empty queue should fail")
	}
}

func TestValuesFollowPriorities(t *testing.T) {
	q := New[string]()
	q.Push("c", 3)
	q.Push("a", 1)
	q.Push("b", 2)
	var got []string
	for q.Len() > 0 {
		v, _, _ := q.Pop()
		got = append(got, v)
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("got %v", got)
	}
}
