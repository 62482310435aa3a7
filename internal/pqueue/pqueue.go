// Package pqueue provides a binary min-heap keyed by a float64 priority.
package pqueue

import "github.com/tidwall/tinyqueue"

type item[T any] struct {
	value    T
	priority float64
}

func (i *item[T]) Less(other tinyqueue.Item) bool {
	return i.priority < other.(*item[T]).priority
}

// Queue is a min-priority queue. Values with equal priority are popped in
// no particular order. The zero value is not usable; use New.
type Queue[T any] struct {
	q *tinyqueue.Queue
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{q: tinyqueue.New(nil)}
}

// Push adds v with the given priority.
func (q *Queue[T]) Push(v T, priority float64) {
	q.q.Push(&item[T]{v, priority})
}

// Pop removes and returns the value with the lowest priority. The final
// return value is false if the queue is empty.
func (q *Queue[T]) Pop() (T, float64, bool) {
	if q.q.Len() == 0 {
		var zero T
		return zero, 0, false
	}
	it := q.q.Pop().(*item[T])
	return it.value, it.priority, true
}

// Len gives the number of values in the queue.
func (q *Queue[T]) Len() int {
	return q.q.Len()
}
