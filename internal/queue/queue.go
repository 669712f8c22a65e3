// Package queue provides the unbounded, non-blocking channels that connect
// the compositor callback with the engine.
package queue

import (
	"errors"
	"sync"

	"code.hybscloud.com/iox"
)

// ErrClosed is returned by Push after Close, and by TryPop once a closed
// queue has been drained.
var ErrClosed = errors.New("queue: closed")

// Queue is an unbounded multi-producer FIFO. TryPop never blocks: it
// returns iox.ErrWouldBlock when nothing is queued.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
}

func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

func (q *Queue[T]) Push(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	q.items = append(q.items, v)
	return nil
}

func (q *Queue[T]) TryPop() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	if len(q.items) == 0 {
		if q.closed {
			return zero, ErrClosed
		}
		return zero, iox.ErrWouldBlock
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return v, nil
}

// Close detaches the producers. Items queued before Close can still be
// popped.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}

func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
