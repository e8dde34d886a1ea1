package queue

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/GreenMan-Network/data-structures/pkg/datastructs/ring"
	"github.com/GreenMan-Network/data-structures/pkg/settings"
)

// ErrCapacityExceeded is returned by Push on a full, bounded FIFO.
var ErrCapacityExceeded = ring.ErrCapacityExceeded

// FIFO is a first-in-first-out queue backed by a ring.CircularQueue.
// Values enter at the right end and leave from the left end.
type FIFO[T any] struct {
	ring *ring.CircularQueue[T]
}

// NewFIFO creates a FIFO holding at most capacity values, unbounded when capacity is 0.
func NewFIFO[T any](capacity int, opts ...ring.Option) *FIFO[T] {
	return &FIFO[T]{ring: ring.New[T](capacity, opts...)}
}

// FromSettings validates cfg and creates a FIFO from it.
func FromSettings[T any](cfg settings.Queue, logger *zap.Logger) (*FIFO[T], error) {
	if err := settings.Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid queue settings")
	}
	return NewFIFO[T](cfg.Capacity, ring.WithLogger(logger)), nil
}

// Push appends value to the back.
func (f *FIFO[T]) Push(value T) error {
	return f.ring.Enqueue(value, ring.Right)
}

// Pop removes and returns the oldest value.
func (f *FIFO[T]) Pop() (T, bool) {
	return f.ring.Dequeue(ring.Left)
}

// Peek returns the oldest value without removing it.
func (f *FIFO[T]) Peek() (T, bool) {
	return f.ring.Peek(ring.Left)
}

// Enqueue implements Queue.
func (f *FIFO[T]) Enqueue(item T) error { return f.Push(item) }

// Dequeue implements Queue.
func (f *FIFO[T]) Dequeue() (T, bool) { return f.Pop() }

func (f *FIFO[T]) Len() int      { return f.ring.Len() }
func (f *FIFO[T]) IsEmpty() bool { return f.ring.IsEmpty() }
func (f *FIFO[T]) IsFull() bool  { return f.ring.IsFull() }
func (f *FIFO[T]) Capacity() int { return f.ring.Capacity() }

// SetCapacity changes the bound; see ring.CircularQueue.SetCapacity.
func (f *FIFO[T]) SetCapacity(capacity int) error {
	return f.ring.SetCapacity(capacity)
}

// Clear drops every queued value.
func (f *FIFO[T]) Clear() {
	f.ring.Clear()
}

// Values returns the queued values, oldest first.
func (f *FIFO[T]) Values() []T {
	return f.ring.Values()
}
