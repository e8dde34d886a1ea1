// Package ring implements a circular, doubly linked queue of vertices with a
// movable cursor.
//
// The cursor is the front of the queue. Every vertex owns its successor
// through the vertex.Next relation and points back at its predecessor through
// a weak vertex.Prev relation; a ring of one vertex links to itself weakly in
// both directions. The queue holds one extra reference on the cursor.
// Dequeued vertices are unlinked and freed before Dequeue returns.
//
// A CircularQueue is not safe for concurrent use.
package ring

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/GreenMan-Network/data-structures/pkg/datastructs/vertex"
	"github.com/GreenMan-Network/data-structures/pkg/utils"
)

var (
	// ErrCapacityExceeded is returned when enqueueing into a full, bounded queue.
	ErrCapacityExceeded = errors.New("ring: capacity exceeded")

	// ErrCapacityBelowSize is returned when shrinking capacity below the current length.
	ErrCapacityBelowSize = errors.New("ring: capacity below current size")

	// ErrBrokenRing is returned by Validate when the links do not form a closed ring.
	ErrBrokenRing = errors.New("ring: broken ring")

	// ErrArenaType is raised by New when WithArena holds an arena of another element type.
	ErrArenaType = errors.New("ring: arena element type does not match queue")
)

// CircularQueue is a ring of vertices with O(1) insertion and removal at both ends.
type CircularQueue[T any] struct {
	arena    *vertex.Arena[T]
	logger   *zap.Logger
	cursor   vertex.Handle
	size     int
	capacity int
}

// New creates an empty queue holding at most capacity values.
// A capacity of zero or less means unbounded.
func New[T any](capacity int, opts ...Option) *CircularQueue[T] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	arena := vertex.NewArena[T]()
	if o.arena != nil {
		shared, ok := o.arena.(*vertex.Arena[T])
		if !ok {
			panic(errors.Wrapf(ErrArenaType, "got %T", o.arena))
		}
		arena = shared
	}

	return &CircularQueue[T]{
		arena:    arena,
		logger:   o.logger,
		capacity: max(capacity, 0),
	}
}

// Len returns the number of values in the queue.
func (q *CircularQueue[T]) Len() int {
	return q.size
}

// IsEmpty reports whether the queue holds no values.
func (q *CircularQueue[T]) IsEmpty() bool {
	return q.size == 0
}

// IsFull reports whether a bounded queue has reached its capacity.
// An unbounded queue is never full.
func (q *CircularQueue[T]) IsFull() bool {
	return q.capacity > 0 && q.size == q.capacity
}

// Capacity returns the maximum number of values, 0 when unbounded.
func (q *CircularQueue[T]) Capacity() int {
	return q.capacity
}

// SetCapacity changes the maximum number of values. Zero or less removes the bound.
// Shrinking below the current length fails and leaves the capacity unchanged.
func (q *CircularQueue[T]) SetCapacity(capacity int) error {
	capacity = max(capacity, 0)
	if capacity > 0 && capacity < q.size {
		return errors.Wrapf(ErrCapacityBelowSize, "capacity %d, size %d", capacity, q.size)
	}

	q.logger.Debug("ring capacity changed",
		zap.Int("from", q.capacity),
		zap.Int("to", capacity),
	)
	q.capacity = capacity
	return nil
}

// Enqueue adds value at the given side.
// Left makes the new value the front; Right places it at the back.
// A full queue is left untouched and the error wraps ErrCapacityExceeded.
func (q *CircularQueue[T]) Enqueue(value T, side Side) error {
	if q.IsFull() {
		q.logger.Debug("ring enqueue rejected",
			zap.Stringer("side", side),
			zap.Int("capacity", q.capacity),
		)
		return errors.Wrapf(ErrCapacityExceeded, "enqueue %s at capacity %d", side, q.capacity)
	}

	h := q.arena.New(value)
	if q.size == 0 {
		q.arena.LinkWeak(h, vertex.Next, h)
		q.arena.LinkWeak(h, vertex.Prev, h)
		q.cursor = h
		q.size = 1
		return nil
	}

	q.spliceBefore(h, q.cursor)
	q.size++

	if side == Left {
		// the reference New handed out becomes the cursor's
		old := q.cursor
		q.cursor = h
		q.arena.Release(old)
		return nil
	}
	q.arena.Release(h)
	return nil
}

// Dequeue removes and returns the value at the given side.
// Left removes the front and advances the cursor to its successor.
// It returns false when the queue is empty.
func (q *CircularQueue[T]) Dequeue(side Side) (T, bool) {
	if q.size == 0 {
		var zero T
		return zero, false
	}

	h := q.end(side)
	value, _ := q.arena.Value(h)
	q.unsplice(h)
	return value, true
}

// Peek returns the value at the given side without removing it.
func (q *CircularQueue[T]) Peek(side Side) (T, bool) {
	if q.size == 0 {
		var zero T
		return zero, false
	}
	return q.arena.Value(q.end(side))
}

// Rotate moves the cursor steps hops in dir without changing the ring.
// Negative steps rotate the other way. Rotating an empty queue is a no-op.
func (q *CircularQueue[T]) Rotate(steps int, dir Direction) {
	if q.size < 2 {
		return
	}
	if dir == Backward {
		steps = -steps
	}

	hops, forward := utils.ShortestHops(steps, q.size)
	if hops == 0 {
		return
	}

	rel := vertex.Next
	if !forward {
		rel = vertex.Prev
	}
	target := q.cursor
	for i, n := 0, hops; i < n; i++ {
		target = q.neighbor(target, rel)
	}

	q.arena.Retain(target)
	old := q.cursor
	q.cursor = target
	q.arena.Release(old)
}

// Clear removes every value and frees every vertex of the ring.
// A vertex under a mutable borrow makes Clear panic before anything is removed.
func (q *CircularQueue[T]) Clear() {
	h := q.cursor
	for i, n := 0, q.size; i < n; i++ {
		q.mustNotBeBorrowed(h, "clear")
		h = q.neighbor(h, vertex.Next)
	}

	n := q.size
	for q.size > 0 {
		q.unsplice(q.cursor)
	}
	q.logger.Debug("ring cleared", zap.Int("released", n))
}

// Values returns the values from front to back.
func (q *CircularQueue[T]) Values() []T {
	values := make([]T, 0, q.size)
	_ = q.Iterate(func(v T) error {
		values = append(values, v)
		return nil
	})
	return values
}

// Iterate calls fn for each value from front to back.
// It stops at the first error fn returns and returns it.
func (q *CircularQueue[T]) Iterate(fn func(v T) error) error {
	h := q.cursor
	for i, n := 0, q.size; i < n; i++ {
		v, _ := q.arena.Value(h)
		if err := fn(v); err != nil {
			return err
		}
		h = q.neighbor(h, vertex.Next)
	}
	return nil
}

// Validate checks that the ring closes on the cursor after exactly Len hops
// in both directions and that every prev relation mirrors a next relation.
func (q *CircularQueue[T]) Validate() error {
	if q.size == 0 {
		if !q.cursor.IsZero() {
			return errors.Wrapf(ErrBrokenRing, "empty queue holds cursor %v", q.cursor)
		}
		return nil
	}
	if !q.arena.Alive(q.cursor) {
		return errors.Wrapf(ErrBrokenRing, "cursor %v is not alive", q.cursor)
	}

	h := q.cursor
	for i, n := 0, q.size; i < n; i++ {
		next, ok := q.arena.Neighbor(h, vertex.Next)
		if !ok {
			return errors.Wrapf(ErrBrokenRing, "hop %d: %v has no next", i, h)
		}
		if back, _ := q.arena.Neighbor(next, vertex.Prev); back != h {
			return errors.Wrapf(ErrBrokenRing, "hop %d: prev of %v is %v, want %v", i, next, back, h)
		}
		h = next
		if h == q.cursor && i < q.size-1 {
			return errors.Wrapf(ErrBrokenRing, "ring closes after %d hops, size %d", i+1, q.size)
		}
	}
	if h != q.cursor {
		return errors.Wrapf(ErrBrokenRing, "next walk of %d hops ends at %v", q.size, h)
	}

	for i, n := 0, q.size; i < n; i++ {
		h = q.neighbor(h, vertex.Prev)
	}
	if h != q.cursor {
		return errors.Wrapf(ErrBrokenRing, "prev walk of %d hops ends at %v", q.size, h)
	}
	return nil
}

// end returns the vertex at the given side of a non-empty queue.
func (q *CircularQueue[T]) end(side Side) vertex.Handle {
	if side == Left {
		return q.cursor
	}
	return q.neighbor(q.cursor, vertex.Prev)
}

func (q *CircularQueue[T]) neighbor(h vertex.Handle, rel vertex.Relation) vertex.Handle {
	n, _ := q.arena.Neighbor(h, rel)
	return n
}

// mustNotBeBorrowed panics if h is mutably borrowed, so removal never starts
// on a vertex it could not free.
func (q *CircularQueue[T]) mustNotBeBorrowed(h vertex.Handle, op string) {
	if q.arena.Borrowed(h) {
		panic(errors.Wrapf(vertex.ErrAlreadyBorrowed, "%s %v", op, h))
	}
}

// spliceBefore inserts h between at and its predecessor.
// The caller keeps the reference it holds on h.
func (q *CircularQueue[T]) spliceBefore(h, at vertex.Handle) {
	prev := q.neighbor(at, vertex.Prev)

	q.arena.Link(prev, vertex.Next, h)
	q.arena.Link(h, vertex.Next, at)
	q.arena.LinkWeak(h, vertex.Prev, prev)
	q.arena.LinkWeak(at, vertex.Prev, h)
}

// unsplice removes h from the ring, moves the cursor off it if needed and frees it.
func (q *CircularQueue[T]) unsplice(h vertex.Handle) {
	q.mustNotBeBorrowed(h, "remove")
	if q.size == 1 {
		q.arena.Unlink(h, vertex.Next)
		q.arena.Unlink(h, vertex.Prev)
		q.cursor = vertex.Handle{}
		q.size = 0
		q.arena.Release(h)
		return
	}

	q.arena.Retain(h)
	prev := q.neighbor(h, vertex.Prev)
	next := q.neighbor(h, vertex.Next)

	if q.size == 2 {
		// prev and next are the same survivor, which now closes on itself
		q.arena.LinkWeak(next, vertex.Next, next)
		q.arena.LinkWeak(next, vertex.Prev, next)
	} else {
		q.arena.Link(prev, vertex.Next, next)
		q.arena.LinkWeak(next, vertex.Prev, prev)
	}

	if h == q.cursor {
		q.arena.Retain(next)
		q.cursor = next
		q.arena.Release(h)
	}

	q.arena.Unlink(h, vertex.Next)
	q.arena.Unlink(h, vertex.Prev)
	q.size--
	q.arena.Release(h)
}
