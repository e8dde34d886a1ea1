package vertex

import (
	"github.com/pkg/errors"
)

// RefMut is an outstanding mutable borrow of one vertex's value.
// While it is held, every other access to that value panics with ErrAlreadyBorrowed.
type RefMut[T any] struct {
	arena    *Arena[T]
	handle   Handle
	released bool
}

// BorrowMut takes exclusive access to the value at h.
// It panics if h is stale or already borrowed.
func (a *Arena[T]) BorrowMut(h Handle) *RefMut[T] {
	s := a.mustLookup(h, "borrow")
	if s.borrowed {
		panic(errors.Wrapf(ErrAlreadyBorrowed, "borrow %v", h))
	}
	s.borrowed = true
	return &RefMut[T]{arena: a, handle: h}
}

// Value returns a pointer to the borrowed value.
// The pointer must not be retained past Release.
func (r *RefMut[T]) Value() *T {
	if r.released {
		panic(errors.Wrapf(ErrStaleHandle, "use of released borrow on %v", r.handle))
	}
	return &r.arena.mustLookup(r.handle, "borrowed value").value
}

// Release ends the borrow. Calling it more than once is a no-op.
func (r *RefMut[T]) Release() {
	if r.released {
		return
	}
	r.released = true
	if s := r.arena.lookup(r.handle); s != nil {
		s.borrowed = false
	}
}

// Update runs fn with exclusive access to the value at h.
func (a *Arena[T]) Update(h Handle, fn func(v *T)) {
	ref := a.BorrowMut(h)
	defer ref.Release()
	fn(ref.Value())
}
