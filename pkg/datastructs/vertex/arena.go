// Package vertex provides reference-counted, mutably shared graph vertices
// stored in an arena and addressed by generational handles.
//
// A vertex holds a value and a small set of named relations to other
// vertices. A relation is either owning (it keeps its target alive) or weak
// (traversal only). When the last owning reference to a vertex is released the
// vertex is freed on the spot: its owning relations are released in turn, its
// value is zeroed and its slot is recycled under a new generation, so stale
// handles never observe the next occupant.
//
// Misuse is loud. Mutating through a stale handle panics with ErrStaleHandle,
// and a second mutable borrow of a vertex that is already borrowed panics with
// ErrAlreadyBorrowed.
//
// An Arena is not safe for concurrent use.
package vertex

import (
	"github.com/pkg/errors"
)

var (
	// ErrStaleHandle is raised when a mutation addresses an unset or freed vertex.
	ErrStaleHandle = errors.New("vertex: stale or unset handle")

	// ErrAlreadyBorrowed is raised when a vertex is accessed while a mutable borrow is outstanding.
	ErrAlreadyBorrowed = errors.New("vertex: already mutably borrowed")
)

// link is one named relation held by a vertex.
type link struct {
	rel    Relation
	target Handle
	weak   bool
}

// slot is the storage behind a Handle.
type slot[T any] struct {
	value    T
	links    []link
	gen      uint32
	strong   int
	weak     int
	borrowed bool
}

// Arena owns vertex storage for values of type T.
// The zero value is ready to use.
type Arena[T any] struct {
	slots  []*slot[T]
	vacant []uint32
	live   int
}

// NewArena creates an empty Arena.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{}
}

// New creates an isolated vertex holding value.
// The caller owns the single strong reference it starts with.
func (a *Arena[T]) New(value T) Handle {
	var idx uint32
	if n := len(a.vacant); n > 0 {
		idx = a.vacant[n-1]
		a.vacant = a.vacant[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, &slot[T]{gen: firstGen})
	}

	s := a.slots[idx]
	s.value = value
	s.strong = 1
	a.live++
	return Handle{index: idx, gen: s.gen}
}

// Len returns the number of live vertices.
func (a *Arena[T]) Len() int {
	return a.live
}

// Alive reports whether h addresses a live vertex.
func (a *Arena[T]) Alive(h Handle) bool {
	return a.lookup(h) != nil
}

// StrongCount returns the number of owning references to h, 0 once freed.
func (a *Arena[T]) StrongCount(h Handle) int {
	if s := a.lookup(h); s != nil {
		return s.strong
	}
	return 0
}

// WeakCount returns the number of weak relations targeting h, 0 once freed.
func (a *Arena[T]) WeakCount(h Handle) int {
	if s := a.lookup(h); s != nil {
		return s.weak
	}
	return 0
}

// Retain adds an owning reference to h.
func (a *Arena[T]) Retain(h Handle) {
	a.mustLookup(h, "retain").strong++
}

// Release drops an owning reference to h, freeing the vertex when it was the last one.
func (a *Arena[T]) Release(h Handle) {
	a.mustLookup(h, "release")
	a.release(h)
}

// Value returns the value stored at h.
// It returns false when h is unset or stale.
func (a *Arena[T]) Value(h Handle) (T, bool) {
	s := a.lookup(h)
	if s == nil {
		var zero T
		return zero, false
	}
	if s.borrowed {
		panic(errors.Wrapf(ErrAlreadyBorrowed, "read %v", h))
	}
	return s.value, true
}

// Set replaces the value stored at h and returns the previous one.
func (a *Arena[T]) Set(h Handle, value T) T {
	s := a.mustLookup(h, "set")
	if s.borrowed {
		panic(errors.Wrapf(ErrAlreadyBorrowed, "set %v", h))
	}
	old := s.value
	s.value = value
	return old
}

// Borrowed reports whether a mutable borrow of h is outstanding.
func (a *Arena[T]) Borrowed(h Handle) bool {
	s := a.lookup(h)
	return s != nil && s.borrowed
}

// Clear drops every relation held by h and takes its value, leaving the zero
// value behind. The caller's own reference to h is untouched.
func (a *Arena[T]) Clear(h Handle) T {
	s := a.mustLookup(h, "clear")
	if s.borrowed {
		panic(errors.Wrapf(ErrAlreadyBorrowed, "clear %v", h))
	}

	var zero T
	value := s.value
	s.value = zero

	links := s.links
	s.links = nil
	for _, l := range links {
		a.drop(l)
	}
	return value
}

// Link points h at other under rel and makes the relation owning.
// A relation already named rel on h is replaced and its target released.
//
// Linking a vertex to itself this way keeps it alive forever; use LinkWeak.
func (a *Arena[T]) Link(h Handle, rel Relation, other Handle) {
	s := a.mustLookup(h, "link")
	a.mustLookup(other, "link target").strong++
	a.replace(s, link{rel: rel, target: other})
}

// LinkWeak points h at other under rel without keeping other alive.
// A relation already named rel on h is replaced.
func (a *Arena[T]) LinkWeak(h Handle, rel Relation, other Handle) {
	s := a.mustLookup(h, "link")
	a.mustLookup(other, "link target").weak++
	a.replace(s, link{rel: rel, target: other, weak: true})
}

// Unlink removes the relation rel from h.
// It reports whether such a relation existed.
func (a *Arena[T]) Unlink(h Handle, rel Relation) bool {
	s := a.mustLookup(h, "unlink")
	for i, l := range s.links {
		if l.rel != rel {
			continue
		}
		s.links = append(s.links[:i], s.links[i+1:]...)
		a.drop(l)
		return true
	}
	return false
}

// Get returns the target of the owning relation rel on h.
func (a *Arena[T]) Get(h Handle, rel Relation) (Handle, bool) {
	l, ok := a.find(h, rel)
	if !ok || l.weak {
		return Handle{}, false
	}
	return l.target, true
}

// GetWeak returns the target of the weak relation rel on h.
// A relation never set and one whose target has been freed both report false.
func (a *Arena[T]) GetWeak(h Handle, rel Relation) (Handle, bool) {
	l, ok := a.find(h, rel)
	if !ok || !l.weak || a.lookup(l.target) == nil {
		return Handle{}, false
	}
	return l.target, true
}

// Neighbor resolves rel on h regardless of whether the relation is owning or weak.
func (a *Arena[T]) Neighbor(h Handle, rel Relation) (Handle, bool) {
	l, ok := a.find(h, rel)
	if !ok || a.lookup(l.target) == nil {
		return Handle{}, false
	}
	return l.target, true
}

// Relations returns the names of the relations currently held by h.
func (a *Arena[T]) Relations(h Handle) []Relation {
	s := a.lookup(h)
	if s == nil {
		return nil
	}
	rels := make([]Relation, 0, len(s.links))
	for _, l := range s.links {
		rels = append(rels, l.rel)
	}
	return rels
}

// lookup returns the slot behind h, or nil when h is unset or stale.
func (a *Arena[T]) lookup(h Handle) *slot[T] {
	if h.IsZero() || int(h.index) >= len(a.slots) {
		return nil
	}
	s := a.slots[h.index]
	if s.gen != h.gen || s.strong == 0 {
		return nil
	}
	return s
}

func (a *Arena[T]) mustLookup(h Handle, op string) *slot[T] {
	s := a.lookup(h)
	if s == nil {
		panic(errors.Wrapf(ErrStaleHandle, "%s %v", op, h))
	}
	return s
}

func (a *Arena[T]) find(h Handle, rel Relation) (link, bool) {
	s := a.lookup(h)
	if s == nil {
		return link{}, false
	}
	for _, l := range s.links {
		if l.rel == rel {
			return l, true
		}
	}
	return link{}, false
}

// replace installs l on s, dropping whatever s held under the same name.
// The new link is in place before the old target is released.
func (a *Arena[T]) replace(s *slot[T], l link) {
	for i := range s.links {
		if s.links[i].rel == l.rel {
			old := s.links[i]
			s.links[i] = l
			a.drop(old)
			return
		}
	}
	s.links = append(s.links, l)
}

// drop gives up the reference a link holds on its target.
func (a *Arena[T]) drop(l link) {
	if !l.weak {
		a.release(l.target)
		return
	}
	if t := a.lookup(l.target); t != nil {
		t.weak--
	}
}

// release decrements h and frees every vertex whose count reaches zero.
// Chains are walked with an explicit stack so long rings cannot blow the goroutine stack.
func (a *Arena[T]) release(h Handle) {
	pending := []Handle{h}
	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		s := a.lookup(cur)
		if s == nil {
			continue
		}
		if s.strong == 1 && s.borrowed {
			panic(errors.Wrapf(ErrAlreadyBorrowed, "free %v", cur))
		}
		s.strong--
		if s.strong > 0 {
			continue
		}

		links := s.links
		a.free(cur.index, s)
		for _, l := range links {
			if !l.weak {
				pending = append(pending, l.target)
				continue
			}
			if t := a.lookup(l.target); t != nil {
				t.weak--
			}
		}
	}
}

// free zeroes s and recycles its index under the next generation.
func (a *Arena[T]) free(idx uint32, s *slot[T]) {
	var zero T
	s.value = zero
	s.links = nil
	s.strong = 0
	s.weak = 0
	s.borrowed = false
	s.gen++
	if s.gen == 0 {
		s.gen = firstGen
	}
	a.vacant = append(a.vacant, idx)
	a.live--
}
