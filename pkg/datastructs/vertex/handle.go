package vertex

import "fmt"

// Handle addresses a vertex inside an Arena.
// The zero Handle is unset. A handle outlives its vertex: once the vertex is
// freed the handle is stale and every lookup through it resolves to unset.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the unset handle.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	if h.IsZero() {
		return "vertex(unset)"
	}
	return fmt.Sprintf("vertex(%d@%d)", h.index, h.gen)
}
