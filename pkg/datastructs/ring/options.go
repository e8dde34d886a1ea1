package ring

import (
	"go.uber.org/zap"

	"github.com/GreenMan-Network/data-structures/pkg/datastructs/vertex"
)

// Option configures a CircularQueue.
type Option func(*options)

type options struct {
	logger *zap.Logger
	arena  any
}

// WithLogger sets the logger used for capacity and teardown events.
// A nil logger keeps the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithArena makes the queue allocate its vertices from a.
// The arena's element type must match the queue's; New panics with
// ErrArenaType otherwise.
func WithArena[T any](a *vertex.Arena[T]) Option {
	return func(o *options) {
		if a != nil {
			o.arena = a
		}
	}
}
