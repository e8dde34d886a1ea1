package queue

// Queue is a generic interface for FIFO queues.
type Queue[T any] interface {
	// Enqueue adds an item to the back of the queue.
	// Returns an error wrapping ErrCapacityExceeded if the queue is full.
	Enqueue(item T) error

	// Dequeue removes and returns the item at the front of the queue.
	// Returns (item, true) if successful, (zero, false) if the queue is empty.
	Dequeue() (T, bool)

	// Len returns the number of queued items.
	Len() int

	// Capacity returns the maximum number of items, 0 when unbounded.
	Capacity() int
}
