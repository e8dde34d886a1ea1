package queue

import (
	"testing"

	"github.com/GreenMan-Network/data-structures/pkg/datastructs/ring"
)

// ===========================================================================
// Benchmark Configuration
// ===========================================================================

// queueBenchConfig holds benchmark test configuration.
type queueBenchConfig struct {
	name     string
	capacity int
}

// benchConfigs defines the data sizes for benchmarking.
var benchConfigs = []queueBenchConfig{
	{"Small/Cap64", 64},
	{"Medium/Cap1K", 1024},
	{"Large/Cap64K", 64 * 1024},
}

// ===========================================================================
// Queue Factory Registry
// ===========================================================================

// queueFactory creates a Queue[int] with the given capacity.
type queueFactory func(capacity int) Queue[int]

// rightLeft adapts a CircularQueue used from the right end in and the left end out.
type rightLeft struct {
	*ring.CircularQueue[int]
}

func (q rightLeft) Enqueue(item int) error { return q.CircularQueue.Enqueue(item, ring.Right) }
func (q rightLeft) Dequeue() (int, bool)   { return q.CircularQueue.Dequeue(ring.Left) }

// queueImplementations holds all registered queue implementations.
var queueImplementations = map[string]queueFactory{
	"FIFO": func(capacity int) Queue[int] { return NewFIFO[int](capacity) },
	"Ring": func(capacity int) Queue[int] { return rightLeft{ring.New[int](capacity)} },
}

// ===========================================================================
// Single-Threaded Benchmarks
// ===========================================================================

// BenchmarkEnqueue measures Enqueue performance.
func BenchmarkEnqueue(b *testing.B) {
	for implName, factory := range queueImplementations {
		for _, cfg := range benchConfigs {
			b.Run(implName+"/"+cfg.name, func(b *testing.B) {
				q := factory(cfg.capacity)
				b.ResetTimer()
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_ = q.Enqueue(i)
					// Drain to avoid full queue
					if i%cfg.capacity == cfg.capacity-1 {
						b.StopTimer()
						for j := 0; j < cfg.capacity; j++ {
							q.Dequeue()
						}
						b.StartTimer()
					}
				}
			})
		}
	}
}

// BenchmarkEnqueueDequeue measures a steady push/pop pair on a half-full queue.
func BenchmarkEnqueueDequeue(b *testing.B) {
	for implName, factory := range queueImplementations {
		for _, cfg := range benchConfigs {
			b.Run(implName+"/"+cfg.name, func(b *testing.B) {
				q := factory(cfg.capacity)
				for i := 0; i < cfg.capacity/2; i++ {
					_ = q.Enqueue(i)
				}
				b.ResetTimer()
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_ = q.Enqueue(i)
					q.Dequeue()
				}
			})
		}
	}
}

// BenchmarkRotate measures cursor movement around a full ring.
func BenchmarkRotate(b *testing.B) {
	for _, cfg := range benchConfigs {
		b.Run(cfg.name, func(b *testing.B) {
			q := ring.New[int](cfg.capacity)
			for i := 0; i < cfg.capacity; i++ {
				_ = q.Enqueue(i, ring.Right)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				q.Rotate(1, ring.Forward)
			}
		})
	}
}
