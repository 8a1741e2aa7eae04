package ring

import "sync/atomic"

// clock is a monotonic logical clock.
//
// Sequence indices and journal ordinals are stamped from clocks of this
// type. Logical stamps keep ordering deterministic across concurrent
// callers; wall-clock timestamps are never used for ordering.
//
// Thread-safety: safe for concurrent use (atomic operations), although
// under the ring's write lock only one goroutine advances it at a time.
type clock struct {
	seq atomic.Int64
}

// next returns the next value and advances the clock.
// Calls are linearizable - each call returns a unique, increasing value.
func (c *clock) next() int64 {
	return c.seq.Add(1)
}

// current returns the clock's position without advancing it.
func (c *clock) current() int64 {
	return c.seq.Load()
}
