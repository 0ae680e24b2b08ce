package testutil

import (
	"sync"
	"time"
)

// DeterministicClock is a point sequencer for tests. It satisfies
// engine.Sequencer and also numbers harness trace steps.
//
// Thread-safety: Next is safe for concurrent use.
type DeterministicClock struct {
	mu  sync.Mutex
	seq int64
}

// NewDeterministicClock creates a clock whose first Next returns 1.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{}
}

// Next increments and returns the sequence number.
func (c *DeterministicClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Epoch is the first timestamp a SteppingClock hands out.
var Epoch = time.Date(2026, 1, 18, 14, 0, 0, 0, time.UTC)

// SteppingClock is a wall clock that advances by a fixed step on every
// read. Its Now method has the engine.NowFunc signature.
//
// Thread-safety: Now is safe for concurrent use.
type SteppingClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

// NewSteppingClock starts at Epoch and advances by step per call.
// A zero step yields a frozen clock.
func NewSteppingClock(step time.Duration) *SteppingClock {
	return &SteppingClock{next: Epoch, step: step}
}

// Now returns the current reading and advances the clock.
func (c *SteppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.next
	c.next = c.next.Add(c.step)
	return t
}
