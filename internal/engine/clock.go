package engine

import (
	"sync/atomic"
	"time"
)

// Sequencer hands out strictly increasing point sequence numbers.
// Implemented by Clock and by testutil.DeterministicClock.
type Sequencer interface {
	Next() int64
}

// Clock is a monotonic logical clock for ordering point events.
//
// Thread-safety: Clock is safe for concurrent use. Every Match owns its own
// Clock; seq values are only comparable within one match.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock whose next value is start+1.
// Restore uses it to continue numbering after a recorded point log.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// NowFunc supplies wall-clock timestamps for point events.
type NowFunc func() time.Time
