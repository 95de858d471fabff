package engine

import "time"

// Clock is the time source read by Tick.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock. time.Now carries a monotonic reading,
// so differences are safe across wall-clock adjustments.
func SystemClock() Clock { return systemClock{} }

// ManualClock only moves when advanced. Use it to drive Tick
// deterministically.
type ManualClock struct {
	now time.Time
}

func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(0, 0)}
}

func (c *ManualClock) Now() time.Time { return c.now }

func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
