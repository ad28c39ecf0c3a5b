package motion

import (
	"sort"
	"sync"
	"time"
)

// Timer is a handle to a scheduled callback
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. Every primitive in this package takes one so
// tests can drive time explicitly.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock uses the system clock and runtime timers
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualClock is a controllable clock for tests. Callbacks only run inside
// Advance, in deadline order.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	clock *ManualClock
	at    time.Time
	seq   uint64
	f     func()
}

// NewManualClock creates a manual clock starting at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &manualTimer{clock: c, at: c.now.Add(d), seq: c.seq, f: f}
	c.pending = append(c.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.pending {
		if p == t {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves time forward by d, firing every callback whose deadline
// falls inside the window. Callbacks scheduled by callbacks fire too if
// they are due.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.popDue(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.at
		c.mu.Unlock()
		next.f()
	}
}

// popDue removes and returns the earliest timer due at or before target
func (c *ManualClock) popDue(target time.Time) *manualTimer {
	if len(c.pending) == 0 {
		return nil
	}
	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].at.Equal(c.pending[j].at) {
			return c.pending[i].seq < c.pending[j].seq
		}
		return c.pending[i].at.Before(c.pending[j].at)
	})
	first := c.pending[0]
	if first.at.After(target) {
		return nil
	}
	c.pending = c.pending[1:]
	return first
}

// Pending returns the number of scheduled callbacks not yet fired or stopped
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
