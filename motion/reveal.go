package motion

import (
	"slices"
	"sync"
	"time"
)

// RevealOptions configures a Trigger
type RevealOptions struct {
	// Threshold is the visible-area ratio that counts as "in view".
	// Zero fires on any overlap.
	Threshold float64
	// RootMargin grows or shrinks the observation root
	RootMargin Margin
	// TriggerOnce latches the first reveal and releases the observation
	TriggerOnce bool
	// Delay postpones each visibility transition
	Delay time.Duration
}

// DefaultRevealOptions mirrors the scroll hook defaults
func DefaultRevealOptions() RevealOptions {
	return RevealOptions{
		Threshold:   0.1,
		TriggerOnce: true,
	}
}

// Trigger turns a stream of visibility ratios into a visible flag
type Trigger struct {
	mu      sync.Mutex
	clock   Clock
	opts    RevealOptions
	visible bool
	seen    bool
	ratio   float64

	pending  Timer
	target   bool
	next     float64
	released bool
	closed   bool
	release  func()

	listeners []func(bool)
}

// NewTrigger creates a trigger in the hidden state
func NewTrigger(clock Clock, opts RevealOptions) *Trigger {
	return &Trigger{clock: clock, opts: opts}
}

// Options returns the trigger configuration
func (t *Trigger) Options() RevealOptions {
	return t.opts
}

// crosses reports whether ratio counts as in view
func (t *Trigger) crosses(ratio float64) bool {
	if t.opts.Threshold <= 0 {
		return ratio > 0
	}
	return ratio >= t.opts.Threshold
}

// Observe feeds the current visible-area ratio of the element
func (t *Trigger) Observe(ratio float64) {
	t.mu.Lock()
	if t.released || t.closed {
		t.mu.Unlock()
		return
	}
	inView := t.crosses(ratio)

	var release func()
	if t.opts.TriggerOnce && inView {
		t.released = true
		release = t.release
		t.release = nil
	}

	if t.opts.Delay > 0 {
		t.scheduleLocked(inView, ratio)
		t.mu.Unlock()
	} else {
		changed, now := t.applyLocked(inView, ratio)
		fns := t.listenersLocked()
		t.mu.Unlock()
		if changed {
			emit(fns, now)
		}
	}

	if release != nil {
		release()
	}
}

// scheduleLocked delays a transition toward inView. A pending transition
// heading the same way keeps its deadline; one heading the other way is
// dropped.
func (t *Trigger) scheduleLocked(inView bool, ratio float64) {
	if t.pending != nil {
		if t.target == inView {
			t.next = ratio
			return
		}
		t.pending.Stop()
		t.pending = nil
	}
	if inView == t.visible {
		t.ratio = ratio
		return
	}
	t.target, t.next = inView, ratio
	t.pending = t.clock.AfterFunc(t.opts.Delay, func() {
		t.mu.Lock()
		if t.closed {
			t.mu.Unlock()
			return
		}
		t.pending = nil
		changed, now := t.applyLocked(t.target, t.next)
		fns := t.listenersLocked()
		t.mu.Unlock()
		if changed {
			emit(fns, now)
		}
	})
}

// applyLocked commits a transition and reports whether the effective
// visibility flipped
func (t *Trigger) applyLocked(inView bool, ratio float64) (bool, bool) {
	before := t.visibleLocked()
	t.visible = inView
	t.ratio = ratio
	if inView {
		t.seen = true
	}
	after := t.visibleLocked()
	return before != after, after
}

func (t *Trigger) visibleLocked() bool {
	if t.opts.TriggerOnce {
		return t.seen
	}
	return t.visible
}

func (t *Trigger) listenersLocked() []func(bool) {
	return slices.Clone(t.listeners)
}

func emit(fns []func(bool), v bool) {
	for _, fn := range fns {
		fn(v)
	}
}

// Visible reports the effective state: latched for trigger-once
func (t *Trigger) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visibleLocked()
}

// HasBeenVisible reports whether the element was ever revealed
func (t *Trigger) HasBeenVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seen
}

// Ratio returns the last committed visibility ratio
func (t *Trigger) Ratio() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ratio
}

// Released reports whether the trigger stopped accepting observations
func (t *Trigger) Released() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.released || t.closed
}

// OnChange registers fn for effective visibility flips
func (t *Trigger) OnChange(fn func(visible bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

// setRelease installs the hook that detaches the trigger from its observer
func (t *Trigger) setRelease(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.release = fn
}

// Close cancels a pending delayed transition and detaches the trigger
func (t *Trigger) Close() {
	t.mu.Lock()
	t.closed = true
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	release := t.release
	t.release = nil
	t.listeners = nil
	t.mu.Unlock()

	if release != nil {
		release()
	}
}
