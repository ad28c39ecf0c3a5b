package motion

import (
	"slices"
	"sync"
	"time"
)

// Sequencer activates n items one after another, item i at i*delay after
// TriggerAll
type Sequencer struct {
	mu     sync.Mutex
	clock  Clock
	delay  time.Duration
	active []bool
	timers []Timer
	run    uint64

	listeners []func(int)
}

// NewSequencer creates a sequencer for n items
func NewSequencer(clock Clock, n int, delay time.Duration) *Sequencer {
	if n < 0 {
		n = 0
	}
	return &Sequencer{
		clock:  clock,
		delay:  delay,
		active: make([]bool, n),
		timers: make([]Timer, n),
	}
}

func (s *Sequencer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// Offset returns the activation time of item i relative to the start
func (s *Sequencer) Offset(i int) time.Duration {
	return time.Duration(i) * s.delay
}

// Offsets returns every activation time in item order
func (s *Sequencer) Offsets() []time.Duration {
	n := s.Len()
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = s.Offset(i)
	}
	return out
}

// OnActivate registers fn, called with the item index as it activates
func (s *Sequencer) OnActivate(fn func(i int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// TriggerItem schedules item i at its offset
func (s *Sequencer) TriggerItem(i int) {
	s.mu.Lock()
	if i < 0 || i >= len(s.active) {
		s.mu.Unlock()
		return
	}
	run := s.run
	s.scheduleLocked(i, run)
	s.mu.Unlock()
	if s.Offset(i) <= 0 {
		s.activate(i, run)
	}
}

// TriggerAll cancels any run in progress and schedules every item
func (s *Sequencer) TriggerAll() {
	s.mu.Lock()
	s.cancelLocked()
	run := s.run
	n := len(s.active)
	for i := 0; i < n; i++ {
		s.scheduleLocked(i, run)
	}
	s.mu.Unlock()

	for i := 0; i < n && s.Offset(i) <= 0; i++ {
		s.activate(i, run)
	}
}

// scheduleLocked arms a timer for item i unless its offset is zero; zero
// offsets are activated synchronously by the caller after unlocking
func (s *Sequencer) scheduleLocked(i int, run uint64) {
	if s.timers[i] != nil {
		s.timers[i].Stop()
		s.timers[i] = nil
	}
	d := s.Offset(i)
	if d <= 0 {
		return
	}
	s.timers[i] = s.clock.AfterFunc(d, func() { s.activate(i, run) })
}

func (s *Sequencer) activate(i int, run uint64) {
	s.mu.Lock()
	if run != s.run || s.active[i] {
		s.mu.Unlock()
		return
	}
	s.active[i] = true
	s.timers[i] = nil
	fns := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, fn := range fns {
		fn(i)
	}
}

// cancelLocked stops pending activations and starts a new run generation
// so stray callbacks from the old run are ignored
func (s *Sequencer) cancelLocked() {
	for i, t := range s.timers {
		if t != nil {
			t.Stop()
			s.timers[i] = nil
		}
	}
	s.run++
}

// Reset cancels pending activations and clears every flag
func (s *Sequencer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	clear(s.active)
}

// Active reports whether item i has activated
func (s *Sequencer) Active(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.active) {
		return false
	}
	return s.active[i]
}

// Activated returns a copy of every flag
func (s *Sequencer) Activated() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.active...)
}

// Bind starts the sequence when t reveals and resets it when a repeatable
// trigger hides again
func (s *Sequencer) Bind(t *Trigger) {
	t.OnChange(func(visible bool) {
		if visible {
			s.TriggerAll()
			return
		}
		s.Reset()
	})
	if t.Visible() {
		s.TriggerAll()
	}
}

// Close cancels pending activations
func (s *Sequencer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.listeners = nil
}
