package motion

import "sync"

// Observer computes intersection ratios for registered elements against
// a root rect and feeds them to their triggers
type Observer struct {
	mu      sync.Mutex
	entries map[*Trigger]func() Rect
	root    Rect
	hasRoot bool
}

func NewObserver() *Observer {
	return &Observer{entries: make(map[*Trigger]func() Rect)}
}

// Observe registers an element. bounds returns its rect in the same
// coordinate space as the root. If a root is known, the element is
// evaluated immediately. Released or closed triggers are ignored.
func (o *Observer) Observe(t *Trigger, bounds func() Rect) {
	if t.Released() {
		return
	}
	o.mu.Lock()
	o.entries[t] = bounds
	root, hasRoot := o.root, o.hasRoot
	o.mu.Unlock()

	t.setRelease(func() { o.Unobserve(t) })
	if hasRoot {
		t.Observe(ratioFor(t, bounds(), root))
	}
}

// Unobserve drops an element
func (o *Observer) Unobserve(t *Trigger) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.entries, t)
}

// Len returns the number of active observations
func (o *Observer) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.entries)
}

// Update evaluates every element against root
func (o *Observer) Update(root Rect) {
	o.mu.Lock()
	o.root = root
	o.hasRoot = true
	type pair struct {
		t      *Trigger
		bounds func() Rect
	}
	pairs := make([]pair, 0, len(o.entries))
	for t, b := range o.entries {
		pairs = append(pairs, pair{t, b})
	}
	o.mu.Unlock()

	for _, p := range pairs {
		p.t.Observe(ratioFor(p.t, p.bounds(), root))
	}
}

func ratioFor(t *Trigger, target, root Rect) float64 {
	return IntersectionRatio(target, t.Options().RootMargin.Expand(root))
}

// Attach drives Update from telemetry, using the viewport at the current
// scroll offset as root. The returned func detaches.
func (o *Observer) Attach(tel *Telemetry) func() {
	return tel.Subscribe(func(s Snapshot) {
		o.Update(s.Viewport())
	})
}

// Close drops every observation
func (o *Observer) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	clear(o.entries)
}
