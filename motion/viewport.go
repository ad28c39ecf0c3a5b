package motion

import (
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
)

// DeviceClass buckets viewport widths
type DeviceClass int

const (
	DeviceUnknown DeviceClass = iota
	DeviceMobile
	DeviceTablet
	DeviceDesktop
	DeviceLargeDesktop
)

func (d DeviceClass) String() string {
	switch d {
	case DeviceMobile:
		return "mobile"
	case DeviceTablet:
		return "tablet"
	case DeviceDesktop:
		return "desktop"
	case DeviceLargeDesktop:
		return "large-desktop"
	default:
		return "unknown"
	}
}

// Breakpoints in viewport units
const (
	TabletMinWidth       = 768
	DesktopMinWidth      = 1024
	LargeDesktopMinWidth = 1440
)

// ClassifyWidth maps a viewport width to its device class
func ClassifyWidth(width int) DeviceClass {
	switch {
	case width <= 0:
		return DeviceUnknown
	case width < TabletMinWidth:
		return DeviceMobile
	case width < DesktopMinWidth:
		return DeviceTablet
	case width < LargeDesktopMinWidth:
		return DeviceDesktop
	default:
		return DeviceLargeDesktop
	}
}

// DefaultResizeDebounce is the quiet period before a resize is applied
const DefaultResizeDebounce = 150 * time.Millisecond

// Snapshot is a read-only copy of the telemetry signals
type Snapshot struct {
	Width          int
	Height         int
	Device         DeviceClass
	ScrollOffset   float64
	DocumentHeight float64
	ScrollProgress float64
	Pointer        Point
	SmoothPointer  Point
}

// Viewport returns the visible region in document coordinates
func (s Snapshot) Viewport() Rect {
	return Rect{X: 0, Y: s.ScrollOffset, W: float64(s.Width), H: float64(s.Height)}
}

// TelemetryOption configures a Telemetry
type TelemetryOption func(*Telemetry)

// WithResizeDebounce overrides the resize debounce window
func WithResizeDebounce(d time.Duration) TelemetryOption {
	return func(t *Telemetry) { t.debounce = d }
}

// WithPointerSpring sets the smoothing spring: frames per second, angular
// frequency and damping ratio
func WithPointerSpring(fps int, frequency, damping float64) TelemetryOption {
	return func(t *Telemetry) {
		t.spring = harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)
	}
}

// Telemetry tracks viewport size, scroll offset and pointer position and
// fans the derived signals out to subscribers. Consumers only read it.
type Telemetry struct {
	mu       sync.Mutex
	clock    Clock
	debounce time.Duration
	resize   Timer
	snap     Snapshot
	spring   harmonica.Spring
	velX     float64
	velY     float64

	listeners map[int]func(Snapshot)
	nextID    int
	closed    bool
}

// NewTelemetry creates telemetry with all signals at zero
func NewTelemetry(clock Clock, opts ...TelemetryOption) *Telemetry {
	t := &Telemetry{
		clock:     clock,
		debounce:  DefaultResizeDebounce,
		spring:    harmonica.NewSpring(harmonica.FPS(60), 6.0, 1.0),
		listeners: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Snapshot returns the current signals
func (t *Telemetry) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}

// Resize records a new viewport size. Bursts collapse into one update
// applied once the debounce window passes without another resize.
func (t *Telemetry) Resize(width, height int) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	if t.resize != nil {
		t.resize.Stop()
	}
	if t.debounce <= 0 {
		t.resize = nil
		t.applySizeLocked(width, height)
		t.mu.Unlock()
		t.notify()
		return
	}
	defer t.mu.Unlock()
	t.resize = t.clock.AfterFunc(t.debounce, func() {
		t.mu.Lock()
		if t.closed {
			t.mu.Unlock()
			return
		}
		t.resize = nil
		t.applySizeLocked(width, height)
		t.mu.Unlock()
		t.notify()
	})
}

func (t *Telemetry) applySizeLocked(width, height int) {
	t.snap.Width = width
	t.snap.Height = height
	t.snap.Device = ClassifyWidth(width)
	t.snap.ScrollProgress = scrollProgress(t.snap.ScrollOffset, t.snap.DocumentHeight, height)
}

// Scroll records the scroll offset and total document height
func (t *Telemetry) Scroll(offset, documentHeight float64) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.snap.ScrollOffset = offset
	t.snap.DocumentHeight = documentHeight
	t.snap.ScrollProgress = scrollProgress(offset, documentHeight, t.snap.Height)
	t.mu.Unlock()
	t.notify()
}

func scrollProgress(offset, documentHeight float64, height int) float64 {
	total := documentHeight - float64(height)
	if total <= 0 {
		return 0
	}
	return clamp01(offset / total)
}

// Pointer records the pointer position
func (t *Telemetry) Pointer(x, y float64) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.snap.Pointer = Point{X: x, Y: y}
	t.mu.Unlock()
	t.notify()
}

// SmoothStep advances the smoothed pointer one spring frame toward the
// raw pointer and returns it
func (t *Telemetry) SmoothStep() Point {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := &t.snap
	s.SmoothPointer.X, t.velX = t.spring.Update(s.SmoothPointer.X, t.velX, s.Pointer.X)
	s.SmoothPointer.Y, t.velY = t.spring.Update(s.SmoothPointer.Y, t.velY, s.Pointer.Y)
	return s.SmoothPointer
}

// Subscribe registers fn for every signal change. The returned func
// removes it.
func (t *Telemetry) Subscribe(fn func(Snapshot)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return func() {}
	}
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.listeners, id)
			t.mu.Unlock()
		})
	}
}

// Listeners returns the number of live subscriptions
func (t *Telemetry) Listeners() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}

func (t *Telemetry) notify() {
	t.mu.Lock()
	snap := t.snap
	fns := make([]func(Snapshot), 0, len(t.listeners))
	for _, fn := range t.listeners {
		fns = append(fns, fn)
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Close cancels a pending resize and drops every subscriber
func (t *Telemetry) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	if t.resize != nil {
		t.resize.Stop()
		t.resize = nil
	}
	clear(t.listeners)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
