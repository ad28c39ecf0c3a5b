package motion

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rivo/uniseg"
)

// ErrNoPhrases is returned when a typewriter has nothing to cycle through
var ErrNoPhrases = errors.New("typewriter: no phrases")

// Phase is the typewriter state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTyping
	PhasePausing
	PhaseDeleting
)

func (p Phase) String() string {
	switch p {
	case PhaseTyping:
		return "typing"
	case PhasePausing:
		return "pausing"
	case PhaseDeleting:
		return "deleting"
	default:
		return "idle"
	}
}

// TypewriterConfig sets phrases and pacing
type TypewriterConfig struct {
	Phrases     []string
	TypeSpeed   time.Duration // per revealed character
	DeleteSpeed time.Duration // per retracted character
	Pause       time.Duration // full phrase hold
	Blink       time.Duration // cursor half-period, zero disables the cursor
}

// DefaultTypewriterConfig matches the hero role line
func DefaultTypewriterConfig(phrases ...string) TypewriterConfig {
	return TypewriterConfig{
		Phrases:     phrases,
		TypeSpeed:   100 * time.Millisecond,
		DeleteSpeed: 50 * time.Millisecond,
		Pause:       2 * time.Second,
		Blink:       530 * time.Millisecond,
	}
}

// Frame is what the typewriter currently shows
type Frame struct {
	Index  int
	Text   string
	Phase  Phase
	Cursor bool
}

// Typewriter cycles phrases forever: type, pause, delete, advance.
// One timer handle drives it, so two phrases never interleave.
type Typewriter struct {
	mu      sync.Mutex
	clock   Clock
	cfg     TypewriterConfig
	phrases [][]string

	index   int
	visible int
	phase   Phase
	timer   Timer
	gen     uint64
	started time.Time

	listeners []func(Frame)
}

// NewTypewriter splits phrases into grapheme clusters. Non-positive pacing
// durations fall back to the defaults.
func NewTypewriter(clock Clock, cfg TypewriterConfig) (*Typewriter, error) {
	if len(cfg.Phrases) == 0 {
		return nil, ErrNoPhrases
	}
	def := DefaultTypewriterConfig()
	if cfg.TypeSpeed <= 0 {
		cfg.TypeSpeed = def.TypeSpeed
	}
	if cfg.DeleteSpeed <= 0 {
		cfg.DeleteSpeed = def.DeleteSpeed
	}
	if cfg.Pause <= 0 {
		cfg.Pause = def.Pause
	}
	phrases := make([][]string, len(cfg.Phrases))
	for i, p := range cfg.Phrases {
		phrases[i] = graphemes(p)
	}
	return &Typewriter{clock: clock, cfg: cfg, phrases: phrases}, nil
}

func graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// OnChange registers fn for every displayed-text change
func (t *Typewriter) OnChange(fn func(Frame)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

// Start begins cycling from the current phrase. No-op when running.
func (t *Typewriter) Start() {
	t.mu.Lock()
	if t.phase != PhaseIdle {
		t.mu.Unlock()
		return
	}
	t.started = t.clock.Now()
	t.beginLocked(t.index)
	t.emitUnlock()
}

// Jump abandons the current phrase and starts typing phrase i
func (t *Typewriter) Jump(i int) {
	t.mu.Lock()
	if t.started.IsZero() {
		t.started = t.clock.Now()
	}
	t.beginLocked(i)
	t.emitUnlock()
}

// Next abandons the current phrase and starts typing the following one
func (t *Typewriter) Next() {
	t.mu.Lock()
	i := t.index + 1
	t.mu.Unlock()
	t.Jump(i)
}

// beginLocked cancels any pending step before touching state
func (t *Typewriter) beginLocked(i int) {
	t.cancelLocked()
	n := len(t.phrases)
	t.index = ((i % n) + n) % n
	t.visible = 0
	t.phase = PhaseTyping
	t.scheduleLocked(t.cfg.TypeSpeed)
}

func (t *Typewriter) cancelLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
}

func (t *Typewriter) scheduleLocked(d time.Duration) {
	gen := t.gen
	t.timer = t.clock.AfterFunc(d, func() { t.step(gen) })
}

// step advances the state machine by one event
func (t *Typewriter) step(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || t.phase == PhaseIdle {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	phrase := t.phrases[t.index]

	switch t.phase {
	case PhaseTyping:
		if t.visible < len(phrase) {
			t.visible++
		}
		if t.visible >= len(phrase) {
			t.phase = PhasePausing
			t.scheduleLocked(t.cfg.Pause)
		} else {
			t.scheduleLocked(t.cfg.TypeSpeed)
		}
	case PhasePausing:
		t.phase = PhaseDeleting
		t.deleteLocked()
	case PhaseDeleting:
		t.deleteLocked()
	}
	t.emitUnlock()
}

func (t *Typewriter) deleteLocked() {
	if t.visible > 0 {
		t.visible--
	}
	if t.visible == 0 {
		t.index = (t.index + 1) % len(t.phrases)
		t.phase = PhaseTyping
		t.scheduleLocked(t.cfg.TypeSpeed)
		return
	}
	t.scheduleLocked(t.cfg.DeleteSpeed)
}

// emitUnlock snapshots the frame, releases the lock and notifies
func (t *Typewriter) emitUnlock() {
	f := t.frameLocked()
	fns := slices.Clone(t.listeners)
	t.mu.Unlock()
	for _, fn := range fns {
		fn(f)
	}
}

func (t *Typewriter) frameLocked() Frame {
	return Frame{
		Index:  t.index,
		Text:   strings.Join(t.phrases[t.index][:t.visible], ""),
		Phase:  t.phase,
		Cursor: t.cursorLocked(),
	}
}

func (t *Typewriter) cursorLocked() bool {
	if t.cfg.Blink <= 0 || t.phase == PhaseIdle {
		return false
	}
	elapsed := t.clock.Now().Sub(t.started)
	return (elapsed/t.cfg.Blink)%2 == 0
}

// Frame returns what is shown now
func (t *Typewriter) Frame() Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frameLocked()
}

// Phrase returns phrase i as configured
func (t *Typewriter) Phrase(i int) string {
	return t.cfg.Phrases[i]
}

// Len returns the number of phrases
func (t *Typewriter) Len() int {
	return len(t.phrases)
}

// Stop cancels the pending step and goes idle, keeping the current text
func (t *Typewriter) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.phase = PhaseIdle
	t.started = time.Time{}
}
