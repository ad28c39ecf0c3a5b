// Package tui is the terminal front end: the profile laid out as a
// scrolling page whose sections reveal as they come into view, with a
// pointer-attracted particle backdrop and a cycling headline.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Zachkp/folio/motion"
	"github.com/Zachkp/folio/portfolio"
)

const (
	frameInterval = 50 * time.Millisecond
	skillStagger  = 100 * time.Millisecond
)

type frameMsg time.Time

type loadedMsg portfolio.LoadResult

// block is one revealable section of the page
type block struct {
	def     sectionDef
	preset  motion.Preset
	trigger *motion.Trigger

	// guarded by Model.mu
	top, height int
	width       int
	lines       []string
	revealedAt  time.Time
}

type Model struct {
	clock    motion.Clock
	loader   *portfolio.Loader
	fieldCfg motion.FieldConfig
	ticking  bool

	tel    *motion.Telemetry
	obs    *motion.Observer
	detach func()

	field  *motion.Field
	tw     *motion.Typewriter
	skills *motion.Sequencer

	result portfolio.LoadResult
	width  int
	height int
	scroll int

	mu        sync.Mutex
	blocks    []*block
	docHeight int
	skillList []portfolio.Skill
}

type Option func(*Model)

// WithClock replaces the real clock
func WithClock(c motion.Clock) Option {
	return func(m *Model) { m.clock = c }
}

// WithFieldConfig tunes the particle backdrop
func WithFieldConfig(cfg motion.FieldConfig) Option {
	return func(m *Model) { m.fieldCfg = cfg }
}

// WithoutFrames disables the render tick, leaving updates to messages
func WithoutFrames() Option {
	return func(m *Model) { m.ticking = false }
}

func New(loader *portfolio.Loader, opts ...Option) *Model {
	m := &Model{
		clock:    motion.RealClock{},
		loader:   loader,
		fieldCfg: motion.DefaultFieldConfig(),
		ticking:  true,
		obs:      motion.NewObserver(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.tel = motion.NewTelemetry(m.clock)
	m.detach = m.obs.Attach(m.tel)
	return m
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCmd()}
	if m.ticking {
		cmds = append(cmds, frameCmd())
	}
	return tea.Batch(cmds...)
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) loadCmd() tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		return loadedMsg(loader.Load(context.Background()))
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.tel.Resize(msg.Width, msg.Height)
		m.resizeField()
		m.relayout()
		return m, nil

	case loadedMsg:
		m.result = portfolio.LoadResult(msg)
		if m.result.State == portfolio.StateReady {
			m.build()
		}
		return m, nil

	case frameMsg:
		smooth := m.tel.SmoothStep()
		if m.field != nil {
			m.field.SetPointer(motion.Point{X: smooth.X, Y: smooth.Y + float64(m.scroll)})
		}
		return m, frameCmd()

	case tea.MouseMsg:
		switch msg.Type {
		case tea.MouseWheelUp:
			m.scrollBy(-3)
		case tea.MouseWheelDown:
			m.scrollBy(3)
		default:
			m.tel.Pointer(float64(msg.X), float64(msg.Y))
			if m.field != nil {
				m.field.SetAttracting(msg.Y+m.scroll < heroRows)
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Close()
			return m, tea.Quit
		case "j", "down":
			m.scrollBy(1)
		case "k", "up":
			m.scrollBy(-1)
		case "pgdown", " ":
			m.scrollBy(max(m.height-2, 1))
		case "pgup":
			m.scrollBy(-max(m.height-2, 1))
		case "g", "home":
			m.scrollBy(-m.scroll)
		case "n":
			if m.tw != nil {
				m.tw.Next()
			}
		case "r":
			if m.result.State != portfolio.StateLoading {
				m.teardown()
				m.result = portfolio.LoadResult{State: portfolio.StateLoading}
				return m, m.loadCmd()
			}
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) maxScroll() int {
	m.mu.Lock()
	doc := m.docHeight
	m.mu.Unlock()
	return max(doc-m.bodyHeight(), 0)
}

func (m *Model) bodyHeight() int {
	return max(m.height-1, 1)
}

func (m *Model) scrollBy(delta int) {
	m.scroll = min(max(m.scroll+delta, 0), m.maxScroll())
	m.publishScroll()
}

func (m *Model) publishScroll() {
	m.mu.Lock()
	doc := m.docHeight
	m.mu.Unlock()
	m.tel.Scroll(float64(m.scroll), float64(doc))
}

func (m *Model) resizeField() {
	if m.width <= 0 {
		return
	}
	if m.field == nil {
		m.field = motion.NewField(m.clock, float64(m.width), heroRows, m.fieldCfg)
		m.field.Start()
		return
	}
	m.field.Resize(float64(m.width), heroRows)
}

// build wires the primitives to a freshly loaded profile
func (m *Model) build() {
	p := m.result.Profile

	tw, err := motion.NewTypewriter(m.clock, motion.DefaultTypewriterConfig(portfolio.Headlines(p)...))
	if err == nil {
		m.tw = tw
		m.tw.Start()
	}

	skills := flatSkills(p)
	m.skills = motion.NewSequencer(m.clock, len(skills), skillStagger)

	blocks := make([]*block, len(sectionDefs))
	for i, def := range sectionDefs {
		blocks[i] = &block{
			def:     def,
			preset:  motion.Resolve(def.preset, motion.Overrides{}),
			trigger: motion.NewTrigger(m.clock, motion.DefaultRevealOptions()),
		}
	}

	m.mu.Lock()
	m.blocks = blocks
	m.skillList = skills
	m.mu.Unlock()
	m.relayout()

	for _, b := range blocks {
		b.trigger.OnChange(func(visible bool) {
			if !visible {
				return
			}
			m.mu.Lock()
			if b.revealedAt.IsZero() {
				b.revealedAt = m.clock.Now()
			}
			m.mu.Unlock()
		})
		if b.def.id == "skills" {
			m.skills.Bind(b.trigger)
		}
		m.obs.Observe(b.trigger, m.boundsOf(b))
	}
	m.publishScroll()
}

func (m *Model) boundsOf(b *block) func() motion.Rect {
	return func() motion.Rect {
		m.mu.Lock()
		defer m.mu.Unlock()
		return motion.Rect{X: 0, Y: float64(b.top), W: float64(b.width), H: float64(b.height)}
	}
}

// relayout recomputes section geometry for the current width
func (m *Model) relayout() {
	m.mu.Lock()
	if len(m.blocks) == 0 || m.result.Profile == nil {
		m.mu.Unlock()
		return
	}
	width := max(m.width-4, 20)
	top := heroRows + 4
	for _, b := range m.blocks {
		var lines []string
		if b.def.id == "skills" {
			for _, s := range m.skillList {
				lines = append(lines, skillLine(s, width))
			}
			if len(lines) == 0 {
				lines = []string{mutedStyle.Render("Nothing here yet.")}
			}
		} else {
			lines = sectionBody(b.def.id, m.result.Profile, width)
		}
		b.lines = lines
		b.top = top
		b.height = len(lines) + 2
		b.width = max(m.width, 1)
		top += b.height
	}
	m.docHeight = top
	m.mu.Unlock()

	m.scroll = min(m.scroll, m.maxScroll())
	m.publishScroll()
}

// teardown releases every primitive tied to the current profile
func (m *Model) teardown() {
	if m.tw != nil {
		m.tw.Stop()
		m.tw = nil
	}
	if m.skills != nil {
		m.skills.Close()
		m.skills = nil
	}
	m.mu.Lock()
	blocks := m.blocks
	m.blocks = nil
	m.docHeight = 0
	m.mu.Unlock()
	for _, b := range blocks {
		m.obs.Unobserve(b.trigger)
		b.trigger.Close()
	}
	m.scroll = 0
}

// Close stops every timer and subscription
func (m *Model) Close() {
	m.teardown()
	if m.field != nil {
		m.field.Stop()
	}
	m.detach()
	m.obs.Close()
	m.tel.Close()
}

func (m *Model) View() string {
	if m.width == 0 {
		return "loading…"
	}
	var doc []string
	switch m.result.State {
	case portfolio.StateFailed:
		doc = m.failedView()
	case portfolio.StateReady:
		doc = m.pageView()
	default:
		doc = append(m.heroView("", ""), "", mutedStyle.Render("  Loading portfolio…"))
	}

	body := m.bodyHeight()
	start := min(m.scroll, max(len(doc)-1, 0))
	end := min(start+body, len(doc))
	visible := append([]string(nil), doc[start:end]...)
	for len(visible) < body {
		visible = append(visible, "")
	}
	return strings.Join(visible, "\n") + "\n" + m.statusView()
}

func (m *Model) failedView() []string {
	lines := m.heroView("", "")
	lines = append(lines, "",
		errorStyle.Render("  Couldn't load the portfolio."),
		mutedStyle.Render("  "+m.result.Err.Error()),
		"",
		"  Press r to try again.")
	return lines
}

// heroView draws the particle backdrop with the name and headline under it
func (m *Model) heroView(name, headline string) []string {
	grid := make([][]string, heroRows)
	for y := range grid {
		grid[y] = make([]string, m.width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}
	if m.field != nil {
		for _, p := range m.field.Particles() {
			x, y := int(p.X), int(p.Y)
			if y < 0 || y >= heroRows || x < 0 || x >= m.width {
				continue
			}
			glyph := "·"
			if p.Size > 2 {
				glyph = "•"
			}
			grid[y][x] = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render(glyph)
		}
	}
	lines := make([]string, 0, heroRows+4)
	for _, row := range grid {
		lines = append(lines, strings.Join(row, ""))
	}
	lines = append(lines, "", "  "+nameStyle.Render(name), "  "+headline, "")
	return lines
}

func (m *Model) headline() string {
	if m.tw == nil {
		return ""
	}
	f := m.tw.Frame()
	cursor := " "
	if f.Cursor {
		cursor = "▌"
	}
	return f.Text + cursor
}

func (m *Model) pageView() []string {
	lines := m.heroView(m.result.Profile.Developer.Name, m.headline())

	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clock.Now()
	for _, b := range m.blocks {
		if b.revealedAt.IsZero() {
			for i := 0; i < b.height; i++ {
				lines = append(lines, "")
			}
			continue
		}
		st := b.preset.StateAt(now.Sub(b.revealedAt))
		lines = append(lines, animate([]string{"  "+headingStyle.Render("── "+b.def.title+" ──")}, st)...)

		body := b.lines
		if b.def.id == "skills" && m.skills != nil {
			body = make([]string, len(b.lines))
			for i, l := range b.lines {
				if i >= m.skills.Len() || m.skills.Active(i) {
					body[i] = l
				}
			}
		}
		for _, l := range animate(body, st) {
			lines = append(lines, "  "+l)
		}
		lines = append(lines, "")
	}
	return lines
}

func (m *Model) statusView() string {
	snap := m.tel.Snapshot()
	left := fmt.Sprintf(" %s %d×%d  %3.0f%% ", snap.Device, snap.Width, snap.Height, math.Round(snap.ScrollProgress*100))
	switch m.result.State {
	case portfolio.StateReady:
		left += "· loaded " + humanize.Time(m.result.LoadedAt) + " "
	case portfolio.StateFailed:
		left += fmt.Sprintf("· failed after %d attempt(s) ", m.result.Attempts)
	default:
		left += "· loading "
	}
	right := " j/k scroll · n next · r retry · q quit "
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return statusStyle.Render(left + strings.Repeat(" ", gap) + right)
}
