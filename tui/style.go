package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Zachkp/folio/motion"
)

var (
	colorBg     = mustHex("#0b1020")
	colorFg     = mustHex("#e5e7eb")
	colorAccent = lipgloss.Color("#60a5fa")
	colorMuted  = lipgloss.Color("#94a3b8")
	colorError  = lipgloss.Color("#f87171")

	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	statusStyle  = lipgloss.NewStyle().Foreground(colorMuted).Background(lipgloss.Color("#1e293b"))
	barStyle     = lipgloss.NewStyle().Foreground(colorAccent)
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// fadeStyle maps a preset opacity onto a foreground between background and
// text colour
func fadeStyle(opacity float64) lipgloss.Style {
	o := math.Max(0, math.Min(1, opacity))
	c := colorBg.BlendLab(colorFg, o).Clamped()
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
}

// shiftCells turns a preset translation into a left indent
func shiftCells(s motion.State) int {
	return int(math.Round(math.Abs(s.X) / 10))
}

// animate renders lines at the preset state reached after elapsed
func animate(lines []string, st motion.State) []string {
	style := fadeStyle(st.Opacity)
	pad := strings.Repeat(" ", shiftCells(st))
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = pad + style.Render(l)
	}
	return out
}

func progressBar(pct, width int) string {
	if width < 1 {
		width = 1
	}
	filled := pct * width / 100
	return barStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}
