package motion

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a 2D position in viewport or document coordinates
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box, origin top-left
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Intersect returns the overlap of r and o; zero Rect when disjoint
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// IntersectionRatio is the visible fraction of target inside root.
// A zero-area target counts as fully visible when its origin lies in root.
func IntersectionRatio(target, root Rect) float64 {
	area := target.Area()
	if area == 0 {
		if target.X >= root.X && target.X <= root.X+root.W &&
			target.Y >= root.Y && target.Y <= root.Y+root.H {
			return 1
		}
		return 0
	}
	return target.Intersect(root).Area() / area
}

// Length is a margin component in pixels or percent of the root
type Length struct {
	Value   float64
	Percent bool
}

func (l Length) resolve(base float64) float64 {
	if l.Percent {
		return base * l.Value / 100
	}
	return l.Value
}

// Margin grows (or shrinks, when negative) the observation root
type Margin struct {
	Top, Right, Bottom, Left Length
}

// ParseMargin reads CSS shorthand: "10px", "0px 0px -20% 0px", etc.
// Unitless zero is accepted.
func ParseMargin(s string) (Margin, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Margin{}, nil
	}
	if len(fields) > 4 {
		return Margin{}, fmt.Errorf("root margin %q: too many values", s)
	}

	vals := make([]Length, len(fields))
	for i, f := range fields {
		l, err := parseLength(f)
		if err != nil {
			return Margin{}, fmt.Errorf("root margin %q: %w", s, err)
		}
		vals[i] = l
	}

	switch len(vals) {
	case 1:
		return Margin{vals[0], vals[0], vals[0], vals[0]}, nil
	case 2:
		return Margin{vals[0], vals[1], vals[0], vals[1]}, nil
	case 3:
		return Margin{vals[0], vals[1], vals[2], vals[1]}, nil
	default:
		return Margin{vals[0], vals[1], vals[2], vals[3]}, nil
	}
}

// MustParseMargin is ParseMargin for constant inputs
func MustParseMargin(s string) Margin {
	m, err := ParseMargin(s)
	if err != nil {
		panic(err)
	}
	return m
}

func parseLength(s string) (Length, error) {
	var l Length
	num := s
	switch {
	case strings.HasSuffix(s, "px"):
		num = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "%"):
		num = strings.TrimSuffix(s, "%")
		l.Percent = true
	case s != "0":
		return l, fmt.Errorf("unsupported length %q", s)
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return l, fmt.Errorf("bad length %q", s)
	}
	l.Value = v
	return l, nil
}

// Expand applies the margin to root. Vertical percentages resolve against
// root height, horizontal ones against root width.
func (m Margin) Expand(root Rect) Rect {
	top := m.Top.resolve(root.H)
	bottom := m.Bottom.resolve(root.H)
	left := m.Left.resolve(root.W)
	right := m.Right.resolve(root.W)
	return Rect{
		X: root.X - left,
		Y: root.Y - top,
		W: root.W + left + right,
		H: root.H + top + bottom,
	}
}
