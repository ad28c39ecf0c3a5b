package motion

import (
	"fmt"
	"strings"
	"time"
)

// Transform renders the state's geometric properties as a CSS transform
func (s State) Transform() string {
	return fmt.Sprintf("translate(%gpx, %gpx) scale(%g) rotate(%gdeg)", s.X, s.Y, s.Scale, s.Rotate)
}

// TimingFunction renders the curve as CSS
func (c CubicBezier) TimingFunction() string {
	return fmt.Sprintf("cubic-bezier(%g, %g, %g, %g)", c.X1, c.Y1, c.X2, c.Y2)
}

// Keyframes renders a keyframe block plus two rules: ".class" starts in
// the hidden state and ".class.is-visible" plays the reveal
func (p Preset) Keyframes(class string) string {
	var b strings.Builder
	h, v := p.Variant.Hidden, p.Variant.Visible

	fmt.Fprintf(&b, "@keyframes %s {\n", class)
	fmt.Fprintf(&b, "  from { opacity: %g; transform: %s; }\n", h.Opacity, h.Transform())
	fmt.Fprintf(&b, "  to { opacity: %g; transform: %s; }\n", v.Opacity, v.Transform())
	b.WriteString("}\n")

	fmt.Fprintf(&b, ".%s { opacity: %g; transform: %s; }\n", class, h.Opacity, h.Transform())
	fmt.Fprintf(&b, ".%s.is-visible { animation: %s %s %s %s both; }\n",
		class, class, cssSeconds(p.Duration), p.Easing.TimingFunction(), cssSeconds(p.Delay))
	return b.String()
}

func cssSeconds(d time.Duration) string {
	return fmt.Sprintf("%gs", d.Seconds())
}

// Stylesheet renders every preset with default overrides, class names
// prefixed with prefix
func Stylesheet(prefix string) string {
	var b strings.Builder
	for _, name := range presetOrder {
		b.WriteString(Resolve(name, Overrides{}).Keyframes(prefix + name))
	}
	return b.String()
}
