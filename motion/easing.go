package motion

import "math"

// CubicBezier is a CSS-style timing function with control points
// (X1, Y1) and (X2, Y2); the curve runs from (0,0) to (1,1)
type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

// DefaultEasing is the curve every preset transition uses unless overridden
var DefaultEasing = CubicBezier{0.25, 0.25, 0.25, 0.75}

// Linear easing
var Linear = CubicBezier{0, 0, 1, 1}

func bezier(t, p1, p2 float64) float64 {
	u := 1 - t
	return 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t
}

func bezierSlope(t, p1, p2 float64) float64 {
	u := 1 - t
	return 3*u*u*p1 + 6*u*t*(p2-p1) + 3*t*t*(1-p2)
}

// Ease maps linear progress x in [0,1] to eased progress
func (c CubicBezier) Ease(x float64) float64 {
	x = clamp01(x)
	if x == 0 || x == 1 {
		return x
	}

	// Newton first, bisection if the slope flattens out
	t := x
	for i := 0; i < 8; i++ {
		dx := bezier(t, c.X1, c.X2) - x
		if math.Abs(dx) < 1e-7 {
			return bezier(t, c.Y1, c.Y2)
		}
		d := bezierSlope(t, c.X1, c.X2)
		if math.Abs(d) < 1e-6 {
			break
		}
		t -= dx / d
	}

	lo, hi := 0.0, 1.0
	t = x
	for i := 0; i < 32; i++ {
		v := bezier(t, c.X1, c.X2)
		if math.Abs(v-x) < 1e-7 {
			break
		}
		if v < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return bezier(t, c.Y1, c.Y2)
}
