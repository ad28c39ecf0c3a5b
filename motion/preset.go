package motion

import "time"

// State is a set of animatable property values
type State struct {
	Opacity float64 `json:"opacity"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Scale   float64 `json:"scale"`
	Rotate  float64 `json:"rotate"`
}

// Variant is the pair of states a reveal interpolates between
type Variant struct {
	Hidden  State `json:"hidden"`
	Visible State `json:"visible"`
}

// At interpolates linearly; progress is clamped to [0,1]
func (v Variant) At(progress float64) State {
	p := clamp01(progress)
	lerp := func(a, b float64) float64 { return a + (b-a)*p }
	return State{
		Opacity: lerp(v.Hidden.Opacity, v.Visible.Opacity),
		X:       lerp(v.Hidden.X, v.Visible.X),
		Y:       lerp(v.Hidden.Y, v.Visible.Y),
		Scale:   lerp(v.Hidden.Scale, v.Visible.Scale),
		Rotate:  lerp(v.Hidden.Rotate, v.Visible.Rotate),
	}
}

// Preset names
const (
	FadeIn     = "fadeIn"
	SlideUp    = "slideUp"
	SlideDown  = "slideDown"
	SlideLeft  = "slideLeft"
	SlideRight = "slideRight"
	ScaleIn    = "scale"
	Rotate     = "rotate"
)

// Defaults applied by Resolve when an override is zero
const (
	DefaultDistance = 60.0
	DefaultDuration = 800 * time.Millisecond
)

var presetOrder = []string{FadeIn, SlideUp, SlideDown, SlideLeft, SlideRight, ScaleIn, Rotate}

var (
	shown   = State{Opacity: 1, Scale: 1}
	presets = map[string]Variant{
		FadeIn:     {Hidden: State{Scale: 1}, Visible: shown},
		SlideUp:    {Hidden: State{Y: DefaultDistance, Scale: 1}, Visible: shown},
		SlideDown:  {Hidden: State{Y: -DefaultDistance, Scale: 1}, Visible: shown},
		SlideLeft:  {Hidden: State{X: DefaultDistance, Scale: 1}, Visible: shown},
		SlideRight: {Hidden: State{X: -DefaultDistance, Scale: 1}, Visible: shown},
		ScaleIn:    {Hidden: State{Scale: 0.8}, Visible: shown},
		Rotate:     {Hidden: State{Rotate: -180, Scale: 1}, Visible: shown},
	}
)

// Names returns every preset name in a stable order
func Names() []string {
	return append([]string(nil), presetOrder...)
}

// Lookup returns the named variant
func Lookup(name string) (Variant, bool) {
	v, ok := presets[name]
	return v, ok
}

// Overrides adjust a preset per use. Zero fields keep the defaults.
type Overrides struct {
	Distance float64
	Duration time.Duration
	Delay    time.Duration
	Stagger  time.Duration
	Easing   *CubicBezier
}

// Preset is a resolved variant plus its transition timing
type Preset struct {
	Name     string        `json:"name"`
	Variant  Variant       `json:"variant"`
	Duration time.Duration `json:"duration"`
	Delay    time.Duration `json:"delay"`
	Easing   CubicBezier   `json:"easing"`
}

// Resolve builds a preset. Unknown names fall back to fadeIn. Distance
// only rescales the translation of slide presets; stagger adds to delay.
func Resolve(name string, o Overrides) Preset {
	v, ok := presets[name]
	if !ok {
		name = FadeIn
		v = presets[FadeIn]
	}

	if o.Distance > 0 {
		switch name {
		case SlideUp:
			v.Hidden.Y = o.Distance
		case SlideDown:
			v.Hidden.Y = -o.Distance
		case SlideLeft:
			v.Hidden.X = o.Distance
		case SlideRight:
			v.Hidden.X = -o.Distance
		}
	}

	p := Preset{
		Name:     name,
		Variant:  v,
		Duration: DefaultDuration,
		Delay:    o.Delay + o.Stagger,
		Easing:   DefaultEasing,
	}
	if o.Duration > 0 {
		p.Duration = o.Duration
	}
	if o.Easing != nil {
		p.Easing = *o.Easing
	}
	return p
}

// Progress returns eased progress elapsed after the reveal started
func (p Preset) Progress(elapsed time.Duration) float64 {
	elapsed -= p.Delay
	if elapsed <= 0 {
		return 0
	}
	if p.Duration <= 0 || elapsed >= p.Duration {
		return 1
	}
	return p.Easing.Ease(float64(elapsed) / float64(p.Duration))
}

// StateAt returns the interpolated state elapsed after the reveal started
func (p Preset) StateAt(elapsed time.Duration) State {
	return p.Variant.At(p.Progress(elapsed))
}
