package atom

import (
	"image/color"
	"math"
	"math/rand/v2"
)

// Phase is the animator sub-state reported for a tick.
type Phase int

const (
	// PhaseFrozen means atom-field randomization is disabled; only colors update.
	PhaseFrozen Phase = iota
	PhaseGenerating
	PhaseInterpolating
	PhaseHolding
)

func (p Phase) String() string {
	switch p {
	case PhaseFrozen:
		return "frozen"
	case PhaseGenerating:
		return "generating"
	case PhaseInterpolating:
		return "interpolating"
	case PhaseHolding:
		return "holding"
	}
	return "unknown"
}

// Flags are the initial toggles handed to Initialize.
type Flags struct {
	AtomFields   bool
	StressTest   bool
	RandomFactor float64
}

// DefaultFlags matches the stock component: randomization on, stress off, factor 0.7.
func DefaultFlags() Flags {
	return Flags{AtomFields: true, RandomFactor: DefaultRandomFactor}
}

// Output is the snapshot produced by one tick.
type Output struct {
	Parameters ParameterSet
	Target     ParameterSet
	Colors     ColorPair
	// ColorsChanged is set on the tick where new colors or toggles were first emitted.
	ColorsChanged bool
	Phase         Phase
	HoldTime      float64
}

// Animator alternates between generating a random target, interpolating toward it and
// holding it. It is driven by a single caller once per frame and is not safe for
// concurrent use.
type Animator struct {
	src Source

	current  ParameterSet
	target   ParameterSet
	holdTime float64
	pending  bool

	atomFields   bool
	stressTest   bool
	randomFactor float64

	colors  ColorPair
	emitted ColorPair
	dirty   bool

	last        Output
	initialized bool
}

// NewAnimator creates an animator drawing from src. A nil src uses a randomly seeded PCG.
func NewAnimator(src Source) *Animator {
	if src == nil {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Animator{
		src:          src,
		atomFields:   true,
		randomFactor: DefaultRandomFactor,
		colors:       DefaultColors(),
	}
}

// Initialize seeds current and target from the host's displayed values. It must be
// called once before Tick.
func (a *Animator) Initialize(seed ParameterSet, colors ColorPair, flags Flags) error {
	if err := seed.Validate(); err != nil {
		return err
	}

	a.atomFields = flags.AtomFields
	a.stressTest = flags.StressTest
	a.randomFactor = ClampRandomFactor(flags.RandomFactor)

	a.current = seed.Clamped(a.stressTest)
	a.target = a.current
	a.holdTime = 0
	a.pending = true

	a.colors = colors
	a.emitted = colors
	a.dirty = true

	a.last = Output{Parameters: a.current, Target: a.target, Colors: colors, Phase: PhaseHolding}
	a.initialized = true
	return nil
}

// Tick advances the state machine by dt seconds.
func (a *Animator) Tick(dt float64) Output {
	if !a.initialized {
		panic("atom: Tick called before Initialize")
	}
	if !(dt > 0) {
		out := a.last
		out.ColorsChanged = false
		return out
	}

	out := Output{}
	if a.dirty || a.colors != a.emitted {
		a.emitted = a.colors
		a.dirty = false
		out.ColorsChanged = true
	}
	out.Colors = a.emitted

	switch {
	case !a.atomFields:
		out.Phase = PhaseFrozen
	case a.pending:
		a.target = Generate(a.current, a.randomFactor, a.stressTest, a.src)
		a.pending = false
		out.Phase = PhaseGenerating
	case a.interpolating():
		a.current = a.current.Lerp(a.target, dt)
		out.Phase = PhaseInterpolating
	default:
		out.Phase = PhaseHolding
		if a.holdTime >= HoldDuration {
			a.holdTime = 0
			a.pending = true
		} else {
			a.holdTime = math.Min(a.holdTime+dt, HoldDuration)
		}
	}

	out.Parameters = a.current
	out.Target = a.target
	out.HoldTime = a.holdTime
	a.last = out
	return out
}

// interpolating only looks at the electronSpeed gap; the other fields may still differ
// from target when it reports false.
func (a *Animator) interpolating() bool {
	return math.Abs(a.current.ElectronSpeed-a.target.ElectronSpeed) >= ConvergenceGap
}

// RequestRandomize makes the next enabled tick generate a new target.
func (a *Animator) RequestRandomize() {
	a.pending = true
}

func (a *Animator) SetAtomFieldsEnabled(enabled bool) { a.atomFields = enabled }
func (a *Animator) AtomFieldsEnabled() bool           { return a.atomFields }

func (a *Animator) SetStressTest(enabled bool) { a.stressTest = enabled }
func (a *Animator) StressTest() bool           { return a.stressTest }

// SetRandomFactor clamps f into [MinRandomFactor, MaxRandomFactor].
func (a *Animator) SetRandomFactor(f float64) { a.randomFactor = ClampRandomFactor(f) }
func (a *Animator) RandomFactor() float64     { return a.randomFactor }

func (a *Animator) SetForegroundColor(c color.RGBA) { a.colors.Foreground = c }
func (a *Animator) SetBackgroundColor(c color.RGBA) { a.colors.Background = c }

func (a *Animator) SetRandomizeForeground(enabled bool) { a.colors.RandomizeForeground = enabled }
func (a *Animator) SetRandomizeBackground(enabled bool) { a.colors.RandomizeBackground = enabled }

// Colors returns the configured colors, which may not have been emitted yet.
func (a *Animator) Colors() ColorPair { return a.colors }

// Current returns the displayed parameter set.
func (a *Animator) Current() ParameterSet { return a.current }

// Target returns the parameter set being interpolated toward.
func (a *Animator) Target() ParameterSet { return a.target }

// Pending reports whether the next enabled tick will generate a new target.
func (a *Animator) Pending() bool { return a.pending }
