package atom

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeed() ParameterSet {
	return ParameterSet{
		NucleusAttraction: 3,
		NucleusRepulsion:  0.2,
		NucleusSize:       20,
		ElectronCount:     40,
		ElectronSize:      3,
		ElectronSpeed:     5,
		RadialModifier:    60,
	}
}

func newTestAnimator(t *testing.T, flags Flags) *Animator {
	t.Helper()
	a := NewAnimator(NewSource(1))
	require.NoError(t, a.Initialize(testSeed(), DefaultColors(), flags))
	return a
}

// converge places the animator in the hold sub-state with no pending request.
func converge(a *Animator) {
	a.target = a.current
	a.pending = false
	a.holdTime = 0
}

func TestInitializeRejectsNonFiniteSeed(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*ParameterSet)
	}{
		{"nan attraction", func(p *ParameterSet) { p.NucleusAttraction = math.NaN() }},
		{"inf count", func(p *ParameterSet) { p.ElectronCount = math.Inf(1) }},
		{"neg inf radial", func(p *ParameterSet) { p.RadialModifier = math.Inf(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := testSeed()
			tt.mut(&seed)

			a := NewAnimator(NewSource(1))
			err := a.Initialize(seed, DefaultColors(), DefaultFlags())
			assert.ErrorIs(t, err, ErrInvalidSeed)
			assert.Panics(t, func() { a.Tick(0.016) })
		})
	}
}

func TestInitializeClampsSeed(t *testing.T) {
	seed := testSeed()
	seed.ElectronSpeed = 40
	seed.NucleusRepulsion = -1
	seed.ElectronCount = 5000

	a := NewAnimator(NewSource(1))
	require.NoError(t, a.Initialize(seed, DefaultColors(), DefaultFlags()))
	assert.Equal(t, ElectronSpeedMax, a.Current().ElectronSpeed)
	assert.Equal(t, 0.0, a.Current().NucleusRepulsion)
	assert.Equal(t, ElectronCountMax, a.Current().ElectronCount)
	assert.Equal(t, a.Current(), a.Target())

	stress := DefaultFlags()
	stress.StressTest = true
	require.NoError(t, a.Initialize(seed, DefaultColors(), stress))
	assert.Equal(t, 5000.0, a.Current().ElectronCount)
}

func TestTickBeforeInitializePanics(t *testing.T) {
	a := NewAnimator(nil)
	assert.Panics(t, func() { a.Tick(0.016) })
}

func TestFirstTickGeneratesWithoutMovingCurrent(t *testing.T) {
	a := newTestAnimator(t, DefaultFlags())

	out := a.Tick(0.016)
	assert.Equal(t, PhaseGenerating, out.Phase)
	assert.Equal(t, testSeed(), out.Parameters)
	assert.True(t, out.ColorsChanged)
	assert.False(t, a.Pending())
}

func TestRandomizeFromMaxSeed(t *testing.T) {
	seed := ParameterSet{
		NucleusAttraction: NucleusAttractionMax,
		NucleusRepulsion:  NucleusRepulsionMax,
		NucleusSize:       NucleusSizeMax,
		ElectronCount:     ElectronCountMax,
		ElectronSize:      ElectronSizeMax,
		ElectronSpeed:     ElectronSpeedMax,
		RadialModifier:    RadialModifierMax,
	}
	a := NewAnimator(NewSource(99))
	require.NoError(t, a.Initialize(seed, DefaultColors(), Flags{AtomFields: true, RandomFactor: 1.0}))
	converge(a)

	a.RequestRandomize()
	out := a.Tick(0.016)

	assert.Equal(t, PhaseGenerating, out.Phase)
	assert.Equal(t, seed, out.Parameters)
	assert.True(t, out.Target.InBounds(false), "%+v", out.Target)
}

func TestConvergenceGate(t *testing.T) {
	tests := []struct {
		name string
		gap  float64
		want Phase
	}{
		{"exactly threshold", 1.5, PhaseInterpolating},
		{"above threshold", 4, PhaseInterpolating},
		{"negative gap", -2, PhaseInterpolating},
		{"just below", 1.49, PhaseHolding},
		{"zero", 0, PhaseHolding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnimator(t, DefaultFlags())
			converge(a)
			a.target.ElectronSpeed = a.current.ElectronSpeed + tt.gap
			// other fields far apart must not matter
			a.target.RadialModifier = a.current.RadialModifier + 50

			out := a.Tick(0.1)
			assert.Equal(t, tt.want, out.Phase)
		})
	}
}

func TestInterpolationIsLinearWithDeltaFactor(t *testing.T) {
	a := newTestAnimator(t, DefaultFlags())
	converge(a)
	a.target = ParameterSet{
		NucleusAttraction: 9,
		NucleusRepulsion:  0.4,
		NucleusSize:       40,
		ElectronCount:     140,
		ElectronSize:      7,
		ElectronSpeed:     15,
		RadialModifier:    100,
	}

	out := a.Tick(0.25)
	require.Equal(t, PhaseInterpolating, out.Phase)
	assert.InDelta(t, 3+(9-3)*0.25, out.Parameters.NucleusAttraction, 1e-9)
	assert.InDelta(t, 5+(15-5)*0.25, out.Parameters.ElectronSpeed, 1e-9)
	assert.InDelta(t, 40+(140-40)*0.25, out.Parameters.ElectronCount, 1e-9)
}

func TestInterpolationFactorClamped(t *testing.T) {
	a := newTestAnimator(t, DefaultFlags())
	converge(a)
	a.target.ElectronSpeed = 15

	out := a.Tick(3)
	assert.Equal(t, PhaseInterpolating, out.Phase)
	assert.Equal(t, 15.0, out.Parameters.ElectronSpeed)
}

func TestInterpolationConvergesInFiniteTicks(t *testing.T) {
	a := newTestAnimator(t, DefaultFlags())
	converge(a)
	a.current.ElectronSpeed = 5
	a.target.ElectronSpeed = 20

	ticks := 0
	for ; ticks < 1000; ticks++ {
		if a.Tick(0.1).Phase != PhaseInterpolating {
			break
		}
	}

	// the gap shrinks by 10% per tick: 15 * 0.9^n < 1.5 first holds at n = 22
	assert.Equal(t, 22, ticks)
	assert.InDelta(t, 2.2, float64(ticks)*0.1, 1e-9)
	assert.Less(t, math.Abs(a.current.ElectronSpeed-20), ConvergenceGap)
}

func TestHoldDurationTriggersRandomize(t *testing.T) {
	a := newTestAnimator(t, DefaultFlags())
	converge(a)

	for i := 0; i < 20; i++ {
		out := a.Tick(0.5)
		require.Equal(t, PhaseHolding, out.Phase)
		require.False(t, a.Pending(), "tick %d", i)
	}
	assert.Equal(t, HoldDuration, a.holdTime)

	out := a.Tick(0.5)
	assert.Equal(t, PhaseHolding, out.Phase)
	assert.True(t, a.Pending())
	assert.Equal(t, 0.0, out.HoldTime)

	out = a.Tick(0.5)
	assert.Equal(t, PhaseGenerating, out.Phase)
}

func TestHoldTimeSaturates(t *testing.T) {
	a := newTestAnimator(t, DefaultFlags())
	converge(a)
	a.holdTime = 9.9

	out := a.Tick(0.5)
	assert.Equal(t, HoldDuration, out.HoldTime)
	assert.False(t, a.Pending())
}

func TestRequestRandomizeOverridesInterpolation(t *testing.T) {
	a := newTestAnimator(t, DefaultFlags())
	converge(a)
	a.target.ElectronSpeed = 15
	require.Equal(t, PhaseInterpolating, a.Tick(0.1).Phase)

	before := a.Current()
	a.RequestRandomize()
	out := a.Tick(0.1)
	assert.Equal(t, PhaseGenerating, out.Phase)
	assert.Equal(t, before, out.Parameters)
}

func TestDisabledFreezesParameters(t *testing.T) {
	a := newTestAnimator(t, Flags{AtomFields: false, RandomFactor: 0.7})
	a.target.ElectronSpeed = 15

	first := a.Tick(0.1)
	assert.Equal(t, PhaseFrozen, first.Phase)

	for i := 0; i < 50; i++ {
		if i == 25 {
			a.SetForegroundColor(color.RGBA{G: 255, A: 255})
		}
		out := a.Tick(0.1)
		assert.Equal(t, first.Parameters, out.Parameters)
		assert.Equal(t, PhaseFrozen, out.Phase)
		assert.Equal(t, i == 25, out.ColorsChanged)
	}
	assert.Equal(t, color.RGBA{G: 255, A: 255}, a.Tick(0.1).Colors.Foreground)
	assert.True(t, a.Pending())

	a.SetAtomFieldsEnabled(true)
	assert.Equal(t, PhaseGenerating, a.Tick(0.1).Phase)
}

func TestColorsSnap(t *testing.T) {
	a := newTestAnimator(t, DefaultFlags())
	a.Tick(0.016)

	out := a.Tick(0.016)
	assert.False(t, out.ColorsChanged)

	a.SetBackgroundColor(color.RGBA{B: 128, A: 255})
	a.SetRandomizeBackground(true)
	a.SetRandomizeForeground(false)
	out = a.Tick(0.016)
	assert.True(t, out.ColorsChanged)
	assert.Equal(t, color.RGBA{B: 128, A: 255}, out.Colors.Background)
	assert.True(t, out.Colors.RandomizeBackground)
	assert.False(t, out.Colors.RandomizeForeground)

	// toggling back before a tick is not a change
	a.SetRandomizeForeground(true)
	a.SetRandomizeForeground(false)
	assert.False(t, a.Tick(0.016).ColorsChanged)
}

func TestNonPositiveDeltaIsNoop(t *testing.T) {
	a := newTestAnimator(t, DefaultFlags())
	prev := a.Tick(0.016)

	a.SetForegroundColor(color.RGBA{R: 1, G: 2, B: 3, A: 4})
	for _, dt := range []float64{0, -1, math.NaN()} {
		out := a.Tick(dt)
		assert.Equal(t, prev.Parameters, out.Parameters)
		assert.Equal(t, prev.Target, out.Target)
		assert.Equal(t, prev.Colors, out.Colors)
		assert.False(t, out.ColorsChanged)
	}
}

func TestSetRandomFactorClamps(t *testing.T) {
	a := NewAnimator(nil)
	a.SetRandomFactor(3)
	assert.Equal(t, MaxRandomFactor, a.RandomFactor())
	a.SetRandomFactor(0)
	assert.Equal(t, MinRandomFactor, a.RandomFactor())
	a.SetRandomFactor(0.5)
	assert.Equal(t, 0.5, a.RandomFactor())
}

func TestStressRampAcrossGenerations(t *testing.T) {
	a := newTestAnimator(t, Flags{AtomFields: true, StressTest: true, RandomFactor: 1})

	for i := 0; i < 10; i++ {
		a.RequestRandomize()
		out := a.Tick(0.016)
		require.Equal(t, PhaseGenerating, out.Phase)
		want := math.Min(a.current.ElectronCount+StressAddition, ElectronCountStress)
		assert.Equal(t, want, out.Target.ElectronCount)
		// jump straight to the target to ramp from it next time
		a.current = a.target
	}
	assert.Equal(t, ElectronCountStress, a.current.ElectronCount)
}
