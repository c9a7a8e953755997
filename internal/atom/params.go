package atom

import (
	"fmt"
	"image/color"
	"math"
)

const (
	NucleusAttractionMax = 10.0
	NucleusRepulsionMax  = 0.5
	NucleusSizeMax       = 45.0
	ElectronCountMax     = 150.0
	ElectronSizeMax      = 8.0
	ElectronSpeedMax     = 17.0
	RadialModifierMax    = 120.0

	// Stress mode ramps electronCount by StressAddition per generation up to ElectronCountStress.
	ElectronCountStress = 20000.0
	StressAddition      = 3000.0

	// HoldDuration is how long a converged parameter set is displayed before the next randomize.
	HoldDuration = 10.0

	// ConvergenceGap is the electronSpeed gap below which interpolation is treated as done.
	ConvergenceGap = 1.5

	MinRandomFactor     = 0.1
	MaxRandomFactor     = 1.0
	DefaultRandomFactor = 0.7
)

// Bound is the closed range a parameter field is kept in.
type Bound struct {
	Floor float64
	Max   float64
}

func (b Bound) Contains(v float64) bool {
	return v >= b.Floor && v <= b.Max
}

func (b Bound) Clamp(v float64) float64 {
	return math.Min(math.Max(v, b.Floor), b.Max)
}

var (
	NucleusAttractionBound = Bound{0, NucleusAttractionMax}
	NucleusRepulsionBound  = Bound{0, NucleusRepulsionMax}
	NucleusSizeBound       = Bound{1, NucleusSizeMax}
	ElectronCountBound     = Bound{1, ElectronCountMax}
	ElectronSizeBound      = Bound{1, ElectronSizeMax}
	ElectronSpeedBound     = Bound{1, ElectronSpeedMax}
	RadialModifierBound    = Bound{1, RadialModifierMax}

	// ElectronCountStressBound applies to electronCount while stress test is enabled.
	ElectronCountStressBound = Bound{1, ElectronCountStress}
)

// ParameterSet holds the seven numeric values describing one atom visual state.
type ParameterSet struct {
	NucleusAttraction float64 `yaml:"nucleusAttraction"`
	NucleusRepulsion  float64 `yaml:"nucleusRepulsion"`
	NucleusSize       float64 `yaml:"nucleusSize"`
	ElectronCount     float64 `yaml:"electronCount"`
	ElectronSize      float64 `yaml:"electronSize"`
	ElectronSpeed     float64 `yaml:"electronSpeed"`
	RadialModifier    float64 `yaml:"radialModifier"`
}

// Field names a single ParameterSet entry together with its bound.
type Field struct {
	Name  string
	Bound Bound
	get   func(*ParameterSet) *float64
}

// Fields lists every ParameterSet entry in material order.
var Fields = []Field{
	{"NucleusAttraction", NucleusAttractionBound, func(p *ParameterSet) *float64 { return &p.NucleusAttraction }},
	{"NucleusRepulsion", NucleusRepulsionBound, func(p *ParameterSet) *float64 { return &p.NucleusRepulsion }},
	{"NucleusSize", NucleusSizeBound, func(p *ParameterSet) *float64 { return &p.NucleusSize }},
	{"ElectronCount", ElectronCountBound, func(p *ParameterSet) *float64 { return &p.ElectronCount }},
	{"ElectronSize", ElectronSizeBound, func(p *ParameterSet) *float64 { return &p.ElectronSize }},
	{"ElectronSpeed", ElectronSpeedBound, func(p *ParameterSet) *float64 { return &p.ElectronSpeed }},
	{"RadialModifier", RadialModifierBound, func(p *ParameterSet) *float64 { return &p.RadialModifier }},
}

// Value returns the field's value in p.
func (f Field) Value(p ParameterSet) float64 {
	return *f.get(&p)
}

// Set stores v into the field of p.
func (f Field) Set(p *ParameterSet, v float64) {
	*f.get(p) = v
}

// BoundFor returns the field bound, widening electronCount when stress is on.
func (f Field) BoundFor(stress bool) Bound {
	if stress && f.Name == "ElectronCount" {
		return ElectronCountStressBound
	}
	return f.Bound
}

// Validate reports the first non-finite field as ErrInvalidSeed.
func (p ParameterSet) Validate() error {
	for _, f := range Fields {
		v := f.Value(p)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidSeed, f.Name, v)
		}
	}
	return nil
}

// Clamped returns p with every field forced into its bound.
func (p ParameterSet) Clamped(stress bool) ParameterSet {
	for _, f := range Fields {
		f.Set(&p, f.BoundFor(stress).Clamp(f.Value(p)))
	}
	return p
}

// InBounds reports whether every field lies within its bound.
func (p ParameterSet) InBounds(stress bool) bool {
	for _, f := range Fields {
		if !f.BoundFor(stress).Contains(f.Value(p)) {
			return false
		}
	}
	return true
}

// Lerp moves every field of p toward target by t, with t clamped to [0,1].
func (p ParameterSet) Lerp(target ParameterSet, t float64) ParameterSet {
	t = clamp01(t)
	for _, f := range Fields {
		a, b := f.Value(p), f.Value(target)
		f.Set(&p, a+(b-a)*t)
	}
	return p
}

// ColorPair is the foreground/background color configuration pushed to the material.
type ColorPair struct {
	Foreground          color.RGBA
	Background          color.RGBA
	RandomizeForeground bool
	RandomizeBackground bool
}

// DefaultColors matches the stock material: red on black, foreground randomized.
func DefaultColors() ColorPair {
	return ColorPair{
		Foreground:          color.RGBA{R: 255, A: 255},
		Background:          color.RGBA{A: 255},
		RandomizeForeground: true,
	}
}

// ClampRandomFactor forces f into [MinRandomFactor, MaxRandomFactor]. NaN maps to the default.
func ClampRandomFactor(f float64) float64 {
	if math.IsNaN(f) {
		return DefaultRandomFactor
	}
	return math.Min(math.Max(f, MinRandomFactor), MaxRandomFactor)
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
