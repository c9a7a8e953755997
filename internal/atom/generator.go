package atom

import (
	"math"
	"math/rand/v2"
)

// Source is the random stream consumed by Generate. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// NewSource returns a PCG-backed Source. Identical seeds yield identical generations.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Generate produces a new bounded parameter set from previous.
//
// Every field except electronCount draws a candidate from [floor, randomFactor*max] and then,
// on a fair coin, either subtracts the previous value (floored) or adds it (capped at max).
// electronCount follows the same rule unless stress is set, in which case it ramps by
// StressAddition toward ElectronCountStress without consuming randomness.
func Generate(previous ParameterSet, randomFactor float64, stress bool, src Source) ParameterSet {
	randomFactor = ClampRandomFactor(randomFactor)

	var next ParameterSet
	next.NucleusAttraction = step(src, previous.NucleusAttraction, randomFactor, NucleusAttractionBound)
	next.NucleusRepulsion = step(src, previous.NucleusRepulsion, randomFactor, NucleusRepulsionBound)
	next.NucleusSize = step(src, previous.NucleusSize, randomFactor, NucleusSizeBound)
	next.ElectronSize = step(src, previous.ElectronSize, randomFactor, ElectronSizeBound)
	next.ElectronSpeed = step(src, previous.ElectronSpeed, randomFactor, ElectronSpeedBound)
	next.RadialModifier = step(src, previous.RadialModifier, randomFactor, RadialModifierBound)

	if stress {
		next.ElectronCount = math.Min(previous.ElectronCount+StressAddition, ElectronCountStress)
	} else {
		next.ElectronCount = step(src, previous.ElectronCount, randomFactor, ElectronCountBound)
	}
	return next
}

func step(src Source, previous, randomFactor float64, b Bound) float64 {
	candidate := uniform(src, b.Floor, randomFactor*b.Max)
	if src.IntN(2) > 0 {
		return math.Max(candidate-previous, b.Floor)
	}
	return math.Min(candidate+previous, b.Max)
}

// uniform draws from the range between lo and hi; the bounds may arrive in either order.
func uniform(src Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}
