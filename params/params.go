// Package params defines the parameter space of a procedural tree: the
// ordered set of genome keys and the numeric range each key may take.
package params

import (
	"fmt"
	"math"
)

// Key names a single tree parameter.
type Key string

// Tree parameter keys, in display order.
const (
	Levels              Key = "levels"
	VMultiplier         Key = "vMultiplier"
	TwigScale           Key = "twigScale"
	InitialBranchLength Key = "initalBranchLength"
	LengthFalloffFactor Key = "lengthFalloffFactor"
	LengthFalloffPower  Key = "lengthFalloffPower"
	ClumpMax            Key = "clumpMax"
	ClumpMin            Key = "clumpMin"
	BranchFactor        Key = "branchFactor"
	DropAmount          Key = "dropAmount"
	GrowAmount          Key = "growAmount"
	SweepAmount         Key = "sweepAmount"
	MaxRadius           Key = "maxRadius"
	ClimbRate           Key = "climbRate"
	TrunkKink           Key = "trunkKink"
	TreeSteps           Key = "treeSteps"
	TaperRate           Key = "taperRate"
	RadiusFalloffRate   Key = "radiusFalloffRate"
	TwistRate           Key = "twistRate"
	TrunkLength         Key = "trunkLength"
)

// Range is the closed interval a parameter value must lie in.
type Range struct {
	Min float64
	Max float64
}

// Clamp restricts v to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Definition pairs a key with its range.
type Definition struct {
	Key   Key
	Range Range
}

var definitions = [...]Definition{
	{Levels, Range{0.1, 5}},
	{VMultiplier, Range{0, 1}},
	{TwigScale, Range{0, 1}},
	{InitialBranchLength, Range{0.1, 1}},
	{LengthFalloffFactor, Range{0.5, 1}},
	{LengthFalloffPower, Range{0.1, 1.5}},
	{ClumpMax, Range{0, 1}},
	{ClumpMin, Range{0, 1}},
	{BranchFactor, Range{2, 4}},
	{DropAmount, Range{-1, 1}},
	{GrowAmount, Range{-0.5, 1}},
	{SweepAmount, Range{-1, 1}},
	{MaxRadius, Range{0.05, 1}},
	{ClimbRate, Range{0.05, 1}},
	{TrunkKink, Range{0, 0.5}},
	{TreeSteps, Range{0, 5}},
	{TaperRate, Range{0.7, 1}},
	{RadiusFalloffRate, Range{0.5, 0.8}},
	{TwistRate, Range{0, 10}},
	{TrunkLength, Range{0.1, 5}},
}

// Count is the number of declared parameters.
const Count = len(definitions)

var index = func() map[Key]int {
	m := make(map[Key]int, Count)
	for i, d := range definitions {
		m[d.Key] = i
	}
	return m
}()

// UnknownParameterError is returned when a key is not part of the space.
type UnknownParameterError struct {
	Key Key
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("params: unknown parameter %q", string(e.Key))
}

// Keys returns all declared keys in order.
func Keys() []Key {
	keys := make([]Key, Count)
	for i, d := range definitions {
		keys[i] = d.Key
	}
	return keys
}

// Definitions returns all (key, range) pairs in order.
func Definitions() []Definition {
	out := make([]Definition, Count)
	copy(out, definitions[:])
	return out
}

// RangeOf returns the range declared for k.
func RangeOf(k Key) (Range, error) {
	i, ok := index[k]
	if !ok {
		return Range{}, &UnknownParameterError{Key: k}
	}
	return definitions[i].Range, nil
}

// Index returns the position of k in key order.
func Index(k Key) (int, bool) {
	i, ok := index[k]
	return i, ok
}

// At returns the definition at position i. It panics if i is out of range.
func At(i int) Definition {
	return definitions[i]
}
