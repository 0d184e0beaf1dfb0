// Package main searches the tree parameter space for a genome whose
// skeleton matches a target shape.
package main

import (
	"github.com/Akodiat/treeCultivator/genome"
	"github.com/Akodiat/treeCultivator/params"
)

// ParamVector maps between optimizer coordinates in [0,1] and parameter sets.
// Seed and segments are fixed by the starting template.
type ParamVector struct {
	Seed     int64
	Segments int
	Defs     []params.Definition
}

// NewParamVector creates a vector over every declared parameter.
func NewParamVector(seed int64, segments int) *ParamVector {
	return &ParamVector{Seed: seed, Segments: segments, Defs: params.Definitions()}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Defs)
}

// Normalize converts a parameter set to [0,1] coordinates.
func (pv *ParamVector) Normalize(s params.Set) []float64 {
	return s.Normalized()
}

// Denormalize converts coordinates back to a parameter set. Coordinates
// outside [0,1] are clamped so every returned set is in range.
func (pv *ParamVector) Denormalize(x []float64) params.Set {
	s := params.Set{Seed: pv.Seed, Segments: pv.Segments}
	for i, d := range pv.Defs {
		s.Values[i] = d.Range.Clamp(d.Range.Min + x[i]*d.Range.Span())
	}
	return s
}

// FromTemplate completes t into the starting set, drawing unset keys from rng.
func FromTemplate(t genome.Template, rng genome.Uniform) (params.Set, error) {
	g, err := genome.New(t, rng)
	if err != nil {
		return params.Set{}, err
	}
	return g.Params(), nil
}
