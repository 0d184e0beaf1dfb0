package main

import (
	"math"
	"testing"

	"github.com/Akodiat/treeCultivator/params"
	"github.com/Akodiat/treeCultivator/tree"
)

func midSet() params.Set {
	s := params.Set{Seed: 262, Segments: 6}
	for i, d := range params.Definitions() {
		s.Values[i] = d.Range.Min + d.Range.Span()/2
	}
	s.Values[0] = 2 // levels
	return s
}

func TestDenormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector(262, 6)
	s := midSet()
	got := pv.Denormalize(pv.Normalize(s))
	for i := range s.Values {
		if math.Abs(got.Values[i]-s.Values[i]) > 1e-9 {
			t.Errorf("value %d: got %v, want %v", i, got.Values[i], s.Values[i])
		}
	}
	if got.Seed != 262 || got.Segments != 6 {
		t.Errorf("structural fields not carried: %+v", got)
	}
}

func TestDenormalizeClamps(t *testing.T) {
	pv := NewParamVector(1, 6)
	x := make([]float64, pv.Dim())
	for i := range x {
		x[i] = 3
		if i%2 == 0 {
			x[i] = -3
		}
	}
	if s := pv.Denormalize(x); !s.InRange() {
		t.Error("denormalized set out of range")
	}
}

func TestEvaluateExactMatchIsZero(t *testing.T) {
	s := midSet()
	target := Measure(tree.Generate(s, 0))
	fe := NewFitnessEvaluator(NewParamVector(s.Seed, s.Segments), target, 0)

	if got := fe.EvaluateSet(s); got != 0 {
		t.Errorf("fitness = %v, want 0", got)
	}
	if fe.LastShape() != target {
		t.Errorf("last shape = %+v, want %+v", fe.LastShape(), target)
	}
}

func TestRelErr(t *testing.T) {
	tests := []struct {
		got, want, expected float64
	}{
		{2, 0, 0},
		{2, 2, 0},
		{3, 2, 0.25},
		{1, 2, 0.25},
	}
	for _, tt := range tests {
		if r := relErr(tt.got, tt.want); math.Abs(r-tt.expected) > 1e-12 {
			t.Errorf("relErr(%v, %v) = %v, want %v", tt.got, tt.want, r, tt.expected)
		}
	}
}
