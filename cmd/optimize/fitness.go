package main

import (
	"math"
	"sync"

	"github.com/Akodiat/treeCultivator/params"
	"github.com/Akodiat/treeCultivator/tree"
)

// Shape is the measured outline of a skeleton.
type Shape struct {
	Height   float64
	Width    float64 // widest horizontal extent
	Branches float64
}

// Measure returns the shape of sk.
func Measure(sk *tree.Skeleton) Shape {
	ext := sk.Max.Sub(sk.Min)
	return Shape{
		Height:   float64(ext.Y()),
		Width:    math.Max(float64(ext.X()), float64(ext.Z())),
		Branches: float64(len(sk.Branches)),
	}
}

// FitnessEvaluator grows trees and scores them against a target shape.
// Lower is better; zero is an exact match.
type FitnessEvaluator struct {
	params      *ParamVector
	target      Shape
	maxBranches int

	mu        sync.Mutex
	lastShape Shape
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(pv *ParamVector, target Shape, maxBranches int) *FitnessEvaluator {
	return &FitnessEvaluator{params: pv, target: target, maxBranches: maxBranches}
}

// LastShape returns the shape from the most recent evaluation.
func (fe *FitnessEvaluator) LastShape() Shape {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastShape
}

// Evaluate scores normalized coordinates x.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	return fe.EvaluateSet(fe.params.Denormalize(x))
}

// EvaluateSet scores a parameter set. Each target component contributes its
// squared relative error; components with a zero target are ignored.
func (fe *FitnessEvaluator) EvaluateSet(s params.Set) float64 {
	sk := tree.Generate(s, fe.maxBranches)
	got := Measure(sk)

	fe.mu.Lock()
	fe.lastShape = got
	fe.mu.Unlock()

	fitness := relErr(got.Height, fe.target.Height) +
		relErr(got.Width, fe.target.Width) +
		relErr(got.Branches, fe.target.Branches)
	if sk.Truncated {
		fitness += 1
	}
	return fitness
}

func relErr(got, want float64) float64 {
	if want == 0 {
		return 0
	}
	d := (got - want) / want
	return d * d
}
