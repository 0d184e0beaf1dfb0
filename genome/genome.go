// Package genome implements the evolvable parameter vector of a tree.
package genome

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/Akodiat/treeCultivator/params"
	"github.com/Akodiat/treeCultivator/scene"
)

// MissingRangeError is returned when a template names a key that has no
// declared range.
type MissingRangeError struct {
	Key params.Key
}

func (e *MissingRangeError) Error() string {
	return fmt.Sprintf("genome: no range declared for %q", string(e.Key))
}

// InvalidValueError is returned for NaN or infinite template values.
type InvalidValueError struct {
	Key   params.Key
	Value float64
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("genome: %q has non-finite value %v", string(e.Key), e.Value)
}

// Template is a partial genome description. Keys missing from Values are
// filled at random when the genome is created.
type Template struct {
	Seed     int64
	Segments int
	Values   map[params.Key]float64
}

// Genome is a complete, in-range parameter vector.
type Genome struct {
	set params.Set
}

// New completes t into a genome, drawing every missing value uniformly
// from [min, max). Supplied values are clamped into their range.
func New(t Template, rng Uniform) (*Genome, error) {
	g := &Genome{set: params.Set{Seed: t.Seed, Segments: t.Segments}}

	for k, v := range t.Values {
		i, ok := params.Index(k)
		if !ok {
			return nil, &MissingRangeError{Key: k}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &InvalidValueError{Key: k, Value: v}
		}
		g.set.Values[i] = params.At(i).Range.Clamp(v)
	}

	for i := 0; i < params.Count; i++ {
		d := params.At(i)
		if _, ok := t.Values[d.Key]; ok {
			continue
		}
		g.set.Values[i] = d.Range.Min + rng.Float64()*d.Range.Span()
	}
	return g, nil
}

// FromSet wraps an existing parameter set, clamping every value.
func FromSet(s params.Set) *Genome {
	for i := 0; i < params.Count; i++ {
		s.Values[i] = params.At(i).Range.Clamp(s.Values[i])
	}
	return &Genome{set: s}
}

// Mutate perturbs every parameter with DefaultMutation noise.
func (g *Genome) Mutate(rng Uniform) {
	g.MutateWith(rng, DefaultMutation)
}

// MutateWith perturbs every parameter with an independent draw from dist
// and clamps the result back into range.
func (g *Genome) MutateWith(rng Uniform, dist Gaussian) {
	for i := 0; i < params.Count; i++ {
		v := g.set.Values[i] + dist.Sample(rng)
		g.set.Values[i] = params.At(i).Range.Clamp(v)
	}
}

// Clone returns an independent copy.
func (g *Genome) Clone() *Genome {
	// Set holds only values, so a struct copy shares nothing.
	return &Genome{set: g.set}
}

// Params returns a copy of the full parameter set.
func (g *Genome) Params() params.Set {
	return g.set
}

// Get returns the value of k.
func (g *Genome) Get(k params.Key) float64 {
	return g.set.Get(k)
}

// Equal reports whether both genomes hold bit-identical values.
func (g *Genome) Equal(o *Genome) bool {
	return g.set == o.set
}

// Distance returns the Euclidean distance between the two genomes in
// range-normalized parameter space.
func (g *Genome) Distance(o *Genome) float64 {
	return floats.Distance(g.set.Normalized(), o.set.Normalized(), 2)
}

// ToMesh asks b for a mesh of this genome.
func (g *Genome) ToMesh(b scene.MeshBuilder) (scene.Mesh, error) {
	m, err := b.Build(g.set)
	if err != nil {
		return nil, fmt.Errorf("building mesh: %w", err)
	}
	return m, nil
}
