// Package population holds the fixed-size set of genomes on display,
// each paired with its current mesh and the scene host showing it.
package population

import (
	"errors"
	"fmt"

	"github.com/Akodiat/treeCultivator/genome"
	"github.com/Akodiat/treeCultivator/scene"
)

var (
	// ErrMissingHost is returned when a population is created without a
	// scene host for every slot.
	ErrMissingHost = errors.New("population: missing scene host")
	// ErrSizeMismatch is returned when a replacement does not cover every slot.
	ErrSizeMismatch = errors.New("population: replacement size mismatch")
)

// Slot is one index-aligned entry of the population.
type Slot struct {
	Genome *genome.Genome
	Mesh   scene.Mesh
	Host   scene.Host
}

// Population is an ordered, fixed-size collection of slots. Genomes and
// meshes only ever change together, through ReplaceAll.
type Population struct {
	slots []Slot
}

// New creates an empty population with one slot per host. Every host must
// be non-nil.
func New(hosts []scene.Host) (*Population, error) {
	if len(hosts) == 0 {
		return nil, fmt.Errorf("%w: no hosts", ErrMissingHost)
	}
	slots := make([]Slot, len(hosts))
	for i, h := range hosts {
		if h == nil {
			return nil, fmt.Errorf("%w: slot %d", ErrMissingHost, i)
		}
		slots[i].Host = h
	}
	return &Population{slots: slots}, nil
}

// Size returns N.
func (p *Population) Size() int {
	return len(p.slots)
}

// Seeded reports whether every slot has a genome.
func (p *Population) Seeded() bool {
	for _, s := range p.slots {
		if s.Genome == nil {
			return false
		}
	}
	return true
}

// Slot returns slot i. It panics if i is out of range.
func (p *Population) Slot(i int) Slot {
	return p.slots[i]
}

// Genome returns the genome in slot i. Callers must not mutate it.
func (p *Population) Genome(i int) *genome.Genome {
	return p.slots[i].Genome
}

// Genomes returns independent copies of every genome in slot order.
func (p *Population) Genomes() []*genome.Genome {
	out := make([]*genome.Genome, len(p.slots))
	for i, s := range p.slots {
		if s.Genome != nil {
			out[i] = s.Genome.Clone()
		}
	}
	return out
}

// Each calls fn for every slot in order.
func (p *Population) Each(fn func(i int, s Slot)) {
	for i, s := range p.slots {
		fn(i, s)
	}
}

// ReplaceAll swaps in a whole new generation. All meshes are built before
// anything is touched, so a builder failure leaves the population as it
// was. On success every old mesh is detached from its host and the new one
// attached, slot by slot, before ReplaceAll returns.
func (p *Population) ReplaceAll(genomes []*genome.Genome, b scene.MeshBuilder) error {
	if len(genomes) != len(p.slots) {
		return fmt.Errorf("%w: got %d genomes for %d slots", ErrSizeMismatch, len(genomes), len(p.slots))
	}

	meshes := make([]scene.Mesh, len(genomes))
	for i, g := range genomes {
		if g == nil {
			return fmt.Errorf("population: nil genome for slot %d", i)
		}
		m, err := g.ToMesh(b)
		if err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		meshes[i] = m
	}

	next := make([]Slot, len(p.slots))
	for i, old := range p.slots {
		if old.Mesh != nil {
			old.Host.Detach(old.Mesh)
		}
		old.Host.Attach(meshes[i])
		next[i] = Slot{Genome: genomes[i], Mesh: meshes[i], Host: old.Host}
	}
	p.slots = next
	return nil
}
