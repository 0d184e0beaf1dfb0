package tree

import (
	"fmt"

	"github.com/Akodiat/treeCultivator/params"
	"github.com/Akodiat/treeCultivator/scene"
)

// Model is a generated tree with its current spin. It satisfies scene.Mesh.
type Model struct {
	Skeleton  *Skeleton
	rotationY float64
}

// SetRotationY sets the spin about the vertical axis, in radians.
func (m *Model) SetRotationY(rad float64) { m.rotationY = rad }

// RotationY returns the current spin.
func (m *Model) RotationY() float64 { return m.rotationY }

// Builder turns parameter sets into tree meshes.
type Builder struct {
	// MaxBranches caps each skeleton; zero means DefaultMaxBranches.
	MaxBranches int
	// Wrap converts a skeleton into the mesh handed to hosts. Nil yields *Model.
	Wrap func(*Skeleton) scene.Mesh
}

// Build generates the skeleton for p. Sets outside their ranges are rejected.
func (b Builder) Build(p params.Set) (scene.Mesh, error) {
	if !p.InRange() {
		return nil, fmt.Errorf("tree: parameter set out of range")
	}
	sk := Generate(p, b.MaxBranches)
	if b.Wrap != nil {
		return b.Wrap(sk), nil
	}
	return &Model{Skeleton: sk}, nil
}
