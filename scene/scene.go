// Package scene holds the contracts between the evolution core and the
// host application that owns the real 3D scenes, cameras and meshes.
package scene

import "github.com/Akodiat/treeCultivator/params"

// Rect is a screen-space rectangle in logical (CSS-like) pixels with the
// origin at the top-left of the canvas.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// Mesh is an opaque renderable object. The core only ever spins it.
type Mesh interface {
	SetRotationY(radians float64)
}

// MeshBuilder turns a parameter set into a renderable mesh. It must be a
// pure function of its input.
type MeshBuilder interface {
	Build(p params.Set) (Mesh, error)
}

// MeshBuilderFunc adapts a function to the MeshBuilder interface.
type MeshBuilderFunc func(p params.Set) (Mesh, error)

// Build calls f(p).
func (f MeshBuilderFunc) Build(p params.Set) (Mesh, error) { return f(p) }

// Host owns one scene with its camera and display region.
type Host interface {
	// Attach adds m to the scene.
	Attach(m Mesh)
	// Detach removes m from the scene. Detaching a mesh that is not
	// attached is a no-op.
	Detach(m Mesh)
	// Rect returns the current on-screen rectangle of the display region.
	Rect() Rect
}
