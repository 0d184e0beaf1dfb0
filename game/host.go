package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/Akodiat/treeCultivator/camera"
	"github.com/Akodiat/treeCultivator/components"
	"github.com/Akodiat/treeCultivator/renderer"
	"github.com/Akodiat/treeCultivator/scene"
)

// CellHost is the scene of one grid cell. Its rectangle and camera live on
// the cell's entity.
type CellHost struct {
	entity ecs.Entity
	bounds *ecs.Map1[components.Bounds]
	view   *ecs.Map1[components.View]
	mesh   scene.Mesh
}

var _ scene.Host = (*CellHost)(nil)

// Attach adds m to the scene, replacing any previous mesh.
func (h *CellHost) Attach(m scene.Mesh) {
	h.mesh = m
}

// Detach removes m if it is the attached mesh.
func (h *CellHost) Detach(m scene.Mesh) {
	if h.mesh == m {
		h.mesh = nil
	}
}

// Rect returns the cell's current rectangle.
func (h *CellHost) Rect() scene.Rect {
	return h.bounds.Get(h.entity).Rect
}

// Mesh returns the attached mesh, or nil.
func (h *CellHost) Mesh() scene.Mesh {
	return h.mesh
}

// Orbit returns the cell's camera.
func (h *CellHost) Orbit() *camera.Orbit {
	return &h.view.Get(h.entity).Orbit
}

// Tree returns the attached mesh as a drawable tree, if it is one.
func (h *CellHost) Tree() (*renderer.TreeModel, bool) {
	t, ok := h.mesh.(*renderer.TreeModel)
	return t, ok
}
