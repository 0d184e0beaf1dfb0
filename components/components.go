// Package components defines ECS components for the grid cells.
package components

import (
	"github.com/Akodiat/treeCultivator/camera"
	"github.com/Akodiat/treeCultivator/scene"
)

// Cell identifies a grid cell and the population slot it displays.
type Cell struct {
	Slot int
}

// Bounds is the cell's rectangle in canvas pixels, refreshed on every layout.
type Bounds struct {
	Rect scene.Rect
}

// View holds the cell's orbit camera.
type View struct {
	Orbit camera.Orbit
}

// Pointer tracks mouse interaction with a cell.
type Pointer struct {
	Over     bool // cursor inside the cell this frame
	Pressed  bool // left button went down inside the cell
	Dragging bool // right button orbiting this cell
}
