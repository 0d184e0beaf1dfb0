package game

import (
	"errors"

	"github.com/Akodiat/treeCultivator/evolve"
)

// isFatal reports whether a selection error means the game state is broken.
func isFatal(err error) bool {
	return errors.Is(err, evolve.ErrSelectionOutOfRange)
}

// layout fits the grid beside the parameter panel and writes every cell's
// rectangle onto its entity.
func (g *Game) layout() {
	avail := float64(g.screenWidth) - float64(g.cfg.Grid.PanelWidth)
	step := g.grid.CellSize + g.grid.Gap
	fit := 1
	if step > 0 {
		fit = max(1, int((avail-2*g.grid.Margin+g.grid.Gap)/step))
	}
	g.grid.Columns = min(g.cfg.Grid.Columns, fit)
	g.grid.Scroll(0, len(g.cells), float64(g.screenHeight))

	query := g.cellFilter.Query()
	for query.Next() {
		cell, bounds, _ := query.Get()
		bounds.Rect = g.grid.Rect(cell.Slot)
	}
}

// cellAt returns the slot whose cell contains (x, y).
func (g *Game) cellAt(x, y float64) (int, bool) {
	if x > float64(g.screenWidth)-float64(g.cfg.Grid.PanelWidth) {
		return 0, false
	}
	slot, found := -1, false
	query := g.cellFilter.Query()
	for query.Next() {
		cell, bounds, _ := query.Get()
		// Keep iterating: the query must be consumed to release the world lock
		if !found && bounds.Rect.Contains(x, y) {
			slot, found = cell.Slot, true
		}
	}
	return slot, found
}

// updatePointers marks the cell under the cursor as hovered.
func (g *Game) updatePointers(x, y float64) {
	g.hovered = -1
	inGrid := x <= float64(g.screenWidth)-float64(g.cfg.Grid.PanelWidth)

	query := g.cellFilter.Query()
	for query.Next() {
		cell, bounds, ptr := query.Get()
		ptr.Over = inGrid && bounds.Rect.Contains(x, y)
		if ptr.Over {
			g.hovered = cell.Slot
		}
	}
}

// beginOrbit starts dragging the camera of the hovered cell.
func (g *Game) beginOrbit() {
	query := g.cellFilter.Query()
	for query.Next() {
		_, _, ptr := query.Get()
		ptr.Dragging = ptr.Over
	}
}

// orbitDragged rotates the camera of the cell being dragged.
func (g *Game) orbitDragged(dx, dy float32) {
	speed := float32(g.cfg.Camera.OrbitSpeed)
	query := g.cellFilter.Query()
	for query.Next() {
		_, _, ptr := query.Get()
		if !ptr.Dragging {
			continue
		}
		e := query.Entity()
		view := g.viewMap.Get(e)
		view.Orbit.Rotate(-dx*speed, dy*speed)
	}
}

func (g *Game) endOrbit() {
	query := g.cellFilter.Query()
	for query.Next() {
		_, _, ptr := query.Get()
		ptr.Dragging = false
	}
}
