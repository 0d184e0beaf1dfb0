package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes mouse and keyboard input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyR) {
		if err := g.Reseed(); err != nil {
			g.logger.Error("reseed failed", "error", err)
		}
	}

	// Wheel scrolls the grid; cells leaving the window are culled
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.grid.Scroll(-float64(wheel)*g.cfg.Grid.ScrollSpeed, len(g.cells), float64(g.screenHeight))
		g.layout()
	}

	mouse := rl.GetMousePosition()
	g.updatePointers(float64(mouse.X), float64(mouse.Y))

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.beginOrbit()
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.orbitDragged(d.X, d.Y)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonRight) {
		g.endOrbit()
	}

	// Selection happens on release, inside a cell
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		if slot, ok := g.cellAt(float64(mouse.X), float64(mouse.Y)); ok {
			if !g.inbox.Select(slot) {
				g.logger.Warn("selection dropped", "slot", slot)
			}
		}
	}
}

// handleResize checks for window resize and re-lays out the grid.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.layout()
}
