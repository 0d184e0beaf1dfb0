package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Generation   int
	Population   int
	Drawn        int
	Culled       int
	FPS          int32
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD in the bottom-left corner over the grid.
func (h *HUD) Draw(data HUDData) {
	x := int32(10)
	y := data.ScreenHeight - 70
	h.renderer.DrawPanel(x-4, y-4, 330, 40)

	rl.DrawText(
		fmt.Sprintf("%s | Generation: %d | Trees: %d", data.Title, data.Generation, data.Population),
		x, y, 14, rl.DarkGray,
	)
	rl.DrawText(
		fmt.Sprintf("FPS: %d | Drawn: %d | Culled: %d", data.FPS, data.Drawn, data.Culled),
		x, y+18, 14, rl.Gray,
	)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
