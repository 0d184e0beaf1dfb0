package viewport

import (
	"math"

	"github.com/Akodiat/treeCultivator/scene"
)

// Canvas describes the drawable surface in logical pixels together with
// the device pixel ratio.
type Canvas struct {
	Width      float64
	Height     float64
	PixelRatio float64
}

// Region is a viewport or scissor rectangle in device pixels with the
// origin at the bottom-left corner, as the GL backend expects.
type Region struct {
	X, Y          int32
	Width, Height int32
}

// Culled reports whether r lies entirely outside the canvas.
func Culled(r scene.Rect, c Canvas) bool {
	return r.Bottom < 0 || r.Top > c.Height || r.Right < 0 || r.Left > c.Width
}

// DeviceRegion converts a top-left origin rectangle to a bottom-left
// origin region in device pixels.
func DeviceRegion(r scene.Rect, c Canvas) Region {
	pr := c.PixelRatio
	if pr <= 0 {
		pr = 1
	}
	bottom := c.Height - r.Bottom
	return Region{
		X:      int32(math.Floor(r.Left * pr)),
		Y:      int32(math.Floor(bottom * pr)),
		Width:  int32(math.Floor(r.Width() * pr)),
		Height: int32(math.Floor(r.Height() * pr)),
	}
}
