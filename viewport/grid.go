package viewport

import "github.com/Akodiat/treeCultivator/scene"

// Grid lays population slots out as square cells in rows of Columns,
// scrolled vertically by ScrollY logical pixels.
type Grid struct {
	Columns  int
	CellSize float64
	Gap      float64
	Margin   float64
	ScrollY  float64
}

// Rect returns the on-screen rectangle of cell i.
func (g Grid) Rect(i int) scene.Rect {
	cols := g.Columns
	if cols < 1 {
		cols = 1
	}
	row, col := i/cols, i%cols
	step := g.CellSize + g.Gap
	left := g.Margin + float64(col)*step
	top := g.Margin + float64(row)*step - g.ScrollY
	return scene.Rect{Left: left, Top: top, Right: left + g.CellSize, Bottom: top + g.CellSize}
}

// ContentHeight returns the total height of n cells including margins.
func (g Grid) ContentHeight(n int) float64 {
	cols := g.Columns
	if cols < 1 {
		cols = 1
	}
	rows := (n + cols - 1) / cols
	if rows == 0 {
		return 2 * g.Margin
	}
	return 2*g.Margin + float64(rows)*g.CellSize + float64(rows-1)*g.Gap
}

// Scroll moves the grid by dy and keeps the scroll offset between zero
// and the point where the last row meets the bottom of the view.
func (g *Grid) Scroll(dy float64, n int, viewHeight float64) {
	g.ScrollY += dy
	limit := g.ContentHeight(n) - viewHeight
	if limit < 0 {
		limit = 0
	}
	if g.ScrollY > limit {
		g.ScrollY = limit
	}
	if g.ScrollY < 0 {
		g.ScrollY = 0
	}
}

// Hit returns the index of the cell containing (x, y), or -1.
func (g Grid) Hit(x, y float64, n int) int {
	for i := 0; i < n; i++ {
		if g.Rect(i).Contains(x, y) {
			return i
		}
	}
	return -1
}
