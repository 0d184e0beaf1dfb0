package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/Akodiat/treeCultivator/params"
)

// changeEpsilon is the smallest normalized difference shown as a change.
const changeEpsilon = 1e-4

// Renderer draws widgets with a shared theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel fills a bordered rectangle.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.Background)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.Border)
}

// DrawHeader draws a section title and returns the next row position.
func (r *Renderer) DrawHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderSize, r.Theme.Header)
	return y + r.Theme.LineHeight + 2
}

// DrawText draws a label and its value on one row.
func (r *Renderer) DrawText(x, y int32, label, value string) int32 {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.Label)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.Value)
	return y + r.Theme.LineHeight
}

// Bar is one bar row: the value, an optional reference value drawn as a
// tick, and the range both are scaled into.
type Bar struct {
	Label  string
	Value  float64
	Ref    float64
	HasRef bool
	Range  params.Range
	Format string
}

// DrawBar draws b and returns the next row position. The fill switches to
// the Changed color when the value differs from the reference.
func (r *Renderer) DrawBar(x, y, width int32, b Bar) int32 {
	t := r.Theme
	format := b.Format
	if format == "" {
		format = "%.3f"
	}
	trackX := x + t.LabelWidth
	trackW := max(width-t.LabelWidth-50, 1)

	fill := t.Fill
	if b.HasRef && absDiff(fraction(b.Ref, b.Range), fraction(b.Value, b.Range)) > changeEpsilon {
		fill = t.Changed
	}

	rl.DrawText(b.Label, x, y, t.FontSize, t.Label)
	rl.DrawRectangle(trackX, y+2, trackW, t.BarHeight, t.Track)
	rl.DrawRectangle(trackX, y+2, int32(float64(trackW)*fraction(b.Value, b.Range)), t.BarHeight, fill)
	if b.HasRef {
		mx := trackX + int32(float64(trackW)*fraction(b.Ref, b.Range))
		rl.DrawLine(mx, y, mx, y+t.BarHeight+4, t.Marker)
	}
	rl.DrawText(fmt.Sprintf(format, b.Value), trackX+trackW+5, y, t.FontSize, t.Value)
	return y + t.LineHeight
}

// DrawSections draws every section for set. When ref is non-nil, bar rows
// also mark the reference value.
func (r *Renderer) DrawSections(x, y, width int32, sections []Section, set params.Set, ref *params.Set) int32 {
	for _, s := range sections {
		if s.Title != "" {
			y = r.DrawHeader(x, y, s.Title)
		}
		for _, row := range s.Rows {
			y = r.drawRow(x, y, width, row, set, ref)
		}
		y += 4
	}
	return y
}

func (r *Renderer) drawRow(x, y, width int32, row Row, set params.Set, ref *params.Set) int32 {
	switch row.Widget {
	case WidgetText:
		text := ""
		switch {
		case row.Text != nil:
			text = row.Text(set)
		case row.Value != nil:
			text = fmt.Sprintf(row.Format, row.Value(set))
		}
		return r.DrawText(x, y, row.Label, text)
	case WidgetBar:
		if row.Value == nil {
			return y
		}
		b := Bar{Label: row.Label, Value: row.Value(set), Range: row.Range, Format: row.Format}
		if ref != nil {
			b.Ref, b.HasRef = row.Value(*ref), true
		}
		return r.DrawBar(x, y, width, b)
	case WidgetSpacer:
		return y + 6
	}
	return y
}

// fraction maps v into [0, 1] within rng.
func fraction(v float64, rng params.Range) float64 {
	span := rng.Span()
	if span <= 0 {
		return 0
	}
	return min(1, max(0, (v-rng.Min)/span))
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
