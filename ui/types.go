// Package ui draws the parameter panel and HUD beside the tree grid. Panel
// rows are built from the parameter space rather than hard-coded.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/Akodiat/treeCultivator/params"
)

// WidgetType selects how a row is drawn.
type WidgetType int

const (
	WidgetText   WidgetType = iota // label and formatted value
	WidgetBar                      // value as a fill within its range
	WidgetSpacer                   // blank gap
)

// Row describes one line of the parameter panel.
type Row struct {
	Label  string
	Widget WidgetType
	Format string
	Range  params.Range
	Value  func(params.Set) float64
	Text   func(params.Set) string
}

// Section is a titled group of rows.
type Section struct {
	Title string
	Rows  []Row
}

// Theme holds colors and metrics shared by the panel and HUD.
type Theme struct {
	Background rl.Color
	Border     rl.Color
	Header     rl.Color
	Label      rl.Color
	Value      rl.Color
	Track      rl.Color
	Fill       rl.Color
	Changed    rl.Color // fill for values that moved since the previous winner
	Marker     rl.Color

	Padding    int32
	LineHeight int32
	LabelWidth int32
	BarHeight  int32
	FontSize   int32
	HeaderSize int32
}

// DefaultTheme uses bark and leaf tones on a light background.
func DefaultTheme() Theme {
	return Theme{
		Background: rl.Color{R: 250, G: 250, B: 250, A: 240},
		Border:     rl.Color{R: 160, G: 160, B: 160, A: 255},
		Header:     rl.DarkGreen,
		Label:      rl.DarkGray,
		Value:      rl.Black,
		Track:      rl.Color{R: 220, G: 220, B: 220, A: 255},
		Fill:       rl.Color{R: 107, G: 74, B: 43, A: 255},
		Changed:    rl.Color{R: 79, G: 143, B: 58, A: 255},
		Marker:     rl.Maroon,
		Padding:    10,
		LineHeight: 16,
		LabelWidth: 130,
		BarHeight:  10,
		FontSize:   12,
		HeaderSize: 14,
	}
}
