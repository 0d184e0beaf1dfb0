package ui

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/Akodiat/treeCultivator/params"
)

// ParamPanelData is what the parameter panel shows this frame.
type ParamPanelData struct {
	Generation int
	Variant    string
	Winner     params.Set
	HasWinner  bool
	// Hovered is the slot under the cursor, -1 for none.
	Hovered    int
	HoveredSet params.Set
}

// ParamPanelAction reports which panel buttons were pressed.
type ParamPanelAction struct {
	Reseed bool
}

// ParamPanel shows the current winner's parameters, either as bars or as
// the YAML text that is logged on selection. Bars mark the previous
// winner's values so the step taken by the last selection is visible.
type ParamPanel struct {
	renderer *Renderer
	sections []Section
	showText bool

	current     params.Set
	hasCurrent  bool
	previous    params.Set
	hasPrevious bool
}

// NewParamPanel creates a panel with one bar per parameter.
func NewParamPanel() *ParamPanel {
	return &ParamPanel{
		renderer: NewRenderer(),
		sections: paramSections(),
	}
}

// paramSections lays out the structural fields and every ranged key.
func paramSections() []Section {
	structural := Section{
		Title: "Structure",
		Rows: []Row{
			{Label: "seed", Widget: WidgetText, Text: func(s params.Set) string { return fmt.Sprintf("%d", s.Seed) }},
			{Label: "segments", Widget: WidgetText, Text: func(s params.Set) string { return fmt.Sprintf("%d", s.Segments) }},
		},
	}

	ranged := Section{Title: "Parameters"}
	for i, def := range params.Definitions() {
		ranged.Rows = append(ranged.Rows, Row{
			Label:  string(def.Key),
			Widget: WidgetBar,
			Format: "%.3f",
			Range:  def.Range,
			Value:  func(s params.Set) float64 { return s.Values[i] },
		})
	}
	return []Section{structural, ranged}
}

// track remembers the winner shown before the latest selection.
func (p *ParamPanel) track(data ParamPanelData) {
	if !data.HasWinner {
		p.hasCurrent, p.hasPrevious = false, false
		return
	}
	if p.hasCurrent && p.current == data.Winner {
		return
	}
	p.previous, p.hasPrevious = p.current, p.hasCurrent
	p.current, p.hasCurrent = data.Winner, true
}

// Draw renders the panel into the given column and returns pressed buttons.
func (p *ParamPanel) Draw(x, y, width, height int32, data ParamPanelData) ParamPanelAction {
	var action ParamPanelAction
	p.track(data)
	r := p.renderer
	pad := r.Theme.Padding

	r.DrawPanel(x, y, width, height)
	title := fmt.Sprintf("Generation %d (%s)", data.Generation, data.Variant)
	gui.GroupBox(rl.Rectangle{X: float32(x + pad/2), Y: float32(y + pad), Width: float32(width - pad), Height: float32(height - 2*pad)}, title)

	cx := x + pad
	cy := y + 2*pad
	bw := float32(width-3*pad) / 3

	if gui.Button(rl.Rectangle{X: float32(cx), Y: float32(cy), Width: bw, Height: 24}, toggleText(p.showText, "Bars", "Text")) {
		p.showText = !p.showText
	}
	set, label, ok := p.shown(data)
	if gui.Button(rl.Rectangle{X: float32(cx) + bw + float32(pad)/2, Y: float32(cy), Width: bw, Height: 24}, "Copy YAML") && ok {
		rl.SetClipboardText(set.Format())
	}
	if gui.Button(rl.Rectangle{X: float32(cx) + 2*(bw+float32(pad)/2), Y: float32(cy), Width: bw, Height: 24}, "Reseed") {
		action.Reseed = true
	}
	cy += 34

	if !ok {
		gui.Label(rl.Rectangle{X: float32(cx), Y: float32(cy), Width: float32(width - 2*pad), Height: 20}, "Click a tree to breed from it")
		return action
	}
	cy = r.DrawHeader(cx, cy, label)

	if p.showText {
		for _, line := range strings.Split(strings.TrimRight(set.Format(), "\n"), "\n") {
			rl.DrawText(line, cx, cy, r.Theme.FontSize, r.Theme.Value)
			cy += r.Theme.LineHeight - 2
		}
		return action
	}
	var ref *params.Set
	if data.HasWinner && p.hasPrevious {
		ref = &p.previous
	}
	r.DrawSections(cx, cy, width-2*pad, p.sections, set, ref)
	return action
}

// shown picks the winner, or the hovered slot before the first selection.
func (p *ParamPanel) shown(data ParamPanelData) (params.Set, string, bool) {
	if data.HasWinner {
		return data.Winner, "Current winner", true
	}
	if data.Hovered >= 0 {
		return data.HoveredSet, fmt.Sprintf("Tree %d", data.Hovered), true
	}
	return params.Set{}, "", false
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
