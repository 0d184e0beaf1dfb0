// Tree preview tool - renders a single tree with one slider per parameter.
//
// Usage: go run ./cmd/treepreview [-config path] [-variant name]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/Akodiat/treeCultivator/config"
	"github.com/Akodiat/treeCultivator/genome"
	"github.com/Akodiat/treeCultivator/params"
	"github.com/Akodiat/treeCultivator/renderer"
	"github.com/Akodiat/treeCultivator/tree"
)

const (
	windowWidth  = 1100
	windowHeight = 760
	previewSize  = 640
	panelWidth   = windowWidth - previewSize - 30
	sliderHeight = 14
	rowHeight    = 28
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	variant := flag.String("variant", "", "Seed variant to start from (empty = use config)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *variant != "" {
		if err := cfg.SelectVariant(*variant); err != nil {
			slog.Error("invalid variant", "error", err)
			os.Exit(1)
		}
	}

	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "Tree Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	rng := rand.New(rand.NewPCG(1, 2))
	style := renderer.NewTreeStyle(cfg.Derived.Bark, cfg.Derived.Leaf, cfg.Render.CylinderSides)
	builder := tree.Builder{Wrap: renderer.Wrapper(style)}

	reset := func() params.Set {
		g, err := genome.New(cfg.Derived.Variant.Template(), rng)
		if err != nil {
			slog.Error("invalid variant template", "error", err)
			os.Exit(1)
		}
		return g.Params()
	}
	set := reset()

	var model *renderer.TreeModel
	needsRebuild := true

	cam := rl.Camera3D{
		Position:   rl.NewVector3(0, float32(cfg.Camera.TargetHeight), float32(cfg.Camera.Distance)),
		Target:     rl.NewVector3(0, float32(cfg.Camera.TargetHeight), 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(cfg.Camera.FovY),
		Projection: rl.CameraPerspective,
	}
	target := rl.LoadRenderTexture(previewSize, previewSize)
	defer rl.UnloadRenderTexture(target)

	var spin float64
	spinning := true

	for !rl.WindowShouldClose() {
		if needsRebuild {
			mesh, err := builder.Build(set)
			if err != nil {
				slog.Error("build failed", "error", err)
			} else {
				model = mesh.(*renderer.TreeModel)
			}
			needsRebuild = false
		}
		if spinning {
			spin += float64(rl.GetFrameTime())
		}

		if model != nil {
			model.SetRotationY(spin)
			rl.BeginTextureMode(target)
			rl.ClearBackground(rl.NewColor(cfg.Derived.Cell.R, cfg.Derived.Cell.G, cfg.Derived.Cell.B, 255))
			rl.BeginMode3D(cam)
			renderer.DrawGround(1.5, rl.LightGray)
			model.Draw()
			rl.EndMode3D()
			rl.EndTextureMode()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Render textures are stored upside down
		rl.DrawTexturePro(
			target.Texture,
			rl.Rectangle{X: 0, Y: 0, Width: previewSize, Height: -previewSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		if model != nil {
			sk := model.Skeleton
			statsY := int32(previewSize + 25)
			rl.DrawText(fmt.Sprintf("Branches: %d  Twigs: %d  Depth: %d  Height: %.2f",
				len(sk.Branches), len(sk.Twigs), sk.Depth(), sk.Height()), 15, statsY, 16, rl.DarkGray)
			if sk.Truncated {
				rl.DrawText("Branch cap reached", 15, statsY+20, 16, rl.Maroon)
			}
		}

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)
		labelW := float32(130)
		sliderW := float32(panelWidth) - labelW - 60

		rl.DrawText("Tree Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 30

		for i, d := range params.Definitions() {
			rl.DrawText(string(d.Key), int32(panelX), int32(panelY), 12, rl.Gray)
			v := float32(set.Values[i])
			nv := gui.SliderBar(
				rl.Rectangle{X: panelX + labelW, Y: panelY, Width: sliderW, Height: sliderHeight},
				"", "",
				v, float32(d.Range.Min), float32(d.Range.Max),
			)
			rl.DrawText(fmt.Sprintf("%.3f", set.Values[i]), int32(panelX+labelW+sliderW+6), int32(panelY), 12, rl.DarkGray)
			if nv != v {
				set.Values[i] = d.Range.Clamp(float64(nv))
				needsRebuild = true
			}
			panelY += rowHeight - 6
		}

		rl.DrawText("seed", int32(panelX), int32(panelY), 12, rl.Gray)
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX + labelW, Y: panelY, Width: sliderW, Height: sliderHeight},
			"", "",
			float32(set.Seed), 0, 9999,
		)
		rl.DrawText(fmt.Sprintf("%d", set.Seed), int32(panelX+labelW+sliderW+6), int32(panelY), 12, rl.DarkGray)
		if int64(newSeed) != set.Seed {
			set.Seed = int64(newSeed)
			needsRebuild = true
		}
		panelY += rowHeight - 6

		rl.DrawText("segments", int32(panelX), int32(panelY), 12, rl.Gray)
		newSegments := gui.SliderBar(
			rl.Rectangle{X: panelX + labelW, Y: panelY, Width: sliderW, Height: sliderHeight},
			"", "",
			float32(set.Segments), 3, 16,
		)
		rl.DrawText(fmt.Sprintf("%d", set.Segments), int32(panelX+labelW+sliderW+6), int32(panelY), 12, rl.DarkGray)
		if int(newSegments) != set.Segments {
			set.Segments = int(newSegments)
			needsRebuild = true
		}
		panelY += rowHeight + 4

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 28}, "Randomize") {
			g, _ := genome.New(genome.Template{Seed: set.Seed, Segments: set.Segments}, rng)
			set = g.Params()
			needsRebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 28}, "Mutate") {
			g := genome.FromSet(set)
			g.MutateWith(rng, cfg.Derived.Mutation)
			set = g.Params()
			needsRebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 220, Y: panelY, Width: 100, Height: 28}, "Reset All") {
			set = reset()
			needsRebuild = true
		}
		panelY += 36

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 28}, toggleText(spinning, "Stop", "Spin")) {
			spinning = !spinning
		}
		if gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 28}, "Copy YAML") {
			rl.SetClipboardText(set.Format())
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(set.Format())
		}

		rl.EndDrawing()
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
