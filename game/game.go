// Package game wires the evolution core to a raylib window: one ECS entity
// per grid cell, the shared-canvas render loop, input and telemetry.
package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/Akodiat/treeCultivator/camera"
	"github.com/Akodiat/treeCultivator/components"
	"github.com/Akodiat/treeCultivator/config"
	"github.com/Akodiat/treeCultivator/evolve"
	"github.com/Akodiat/treeCultivator/genome"
	"github.com/Akodiat/treeCultivator/population"
	"github.com/Akodiat/treeCultivator/renderer"
	"github.com/Akodiat/treeCultivator/scene"
	"github.com/Akodiat/treeCultivator/telemetry"
	"github.com/Akodiat/treeCultivator/tree"
	"github.com/Akodiat/treeCultivator/ui"
	"github.com/Akodiat/treeCultivator/viewport"
)

// Options configures a Game.
type Options struct {
	Seed      int64  // RNG seed for genome sampling and mutation
	OutputDir string // CSV output directory, empty disables output
	Headless  bool   // no window; meshes are built but never drawn
	Logger    *slog.Logger
}

// Game holds the complete application state.
type Game struct {
	cfg    *config.Config
	opts   Options
	logger *slog.Logger
	rng    *rand.Rand

	// One entity per grid cell
	world      *ecs.World
	cellMapper *ecs.Map4[components.Cell, components.Bounds, components.View, components.Pointer]
	cellFilter *ecs.Filter3[components.Cell, components.Bounds, components.Pointer]
	boundsMap  *ecs.Map1[components.Bounds]
	viewMap    *ecs.Map1[components.View]
	cells      []ecs.Entity
	hosts      []*CellHost

	// Evolution core
	template   genome.Template
	builder    scene.MeshBuilder
	pop        *population.Population
	controller *evolve.Controller
	inbox      *evolve.Inbox

	// Rendering (nil when headless)
	grid    viewport.Grid
	loop    *viewport.Loop
	sched   *frameScheduler
	backend *rlRenderer
	panel   *ui.ParamPanel
	hud     *ui.HUD

	// Telemetry
	perf     *telemetry.PerfCollector
	output   *telemetry.OutputManager
	recorder *telemetry.Recorder

	// State
	hovered                   int
	lastFrame                 viewport.FrameStats
	screenWidth, screenHeight float32
	fatal                     error
}

// NewGame builds the world, population and controller and seeds the first
// generation. In graphical mode the raylib window must already be open.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	world := ecs.NewWorld()

	g := &Game{
		cfg:        cfg,
		opts:       opts,
		logger:     logger,
		rng:        rand.New(rand.NewPCG(uint64(opts.Seed), uint64(opts.Seed)>>1|1)),
		world:      world,
		cellMapper: ecs.NewMap4[components.Cell, components.Bounds, components.View, components.Pointer](world),
		cellFilter: ecs.NewFilter3[components.Cell, components.Bounds, components.Pointer](world),
		boundsMap:  ecs.NewMap1[components.Bounds](world),
		viewMap:    ecs.NewMap1[components.View](world),
		template:   cfg.Derived.Variant.Template(),
		inbox:      evolve.NewInbox(cfg.Grid.PopulationSize),
		perf:       telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		hovered:    -1,
		grid: viewport.Grid{
			Columns:  cfg.Grid.Columns,
			CellSize: cfg.Grid.CellSize,
			Gap:      cfg.Grid.Gap,
			Margin:   cfg.Grid.Margin,
		},
		screenWidth:  float32(cfg.Screen.Width),
		screenHeight: float32(cfg.Screen.Height),
	}

	g.spawnCells()

	style := renderer.NewTreeStyle(cfg.Derived.Bark, cfg.Derived.Leaf, cfg.Render.CylinderSides)
	b := tree.Builder{}
	if !opts.Headless {
		b.Wrap = renderer.Wrapper(style)
	}
	g.builder = b

	hosts := make([]scene.Host, len(g.hosts))
	for i, h := range g.hosts {
		hosts[i] = h
	}
	pop, err := population.New(hosts)
	if err != nil {
		return nil, fmt.Errorf("creating population: %w", err)
	}
	g.pop = pop
	g.controller = evolve.New(pop, g.builder, g.rng,
		evolve.WithMutation(cfg.Derived.Mutation),
		evolve.WithLogger(logger),
	)

	out, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.output = out
	if err := out.WriteConfig(cfg); err != nil {
		logger.Error("failed to write config snapshot", "error", err)
	}
	g.recorder = telemetry.NewRecorder(out, logger)
	g.controller.OnGeneration(g.recorder.Observe)
	g.controller.OnGeneration(g.onGeneration)

	if !opts.Headless {
		g.initGraphics()
	}
	g.layout()

	if err := g.controller.Seed(g.template); err != nil {
		return nil, fmt.Errorf("seeding: %w", err)
	}
	return g, nil
}

// spawnCells creates one entity and host per population slot.
func (g *Game) spawnCells() {
	cc := g.cfg.Camera
	n := g.cfg.Grid.PopulationSize
	g.cells = make([]ecs.Entity, n)
	g.hosts = make([]*CellHost, n)
	for i := 0; i < n; i++ {
		orbit := camera.New(mgl32.Vec3{0, float32(cc.TargetHeight), 0},
			float32(cc.Distance), float32(cc.MinDistance), float32(cc.MaxDistance), float32(cc.FovY))
		orbit.EnableZoom = cc.EnableZoom
		orbit.EnablePan = cc.EnablePan

		cell := components.Cell{Slot: i}
		bounds := components.Bounds{}
		view := components.View{Orbit: *orbit}
		pointer := components.Pointer{}
		e := g.cellMapper.NewEntity(&cell, &bounds, &view, &pointer)

		g.cells[i] = e
		g.hosts[i] = &CellHost{entity: e, bounds: g.boundsMap, view: g.viewMap}
	}
}

// onGeneration reports a rebuilt population.
func (g *Game) onGeneration(ev evolve.Event) {
	logSelection(ev)
	if ev.Selected < 0 {
		g.logger.Info("generation ready", "generation", ev.Generation, "variant", g.cfg.Variant)
	}
}

// Reseed discards the lineage and seeds a fresh population from the variant template.
func (g *Game) Reseed() error {
	if err := g.controller.Seed(g.template); err != nil {
		return fmt.Errorf("reseeding: %w", err)
	}
	return nil
}

// drainSelections applies queued clicks between frames.
func (g *Game) drainSelections() {
	if _, err := g.inbox.Drain(g.controller); err != nil {
		// An index that names no slot means the cell layout and the
		// population disagree; keep running only for mesh build failures.
		g.logger.Error("selection failed", "error", err)
		if isFatal(err) {
			g.fatal = err
		}
	}
}

// Err returns the fatal error that stopped the game, if any.
func (g *Game) Err() error {
	return g.fatal
}

// Generation returns the number of selections made since seeding.
func (g *Game) Generation() int {
	return g.controller.Generation()
}

// Controller exposes the selection controller.
func (g *Game) Controller() *evolve.Controller {
	return g.controller
}

// Unload releases output files.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		g.logger.Error("closing output", "error", err)
	}
}
