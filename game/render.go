package game

import (
	"image/color"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/Akodiat/treeCultivator/renderer"
	"github.com/Akodiat/treeCultivator/scene"
	"github.com/Akodiat/treeCultivator/telemetry"
	"github.com/Akodiat/treeCultivator/ui"
	"github.com/Akodiat/treeCultivator/viewport"
)

// frameScheduler holds the callback requested for the next frame. The
// window loop runs it once per Draw.
type frameScheduler struct {
	pending func(time.Time)
}

func (s *frameScheduler) RequestFrame(fn func(now time.Time)) {
	s.pending = fn
}

// run invokes the pending callback, which normally requests the next one.
func (s *frameScheduler) run(now time.Time) bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn(now)
	return true
}

// rlRenderer draws every cell through rlgl on the window's framebuffer.
// Regions use the bottom-left origin GL expects.
type rlRenderer struct {
	clear  color.RGBA
	ground rl.Color
}

func (r *rlRenderer) Canvas() viewport.Canvas {
	w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	pr := 1.0
	if w > 0 {
		pr = float64(rl.GetRenderWidth()) / w
	}
	return viewport.Canvas{Width: w, Height: h, PixelRatio: pr}
}

func (r *rlRenderer) SetClearColor(c color.RGBA) {
	r.clear = c
}

func (r *rlRenderer) SetScissorTest(enabled bool) {
	rl.DrawRenderBatchActive()
	if enabled {
		rl.EnableScissorTest()
	} else {
		rl.DisableScissorTest()
	}
}

func (r *rlRenderer) Clear() {
	rl.ClearColor(r.clear.R, r.clear.G, r.clear.B, r.clear.A)
	rl.ClearScreenBuffers()
}

func (r *rlRenderer) SetViewport(reg viewport.Region) {
	rl.DrawRenderBatchActive()
	rl.Viewport(reg.X, reg.Y, reg.Width, reg.Height)
}

func (r *rlRenderer) SetScissor(reg viewport.Region) {
	rl.DrawRenderBatchActive()
	rl.Scissor(reg.X, reg.Y, reg.Width, reg.Height)
}

// Render clears the scissored cell and draws its tree through the cell camera.
func (r *rlRenderer) Render(host scene.Host) {
	r.Clear()

	h, ok := host.(*CellHost)
	if !ok {
		return
	}
	t, ok := h.Tree()
	if !ok {
		return
	}

	rect := h.Rect()
	orbit := h.Orbit()
	proj := orbit.Projection(float32(rect.Width() / rect.Height()))
	view := orbit.View()

	rl.MatrixMode(rl.Projection)
	rl.PushMatrix()
	rl.LoadIdentity()
	rl.MultMatrix(renderer.Matrix(proj))

	rl.MatrixMode(rl.Modelview)
	rl.PushMatrix()
	rl.LoadIdentity()
	rl.MultMatrix(renderer.Matrix(view))
	rl.EnableDepthTest()

	renderer.DrawGround(1.2, r.ground)
	t.Draw()

	rl.DrawRenderBatchActive()
	rl.DisableDepthTest()
	rl.PopMatrix()
	rl.MatrixMode(rl.Projection)
	rl.PopMatrix()
	rl.MatrixMode(rl.Modelview)
}

// restore returns to full-window 2D drawing after the scenes.
func (r *rlRenderer) restore() {
	rl.DrawRenderBatchActive()
	rl.DisableScissorTest()
	rl.Viewport(0, 0, int32(rl.GetRenderWidth()), int32(rl.GetRenderHeight()))
}

// initGraphics creates the render loop and UI once the window is open.
func (g *Game) initGraphics() {
	d := g.cfg.Derived
	g.backend = &rlRenderer{ground: rl.NewColor(200, 200, 200, 255)}
	g.sched = &frameScheduler{}
	g.loop = viewport.NewLoop(g.pop, g.backend, g.sched, viewport.Options{
		Background:    d.Background,
		Cell:          d.Cell,
		RotationSpeed: g.cfg.Render.RotationSpeed,
	})
	g.loop.OnFrame(func(s viewport.FrameStats) { g.lastFrame = s })
	g.panel = ui.NewParamPanel()
	g.hud = ui.NewHUD()
	g.screenWidth = float32(rl.GetScreenWidth())
	g.screenHeight = float32(rl.GetScreenHeight())
	g.loop.Start(time.Now())
}

// Update handles input and applies queued selections between frames.
func (g *Game) Update() {
	g.perf.StartFrame()
	g.perf.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	g.perf.StartPhase(telemetry.PhaseEvolve)
	g.drainSelections()
}

// Draw renders all cells, then the panel and HUD.
func (g *Game) Draw() {
	rl.BeginDrawing()

	g.perf.StartPhase(telemetry.PhaseScenes)
	g.sched.run(time.Now())
	g.backend.restore()

	g.perf.StartPhase(telemetry.PhaseUI)
	g.drawUI()

	rl.EndDrawing()

	g.perf.EndFrame(g.lastFrame.Drawn, g.lastFrame.Culled)
	g.flushPerf()
}

func (g *Game) drawUI() {
	sw, sh := int32(g.screenWidth), int32(g.screenHeight)
	pw := int32(g.cfg.Grid.PanelWidth)

	data := ui.ParamPanelData{
		Generation: g.controller.Generation(),
		Variant:    g.cfg.Variant,
		Hovered:    g.hovered,
	}
	data.Winner, data.HasWinner = g.controller.Winner()
	if g.hovered >= 0 {
		if gen := g.pop.Genome(g.hovered); gen != nil {
			data.HoveredSet = gen.Params()
		}
	}
	action := g.panel.Draw(sw-pw, 0, pw, sh, data)
	if action.Reseed {
		if err := g.Reseed(); err != nil {
			g.logger.Error("reseed failed", "error", err)
		}
	}

	g.hud.Draw(ui.HUDData{
		Title:        g.cfg.Screen.Title,
		Generation:   g.controller.Generation(),
		Population:   g.pop.Size(),
		Drawn:        g.lastFrame.Drawn,
		Culled:       g.lastFrame.Culled,
		FPS:          rl.GetFPS(),
		ScreenWidth:  sw,
		ScreenHeight: sh,
	})
	g.hud.DrawControls(sw, sh, "Click: breed  Right-drag: orbit  Wheel: scroll  R: reseed  F11: fullscreen")
}
