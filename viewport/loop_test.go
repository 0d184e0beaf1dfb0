package viewport

import (
	"fmt"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/Akodiat/treeCultivator/genome"
	"github.com/Akodiat/treeCultivator/params"
	"github.com/Akodiat/treeCultivator/population"
	"github.com/Akodiat/treeCultivator/scene"
)

type spyMesh struct {
	rotation float64
}

func (m *spyMesh) SetRotationY(r float64) { m.rotation = r }

type spyHost struct {
	rect scene.Rect
	mesh scene.Mesh
}

func (h *spyHost) Attach(m scene.Mesh) { h.mesh = m }
func (h *spyHost) Detach(scene.Mesh)   { h.mesh = nil }
func (h *spyHost) Rect() scene.Rect    { return h.rect }

// spyRenderer records every call as a string so tests can check order.
type spyRenderer struct {
	canvas   Canvas
	calls    []string
	rendered []scene.Host
	regions  []Region
}

func (s *spyRenderer) Canvas() Canvas { return s.canvas }
func (s *spyRenderer) SetClearColor(c color.RGBA) {
	s.calls = append(s.calls, fmt.Sprintf("color %02x", c.R))
}
func (s *spyRenderer) SetScissorTest(on bool) {
	s.calls = append(s.calls, fmt.Sprintf("scissor %v", on))
}
func (s *spyRenderer) Clear() { s.calls = append(s.calls, "clear") }
func (s *spyRenderer) SetViewport(r Region) {
	s.calls = append(s.calls, "viewport")
	s.regions = append(s.regions, r)
}
func (s *spyRenderer) SetScissor(Region) { s.calls = append(s.calls, "scissorRect") }
func (s *spyRenderer) Render(h scene.Host) {
	s.calls = append(s.calls, "render")
	s.rendered = append(s.rendered, h)
}

type queueScheduler struct {
	pending []func(time.Time)
}

func (q *queueScheduler) RequestFrame(fn func(time.Time)) {
	q.pending = append(q.pending, fn)
}

func (q *queueScheduler) runNext(now time.Time) bool {
	if len(q.pending) == 0 {
		return false
	}
	fn := q.pending[0]
	q.pending = q.pending[1:]
	fn(now)
	return true
}

func newPopulation(t *testing.T, rects []scene.Rect) (*population.Population, []*spyHost) {
	t.Helper()
	hosts := make([]scene.Host, len(rects))
	spies := make([]*spyHost, len(rects))
	for i, r := range rects {
		spies[i] = &spyHost{rect: r}
		hosts[i] = spies[i]
	}
	pop, err := population.New(hosts)
	if err != nil {
		t.Fatalf("population.New: %v", err)
	}
	builder := scene.MeshBuilderFunc(func(params.Set) (scene.Mesh, error) { return &spyMesh{}, nil })
	genomes := make([]*genome.Genome, len(rects))
	for i := range genomes {
		genomes[i] = genome.FromSet(params.Set{})
	}
	if err := pop.ReplaceAll(genomes, builder); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	return pop, spies
}

func TestCulled(t *testing.T) {
	canvas := Canvas{Width: 800, Height: 600, PixelRatio: 1}
	tests := []struct {
		name string
		rect scene.Rect
		want bool
	}{
		{"inside", scene.Rect{Left: 10, Top: 10, Right: 110, Bottom: 110}, false},
		{"above", scene.Rect{Left: 10, Top: -200, Right: 110, Bottom: -1}, true},
		{"below", scene.Rect{Left: 10, Top: 601, Right: 110, Bottom: 700}, true},
		{"left", scene.Rect{Left: -200, Top: 10, Right: -1, Bottom: 110}, true},
		{"right", scene.Rect{Left: 801, Top: 10, Right: 900, Bottom: 110}, true},
		{"straddling top", scene.Rect{Left: 10, Top: -50, Right: 110, Bottom: 50}, false},
		{"touching bottom edge", scene.Rect{Left: 10, Top: 600, Right: 110, Bottom: 700}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Culled(tt.rect, canvas); got != tt.want {
				t.Errorf("Culled(%+v) = %v, want %v", tt.rect, got, tt.want)
			}
		})
	}
}

func TestDeviceRegionFlipsAndScales(t *testing.T) {
	rect := scene.Rect{Left: 20, Top: 40, Right: 220, Bottom: 240}

	got := DeviceRegion(rect, Canvas{Width: 800, Height: 600, PixelRatio: 1})
	want := Region{X: 20, Y: 360, Width: 200, Height: 200}
	if got != want {
		t.Errorf("ratio 1: got %+v, want %+v", got, want)
	}

	got = DeviceRegion(rect, Canvas{Width: 800, Height: 600, PixelRatio: 2})
	want = Region{X: 40, Y: 720, Width: 400, Height: 400}
	if got != want {
		t.Errorf("ratio 2: got %+v, want %+v", got, want)
	}

	// Zero ratio falls back to 1
	got = DeviceRegion(rect, Canvas{Width: 800, Height: 600})
	if got.X != 20 || got.Width != 200 {
		t.Errorf("ratio 0: got %+v", got)
	}
}

func TestRenderCallOrder(t *testing.T) {
	pop, _ := newPopulation(t, []scene.Rect{
		{Left: 0, Top: 0, Right: 100, Bottom: 100},
		{Left: 110, Top: 0, Right: 210, Bottom: 100},
	})
	spy := &spyRenderer{canvas: Canvas{Width: 400, Height: 300, PixelRatio: 1}}
	loop := NewLoop(pop, spy, &queueScheduler{}, DefaultOptions())

	loop.Render(time.Unix(0, 0))

	want := []string{
		"color ff", "scissor false", "clear",
		"color e0", "scissor true",
		"viewport", "scissorRect", "render",
		"viewport", "scissorRect", "render",
	}
	if len(spy.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", spy.calls, want)
	}
	for i := range want {
		if spy.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, spy.calls[i], want[i])
		}
	}
}

func TestRenderSkipsOffscreenHosts(t *testing.T) {
	rects := []scene.Rect{
		{Left: 0, Top: 0, Right: 100, Bottom: 100},       // visible
		{Left: 0, Top: -300, Right: 100, Bottom: -200},   // above
		{Left: 0, Top: 150, Right: 100, Bottom: 250},     // visible
		{Left: 1000, Top: 0, Right: 1100, Bottom: 100},   // right of canvas
		{Left: -500, Top: 150, Right: -400, Bottom: 250}, // left of canvas
	}
	pop, spies := newPopulation(t, rects)
	spy := &spyRenderer{canvas: Canvas{Width: 400, Height: 300, PixelRatio: 1}}
	loop := NewLoop(pop, spy, &queueScheduler{}, DefaultOptions())

	stats := loop.Render(time.Unix(0, 0))

	if stats.Drawn != 2 || stats.Culled != 3 {
		t.Errorf("stats = %+v, want 2 drawn / 3 culled", stats)
	}
	if len(spy.rendered) != 2 {
		t.Fatalf("render called %d times, want 2", len(spy.rendered))
	}
	if spy.rendered[0] != spies[0] || spy.rendered[1] != spies[2] {
		t.Error("wrong hosts rendered or out of population order")
	}
	for _, culled := range []int{1, 3, 4} {
		for _, h := range spy.rendered {
			if h == spies[culled] {
				t.Errorf("culled host %d was drawn", culled)
			}
		}
	}
}

func TestRenderAppliesRotation(t *testing.T) {
	pop, _ := newPopulation(t, []scene.Rect{{Left: 0, Top: 0, Right: 50, Bottom: 50}})
	spy := &spyRenderer{canvas: Canvas{Width: 100, Height: 100, PixelRatio: 1}}
	loop := NewLoop(pop, spy, &queueScheduler{}, DefaultOptions())

	start := time.Unix(100, 0)
	loop.Start(start)
	loop.Render(start.Add(2 * time.Second))

	mesh := pop.Slot(0).Mesh.(*spyMesh)
	if math.Abs(mesh.rotation-1.0) > 1e-9 {
		t.Errorf("rotation after 2000ms = %v, want 1.0", mesh.rotation)
	}

	// Large elapsed times wrap into [0, 2π)
	a := loop.Rotation(start.Add(time.Hour))
	if a < 0 || a >= 2*math.Pi {
		t.Errorf("rotation %v not wrapped", a)
	}
}

func TestLoopReschedulesForever(t *testing.T) {
	pop, _ := newPopulation(t, []scene.Rect{{Left: 0, Top: 0, Right: 50, Bottom: 50}})
	spy := &spyRenderer{canvas: Canvas{Width: 100, Height: 100, PixelRatio: 1}}
	sched := &queueScheduler{}
	loop := NewLoop(pop, spy, sched, DefaultOptions())

	var seen []FrameStats
	loop.OnFrame(func(s FrameStats) { seen = append(seen, s) })

	if loop.State() != Idle {
		t.Fatalf("initial state = %v, want idle", loop.State())
	}
	now := time.Unix(0, 0)
	loop.Start(now)
	loop.Start(now) // no-op
	if loop.State() != Running {
		t.Fatalf("state after Start = %v, want running", loop.State())
	}
	if len(sched.pending) != 1 {
		t.Fatalf("pending frames = %d, want 1", len(sched.pending))
	}

	for i := 0; i < 10; i++ {
		now = now.Add(16 * time.Millisecond)
		if !sched.runNext(now) {
			t.Fatalf("frame %d was not scheduled", i)
		}
	}
	if loop.Frames() != 10 || len(seen) != 10 {
		t.Errorf("frames = %d, callbacks = %d, want 10", loop.Frames(), len(seen))
	}
	if len(sched.pending) != 1 {
		t.Errorf("loop should always have exactly one pending frame, got %d", len(sched.pending))
	}
	if loop.LastFrame().Drawn != 1 {
		t.Errorf("last frame drew %d", loop.LastFrame().Drawn)
	}
}

func TestLoopSeesReplacedPopulation(t *testing.T) {
	pop, spies := newPopulation(t, []scene.Rect{{Left: 0, Top: 0, Right: 50, Bottom: 50}})
	spy := &spyRenderer{canvas: Canvas{Width: 100, Height: 100, PixelRatio: 1}}
	loop := NewLoop(pop, spy, &queueScheduler{}, DefaultOptions())

	replacement := &spyMesh{}
	builder := scene.MeshBuilderFunc(func(params.Set) (scene.Mesh, error) { return replacement, nil })
	if err := pop.ReplaceAll([]*genome.Genome{genome.FromSet(params.Set{})}, builder); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	loop.Start(time.Unix(0, 0))
	loop.Render(time.Unix(10, 0))
	if spies[0].mesh != replacement {
		t.Error("host does not hold the replacement mesh")
	}
	if replacement.rotation == 0 {
		t.Error("replacement mesh was not animated")
	}
}

func TestGridLayout(t *testing.T) {
	g := Grid{Columns: 3, CellSize: 100, Gap: 10, Margin: 5}

	r := g.Rect(4) // row 1, col 1
	want := scene.Rect{Left: 115, Top: 115, Right: 215, Bottom: 215}
	if r != want {
		t.Errorf("Rect(4) = %+v, want %+v", r, want)
	}

	if h := g.ContentHeight(9); h != 330 {
		t.Errorf("ContentHeight(9) = %v, want 330", h)
	}

	if i := g.Hit(120, 120, 9); i != 4 {
		t.Errorf("Hit in cell 4 = %d", i)
	}
	if i := g.Hit(108, 50, 9); i != -1 {
		t.Errorf("Hit in gap = %d, want -1", i)
	}
}

func TestGridScrollClamps(t *testing.T) {
	g := Grid{Columns: 3, CellSize: 100, Gap: 10, Margin: 5}

	g.Scroll(1000, 9, 200)
	if g.ScrollY != 130 {
		t.Errorf("ScrollY = %v, want 130", g.ScrollY)
	}
	if top := g.Rect(0).Top; top != -125 {
		t.Errorf("Rect(0).Top = %v, want -125", top)
	}

	g.Scroll(-5000, 9, 200)
	if g.ScrollY != 0 {
		t.Errorf("ScrollY = %v, want 0", g.ScrollY)
	}

	// Content shorter than the view never scrolls
	g.Scroll(50, 9, 1000)
	if g.ScrollY != 0 {
		t.Errorf("ScrollY = %v, want 0", g.ScrollY)
	}
}
