// Package viewport renders every population slot into its own region of a
// single shared canvas, once per frame, forever.
package viewport

import (
	"image/color"
	"math"
	"time"

	"github.com/Akodiat/treeCultivator/population"
	"github.com/Akodiat/treeCultivator/scene"
)

// State of the render loop.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Renderer is the drawing backend shared by all scenes.
type Renderer interface {
	Canvas() Canvas
	SetClearColor(c color.RGBA)
	SetScissorTest(enabled bool)
	Clear()
	SetViewport(r Region)
	SetScissor(r Region)
	// Render clears the scissor region with the current clear color and
	// draws host's scene through its camera.
	Render(host scene.Host)
}

// Scheduler runs a callback on the next frame.
type Scheduler interface {
	RequestFrame(fn func(now time.Time))
}

// Options control colors and animation speed.
type Options struct {
	Background color.RGBA
	Cell       color.RGBA
	// RotationSpeed is the mesh spin in radians per elapsed millisecond.
	RotationSpeed float64
}

// DefaultOptions returns white background, light grey cells and a spin of
// 0.0005 rad/ms.
func DefaultOptions() Options {
	return Options{
		Background:    color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Cell:          color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
		RotationSpeed: 0.0005,
	}
}

// FrameStats reports what a frame did.
type FrameStats struct {
	Drawn  int
	Culled int
}

// Loop is the per-frame render driver.
type Loop struct {
	pop   *population.Population
	r     Renderer
	sched Scheduler
	opts  Options

	state   State
	started time.Time
	frames  uint64
	last    FrameStats
	onFrame func(FrameStats)
}

// NewLoop creates an idle loop.
func NewLoop(pop *population.Population, r Renderer, sched Scheduler, opts Options) *Loop {
	return &Loop{pop: pop, r: r, sched: sched, opts: opts}
}

// OnFrame registers a callback invoked after every scheduled frame.
func (l *Loop) OnFrame(fn func(FrameStats)) {
	l.onFrame = fn
}

// State returns the current loop state.
func (l *Loop) State() State { return l.state }

// Frames returns the number of frames rendered.
func (l *Loop) Frames() uint64 { return l.frames }

// LastFrame returns the stats of the most recent frame.
func (l *Loop) LastFrame() FrameStats { return l.last }

// Start moves the loop to Running and schedules the first frame. Further
// calls do nothing.
func (l *Loop) Start(now time.Time) {
	if l.state == Running {
		return
	}
	l.state = Running
	l.started = now
	l.sched.RequestFrame(l.tick)
}

func (l *Loop) tick(now time.Time) {
	stats := l.Render(now)
	if l.onFrame != nil {
		l.onFrame(stats)
	}
	l.sched.RequestFrame(l.tick)
}

// Render draws one frame: a full clear with the background color, then
// each visible slot into its own scissored viewport.
func (l *Loop) Render(now time.Time) FrameStats {
	r := l.r
	canvas := r.Canvas()

	r.SetClearColor(l.opts.Background)
	r.SetScissorTest(false)
	r.Clear()

	r.SetClearColor(l.opts.Cell)
	r.SetScissorTest(true)

	angle := l.Rotation(now)
	var stats FrameStats
	l.pop.Each(func(i int, s population.Slot) {
		rect := s.Host.Rect()
		if Culled(rect, canvas) {
			stats.Culled++
			return
		}
		region := DeviceRegion(rect, canvas)
		r.SetViewport(region)
		r.SetScissor(region)

		if s.Mesh != nil {
			s.Mesh.SetRotationY(angle)
		}
		r.Render(s.Host)
		stats.Drawn++
	})

	l.frames++
	l.last = stats
	return stats
}

// Rotation returns the Y rotation for now, wrapped to [0, 2π).
func (l *Loop) Rotation(now time.Time) float64 {
	elapsed := float64(now.Sub(l.started)) / float64(time.Millisecond)
	a := math.Mod(elapsed*l.opts.RotationSpeed, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
