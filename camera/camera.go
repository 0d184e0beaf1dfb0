// Package camera provides the orbit camera each grid cell views its tree through.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Pitch limits keep the camera off the poles where the up vector degenerates.
const (
	MinPitch = -1.4
	MaxPitch = 1.4
)

// Orbit circles a target point at a fixed distance.
// Supports yaw/pitch rotation; zoom and pan can be disabled.
type Orbit struct {
	// Target is the point the camera looks at
	Target mgl32.Vec3

	// Yaw around the vertical axis and pitch above the horizon, radians
	Yaw, Pitch float32

	// Distance from target
	Distance float32

	// Distance constraints
	MinDistance, MaxDistance float32

	// Vertical field of view in degrees
	FovY float32

	EnableZoom bool
	EnablePan  bool
}

// New creates an orbit camera looking at target from the front, slightly above.
func New(target mgl32.Vec3, distance, minDistance, maxDistance, fovY float32) *Orbit {
	o := &Orbit{
		Target:      target,
		Pitch:       0.15,
		MinDistance: minDistance,
		MaxDistance: maxDistance,
		FovY:        fovY,
	}
	o.Distance = clamp(distance, minDistance, maxDistance)
	return o
}

// Position returns the camera position in world coordinates.
func (o *Orbit) Position() mgl32.Vec3 {
	cp := float32(math.Cos(float64(o.Pitch)))
	offset := mgl32.Vec3{
		cp * float32(math.Sin(float64(o.Yaw))),
		float32(math.Sin(float64(o.Pitch))),
		cp * float32(math.Cos(float64(o.Yaw))),
	}
	return o.Target.Add(offset.Mul(o.Distance))
}

// View returns the look-at matrix.
func (o *Orbit) View() mgl32.Mat4 {
	p := o.Position()
	return mgl32.LookAtV(p, o.Target, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for the given aspect ratio.
func (o *Orbit) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(o.FovY), aspect, 0.1, 100)
}

// Rotate orbits by the given yaw and pitch deltas in radians.
// Yaw wraps to [0, 2π); pitch is clamped.
func (o *Orbit) Rotate(dYaw, dPitch float32) {
	o.Yaw = wrapAngle(o.Yaw + dYaw)
	o.Pitch = clamp(o.Pitch+dPitch, MinPitch, MaxPitch)
}

// ZoomBy scales the distance by factor. Ignored when zoom is disabled.
func (o *Orbit) ZoomBy(factor float32) {
	if !o.EnableZoom || factor <= 0 {
		return
	}
	o.Distance = clamp(o.Distance*factor, o.MinDistance, o.MaxDistance)
}

// Pan shifts the target in the camera's screen plane. Ignored when pan is disabled.
func (o *Orbit) Pan(dx, dy float32) {
	if !o.EnablePan {
		return
	}
	forward := o.Target.Sub(o.Position()).Normalize()
	right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	upv := right.Cross(forward)
	scale := o.Distance * 0.002
	o.Target = o.Target.Add(right.Mul(-dx * scale)).Add(upv.Mul(dy * scale))
}

// Reset returns to the front view at the given distance.
func (o *Orbit) Reset(distance float32) {
	o.Yaw = 0
	o.Pitch = 0.15
	o.Distance = clamp(distance, o.MinDistance, o.MaxDistance)
}

// wrapAngle maps a to [0, 2π).
func wrapAngle(a float32) float32 {
	r := float32(math.Mod(float64(a), 2*math.Pi))
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
