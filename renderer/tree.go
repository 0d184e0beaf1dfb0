// Package renderer draws generated trees with raylib.
package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Akodiat/treeCultivator/scene"
	"github.com/Akodiat/treeCultivator/tree"
)

// TreeStyle holds the colors and tessellation used for every tree.
type TreeStyle struct {
	Bark  rl.Color
	Leaf  rl.Color
	Sides int32 // minimum radial sides per branch
}

// NewTreeStyle converts config colors into a style.
func NewTreeStyle(bark, leaf color.RGBA, sides int) TreeStyle {
	return TreeStyle{
		Bark:  rl.NewColor(bark.R, bark.G, bark.B, bark.A),
		Leaf:  rl.NewColor(leaf.R, leaf.G, leaf.B, leaf.A),
		Sides: int32(sides),
	}
}

// TreeModel is a skeleton ready to draw. It satisfies scene.Mesh.
type TreeModel struct {
	Skeleton  *tree.Skeleton
	rotationY float64
	leaves    []rl.Color
	style     TreeStyle
}

// NewTreeModel precomputes per-twig colors for sk.
func NewTreeModel(sk *tree.Skeleton, style TreeStyle) *TreeModel {
	m := &TreeModel{Skeleton: sk, style: style, leaves: make([]rl.Color, len(sk.Twigs))}
	for i, t := range sk.Twigs {
		m.leaves[i] = shade(style.Leaf, t.Shade)
	}
	return m
}

// Wrapper returns a tree.Builder wrap function producing TreeModels.
func Wrapper(style TreeStyle) func(*tree.Skeleton) scene.Mesh {
	return func(sk *tree.Skeleton) scene.Mesh { return NewTreeModel(sk, style) }
}

// SetRotationY sets the spin about the vertical axis, in radians.
func (m *TreeModel) SetRotationY(rad float64) { m.rotationY = rad }

// Center returns the midpoint of the skeleton bounds, for camera targeting.
func (m *TreeModel) Center() mgl32.Vec3 {
	return m.Skeleton.Min.Add(m.Skeleton.Max).Mul(0.5)
}

// Draw renders the tree inside the current 3D mode.
func (m *TreeModel) Draw() {
	sides := max(int32(m.Skeleton.Sides), m.style.Sides)

	rl.PushMatrix()
	rl.Rotatef(float32(m.rotationY*180/math.Pi), 0, 1, 0)

	for _, b := range m.Skeleton.Branches {
		rl.DrawCylinderEx(vec(b.Start), vec(b.End), b.StartRadius, b.EndRadius, sides, m.style.Bark)
	}
	for i, t := range m.Skeleton.Twigs {
		tip := t.Position.Add(t.Direction.Mul(t.Size))
		rl.DrawCylinderEx(vec(t.Position), vec(tip), t.Size*0.5, 0, 4, m.leaves[i])
	}

	rl.PopMatrix()
}

// DrawGround draws a small disc under the trunk.
func DrawGround(radius float32, c rl.Color) {
	rl.DrawCylinder(rl.NewVector3(0, -0.02, 0), radius, radius, 0.02, 24, c)
}

func vec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

// shade darkens c by up to 40% according to s in [0, 1].
func shade(c rl.Color, s float32) rl.Color {
	f := 1 - 0.4*s
	return rl.NewColor(uint8(float32(c.R)*f), uint8(float32(c.G)*f), uint8(float32(c.B)*f), c.A)
}

// Matrix converts a column-major mgl32 matrix to a raylib matrix.
func Matrix(m mgl32.Mat4) rl.Matrix {
	return rl.NewMatrix(
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	)
}
