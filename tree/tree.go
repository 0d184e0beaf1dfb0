// Package tree grows a branch skeleton from a parameter set.
//
// Generation is a pure function of the set: the set's Seed drives a private
// PCG stream, so equal sets always yield identical skeletons.
package tree

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Akodiat/treeCultivator/params"
)

// DefaultMaxBranches bounds the number of branch pieces per tree.
const DefaultMaxBranches = 4096

// MaxLevels is the deepest recursion the generator will follow.
const MaxLevels = 5

var up = mgl32.Vec3{0, 1, 0}

// Branch is one tapered cylinder of the skeleton.
type Branch struct {
	Start, End  mgl32.Vec3
	StartRadius float32
	EndRadius   float32
	Depth       int // 0 for the trunk
}

// Length returns the branch length.
func (b Branch) Length() float32 { return b.End.Sub(b.Start).Len() }

// Twig is a leaf card at a branch tip.
type Twig struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Size      float32
	Shade     float32 // 0..1 variation applied to the leaf color
}

// Skeleton is the generated tree.
type Skeleton struct {
	Branches  []Branch
	Twigs     []Twig
	Sides     int // radial segments per branch
	Min, Max  mgl32.Vec3
	Truncated bool // hit the branch cap
}

// Height returns the vertical extent.
func (s *Skeleton) Height() float32 { return s.Max.Y() - s.Min.Y() }

// Depth returns the deepest branch level present.
func (s *Skeleton) Depth() int {
	d := 0
	for _, b := range s.Branches {
		d = max(d, b.Depth)
	}
	return d
}

// shape is the parameter set unpacked into generator terms.
type shape struct {
	levels        int
	steps         int
	trunkLength   float32
	initialLength float32
	falloff       float32
	falloffPower  float32
	clumpMin      float32
	clumpMax      float32
	branchFactor  float64
	drop          float32
	grow          float32
	sweep         float32
	maxRadius     float32
	climbRate     float32
	kink          float32
	taper         float32
	radiusFalloff float32
	twist         float32
	twigScale     float32
	vMultiplier   float32
}

func shapeOf(p params.Set) shape {
	f := func(k params.Key) float32 { return float32(p.Get(k)) }
	clumpMin, clumpMax := f(params.ClumpMin), f(params.ClumpMax)
	if clumpMin > clumpMax {
		clumpMin, clumpMax = clumpMax, clumpMin
	}
	return shape{
		levels:        min(max(int(math.Round(p.Get(params.Levels))), 0), MaxLevels),
		steps:         max(int(math.Round(p.Get(params.TreeSteps))), 0),
		trunkLength:   f(params.TrunkLength),
		initialLength: f(params.InitialBranchLength),
		falloff:       f(params.LengthFalloffFactor),
		falloffPower:  f(params.LengthFalloffPower),
		clumpMin:      clumpMin,
		clumpMax:      clumpMax,
		branchFactor:  p.Get(params.BranchFactor),
		drop:          f(params.DropAmount),
		grow:          f(params.GrowAmount),
		sweep:         f(params.SweepAmount),
		maxRadius:     f(params.MaxRadius),
		climbRate:     f(params.ClimbRate),
		kink:          f(params.TrunkKink),
		taper:         f(params.TaperRate),
		radiusFalloff: f(params.RadiusFalloffRate),
		twist:         f(params.TwistRate),
		twigScale:     f(params.TwigScale),
		vMultiplier:   f(params.VMultiplier),
	}
}

type grower struct {
	shape
	rng         *rand.Rand
	maxBranches int
	sk          *Skeleton
}

// Generate grows the skeleton for p with at most maxBranches pieces. A
// non-positive maxBranches means DefaultMaxBranches.
func Generate(p params.Set, maxBranches int) *Skeleton {
	if maxBranches <= 0 {
		maxBranches = DefaultMaxBranches
	}
	g := &grower{
		shape:       shapeOf(p),
		rng:         rand.New(rand.NewPCG(uint64(p.Seed), uint64(p.Seed)^0x9e3779b97f4a7c15)),
		maxBranches: maxBranches,
		sk:          &Skeleton{Sides: max(p.Segments, 3)},
	}
	top, dir, radius := g.trunk()
	g.branch(top, dir, g.initialLength, radius, 1)
	g.bounds()
	return g.sk
}

// trunk lays the kinked trunk and returns its tip, heading and tip radius.
func (g *grower) trunk() (mgl32.Vec3, mgl32.Vec3, float32) {
	pieces := g.steps + 1
	step := g.trunkLength / float32(pieces)
	pos := mgl32.Vec3{}
	dir := up
	radius := g.maxRadius
	for i := 0; i < pieces; i++ {
		if i > 0 && g.kink > 0 {
			a := g.rng.Float64() * 2 * math.Pi
			off := mgl32.Vec3{float32(math.Cos(a)), 0, float32(math.Sin(a))}.Mul(g.kink)
			// climbRate pulls the trunk back toward vertical
			dir = dir.Add(off).Add(up.Mul(g.climbRate)).Normalize()
		}
		end := pos.Add(dir.Mul(step))
		next := radius * g.taper
		if !g.add(Branch{Start: pos, End: end, StartRadius: radius, EndRadius: next}) {
			break
		}
		pos, radius = end, next
	}
	return pos, dir, radius
}

// branch grows one branch from pos and recurses into its children.
func (g *grower) branch(pos, dir mgl32.Vec3, length, radius float32, depth int) {
	if depth > g.levels {
		g.twig(pos, dir)
		return
	}
	end := pos.Add(dir.Mul(length))
	endRadius := radius * g.taper
	if !g.add(Branch{Start: pos, End: end, StartRadius: radius, EndRadius: endRadius, Depth: depth}) {
		return
	}

	children := int(g.branchFactor)
	if g.rng.Float64() < g.branchFactor-math.Floor(g.branchFactor) {
		children++
	}
	side := perpendicular(dir)
	childLength := length * float32(math.Pow(float64(g.falloff), float64(g.falloffPower)))
	childRadius := endRadius * g.radiusFalloff
	twist := g.twist * float32(depth)

	for c := 0; c < children; c++ {
		angle := twist + 2*math.Pi*float32(c)/float32(children)
		spread := mgl32.QuatRotate(angle, dir).Rotate(side)
		clump := g.clumpMin + float32(g.rng.Float64())*(g.clumpMax-g.clumpMin)
		child := dir.Mul(clump).Add(spread.Mul(1 - clump))

		// drop bends children down with depth, grow lifts them, sweep pushes sideways
		child = child.Add(mgl32.Vec3{g.sweep * 0.1, g.grow*0.1 - g.drop*0.1*float32(depth), 0})
		if child.Len() < 1e-6 {
			child = dir
		}
		g.branch(end, child.Normalize(), childLength, childRadius, depth+1)
	}
}

func (g *grower) twig(pos, dir mgl32.Vec3) {
	if g.twigScale <= 0 {
		return
	}
	shade := float32(math.Mod(g.rng.Float64()*float64(g.vMultiplier)*4, 1))
	g.sk.Twigs = append(g.sk.Twigs, Twig{
		Position:  pos,
		Direction: dir,
		Size:      g.twigScale * 0.5,
		Shade:     shade,
	})
}

func (g *grower) add(b Branch) bool {
	if len(g.sk.Branches) >= g.maxBranches {
		g.sk.Truncated = true
		return false
	}
	g.sk.Branches = append(g.sk.Branches, b)
	return true
}

func (g *grower) bounds() {
	sk := g.sk
	if len(sk.Branches) == 0 {
		return
	}
	lo, hi := sk.Branches[0].Start, sk.Branches[0].Start
	grow := func(p mgl32.Vec3) {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	for _, b := range sk.Branches {
		grow(b.Start)
		grow(b.End)
	}
	for _, t := range sk.Twigs {
		grow(t.Position)
	}
	sk.Min, sk.Max = lo, hi
}

// perpendicular returns a unit vector orthogonal to dir.
func perpendicular(dir mgl32.Vec3) mgl32.Vec3 {
	ref := mgl32.Vec3{1, 0, 0}
	if math.Abs(float64(dir.Dot(ref))) > 0.9 {
		ref = mgl32.Vec3{0, 0, 1}
	}
	return dir.Cross(ref).Normalize()
}
