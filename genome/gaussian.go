package genome

import "math"

// Uniform is a source of uniform variates in [0, 1). *rand.Rand from
// math/rand/v2 satisfies it.
type Uniform interface {
	Float64() float64
}

// Gaussian describes a normal distribution sampled with the Box-Muller
// transform.
type Gaussian struct {
	Mean   float64
	StdDev float64
}

// DefaultMutation is the perturbation applied by Mutate.
var DefaultMutation = Gaussian{Mean: 0, StdDev: 0.02}

// Sample draws one value. u is taken as 1-Float64() so it lies in (0, 1]
// and the logarithm stays finite.
func (g Gaussian) Sample(rng Uniform) float64 {
	u := 1 - rng.Float64()
	v := rng.Float64()
	return BoxMuller(u, v)*g.StdDev + g.Mean
}

// BoxMuller maps two uniform variates to a standard normal variate.
func BoxMuller(u, v float64) float64 {
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}
