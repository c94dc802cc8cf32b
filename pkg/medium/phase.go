package medium

import (
	"math"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
)

// PhaseFunction is the directional scattering distribution of a medium.
// wo points back along the incoming ray, wi towards the next vertex.
type PhaseFunction interface {
	Sample(wo core.Vec3, sampler core.Sampler) core.Vec3
	PDF(wi, wo core.Vec3) float64
	Eval(wi, wo core.Vec3) float64

	sealed()
}

// maxAsymmetry keeps g away from the degenerate delta lobes at ±1
const maxAsymmetry = 0.999

// isotropicEpsilon is the |g| below which sampling falls back to the uniform sphere
const isotropicEpsilon = 1e-3

// HenyeyGreenstein is the one-parameter phase function; positive G scatters forward
type HenyeyGreenstein struct {
	G float64
}

// NewHenyeyGreenstein creates a Henyey-Greenstein phase function with g clamped to (-1, 1)
func NewHenyeyGreenstein(g float64) *HenyeyGreenstein {
	return &HenyeyGreenstein{G: math.Max(-maxAsymmetry, math.Min(maxAsymmetry, g))}
}

// Sample draws wi by inverting the CDF over the scattering angle, measured
// from the propagation direction -wo
func (hg *HenyeyGreenstein) Sample(wo core.Vec3, sampler core.Sampler) core.Vec3 {
	u := sampler.Get2D()
	g := hg.G

	var cosTheta float64
	if math.Abs(g) < isotropicEpsilon {
		cosTheta = 1 - 2*u.X
	} else {
		sqr := (1 - g*g) / (1 - g + 2*g*u.X)
		cosTheta = (1 + g*g - sqr*sqr) / (2 * g)
	}
	cosTheta = math.Max(-1, math.Min(1, cosTheta))
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u.Y

	forward := wo.Negate()
	x, y := core.CoordinateSystem(forward)
	return x.Multiply(sinTheta * math.Cos(phi)).
		Add(y.Multiply(sinTheta * math.Sin(phi))).
		Add(forward.Multiply(cosTheta)).
		Normalize()
}

// PDF equals Eval: the phase function is normalized over the sphere
func (hg *HenyeyGreenstein) PDF(wi, wo core.Vec3) float64 {
	return hg.Eval(wi, wo)
}

// Eval returns (1-g²) / (4π (1+g²+2g·(wi·wo))^{3/2})
func (hg *HenyeyGreenstein) Eval(wi, wo core.Vec3) float64 {
	g := hg.G
	denom := 1 + g*g + 2*g*wi.Dot(wo)
	if denom <= 0 {
		return 0
	}
	return (1 - g*g) / (4 * math.Pi * denom * math.Sqrt(denom))
}

func (hg *HenyeyGreenstein) sealed() {}
