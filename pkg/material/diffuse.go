package material

import (
	"math"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
)

// Diffuse is a Lambertian reflector
type Diffuse struct {
	Surface
}

// NewDiffuse creates a diffuse material with a constant albedo
func NewDiffuse(albedo core.Vec3) *Diffuse {
	return &Diffuse{Surface: Surface{Albedo: albedo}}
}

// NewDiffuseLight creates a diffuse material that also emits radiance
func NewDiffuseLight(albedo, emission core.Vec3) *Diffuse {
	return &Diffuse{Surface: Surface{Albedo: albedo, Emit: emission}}
}

// Sample draws a cosine-weighted direction in the hemisphere around n
func (d *Diffuse) Sample(wo, n core.Vec3, sampler core.Sampler) core.Vec3 {
	return core.SampleCosineHemisphere(n, sampler.Get2D())
}

// PDF returns cos(θ)/π above the surface and 0 below it
func (d *Diffuse) PDF(wi, wo, n core.Vec3) float64 {
	cosTheta := wi.Dot(n)
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}

// Eval returns albedo/π above the surface
func (d *Diffuse) Eval(wi, wo, n core.Vec3, uv core.Vec2) core.Vec3 {
	if wi.Dot(n) <= 0 {
		return core.Vec3{}
	}
	return d.ColorAt(uv).Multiply(1 / math.Pi)
}

// Type returns TypeDiffuse
func (d *Diffuse) Type() Type { return TypeDiffuse }

// IsSpecular returns false
func (d *Diffuse) IsSpecular() bool { return false }

func (d *Diffuse) sealed() {}
