package material

import (
	"math"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
)

// Transparent is a smooth dielectric that reflects with the Fresnel
// probability and refracts otherwise. The normal passed to it must be the
// outward geometric normal so the entering side can be told apart.
type Transparent struct {
	Surface
	IOR float64
}

// NewTransparent creates a transparent dielectric
func NewTransparent(tint core.Vec3, ior float64) *Transparent {
	return &Transparent{Surface: Surface{Albedo: tint}, IOR: ior}
}

// Sample chooses reflection with probability kr, refraction otherwise
func (t *Transparent) Sample(wo, n core.Vec3, sampler core.Sampler) core.Vec3 {
	incident := wo.Negate()
	kr := Fresnel(incident, n, t.IOR)
	if sampler.Get1D() < kr {
		return Reflect(wo, n)
	}
	return Refract(incident, n, t.IOR)
}

// PDF returns kr for the reflected direction, 1-kr for the refracted one
// and 0 for anything else
func (t *Transparent) PDF(wi, wo, n core.Vec3) float64 {
	incident := wo.Negate()
	kr := Fresnel(incident, n, t.IOR)
	if wi.Subtract(Reflect(wo, n)).Length() < pdfEpsilon {
		return kr
	}
	if refracted := Refract(incident, n, t.IOR); !refracted.IsZero() &&
		wi.Subtract(refracted).Length() < pdfEpsilon {
		return 1 - kr
	}
	return 0
}

// Eval returns tint·PDF/|cosθi| so that a sampled direction carries the tint
func (t *Transparent) Eval(wi, wo, n core.Vec3, uv core.Vec2) core.Vec3 {
	cosI := math.Abs(wi.Dot(n))
	if cosI < pdfEpsilon {
		return core.Vec3{}
	}
	return t.ColorAt(uv).Multiply(t.PDF(wi, wo, n) / cosI)
}

// Type returns TypeTransparent
func (t *Transparent) Type() Type { return TypeTransparent }

// IsSpecular returns true
func (t *Transparent) IsSpecular() bool { return true }

func (t *Transparent) sealed() {}
