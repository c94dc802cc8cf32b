package material

import (
	"math"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
)

// Mirror is an ideal specular reflector tinted by a Schlick Fresnel term
// whose normal-incidence color is the albedo
type Mirror struct {
	Surface
}

// NewMirror creates a mirror with the given normal-incidence reflectance
func NewMirror(albedo core.Vec3) *Mirror {
	return &Mirror{Surface: Surface{Albedo: albedo}}
}

// Sample returns the mirror direction of wo; it consumes no randomness
func (m *Mirror) Sample(wo, n core.Vec3, sampler core.Sampler) core.Vec3 {
	return Reflect(wo, n)
}

// PDF returns the sentinel 1 for the exact mirror direction and 0 otherwise
func (m *Mirror) PDF(wi, wo, n core.Vec3) float64 {
	if !m.isMirrorPair(wi, wo, n) {
		return 0
	}
	return 1
}

// Eval returns the Schlick tint divided by cos(θi) for the mirror direction,
// so that Eval·cos/PDF equals the Fresnel reflectance
func (m *Mirror) Eval(wi, wo, n core.Vec3, uv core.Vec2) core.Vec3 {
	if !m.isMirrorPair(wi, wo, n) {
		return core.Vec3{}
	}
	cosI := wi.Dot(n)
	return schlick(m.ColorAt(uv), math.Abs(wo.Dot(n))).Multiply(1 / cosI)
}

func (m *Mirror) isMirrorPair(wi, wo, n core.Vec3) bool {
	if wi.Dot(n) <= 0 || wo.Dot(n) <= 0 {
		return false
	}
	return wi.Subtract(Reflect(wo, n)).Length() < pdfEpsilon
}

// Type returns TypeMirror
func (m *Mirror) Type() Type { return TypeMirror }

// IsSpecular returns true
func (m *Mirror) IsSpecular() bool { return true }

func (m *Mirror) sealed() {}
