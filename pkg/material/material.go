// Package material implements the closed set of surface scattering models
// used by the integrators. Every direction crossing these contracts points
// away from the interaction point: wo towards the viewer, wi towards the
// next vertex of the path.
package material

import (
	"math"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
)

// Type enumerates the material variants
type Type int

const (
	TypeDiffuse Type = iota
	TypeMirror
	TypeMicrofacet
	TypeTransparent
)

// String returns the variant name
func (t Type) String() string {
	switch t {
	case TypeDiffuse:
		return "diffuse"
	case TypeMirror:
		return "mirror"
	case TypeMicrofacet:
		return "microfacet"
	case TypeTransparent:
		return "transparent"
	default:
		return "unknown"
	}
}

// NoUV is passed for interactions without texture coordinates. Any finite
// pair, negative or tiled, is a real coordinate.
var NoUV = core.Vec2{X: math.NaN(), Y: math.NaN()}

// HasUV reports whether uv holds real texture coordinates
func HasUV(uv core.Vec2) bool {
	return !math.IsNaN(uv.X) && !math.IsNaN(uv.Y)
}

// Material is the shading capability of a surface. The variant set is
// closed: only Diffuse, Mirror, Microfacet and Transparent implement it.
type Material interface {
	// Sample draws an outgoing direction wi for the view direction wo
	Sample(wo, n core.Vec3, sampler core.Sampler) core.Vec3
	// PDF returns the solid angle density of Sample producing wi
	PDF(wi, wo, n core.Vec3) float64
	// Eval returns the BSDF value, without the cosine term
	Eval(wi, wo, n core.Vec3, uv core.Vec2) core.Vec3

	Emission() core.Vec3
	HasEmission() bool
	ColorAt(uv core.Vec2) core.Vec3
	Type() Type
	IsSpecular() bool

	// BlinnPhong returns the specular color and exponent used by the Whitted integrator
	BlinnPhong() (core.Vec3, float64)

	sealed()
}

// Surface holds the parameters shared by every material variant
type Surface struct {
	Albedo           core.Vec3   // Constant diffuse color (Kd)
	Texture          ColorSource // Optional albedo texture, used when the hit has UVs
	Emit             core.Vec3   // Emitted radiance
	Specular         core.Vec3   // Blinn-Phong specular color (Ks)
	SpecularExponent float64     // Blinn-Phong exponent
}

// Emission returns the emitted radiance
func (s *Surface) Emission() core.Vec3 {
	return s.Emit
}

// HasEmission reports whether the surface emits light
func (s *Surface) HasEmission() bool {
	return s.Emit.Length() > emissionEpsilon
}

// ColorAt returns the albedo at the given texture coordinates
func (s *Surface) ColorAt(uv core.Vec2) core.Vec3 {
	if s.Texture == nil || !HasUV(uv) {
		return s.Albedo
	}
	return s.Texture.Evaluate(uv)
}

// BlinnPhong returns the Blinn-Phong specular color and exponent
func (s *Surface) BlinnPhong() (core.Vec3, float64) {
	return s.Specular, s.SpecularExponent
}

const (
	emissionEpsilon = 1e-8
	pdfEpsilon      = 1e-4 // Directions within this distance count as the same specular direction
)

// reflect mirrors the incident vector i about n
func reflect(i, n core.Vec3) core.Vec3 {
	return i.Subtract(n.Multiply(2 * i.Dot(n)))
}

// Reflect returns the mirror direction of the outward view direction wo about n
func Reflect(wo, n core.Vec3) core.Vec3 {
	return reflect(wo.Negate(), n).Normalize()
}

// schlick returns the Schlick Fresnel approximation tinted by the base color
func schlick(base core.Vec3, cos float64) core.Vec3 {
	c := 1 - cos
	c5 := c * c * c * c * c
	return base.Add(core.Splat(1).Subtract(base).Multiply(c5))
}
