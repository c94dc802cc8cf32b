package integrator

import (
	"math"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
	"github.com/df07/go-volumetric-pathtracer/pkg/material"
	"github.com/df07/go-volumetric-pathtracer/pkg/scene"
)

// WhittedConfig configures the Whitted integrator
type WhittedConfig struct {
	// LightScale multiplies the Blinn-Phong term, since emitter radiance is
	// not divided by any sampling density here
	LightScale float64
}

// DefaultWhittedConfig returns the light scale tuned for the Cornell box
func DefaultWhittedConfig() WhittedConfig {
	return WhittedConfig{LightScale: 10000}
}

// Whitted is a recursive ray tracer: diffuse and glossy surfaces get
// Blinn-Phong shading from one point on every emitter, mirrors and
// transparent surfaces recurse along their reflected and refracted rays.
// Recursion ends by Russian roulette or at the scene's depth cap. The
// medium is ignored.
type Whitted struct {
	config WhittedConfig
}

// NewWhitted creates a Whitted integrator
func NewWhitted(config WhittedConfig) *Whitted {
	return &Whitted{config: config}
}

// RayColor traces the ray and shades what it hits
func (w *Whitted) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	return w.trace(ray, s, sampler, 0)
}

func (w *Whitted) trace(ray core.Ray, s *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	if depth >= s.Options.MaxDepth {
		return core.Vec3{}
	}

	hit := s.Intersect(ray)
	if !hit.Happened {
		return s.Options.Background
	}

	mat := hit.Material
	if mat.HasEmission() {
		return mat.Emission()
	}

	wo := ray.Direction.Negate()
	n := shadingNormal(mat, hit.Normal, wo)

	switch mat.Type() {
	case material.TypeDiffuse, material.TypeMicrofacet:
		return w.blinnPhong(hit.Point, n, wo, hit.UV, mat, s, sampler)
	}

	if sampler.Get1D() >= s.Options.RussianRoulette {
		return core.Vec3{}
	}

	switch mat.Type() {
	case material.TypeMirror:
		wi := mat.Sample(wo, n, sampler)
		pdf := mat.PDF(wi, wo, n)
		if pdf <= 0 {
			return core.Vec3{}
		}
		tint := mat.Eval(wi, wo, n, hit.UV).Multiply(math.Abs(wi.Dot(n)) / pdf)
		reflected := w.trace(core.NewRay(offsetOrigin(hit.Point, n, wi), wi), s, sampler, depth+1)
		return reflected.MultiplyVec(tint)

	case material.TypeTransparent:
		glass := mat.(*material.Transparent)
		incident := ray.Direction
		kr := material.Fresnel(incident, n, glass.IOR)

		reflectDir := material.Reflect(wo, n)
		color := w.trace(core.NewRay(offsetOrigin(hit.Point, n, reflectDir), reflectDir), s, sampler, depth+1).
			Multiply(kr)

		if kr < 1 {
			refractDir := material.Refract(incident, n, glass.IOR)
			refracted := w.trace(core.NewRay(offsetOrigin(hit.Point, n, refractDir), refractDir), s, sampler, depth+1)
			color = color.Add(refracted.Multiply(1 - kr))
		}
		return color.MultiplyVec(glass.ColorAt(hit.UV))
	}

	return core.Vec3{}
}

// blinnPhong sums the diffuse and specular response to one sampled point on
// every emissive primitive
func (w *Whitted) blinnPhong(p, n, wo core.Vec3, uv core.Vec2, mat material.Material, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	ks, exponent := mat.BlinnPhong()
	albedo := mat.ColorAt(uv)

	var color core.Vec3
	for _, prim := range s.Primitives() {
		if !prim.HasEmission() {
			continue
		}
		light, pdf := prim.Sample(sampler)
		if pdf <= 0 {
			continue
		}

		toLight := light.Point.Subtract(p)
		distanceSquared := toLight.LengthSquared()
		l := toLight.Normalize()

		shadowRay := core.NewRay(offsetOrigin(p, n, l), l)
		blocker := s.Intersect(shadowRay)
		expected := light.Point.Subtract(shadowRay.Origin).Length()
		if !blocker.Happened || math.Abs(blocker.Distance-expected) >= ShadowTolerance {
			continue
		}

		intensity := light.Emission.Multiply(1 / distanceSquared)
		diffuse := albedo.MultiplyVec(intensity).Multiply(math.Max(0, n.Dot(l)))

		half := l.Add(wo).Normalize()
		specular := ks.MultiplyVec(intensity).Multiply(math.Pow(math.Max(0, half.Dot(n)), exponent))

		color = color.Add(diffuse.Add(specular).Multiply(w.config.LightScale))
	}
	return color
}
