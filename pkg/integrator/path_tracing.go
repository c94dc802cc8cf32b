package integrator

import (
	"math"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
	"github.com/df07/go-volumetric-pathtracer/pkg/geometry"
	"github.com/df07/go-volumetric-pathtracer/pkg/material"
	"github.com/df07/go-volumetric-pathtracer/pkg/medium"
	"github.com/df07/go-volumetric-pathtracer/pkg/scene"
)

// PathTracer is a recursive volumetric path tracer. At every vertex it
// combines light sampling and BSDF (or phase function) sampling with the
// power heuristic, and continues the path by Russian roulette.
type PathTracer struct{}

// NewPathTracer creates a new path tracer
func NewPathTracer() *PathTracer {
	return &PathTracer{}
}

// RayColor estimates the radiance arriving along a camera ray
func (pt *PathTracer) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.shade(ray, s.Intersect(ray), s, sampler, 0, true)
}

// vertex is a scattering event: a surface hit or a point inside the medium
type vertex struct {
	point      core.Vec3
	normal     core.Vec3 // Shading normal; the reversed ray direction inside the medium
	wo         core.Vec3 // Towards the previous vertex
	uv         core.Vec2
	volumetric bool
	material   material.Material
	phase      medium.PhaseFunction
}

// sample draws the next direction from the material or phase function
func (v *vertex) sample(sampler core.Sampler) core.Vec3 {
	if v.volumetric {
		return v.phase.Sample(v.wo, sampler)
	}
	return v.material.Sample(v.wo, v.normal, sampler)
}

// pdf returns the solid angle density of sample producing wi
func (v *vertex) pdf(wi core.Vec3) float64 {
	if v.volumetric {
		return v.phase.PDF(wi, v.wo)
	}
	return v.material.PDF(wi, v.wo, v.normal)
}

// throughput returns the scattering value for wi, including the cosine on surfaces
func (v *vertex) throughput(wi core.Vec3) core.Vec3 {
	if v.volumetric {
		return core.Splat(v.phase.Eval(wi, v.wo))
	}
	return v.material.Eval(wi, v.wo, v.normal, v.uv).Multiply(math.Abs(wi.Dot(v.normal)))
}

// spawn creates a ray leaving the vertex in direction dir
func (v *vertex) spawn(dir core.Vec3) core.Ray {
	if v.volumetric {
		return core.NewRay(v.point, dir)
	}
	return core.NewRay(offsetOrigin(v.point, v.normal, dir), dir)
}

// shade estimates the radiance arriving along ray, given its nearest
// surface hit. countEmission is false when the previous vertex already
// accounted for emitters through direct lighting.
func (pt *PathTracer) shade(ray core.Ray, hit geometry.Intersection, s *scene.Scene, sampler core.Sampler, depth int, countEmission bool) core.Vec3 {
	if depth >= s.Options.MaxDepth {
		return core.Vec3{}
	}

	if !hit.Happened {
		return s.Options.Background
	}

	// Free flight through the medium towards the surface hit
	med := s.Medium()
	flight := math.Inf(1)
	if med != nil {
		flight = med.Sample(ray, sampler)
	}
	volumetric := flight < hit.Distance

	if !volumetric {
		if hit.Material.HasEmission() {
			if countEmission {
				return hit.Emission
			}
			return core.Vec3{}
		}
	}

	v := vertex{wo: ray.Direction.Negate(), volumetric: volumetric}
	if volumetric {
		v.point = ray.At(flight)
		v.normal = v.wo
		v.phase = med.Phase()
	} else {
		v.point = hit.Point
		v.normal = shadingNormal(hit.Material, hit.Normal, v.wo)
		v.uv = hit.UV
		v.material = hit.Material
	}

	// Specular surfaces carry their direct light through the sampled direction
	specular := !volumetric && v.material.IsSpecular()

	radiance := pt.indirect(&v, s, sampler, depth, specular)
	if !specular {
		radiance = radiance.Add(pt.direct(&v, s, sampler))
	}

	if volumetric {
		radiance = radiance.Multiply(med.Coefficient(flight, hit.Distance))
	}
	return radiance
}

// direct estimates the light arriving straight from emitters, combining a
// light sample and a BSDF sample with the power heuristic
func (pt *PathTracer) direct(v *vertex, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.sampleLight(v, s, sampler).Add(pt.sampleBSDF(v, s, sampler))
}

// sampleLight is the light sampling half of the direct lighting estimate
func (pt *PathTracer) sampleLight(v *vertex, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	light, areaPDF := s.SampleLight(sampler)
	if areaPDF <= 0 {
		return core.Vec3{}
	}

	toLight := light.Point.Subtract(v.point)
	distance := toLight.Length()
	if distance <= 0 {
		return core.Vec3{}
	}
	wi := toLight.Multiply(1 / distance)

	// Only the front face of an emitter radiates
	cosLight := -wi.Dot(light.Normal)
	if cosLight <= 0 {
		return core.Vec3{}
	}

	f := v.throughput(wi)
	if f.IsZero() {
		return core.Vec3{}
	}

	shadowRay := v.spawn(wi)
	expected := light.Point.Subtract(shadowRay.Origin).Length()
	blocker := s.Intersect(shadowRay)
	if !blocker.Happened || math.Abs(blocker.Distance-expected) >= ShadowTolerance {
		return core.Vec3{}
	}

	lightPDF := distance * distance * areaPDF / math.Max(cosLight, scene.CosEpsilon)
	weight := core.PowerHeuristic(lightPDF, v.pdf(wi))

	contribution := light.Emission.MultiplyVec(f).Multiply(weight / lightPDF)
	return contribution.Multiply(transmittance(s, distance))
}

// sampleBSDF is the BSDF sampling half of the direct lighting estimate
func (pt *PathTracer) sampleBSDF(v *vertex, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	wi := v.sample(sampler)
	bsdfPDF := v.pdf(wi)
	if bsdfPDF <= pdfEpsilon {
		return core.Vec3{}
	}

	f := v.throughput(wi)
	if f.IsZero() {
		return core.Vec3{}
	}

	ray := v.spawn(wi)
	hit := s.Intersect(ray)
	if !hit.Happened || !hit.Material.HasEmission() || hit.Normal.Dot(wi) >= 0 {
		return core.Vec3{}
	}

	weight := core.PowerHeuristic(bsdfPDF, s.LightPDF(ray.Origin, hit))
	contribution := hit.Emission.MultiplyVec(f).Multiply(weight / bsdfPDF)
	return contribution.Multiply(transmittance(s, hit.Distance))
}

// indirect continues the path with Russian roulette. Emitters reached by
// the continuation only count after a specular vertex, which skips direct
// lighting.
func (pt *PathTracer) indirect(v *vertex, s *scene.Scene, sampler core.Sampler, depth int, specular bool) core.Vec3 {
	continueProbability := s.Options.RussianRoulette
	if sampler.Get1D() >= continueProbability {
		return core.Vec3{}
	}

	wi := v.sample(sampler)
	pdf := v.pdf(wi)
	if pdf <= pdfEpsilon {
		return core.Vec3{}
	}

	f := v.throughput(wi)
	if f.IsZero() {
		return core.Vec3{}
	}

	ray := v.spawn(wi)
	incoming := pt.shade(ray, s.Intersect(ray), s, sampler, depth+1, specular)
	return incoming.MultiplyVec(f).Multiply(1 / (pdf * continueProbability))
}

// transmittance returns the medium attenuation over distance, 1 in vacuum
func transmittance(s *scene.Scene, distance float64) float64 {
	if med := s.Medium(); med != nil {
		return med.Transmittance(distance)
	}
	return 1
}
