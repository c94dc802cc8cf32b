// Package integrator implements the light transport estimators that turn a
// camera ray into a radiance sample.
package integrator

import (
	"fmt"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
	"github.com/df07/go-volumetric-pathtracer/pkg/material"
	"github.com/df07/go-volumetric-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms.
// Implementations hold no per-ray state and are safe for concurrent use;
// all randomness comes from the sampler, which is owned by one goroutine.
type Integrator interface {
	// RayColor estimates the radiance arriving along the reversed ray
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3
}

// Type names the available integrators
type Type string

const (
	TypePath    Type = "path"
	TypeWhitted Type = "whitted"
)

// New returns the integrator of the given type
func New(t Type) (Integrator, error) {
	switch t {
	case TypePath:
		return NewPathTracer(), nil
	case TypeWhitted:
		return NewWhitted(DefaultWhittedConfig()), nil
	default:
		return nil, fmt.Errorf("integrator: unknown type %q", t)
	}
}

const (
	// RayEpsilon offsets spawned rays off the surface they leave
	RayEpsilon = 1e-4
	// ShadowTolerance is the largest mismatch between the distance a shadow
	// ray travels and the distance to the sampled light point that still
	// counts as unoccluded
	ShadowTolerance = 0.01
	// pdfEpsilon discards sampled directions whose density is too small to divide by
	pdfEpsilon = 1e-6
)

// offsetOrigin moves p off the surface with normal n, to the side dir leaves towards
func offsetOrigin(p, n, dir core.Vec3) core.Vec3 {
	if dir.Dot(n) < 0 {
		return p.Subtract(n.Multiply(RayEpsilon))
	}
	return p.Add(n.Multiply(RayEpsilon))
}

// shadingNormal returns the normal used for shading: opaque surfaces are
// two-sided and shade with the normal facing the viewer, transparent ones
// keep the geometric orientation to tell entering from leaving
func shadingNormal(mat material.Material, n, wo core.Vec3) core.Vec3 {
	if mat.Type() != material.TypeTransparent && n.Dot(wo) < 0 {
		return n.Negate()
	}
	return n
}
