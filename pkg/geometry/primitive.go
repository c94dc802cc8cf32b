// Package geometry provides the primitives a scene is assembled from and
// the bounding volume hierarchy used to intersect and sample them.
package geometry

import (
	"math"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
	"github.com/df07/go-volumetric-pathtracer/pkg/material"
)

// Primitive is anything that can be placed in a BVH: it can be bounded,
// intersected and sampled uniformly by area.
type Primitive interface {
	Bounds() core.AABB
	Area() float64
	// Intersect returns the nearest hit in front of the ray origin
	Intersect(ray core.Ray) Intersection
	// Sample picks a point uniformly over the surface; the returned pdf is
	// per unit area and is 0 for degenerate primitives
	Sample(sampler core.Sampler) (Intersection, float64)
	HasEmission() bool
}

// Intersection describes a point on a primitive, either found by a ray or
// drawn by area sampling
type Intersection struct {
	Happened  bool
	Point     core.Vec3
	Normal    core.Vec3 // Interpolated shading normal, unit length
	Distance  float64   // Ray parameter of the hit, +Inf when nothing was hit
	UV        core.Vec2 // Texture coordinates, material.NoUV when absent
	HasUV     bool
	Primitive Primitive
	Material  material.Material
	Emission  core.Vec3
}

// NoIntersection returns the empty result that compares as infinitely far
func NoIntersection() Intersection {
	return Intersection{Distance: math.Inf(1), UV: material.NoUV}
}

// Closer returns whichever intersection is nearer along the ray
func Closer(a, b Intersection) Intersection {
	if b.Happened && (!a.Happened || b.Distance < a.Distance) {
		return b
	}
	return a
}
