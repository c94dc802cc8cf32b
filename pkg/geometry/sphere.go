package geometry

import (
	"math"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
	"github.com/df07/go-volumetric-pathtracer/pkg/material"
)

// Sphere is an analytic sphere primitive
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: mat}
}

// Bounds returns the axis-aligned bounding box of the sphere
func (s *Sphere) Bounds() core.AABB {
	radius := core.Splat(s.Radius)
	return core.NewAABB(s.Center.Subtract(radius), s.Center.Add(radius))
}

// Area returns 4πr²
func (s *Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// HasEmission reports whether the sphere's material emits light
func (s *Sphere) HasEmission() bool {
	return s.Material != nil && s.Material.HasEmission()
}

// Intersect tests the ray against the sphere; rays starting inside hit the far side
func (s *Sphere) Intersect(ray core.Ray) Intersection {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic with a unit direction: t² + 2·halfB·t + c = 0
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - c
	if discriminant < 0 || s.Radius <= 0 {
		return NoIntersection()
	}

	// Try the closer root first
	sqrtD := math.Sqrt(discriminant)
	t := -halfB - sqrtD
	if t <= 0 {
		t = -halfB + sqrtD
		if t <= 0 {
			return NoIntersection()
		}
	}

	point := ray.At(t)
	hit := s.interaction(point)
	hit.Distance = t
	return hit
}

// Sample picks a uniformly distributed point on the sphere
func (s *Sphere) Sample(sampler core.Sampler) (Intersection, float64) {
	if s.Radius <= 0 {
		return NoIntersection(), 0
	}
	dir := core.SampleUniformSphere(sampler.Get2D())
	hit := s.interaction(s.Center.Add(dir.Multiply(s.Radius)))
	hit.Distance = 0
	return hit, 1 / s.Area()
}

// interaction builds the outward-facing hit record for a point on the sphere
func (s *Sphere) interaction(point core.Vec3) Intersection {
	normal := point.Subtract(s.Center).Multiply(1 / s.Radius)

	// Spherical texture coordinates
	u := 0.5 + math.Atan2(-normal.Z, normal.X)/(2*math.Pi)
	v := 0.5 + math.Asin(math.Max(-1, math.Min(1, normal.Y)))/math.Pi

	hit := Intersection{
		Happened:  true,
		Point:     point,
		Normal:    normal,
		UV:        core.NewVec2(u, v),
		HasUV:     true,
		Primitive: s,
		Material:  s.Material,
	}
	if s.Material != nil {
		hit.Emission = s.Material.Emission()
	}
	return hit
}
