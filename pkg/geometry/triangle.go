package geometry

import (
	"math"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
	"github.com/df07/go-volumetric-pathtracer/pkg/material"
)

// Vertex is a triangle corner with its shading normal and texture coordinates.
// A zero Normal means the face normal is used. UV is only meaningful when HasUV is set.
type Vertex struct {
	Position core.Vec3
	Normal   core.Vec3
	UV       core.Vec2
	HasUV    bool
}

// NewVertex creates a vertex without a normal or texture coordinates
func NewVertex(position core.Vec3) Vertex {
	return Vertex{Position: position, UV: material.NoUV}
}

// Triangle is a single triangle with per-vertex normals and texture coordinates
type Triangle struct {
	V0, V1, V2 Vertex
	Material   material.Material

	edge1, edge2 core.Vec3 // V1-V0 and V2-V0
	normal       core.Vec3 // Face normal, following the winding V0→V1→V2
	area         float64
	bounds       core.AABB
}

// degenerateArea is the area below which a triangle is treated as a line or point
const degenerateArea = 1e-12

// NewTriangle creates a triangle from three vertices
func NewTriangle(v0, v1, v2 Vertex, mat material.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: mat}

	// Calculate two edge vectors
	t.edge1 = v1.Position.Subtract(v0.Position)
	t.edge2 = v2.Position.Subtract(v0.Position)

	cross := t.edge1.Cross(t.edge2)
	t.area = cross.Length() / 2
	t.normal = cross.Normalize()
	t.bounds = core.NewAABBFromPoints(v0.Position, v1.Position, v2.Position)

	// Fall back to the face normal wherever the vertex carries none
	for _, v := range []*Vertex{&t.V0, &t.V1, &t.V2} {
		if v.Normal.IsZero() {
			v.Normal = t.normal
		} else {
			v.Normal = v.Normal.Normalize()
		}
	}
	return t
}

// NewFlatTriangle creates a triangle from positions only
func NewFlatTriangle(p0, p1, p2 core.Vec3, mat material.Material) *Triangle {
	return NewTriangle(NewVertex(p0), NewVertex(p1), NewVertex(p2), mat)
}

// Bounds returns the triangle's bounding box
func (t *Triangle) Bounds() core.AABB {
	return t.bounds
}

// Area returns the triangle's surface area
func (t *Triangle) Area() float64 {
	return t.area
}

// Normal returns the face normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// HasEmission reports whether the triangle's material emits light
func (t *Triangle) HasEmission() bool {
	return t.Material != nil && t.Material.HasEmission()
}

// Intersect tests the ray against the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray) Intersection {
	const epsilon = 1e-12

	// Zero-area triangles are never hit
	if t.area < degenerateArea {
		return NoIntersection()
	}

	// Calculate determinant
	h := ray.Direction.Cross(t.edge2)
	det := t.edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if math.Abs(det) < epsilon {
		return NoIntersection()
	}

	invDet := 1.0 / det
	s := ray.Origin.Subtract(t.V0.Position)
	u := invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return NoIntersection()
	}

	q := s.Cross(t.edge1)
	v := invDet * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return NoIntersection()
	}

	distance := invDet * t.edge2.Dot(q)
	if distance <= 0 {
		return NoIntersection()
	}

	w := 1 - u - v
	hit := t.interaction(w, u, v)
	hit.Point = ray.At(distance)
	hit.Distance = distance
	return hit
}

// Sample picks a uniformly distributed point on the triangle.
// The sampled normal is the face normal and the pdf is 1/area.
func (t *Triangle) Sample(sampler core.Sampler) (Intersection, float64) {
	if t.area < degenerateArea {
		return NoIntersection(), 0
	}

	b0, b1, b2 := core.SampleUniformTriangle(sampler.Get2D())
	hit := t.interaction(b0, b1, b2)
	hit.Normal = t.normal
	hit.Point = t.V0.Position.Multiply(b0).
		Add(t.V1.Position.Multiply(b1)).
		Add(t.V2.Position.Multiply(b2))
	hit.Distance = 0
	return hit, 1 / t.area
}

// interaction fills the fields interpolated from barycentric weights
func (t *Triangle) interaction(b0, b1, b2 float64) Intersection {
	normal := t.V0.Normal.Multiply(b0).
		Add(t.V1.Normal.Multiply(b1)).
		Add(t.V2.Normal.Multiply(b2)).
		Normalize()
	if normal.IsZero() {
		normal = t.normal
	}

	hasUV := t.V0.HasUV && t.V1.HasUV && t.V2.HasUV
	uv := material.NoUV
	if hasUV {
		uv = t.V0.UV.Multiply(b0).Add(t.V1.UV.Multiply(b1)).Add(t.V2.UV.Multiply(b2))
	}

	hit := Intersection{
		Happened:  true,
		Normal:    normal,
		UV:        uv,
		HasUV:     hasUV,
		Primitive: t,
		Material:  t.Material,
	}
	if t.Material != nil {
		hit.Emission = t.Material.Emission()
	}
	return hit
}
