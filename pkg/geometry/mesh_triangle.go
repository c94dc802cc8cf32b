package geometry

import (
	"github.com/df07/go-volumetric-pathtracer/pkg/core"
	"github.com/df07/go-volumetric-pathtracer/pkg/material"
)

// MeshTransform places a mesh in the scene: vertices are scaled, rotated
// (Euler angles in radians, X then Y then Z) and then translated
type MeshTransform struct {
	Scale       float64
	Rotation    core.Vec3
	Translation core.Vec3
}

// IdentityTransform leaves vertices untouched
func IdentityTransform() MeshTransform {
	return MeshTransform{Scale: 1}
}

// Apply transforms a vertex; normals are rotated but not translated
func (m MeshTransform) Apply(v Vertex) Vertex {
	v.Position = v.Position.Multiply(m.Scale).Rotate(m.Rotation).Add(m.Translation)
	if !v.Normal.IsZero() {
		v.Normal = v.Normal.Rotate(m.Rotation).Normalize()
	}
	return v
}

// MeshTriangle is an aggregate of triangles sharing one material. It owns a
// private BVH, used both for intersection and for area-weighted sampling.
type MeshTriangle struct {
	Triangles []*Triangle
	Material  material.Material

	bvh    *BVH
	bounds core.AABB
	area   float64
}

// NewMeshTriangle creates a mesh from a flat vertex list where every three
// consecutive vertices form one triangle
func NewMeshTriangle(vertices []Vertex, mat material.Material) *MeshTriangle {
	if len(vertices)%3 != 0 {
		panic("mesh vertex count must be a multiple of 3")
	}

	triangles := make([]*Triangle, 0, len(vertices)/3)
	primitives := make([]Primitive, 0, len(vertices)/3)
	bounds := core.EmptyAABB()
	area := 0.0

	for i := 0; i < len(vertices); i += 3 {
		triangle := NewTriangle(vertices[i], vertices[i+1], vertices[i+2], mat)
		triangles = append(triangles, triangle)
		primitives = append(primitives, triangle)
		bounds = bounds.Union(triangle.Bounds())
		area += triangle.Area()
	}

	return &MeshTriangle{
		Triangles: triangles,
		Material:  mat,
		bvh:       NewBVH(primitives),
		bounds:    bounds,
		area:      area,
	}
}

// Bounds returns the bounding box of all triangles
func (m *MeshTriangle) Bounds() core.AABB {
	return m.bounds
}

// Area returns the total surface area of the mesh
func (m *MeshTriangle) Area() float64 {
	return m.area
}

// HasEmission reports whether the shared material emits light
func (m *MeshTriangle) HasEmission() bool {
	return m.Material != nil && m.Material.HasEmission()
}

// Intersect finds the nearest triangle hit through the private BVH
func (m *MeshTriangle) Intersect(ray core.Ray) Intersection {
	return m.bvh.Intersect(ray)
}

// Sample picks a point uniformly over the whole mesh surface
func (m *MeshTriangle) Sample(sampler core.Sampler) (Intersection, float64) {
	return m.bvh.Sample(sampler)
}

// BVH exposes the mesh's private hierarchy for inspection
func (m *MeshTriangle) BVH() *BVH {
	return m.bvh
}
