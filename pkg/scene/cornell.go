package scene

import (
	"github.com/df07/go-volumetric-pathtracer/pkg/core"
	"github.com/df07/go-volumetric-pathtracer/pkg/geometry"
	"github.com/df07/go-volumetric-pathtracer/pkg/material"
)

// CornellMaterials selects the materials of the Cornell box parts
type CornellMaterials struct {
	White, Red, Green material.Material
	Light             material.Material
	ShortBox, TallBox material.Material
}

// Blinn-Phong parameters of the walls, used by the Whitted integrator
var (
	wallSpecular         = core.Splat(0.7937)
	wallSpecularExponent = 50.0
)

// CornellLightEmission is the radiance of the ceiling light, a sum of three
// measured emission spectra projected to RGB
var CornellLightEmission = core.NewVec3(0.747+0.058, 0.747+0.258, 0.747).Multiply(8).
	Add(core.NewVec3(0.740+0.287, 0.740+0.160, 0.740).Multiply(15.6)).
	Add(core.NewVec3(0.737+0.642, 0.737+0.159, 0.737).Multiply(18.4))

// DefaultCornellMaterials returns diffuse walls, a rough short box and a glossy tall box
func DefaultCornellMaterials() CornellMaterials {
	wall := func(albedo core.Vec3) *material.Diffuse {
		d := material.NewDiffuse(albedo)
		d.Specular = wallSpecular
		d.SpecularExponent = wallSpecularExponent
		return d
	}

	return CornellMaterials{
		White:    wall(core.NewVec3(0.725, 0.71, 0.68)),
		Red:      wall(core.NewVec3(0.63, 0.065, 0.05)),
		Green:    wall(core.NewVec3(0.14, 0.45, 0.091)),
		Light:    material.NewDiffuseLight(core.Splat(0.65), CornellLightEmission),
		ShortBox: material.NewMicrofacet(core.Splat(1), 1),
		TallBox:  material.NewMicrofacet(core.NewVec3(0.725, 0.71, 0.68), 0.7),
	}
}

// cornellInterior is a point inside the box that every wall faces
var cornellInterior = core.NewVec3(278, 274, 280)

// NewCornellBox assembles the measured Cornell box: floor, ceiling and back
// wall, red and green side walls, a ceiling light and two blocks. The scene
// is returned unbuilt so callers can add geometry or a medium first.
func NewCornellBox(opts Options, mats CornellMaterials) *Scene {
	s := New(opts)

	walls := concat(
		// Floor
		quadFacing(cornellInterior, true,
			core.NewVec3(552.8, 0, 0), core.NewVec3(0, 0, 0),
			core.NewVec3(0, 0, 559.2), core.NewVec3(549.6, 0, 559.2)),
		// Ceiling
		quadFacing(cornellInterior, true,
			core.NewVec3(556, 548.8, 0), core.NewVec3(556, 548.8, 559.2),
			core.NewVec3(0, 548.8, 559.2), core.NewVec3(0, 548.8, 0)),
		// Back wall
		quadFacing(cornellInterior, true,
			core.NewVec3(549.6, 0, 559.2), core.NewVec3(0, 0, 559.2),
			core.NewVec3(0, 548.8, 559.2), core.NewVec3(556, 548.8, 559.2)),
	)
	red := quadFacing(cornellInterior, true,
		core.NewVec3(552.8, 0, 0), core.NewVec3(549.6, 0, 559.2),
		core.NewVec3(556, 548.8, 559.2), core.NewVec3(556, 548.8, 0))
	green := quadFacing(cornellInterior, true,
		core.NewVec3(0, 0, 559.2), core.NewVec3(0, 0, 0),
		core.NewVec3(0, 548.8, 0), core.NewVec3(0, 548.8, 559.2))
	light := quadFacing(cornellInterior, true,
		core.NewVec3(343, 548.7, 227), core.NewVec3(343, 548.7, 332),
		core.NewVec3(213, 548.7, 332), core.NewVec3(213, 548.7, 227))

	shortBox := block(
		[4]core.Vec3{
			core.NewVec3(130, 165, 65), core.NewVec3(82, 165, 225),
			core.NewVec3(240, 165, 272), core.NewVec3(290, 165, 114),
		}, 165)
	tallBox := block(
		[4]core.Vec3{
			core.NewVec3(423, 330, 247), core.NewVec3(265, 330, 296),
			core.NewVec3(314, 330, 456), core.NewVec3(472, 330, 406),
		}, 330)

	// Adding to a fresh scene cannot fail
	_ = s.Add(
		geometry.NewMeshTriangle(walls, mats.White),
		geometry.NewMeshTriangle(shortBox, mats.ShortBox),
		geometry.NewMeshTriangle(tallBox, mats.TallBox),
		geometry.NewMeshTriangle(red, mats.Red),
		geometry.NewMeshTriangle(green, mats.Green),
		geometry.NewMeshTriangle(light, mats.Light),
	)
	return s
}

// quadFacing splits a planar quad into two triangles wound so that the face
// normal points towards target (or away from it when towards is false)
func quadFacing(target core.Vec3, towards bool, p0, p1, p2, p3 core.Vec3) []geometry.Vertex {
	normal := p1.Subtract(p0).Cross(p2.Subtract(p0))
	facing := normal.Dot(target.Subtract(p0)) > 0
	if facing != towards {
		p1, p3 = p3, p1
	}
	return []geometry.Vertex{
		geometry.NewVertex(p0), geometry.NewVertex(p1), geometry.NewVertex(p2),
		geometry.NewVertex(p0), geometry.NewVertex(p2), geometry.NewVertex(p3),
	}
}

// block extrudes a horizontal top face down to the floor, with all faces
// pointing out of the block
func block(top [4]core.Vec3, height float64) []geometry.Vertex {
	center := core.Vec3{}
	for _, p := range top {
		center = center.Add(p)
	}
	center = center.Multiply(0.25)
	center.Y = height / 2

	down := core.NewVec3(0, height, 0)
	vertices := quadFacing(center, false, top[0], top[1], top[2], top[3])
	for i := range top {
		a, b := top[i], top[(i+1)%4]
		vertices = append(vertices, quadFacing(center, false, a, b, b.Subtract(down), a.Subtract(down))...)
	}
	return vertices
}

func concat(parts ...[]geometry.Vertex) []geometry.Vertex {
	var out []geometry.Vertex
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}
