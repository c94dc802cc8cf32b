// Package loaders reads meshes and textures from disk into the renderer's
// geometry and material types.
package loaders

import (
	"errors"
	"fmt"

	"github.com/udhos/gwob"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
	"github.com/df07/go-volumetric-pathtracer/pkg/geometry"
	"github.com/df07/go-volumetric-pathtracer/pkg/log"
)

// ErrEmptyMesh is returned for meshes without a single triangle
var ErrEmptyMesh = errors.New("loaders: mesh has no triangles")

var logger = log.New("loaders")

func parserOptions(name string) *gwob.ObjParserOptions {
	return &gwob.ObjParserOptions{
		LogStats: true,
		Logger:   func(msg string) { logger.Debugf("%s: %s", name, msg) },
	}
}

// LoadOBJ reads a Wavefront OBJ file and returns its triangles as a flat
// vertex list, three vertices per triangle, placed by transform. Polygons
// are triangulated by the parser; missing normals are left zero so the
// face normal is used, missing texture coordinates leave HasUV unset.
func LoadOBJ(path string, transform geometry.MeshTransform) ([]geometry.Vertex, error) {
	obj, err := gwob.NewObjFromFile(path, parserOptions(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load OBJ %s: %w", path, err)
	}
	return objVertices(path, obj, transform)
}

// ParseOBJ is LoadOBJ for OBJ text already in memory
func ParseOBJ(name string, data []byte, transform geometry.MeshTransform) ([]geometry.Vertex, error) {
	obj, err := gwob.NewObjFromBuf(name, data, parserOptions(name))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OBJ %s: %w", name, err)
	}
	return objVertices(name, obj, transform)
}

func objVertices(name string, obj *gwob.Obj, transform geometry.MeshTransform) ([]geometry.Vertex, error) {
	triangles := len(obj.Indices) / 3
	if triangles == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyMesh)
	}

	// Offsets are in bytes of float32 coordinates
	stride := obj.StrideSize / 4
	position := obj.StrideOffsetPosition / 4
	texture := obj.StrideOffsetTexture / 4
	normal := obj.StrideOffsetNormal / 4

	vertices := make([]geometry.Vertex, 0, triangles*3)
	for _, index := range obj.Indices[:triangles*3] {
		base := stride * index
		v := geometry.NewVertex(core.NewVec3(
			obj.Coord64(base+position),
			obj.Coord64(base+position+1),
			obj.Coord64(base+position+2),
		))
		if obj.NormCoordFound {
			v.Normal = core.NewVec3(
				obj.Coord64(base+normal),
				obj.Coord64(base+normal+1),
				obj.Coord64(base+normal+2),
			)
		}
		if obj.TextCoordFound {
			v.UV = core.NewVec2(obj.Coord64(base+texture), obj.Coord64(base+texture+1))
			v.HasUV = true
		}
		vertices = append(vertices, transform.Apply(v))
	}

	logger.Infof("loaded %s: %d triangles (normals: %t, uvs: %t)", name, triangles, obj.NormCoordFound, obj.TextCoordFound)
	return vertices, nil
}
