package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
	"github.com/df07/go-volumetric-pathtracer/pkg/geometry"
	"github.com/df07/go-volumetric-pathtracer/pkg/loaders"
	"github.com/df07/go-volumetric-pathtracer/pkg/material"
	"github.com/df07/go-volumetric-pathtracer/pkg/medium"
	"github.com/df07/go-volumetric-pathtracer/pkg/scene"
)

// sceneConfig collects the scene selection flags
type sceneConfig struct {
	Name       string // "cornell" or an OBJ path
	TallBox    string
	Texture    string
	MeshScale  float64
	MeshOffset string
	Sphere     string // Sphere material, empty or "none" for no sphere
	SphereAt   string
	SphereSize float64
	SigmaA     float64
	SigmaS     float64
	G          float64
	Options    scene.Options
}

func sceneConfigFromContext(ctx *cli.Context) sceneConfig {
	opts := scene.DefaultOptions()
	opts.Width = ctx.Int("width")
	opts.Height = ctx.Int("height")
	opts.Fov = ctx.Float64("fov")
	opts.RussianRoulette = ctx.Float64("rr")
	opts.MaxDepth = ctx.Int("max-depth")

	return sceneConfig{
		Name:       ctx.String("scene"),
		TallBox:    ctx.String("tall-box"),
		Texture:    ctx.String("texture"),
		MeshScale:  ctx.Float64("mesh-scale"),
		MeshOffset: ctx.String("mesh-offset"),
		Sphere:     ctx.String("sphere"),
		SphereAt:   ctx.String("sphere-center"),
		SphereSize: ctx.Float64("sphere-radius"),
		SigmaA:     ctx.Float64("sigma-a"),
		SigmaS:     ctx.Float64("sigma-s"),
		G:          ctx.Float64("g"),
		Options:    opts,
	}
}

// surfaceMaterial maps a material flag (tall box or sphere) to a material
func surfaceMaterial(name string) (material.Material, error) {
	switch name {
	case "glossy", "":
		return scene.DefaultCornellMaterials().TallBox, nil
	case "mirror":
		return material.NewMirror(core.Splat(0.95)), nil
	case "transparent":
		glass := material.NewTransparent(core.Splat(0.7937), 1.5)
		glass.Specular = core.Splat(0.7937)
		return glass, nil
	default:
		return nil, fmt.Errorf("unknown material %q", name)
	}
}

func parseOffset(s string) (core.Vec3, error) {
	var v core.Vec3
	if _, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "%g,%g,%g", &v.X, &v.Y, &v.Z); err != nil {
		return core.Vec3{}, fmt.Errorf("invalid offset %q, expected x,y,z: %w", s, err)
	}
	return v, nil
}

// createScene assembles and builds the Cornell box, optionally with an OBJ
// mesh and a sphere inside it, filled with the configured medium
func createScene(cfg sceneConfig) (*scene.Scene, error) {
	mats := scene.DefaultCornellMaterials()
	tall, err := surfaceMaterial(cfg.TallBox)
	if err != nil {
		return nil, err
	}
	mats.TallBox = tall

	s := scene.NewCornellBox(cfg.Options, mats)

	switch {
	case cfg.Name == "cornell":
	case strings.HasSuffix(strings.ToLower(cfg.Name), ".obj"):
		mesh, err := loadMesh(cfg)
		if err != nil {
			return nil, err
		}
		if err := s.Add(mesh); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown scene %q: expected 'cornell' or an .obj file", cfg.Name)
	}

	if cfg.Sphere != "" && cfg.Sphere != "none" {
		sphere, err := newSphere(cfg)
		if err != nil {
			return nil, err
		}
		if err := s.Add(sphere); err != nil {
			return nil, err
		}
	}

	if cfg.SigmaA > 0 || cfg.SigmaS > 0 {
		phase := medium.NewHenyeyGreenstein(cfg.G)
		if err := s.SetMedium(medium.NewHomogeneous(cfg.SigmaA, cfg.SigmaS, phase)); err != nil {
			return nil, err
		}
	}

	if err := s.Build(); err != nil {
		return nil, err
	}
	return s, nil
}

// newSphere builds the analytic sphere from the sphere flags
func newSphere(cfg sceneConfig) (*geometry.Sphere, error) {
	mat, err := surfaceMaterial(cfg.Sphere)
	if err != nil {
		return nil, err
	}
	center, err := parseOffset(cfg.SphereAt)
	if err != nil {
		return nil, err
	}
	if cfg.SphereSize <= 0 {
		return nil, fmt.Errorf("sphere radius must be positive, got %g", cfg.SphereSize)
	}
	return geometry.NewSphere(center, cfg.SphereSize, mat), nil
}

// loadMesh reads the OBJ mesh with a diffuse material, textured if requested
func loadMesh(cfg sceneConfig) (*geometry.MeshTriangle, error) {
	offset, err := parseOffset(cfg.MeshOffset)
	if err != nil {
		return nil, err
	}
	transform := geometry.MeshTransform{Scale: cfg.MeshScale, Translation: offset}

	vertices, err := loaders.LoadOBJ(cfg.Name, transform)
	if err != nil {
		return nil, err
	}

	mat := material.NewDiffuse(core.NewVec3(0.725, 0.71, 0.68))
	if cfg.Texture != "" {
		texture, err := loaders.LoadTexture(cfg.Texture)
		if err != nil {
			return nil, err
		}
		mat.Texture = texture
	}
	return geometry.NewMeshTriangle(vertices, mat), nil
}
