package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
	"github.com/df07/go-volumetric-pathtracer/pkg/geometry"
	"github.com/df07/go-volumetric-pathtracer/pkg/integrator"
	"github.com/df07/go-volumetric-pathtracer/pkg/material"
	"github.com/df07/go-volumetric-pathtracer/pkg/scene"
)

const tetrahedronOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
f 1 3 2
f 1 2 4
f 1 4 3
f 2 3 4
`

func testConfig(name string) sceneConfig {
	opts := scene.DefaultOptions()
	opts.Width, opts.Height = 8, 8
	return sceneConfig{
		Name:       name,
		TallBox:    "glossy",
		MeshScale:  50,
		MeshOffset: "278,0,280",
		SphereAt:   "185,225,169",
		SphereSize: 60,
		SigmaA:     0.00025,
		SigmaS:     0.0003,
		G:          0.7,
		Options:    opts,
	}
}

func TestCreateScene(t *testing.T) {
	objPath := filepath.Join(t.TempDir(), "tetra.obj")
	if err := os.WriteFile(objPath, []byte(tetrahedronOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		config      func() sceneConfig
		primitives  int
		expectError bool
	}{
		{"cornell", func() sceneConfig { return testConfig("cornell") }, 6, false},
		{"obj mesh", func() sceneConfig { return testConfig(objPath) }, 7, false},
		{"mirror tall box", func() sceneConfig {
			c := testConfig("cornell")
			c.TallBox = "mirror"
			return c
		}, 6, false},
		{"transparent tall box", func() sceneConfig {
			c := testConfig("cornell")
			c.TallBox = "transparent"
			return c
		}, 6, false},
		{"glass sphere", func() sceneConfig {
			c := testConfig("cornell")
			c.Sphere = "transparent"
			return c
		}, 7, false},
		{"no sphere", func() sceneConfig {
			c := testConfig("cornell")
			c.Sphere = "none"
			return c
		}, 6, false},
		{"unknown sphere material", func() sceneConfig {
			c := testConfig("cornell")
			c.Sphere = "velvet"
			return c
		}, 0, true},
		{"bad sphere center", func() sceneConfig {
			c := testConfig("cornell")
			c.Sphere = "mirror"
			c.SphereAt = "1,2"
			return c
		}, 0, true},
		{"zero sphere radius", func() sceneConfig {
			c := testConfig("cornell")
			c.Sphere = "mirror"
			c.SphereSize = 0
			return c
		}, 0, true},
		{"unknown scene", func() sceneConfig { return testConfig("nonexistent") }, 0, true},
		{"missing obj", func() sceneConfig { return testConfig(filepath.Join(t.TempDir(), "missing.obj")) }, 0, true},
		{"unknown tall box", func() sceneConfig {
			c := testConfig("cornell")
			c.TallBox = "velvet"
			return c
		}, 0, true},
		{"bad offset", func() sceneConfig {
			c := testConfig(objPath)
			c.MeshOffset = "1,2"
			return c
		}, 0, true},
		{"invalid options", func() sceneConfig {
			c := testConfig("cornell")
			c.Options.MaxDepth = 0
			return c
		}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.config())
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected an error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !s.Built() {
				t.Errorf("Expected a built scene")
			}
			if len(s.Primitives()) != tt.primitives {
				t.Errorf("Expected %d primitives, got %d", tt.primitives, len(s.Primitives()))
			}
			if s.Medium() == nil {
				t.Errorf("Expected the configured medium")
			}
		})
	}
}

func TestCreateScene_Vacuum(t *testing.T) {
	c := testConfig("cornell")
	c.SigmaA, c.SigmaS = 0, 0
	s, err := createScene(c)
	if err != nil {
		t.Fatal(err)
	}
	if s.Medium() != nil {
		t.Errorf("Expected no medium for zero coefficients")
	}
}

func TestCreateScene_MeshPlacement(t *testing.T) {
	objPath := filepath.Join(t.TempDir(), "tetra.obj")
	if err := os.WriteFile(objPath, []byte(tetrahedronOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := createScene(testConfig(objPath))
	if err != nil {
		t.Fatal(err)
	}

	mesh, ok := s.Primitives()[6].(*geometry.MeshTriangle)
	if !ok {
		t.Fatalf("Expected the OBJ mesh last, got %T", s.Primitives()[6])
	}
	bounds := mesh.Bounds()
	if bounds.Min.Subtract(core.NewVec3(278, 0, 280)).Length() > 1e-6 ||
		bounds.Max.Subtract(core.NewVec3(328, 50, 330)).Length() > 1e-6 {
		t.Errorf("Unexpected mesh bounds %v", bounds)
	}
}

func TestCreateScene_SpherePlacement(t *testing.T) {
	c := testConfig("cornell")
	c.Sphere = "mirror"
	s, err := createScene(c)
	if err != nil {
		t.Fatal(err)
	}

	sphere, ok := s.Primitives()[6].(*geometry.Sphere)
	if !ok {
		t.Fatalf("Expected the sphere last, got %T", s.Primitives()[6])
	}
	if sphere.Center != core.NewVec3(185, 225, 169) || sphere.Radius != 60 {
		t.Errorf("Unexpected sphere center %v radius %f", sphere.Center, sphere.Radius)
	}
	if sphere.Material.Type() != material.TypeMirror {
		t.Errorf("Expected a mirror sphere, got %v", sphere.Material.Type())
	}

	// A ray dropped onto the top of the sphere hits it before the short box
	hit := s.Intersect(core.NewRay(core.NewVec3(185.3, 400, 169.2), core.NewVec3(0, -1, 0)))
	if !hit.Happened || hit.Primitive != geometry.Primitive(sphere) {
		t.Fatalf("Expected to hit the sphere, got %+v", hit)
	}
	if hit.Point.Y < 284 || hit.Point.Y > 285.1 {
		t.Errorf("Expected a hit near the top of the sphere (y=285), got %v", hit.Point)
	}
}

func TestSurfaceMaterial(t *testing.T) {
	tests := []struct {
		name     string
		expected material.Type
	}{
		{"glossy", material.TypeMicrofacet},
		{"", material.TypeMicrofacet},
		{"mirror", material.TypeMirror},
		{"transparent", material.TypeTransparent},
	}
	for _, tt := range tests {
		mat, err := surfaceMaterial(tt.name)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.name, err)
			continue
		}
		if mat.Type() != tt.expected {
			t.Errorf("%q: expected %v, got %v", tt.name, tt.expected, mat.Type())
		}
	}
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		input       string
		expected    core.Vec3
		expectError bool
	}{
		{"1,2,3", core.NewVec3(1, 2, 3), false},
		{"-1.5, 0, 2e2", core.NewVec3(-1.5, 0, 200), false},
		{"1,2", core.Vec3{}, true},
		{"a,b,c", core.Vec3{}, true},
	}
	for _, tt := range tests {
		got, err := parseOffset(tt.input)
		if (err != nil) != tt.expectError {
			t.Errorf("%q: unexpected error state %v", tt.input, err)
			continue
		}
		if !tt.expectError && got != tt.expected {
			t.Errorf("%q: expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func TestNewIntegrator(t *testing.T) {
	if in, err := newIntegrator("whitted", 5); err != nil {
		t.Errorf("Unexpected error: %v", err)
	} else if _, ok := in.(*integrator.Whitted); !ok {
		t.Errorf("Expected *Whitted, got %T", in)
	}
	if in, err := newIntegrator("path", 5); err != nil {
		t.Errorf("Unexpected error: %v", err)
	} else if _, ok := in.(*integrator.PathTracer); !ok {
		t.Errorf("Expected *PathTracer, got %T", in)
	}
	if _, err := newIntegrator("bdpt", 5); err == nil {
		t.Errorf("Expected an error for an unknown integrator")
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total int
		expected    string
	}{
		{0, 10, "[          ]   0 %"},
		{5, 10, "[=====     ]  50 %"},
		{10, 10, "[==========] 100 %"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.done, tt.total, 10); got != tt.expected {
			t.Errorf("progressBar(%d, %d) = %q, expected %q", tt.done, tt.total, got, tt.expected)
		}
	}
}

func TestBVHTable(t *testing.T) {
	s, err := createScene(testConfig("cornell"))
	if err != nil {
		t.Fatal(err)
	}
	table := bvhTable(s.BVH(), s.Primitives())
	for _, want := range []string{"Hierarchy", "scene", "mesh 0", "mesh 5"} {
		if !strings.Contains(table, want) {
			t.Errorf("Expected table to contain %q:\n%s", want, table)
		}
	}
}

func TestLoadMesh_Errors(t *testing.T) {
	objPath := filepath.Join(t.TempDir(), "tetra.obj")
	if err := os.WriteFile(objPath, []byte(tetrahedronOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	c := testConfig(objPath)
	c.Texture = filepath.Join(t.TempDir(), "missing.png")
	if _, err := loadMesh(c); err == nil {
		t.Errorf("Expected an error for a missing texture")
	}

	empty := filepath.Join(t.TempDir(), "empty.obj")
	if err := os.WriteFile(empty, []byte("v 0 0 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadMesh(testConfig(empty)); err == nil {
		t.Errorf("Expected an error for an empty mesh")
	}
}
