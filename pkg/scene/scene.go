// Package scene assembles primitives and a participating medium into a
// renderable scene with a top-level BVH and area-light sampling.
package scene

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
	"github.com/df07/go-volumetric-pathtracer/pkg/geometry"
	"github.com/df07/go-volumetric-pathtracer/pkg/log"
	"github.com/df07/go-volumetric-pathtracer/pkg/medium"
)

var (
	// ErrAlreadyBuilt is returned when a built scene is modified or rebuilt
	ErrAlreadyBuilt = errors.New("scene: already built")
	// ErrNotBuilt is returned when a scene is queried before Build
	ErrNotBuilt = errors.New("scene: not built")
)

var logger = log.New("scene")

// Options contains the image and estimator configuration of a scene
type Options struct {
	Width           int       // Image width in pixels
	Height          int       // Image height in pixels
	Fov             float64   // Vertical field of view in degrees
	Eye             core.Vec3 // Camera position; the camera looks down +Z
	Background      core.Vec3 // Radiance of rays that escape the scene
	RussianRoulette float64   // Path continuation probability
	MaxDepth        int       // Hard cap on path length
}

// DefaultOptions returns the settings of the classic Cornell box render
func DefaultOptions() Options {
	return Options{
		Width:           1024,
		Height:          1024,
		Fov:             40,
		Eye:             core.NewVec3(278, 273, -800),
		Background:      core.Vec3{},
		RussianRoulette: 0.8,
		MaxDepth:        64,
	}
}

// Validate checks the options for values no render can use
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("scene: invalid image size %dx%d", o.Width, o.Height)
	}
	if o.Fov <= 0 || o.Fov >= 180 {
		return fmt.Errorf("scene: field of view %.1f outside (0, 180)", o.Fov)
	}
	if o.RussianRoulette < 0 || o.RussianRoulette > 1 {
		return fmt.Errorf("scene: russian roulette probability %.2f outside [0, 1]", o.RussianRoulette)
	}
	if o.MaxDepth < 1 {
		return fmt.Errorf("scene: max depth must be at least 1, got %d", o.MaxDepth)
	}
	return nil
}

// Scene holds the primitives, the global medium and the top-level BVH.
// It is mutable until Build and read-only afterwards.
type Scene struct {
	Options Options

	primitives []geometry.Primitive
	medium     medium.Medium
	bvh        *geometry.BVH
	emitArea   float64
	built      bool
}

// New creates an empty scene
func New(opts Options) *Scene {
	return &Scene{Options: opts}
}

// Add appends a primitive; ownership of the geometry stays with the caller
func (s *Scene) Add(primitives ...geometry.Primitive) error {
	if s.built {
		return ErrAlreadyBuilt
	}
	s.primitives = append(s.primitives, primitives...)
	return nil
}

// SetMedium sets the participating medium filling the scene (nil for vacuum)
func (s *Scene) SetMedium(m medium.Medium) error {
	if s.built {
		return ErrAlreadyBuilt
	}
	s.medium = m
	return nil
}

// Medium returns the global medium, or nil in vacuum
func (s *Scene) Medium() medium.Medium {
	return s.medium
}

// Primitives returns the top-level primitives
func (s *Scene) Primitives() []geometry.Primitive {
	return s.primitives
}

// Build validates the options and constructs the top-level BVH. It may be called once.
func (s *Scene) Build() error {
	if s.built {
		return ErrAlreadyBuilt
	}
	if err := s.Options.Validate(); err != nil {
		return err
	}

	start := time.Now()
	s.bvh = geometry.NewBVH(s.primitives)

	lights := 0
	s.emitArea = 0
	for _, p := range s.primitives {
		if p.HasEmission() {
			lights++
			s.emitArea += p.Area()
		}
	}
	s.built = true

	logger.Infof("built BVH over %d primitives in %s", len(s.primitives), time.Since(start))
	if lights == 0 {
		logger.Warning("scene has no emissive primitives")
	} else {
		logger.Debugf("%d emissive primitives, total area %.2f", lights, s.emitArea)
	}
	return nil
}

// Built reports whether Build has completed
func (s *Scene) Built() bool {
	return s.built
}

// BVH returns the top-level hierarchy, nil before Build
func (s *Scene) BVH() *geometry.BVH {
	return s.bvh
}

// EmissiveArea returns the total area of all emissive primitives
func (s *Scene) EmissiveArea() float64 {
	return s.emitArea
}

// Intersect returns the nearest surface hit along the ray
func (s *Scene) Intersect(ray core.Ray) geometry.Intersection {
	if s.bvh == nil {
		return geometry.NoIntersection()
	}
	return s.bvh.Intersect(ray)
}

// SampleLight picks an emissive primitive with probability proportional to
// its area and a uniform point on it. The emissive set is found by a linear
// scan. The pdf is per unit area over all emissive surfaces, so it is
// 1/EmissiveArea, or 0 when the scene has no lights.
func (s *Scene) SampleLight(sampler core.Sampler) (geometry.Intersection, float64) {
	if s.emitArea <= 0 {
		return geometry.NoIntersection(), 0
	}

	p := sampler.Get1D() * s.emitArea
	accumulated := 0.0
	var last geometry.Primitive
	for _, prim := range s.primitives {
		if !prim.HasEmission() || prim.Area() <= 0 {
			continue
		}
		last = prim
		accumulated += prim.Area()
		if p < accumulated {
			break
		}
	}

	hit, pdf := last.Sample(sampler)
	return hit, pdf * last.Area() / s.emitArea
}

// LightPDF returns the solid angle density with which SampleLight would
// produce the direction from origin to the emissive point hit. Back faces
// of emitters and non-emissive hits have density 0.
func (s *Scene) LightPDF(origin core.Vec3, hit geometry.Intersection) float64 {
	if !hit.Happened || s.emitArea <= 0 || hit.Primitive == nil || !hit.Primitive.HasEmission() {
		return 0
	}

	toLight := hit.Point.Subtract(origin)
	distanceSquared := toLight.LengthSquared()
	if distanceSquared == 0 {
		return 0
	}
	cosLight := -toLight.Normalize().Dot(hit.Normal)
	if cosLight <= 0 {
		return 0
	}
	return distanceSquared / (s.emitArea * math.Max(cosLight, CosEpsilon))
}

// CosEpsilon bounds the light cosine used when converting area densities
// to solid angle densities
const CosEpsilon = 1e-6
