package renderer

import (
	"math"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
	"github.com/df07/go-volumetric-pathtracer/pkg/scene"
)

// Camera is a pinhole camera at the scene's eye position looking down +Z
// with +Y up. Image column 0 maps to +X.
type Camera struct {
	eye    core.Vec3
	width  int
	height int
	scale  float64 // tan(fov/2)
	aspect float64
}

// NewCamera creates the camera described by the scene options
func NewCamera(opts scene.Options) *Camera {
	return &Camera{
		eye:    opts.Eye,
		width:  opts.Width,
		height: opts.Height,
		scale:  math.Tan(opts.Fov * math.Pi / 360),
		aspect: float64(opts.Width) / float64(opts.Height),
	}
}

// Strata returns the side of the sub-pixel grid used to place spp samples
func Strata(spp int) int {
	return int(math.Ceil(math.Sqrt(float64(spp))))
}

// Ray returns the k-th sample ray through pixel (i, j). Samples sit at the
// centers of a strata×strata grid of sub-pixels, filled row by row.
func (c *Camera) Ray(i, j, k, strata int) core.Ray {
	inv := 1 / float64(strata)
	screenX := float64(i) + inv*0.5 + inv*float64(k%strata)
	screenY := float64(j) + inv*0.5 + inv*float64(k/strata)

	x := (2*screenX/float64(c.width) - 1) * c.aspect * c.scale
	y := (1 - 2*screenY/float64(c.height)) * c.scale
	return core.NewRay(c.eye, core.NewVec3(-x, y, 1))
}
