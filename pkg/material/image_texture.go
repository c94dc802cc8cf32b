package material

import (
	"math"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
)

// ImageTexture provides color from a decoded 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], components in [0,1]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the texture with bilinear filtering.
// UVs are clamped to [0,1]; v=0 is the bottom row of the image.
func (t *ImageTexture) Evaluate(uv core.Vec2) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return core.Vec3{}
	}

	u := math.Max(0, math.Min(1, uv.X))
	v := math.Max(0, math.Min(1, uv.Y))

	// Continuous pixel coordinates, flipped so that row 0 is the top
	x := u * float64(t.Width-1)
	y := (1 - v) * float64(t.Height-1)

	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := int(math.Ceil(x)), int(math.Ceil(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	top := t.at(x0, y0).Multiply(1 - fx).Add(t.at(x1, y0).Multiply(fx))
	bottom := t.at(x0, y1).Multiply(1 - fx).Add(t.at(x1, y1).Multiply(fx))
	return top.Multiply(1 - fy).Add(bottom.Multiply(fy))
}

func (t *ImageTexture) at(x, y int) core.Vec3 {
	return t.Pixels[y*t.Width+x]
}
