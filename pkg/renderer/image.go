package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
)

// DefaultGamma is the display exponent applied by ToImage
const DefaultGamma = 0.6

// ToImage tone maps a row-major linear framebuffer into an 8-bit image:
// every channel is clamped to [0, 1], raised to gamma and scaled to 255.
// It panics if the framebuffer does not hold width×height pixels.
func ToImage(pixels []core.Vec3, width, height int, gamma float64) *image.RGBA {
	if len(pixels) != width*height {
		panic(fmt.Sprintf("renderer: framebuffer holds %d pixels, want %dx%d", len(pixels), width, height))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := pixels[y*width+x].Clamp(0, 1)
			img.SetRGBA(x, y, color.RGBA{
				R: toByte(c.X, gamma),
				G: toByte(c.Y, gamma),
				B: toByte(c.Z, gamma),
				A: 255,
			})
		}
	}
	return img
}

func toByte(v, gamma float64) uint8 {
	return uint8(255 * math.Pow(v, gamma))
}

// SavePNG writes the image to path as PNG
func SavePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
