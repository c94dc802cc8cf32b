package renderer

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
)

func TestToImage(t *testing.T) {
	pixels := []core.Vec3{
		core.NewVec3(0.25, 2, -1), core.Splat(1),
		core.Vec3{}, core.Splat(0.5),
	}
	img := ToImage(pixels, 2, 2, 0.5)

	tests := []struct {
		x, y     int
		expected color.RGBA
	}{
		{0, 0, color.RGBA{127, 255, 0, 255}}, // 0.25^0.5 = 0.5; clamped above and below
		{1, 0, color.RGBA{255, 255, 255, 255}},
		{0, 1, color.RGBA{0, 0, 0, 255}},
		{1, 1, color.RGBA{180, 180, 180, 255}}, // 255·√0.5 = 180.3
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.expected {
			t.Errorf("Pixel (%d,%d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
		}
	}
}

func TestToImage_SizeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected a panic for a short framebuffer")
		}
	}()
	ToImage(make([]core.Vec3, 3), 2, 2, DefaultGamma)
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	img := ToImage([]core.Vec3{core.Splat(1), {}}, 2, 1, DefaultGamma)
	if err := SavePNG(path, img); err != nil {
		t.Fatal(err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds().Dx() != 2 || decoded.Bounds().Dy() != 1 {
		t.Errorf("Unexpected bounds %v", decoded.Bounds())
	}
}
