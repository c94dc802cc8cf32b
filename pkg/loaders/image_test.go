package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}) // Top-left: white
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})     // Top-right: red
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})     // Bottom-left: green
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})     // Bottom-right: blue
	return img
}

func writeImage(t *testing.T, name string, encode func(f *os.File) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := encode(f); err != nil {
		t.Fatalf("Failed to encode %s: %v", name, err)
	}
	return path
}

func TestLoadTexture(t *testing.T) {
	img := testImage()
	tests := []struct {
		name   string
		encode func(f *os.File) error
	}{
		{"test.png", func(f *os.File) error { return png.Encode(f, img) }},
		{"test.bmp", func(f *os.File) error { return bmp.Encode(f, img) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			texture, err := LoadTexture(writeImage(t, tt.name, tt.encode))
			if err != nil {
				t.Fatalf("LoadTexture failed: %v", err)
			}
			if texture.Width != 2 || texture.Height != 2 {
				t.Fatalf("Expected 2x2 texture, got %dx%d", texture.Width, texture.Height)
			}

			// v=1 is the top row of the image
			corners := []struct {
				uv       core.Vec2
				expected core.Vec3
			}{
				{core.NewVec2(0, 1), core.NewVec3(1, 1, 1)},
				{core.NewVec2(1, 1), core.NewVec3(1, 0, 0)},
				{core.NewVec2(0, 0), core.NewVec3(0, 1, 0)},
				{core.NewVec2(1, 0), core.NewVec3(0, 0, 1)},
			}
			for _, c := range corners {
				if got := texture.Evaluate(c.uv); got.Subtract(c.expected).Length() > 0.01 {
					t.Errorf("uv %v: expected %v, got %v", c.uv, c.expected, got)
				}
			}
		})
	}
}

func TestLoadTexture_Errors(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Errorf("Expected an error for a missing file")
	}

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(garbage); err == nil {
		t.Errorf("Expected an error for an undecodable file")
	}
}
