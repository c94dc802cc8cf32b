package material

import (
	"testing"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
)

func TestImageTexture_Bilinear(t *testing.T) {
	// 2x2 texture, row 0 is the top of the image
	black := core.NewVec3(0, 0, 0)
	white := core.NewVec3(1, 1, 1)
	red := core.NewVec3(1, 0, 0)
	blue := core.NewVec3(0, 0, 1)
	tex := NewImageTexture(2, 2, []core.Vec3{
		red, blue, // top
		black, white, // bottom
	})

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"Bottom left", core.NewVec2(0, 0), black},
		{"Bottom right", core.NewVec2(1, 0), white},
		{"Top left", core.NewVec2(0, 1), red},
		{"Top right", core.NewVec2(1, 1), blue},
		{"Center averages all four", core.NewVec2(0.5, 0.5), core.NewVec3(0.5, 0.25, 0.5)},
		{"Bottom edge midpoint", core.NewVec2(0.5, 0), core.NewVec3(0.5, 0.5, 0.5)},
		{"Clamped beyond range", core.NewVec2(3, -2), white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tex.Evaluate(tt.uv)
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestImageTexture_SinglePixel(t *testing.T) {
	c := core.NewVec3(0.2, 0.4, 0.6)
	tex := NewImageTexture(1, 1, []core.Vec3{c})
	if got := tex.Evaluate(core.NewVec2(0.7, 0.3)); got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
}
