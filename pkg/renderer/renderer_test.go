package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
	"github.com/df07/go-volumetric-pathtracer/pkg/integrator"
	"github.com/df07/go-volumetric-pathtracer/pkg/scene"
)

func cornellScene(t *testing.T, size int) *scene.Scene {
	t.Helper()
	opts := scene.DefaultOptions()
	opts.Width, opts.Height = size, size
	s := scene.NewCornellBox(opts, scene.DefaultCornellMaterials())
	if err := s.Build(); err != nil {
		t.Fatal(err)
	}
	return s
}

func meanLuminance(pixels []core.Vec3) float64 {
	sum := 0.0
	for _, p := range pixels {
		sum += p.Luminance()
	}
	return sum / float64(len(pixels))
}

// meanSquaredDifference compares two independent renders of the same image;
// its expectation is twice the per-pixel estimator variance
func meanSquaredDifference(a, b []core.Vec3) float64 {
	sum := 0.0
	for i := range a {
		d := a[i].Luminance() - b[i].Luminance()
		sum += d * d
	}
	return sum / float64(len(a))
}

func TestRender_NotBuilt(t *testing.T) {
	s := scene.New(scene.DefaultOptions())
	_, _, err := Render(s, integrator.NewPathTracer(), DefaultOptions())
	if !errors.Is(err, scene.ErrNotBuilt) {
		t.Errorf("Expected ErrNotBuilt, got %v", err)
	}
}

func TestRender_InvalidOptions(t *testing.T) {
	s := cornellScene(t, 4)
	for _, opts := range []Options{
		{SamplesPerPixel: 0, Threads: 1},
		{SamplesPerPixel: 4, Threads: -1},
	} {
		if _, _, err := Render(s, integrator.NewPathTracer(), opts); !errors.Is(err, ErrInvalidOptions) {
			t.Errorf("Options %+v: expected ErrInvalidOptions, got %v", opts, err)
		}
	}
}

func TestRender_DeterministicAndComplete(t *testing.T) {
	s := cornellScene(t, 12)
	rows := 0
	opts := Options{SamplesPerPixel: 4, Threads: 5, Seed: 7, Progress: func(done, total int) { rows = done }}

	first, stats, err := Render(s, integrator.NewPathTracer(), opts)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := Render(s, integrator.NewPathTracer(), opts)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != 12*12 {
		t.Fatalf("Expected 144 pixels, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Pixel %d differs between identical renders: %v vs %v", i, first[i], second[i])
		}
	}
	if rows != 12 {
		t.Errorf("Expected progress to reach 12 rows, got %d", rows)
	}
	if len(stats.Bands) != 5 || stats.Bands[4].EndRow != 12 {
		t.Errorf("Unexpected bands %+v", stats.Bands)
	}
	if stats.TotalSamples != 12*12*4 {
		t.Errorf("Expected %d samples, got %d", 12*12*4, stats.TotalSamples)
	}
	if stats.MeanLuminance <= 0 {
		t.Errorf("Expected a lit image, got mean luminance %f", stats.MeanLuminance)
	}
}

func TestRender_VarianceDecreasesWithSamples(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping convergence test in short mode")
	}
	s := cornellScene(t, 16)
	pt := integrator.NewPathTracer()

	render := func(spp int, seed int64) []core.Vec3 {
		pixels, _, err := Render(s, pt, Options{SamplesPerPixel: spp, Threads: 4, Seed: seed})
		if err != nil {
			t.Fatal(err)
		}
		return pixels
	}

	low1, low2 := render(16, 1), render(16, 100)
	high1, high2 := render(256, 1), render(256, 100)

	lowVariance := meanSquaredDifference(low1, low2)
	highVariance := meanSquaredDifference(high1, high2)
	if highVariance >= lowVariance {
		t.Errorf("Expected variance to drop from 16 to 256 spp: %g -> %g", lowVariance, highVariance)
	}

	lowMean, highMean := meanLuminance(low1), meanLuminance(high1)
	if math.Abs(lowMean-highMean)/highMean > 0.1 {
		t.Errorf("Mean radiance drifted between 16 spp (%f) and 256 spp (%f)", lowMean, highMean)
	}
}

func TestRender_WhittedCornell(t *testing.T) {
	s := cornellScene(t, 8)
	pixels, _, err := Render(s, integrator.NewWhitted(integrator.DefaultWhittedConfig()), Options{SamplesPerPixel: 1, Threads: 2})
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range pixels {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
			t.Fatalf("Pixel %d is NaN", i)
		}
	}
	if meanLuminance(pixels) <= 0 {
		t.Errorf("Expected a lit Whitted image")
	}
}
