// Package renderer turns a built scene into a framebuffer by sampling every
// pixel with an integrator, splitting the image into row bands rendered in
// parallel.
package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
	"github.com/df07/go-volumetric-pathtracer/pkg/integrator"
	"github.com/df07/go-volumetric-pathtracer/pkg/log"
	"github.com/df07/go-volumetric-pathtracer/pkg/scene"
)

// ErrInvalidOptions is returned for render options no render can use
var ErrInvalidOptions = errors.New("renderer: invalid options")

var logger = log.New("renderer")

// Options contains the sampling and threading configuration of a render
type Options struct {
	SamplesPerPixel int
	Threads         int   // Number of row bands; 0 uses every CPU
	Seed            int64 // Band i samples from a generator seeded with Seed+i
	// Progress, if set, is called after every finished row
	Progress func(done, total int)
}

// DefaultOptions returns the settings used by the CLI
func DefaultOptions() Options {
	return Options{
		SamplesPerPixel: 16,
		Threads:         runtime.NumCPU(),
		Seed:            42,
	}
}

// Validate checks the options, accepting 0 threads as "every CPU"
func (o Options) Validate() error {
	if o.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidOptions, o.SamplesPerPixel)
	}
	if o.Threads < 0 {
		return fmt.Errorf("%w: negative thread count %d", ErrInvalidOptions, o.Threads)
	}
	return nil
}

// Render estimates every pixel of the scene's image with spp stratified
// camera rays and returns the row-major linear RGB framebuffer. The result
// is deterministic for a given seed and thread count.
func Render(s *scene.Scene, in integrator.Integrator, opts Options) ([]core.Vec3, RenderStats, error) {
	if !s.Built() {
		return nil, RenderStats{}, scene.ErrNotBuilt
	}
	if err := opts.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	threads := opts.Threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}

	width, height := s.Options.Width, s.Options.Height
	spp := opts.SamplesPerPixel
	camera := NewCamera(s.Options)
	strata := Strata(spp)
	pixels := make([]core.Vec3, width*height)
	progress := NewProgress(height, opts.Progress)
	bands := splitRows(height, threads)

	logger.Infof("rendering %dx%d at %d spp on %d threads", width, height, spp, len(bands))
	start := time.Now()

	results := runBands(bands, func(b band) {
		sampler := core.NewSeededSampler(opts.Seed + int64(b.Index))
		for j := b.Start; j < b.End; j++ {
			for i := 0; i < width; i++ {
				var sum core.Vec3
				for k := 0; k < spp; k++ {
					sum = sum.Add(in.RayColor(camera.Ray(i, j, k, strata), s, sampler))
				}
				pixels[j*width+i] = sum.Multiply(1 / float64(spp))
			}
			progress.Increment()
		}
	})

	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: spp,
		TotalSamples:    width * height * spp,
		RenderTime:      time.Since(start),
	}
	stats.MeanLuminance, stats.StdDevLuminance = luminanceStats(pixels)
	for _, r := range results {
		stats.Bands = append(stats.Bands, BandStats{
			Index:      r.Band.Index,
			StartRow:   r.Band.Start,
			EndRow:     r.Band.End,
			RenderTime: r.Elapsed,
		})
	}

	logger.Infof("render finished in %s", stats.RenderTime)
	return pixels, stats, nil
}
