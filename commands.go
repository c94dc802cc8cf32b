package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-volumetric-pathtracer/pkg/geometry"
	"github.com/df07/go-volumetric-pathtracer/pkg/integrator"
	"github.com/df07/go-volumetric-pathtracer/pkg/log"
	"github.com/df07/go-volumetric-pathtracer/pkg/renderer"
)

var logger = log.New("cli")

func setupLogging(ctx *cli.Context) {
	verbosity := 0
	if ctx.GlobalBool("v") {
		verbosity = 1
	}
	if ctx.GlobalBool("vv") {
		verbosity = 2
	}
	log.SetLevel(log.LevelFromVerbosity(verbosity))
}

// renderFrame renders the configured scene and writes it as PNG
func renderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	s, err := createScene(sceneConfigFromContext(ctx))
	if err != nil {
		return err
	}

	in, err := newIntegrator(ctx.String("integrator"), ctx.Float64("light-scale"))
	if err != nil {
		return err
	}

	opts := renderer.Options{
		SamplesPerPixel: ctx.Int("spp"),
		Threads:         ctx.Int("threads"),
		Seed:            ctx.Int64("seed"),
		Progress:        logProgress,
	}
	pixels, stats, err := renderer.Render(s, in, opts)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	stats.Log()

	img := renderer.ToImage(pixels, s.Options.Width, s.Options.Height, ctx.Float64("gamma"))
	out := ctx.String("out")
	if err := renderer.SavePNG(out, img); err != nil {
		return err
	}
	logger.Noticef("frame saved as %s", out)
	return nil
}

// newIntegrator creates the named integrator; lightScale applies to whitted
func newIntegrator(name string, lightScale float64) (integrator.Integrator, error) {
	if integrator.Type(name) == integrator.TypeWhitted {
		return integrator.NewWhitted(integrator.WhittedConfig{LightScale: lightScale}), nil
	}
	return integrator.New(integrator.Type(name))
}

// logProgress reports every tenth of the rows as a progress bar
func logProgress(done, total int) {
	step := max(1, total/10)
	if done%step != 0 && done != total {
		return
	}
	logger.Info(progressBar(done, total, 40))
}

func progressBar(done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = width * done / total
	}
	percent := 0.0
	if total > 0 {
		percent = 100 * float64(done) / float64(total)
	}
	return fmt.Sprintf("[%s%s] %3.0f %%", strings.Repeat("=", filled), strings.Repeat(" ", width-filled), percent)
}

// inspectScene builds the configured scene and prints its BVH statistics
func inspectScene(ctx *cli.Context) error {
	setupLogging(ctx)

	s, err := createScene(sceneConfigFromContext(ctx))
	if err != nil {
		return err
	}
	logger.Noticef("scene hierarchy\n%s", bvhTable(s.BVH(), s.Primitives()))
	return nil
}

// bvhTable formats the statistics of the top-level BVH and of every mesh BVH
func bvhTable(top *geometry.BVH, primitives []geometry.Primitive) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Hierarchy", "Primitives", "Nodes", "Leaves", "Max depth", "Avg leaf depth", "Area", "Emissive"})

	row := func(name string, bvh *geometry.BVH, emissive bool) {
		stats := bvh.Stats()
		table.Append([]string{
			name,
			fmt.Sprintf("%d", bvh.Len()),
			fmt.Sprintf("%d", stats.Nodes),
			fmt.Sprintf("%d", stats.Leaves),
			fmt.Sprintf("%d", stats.MaxDepth),
			fmt.Sprintf("%.2f", stats.AvgLeafDepth),
			fmt.Sprintf("%.1f", bvh.Area()),
			fmt.Sprintf("%t", emissive),
		})
	}

	row("scene", top, false)
	for i, p := range primitives {
		if mesh, ok := p.(*geometry.MeshTriangle); ok {
			row(fmt.Sprintf("mesh %d", i), mesh.BVH(), mesh.HasEmission())
		}
	}
	table.Render()
	return buf.String()
}
