package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
)

// BandStats describes the rows rendered by one worker
type BandStats struct {
	Index      int
	StartRow   int
	EndRow     int // Exclusive
	RenderTime time.Duration
}

// RenderStats contains statistics about a finished render
type RenderStats struct {
	Width           int
	Height          int
	SamplesPerPixel int
	TotalSamples    int // Camera rays traced
	RenderTime      time.Duration
	MeanLuminance   float64 // Mean pixel luminance of the linear image
	StdDevLuminance float64 // Standard deviation of pixel luminance
	Bands           []BandStats
}

// luminanceStats returns the mean and standard deviation of pixel luminance
func luminanceStats(pixels []core.Vec3) (float64, float64) {
	if len(pixels) == 0 {
		return 0, 0
	}
	luminance := make([]float64, len(pixels))
	for i, p := range pixels {
		luminance[i] = p.Luminance()
	}
	if len(luminance) == 1 {
		return luminance[0], 0
	}
	return stat.MeanStdDev(luminance, nil)
}

// Table formats the per-band timings and image totals as a text table
func (rs RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Band", "Rows", "% of frame", "Render time"})
	for _, b := range rs.Bands {
		rows := b.EndRow - b.StartRow
		percent := 0.0
		if rs.Height > 0 {
			percent = 100 * float64(rows) / float64(rs.Height)
		}
		table.Append([]string{
			fmt.Sprintf("%d", b.Index),
			fmt.Sprintf("%d-%d", b.StartRow, b.EndRow-1),
			fmt.Sprintf("%02.1f %%", percent),
			b.RenderTime.String(),
		})
	}
	table.SetFooter([]string{
		fmt.Sprintf("%dx%d @ %d spp", rs.Width, rs.Height, rs.SamplesPerPixel),
		fmt.Sprintf("lum %.4f ± %.4f", rs.MeanLuminance, rs.StdDevLuminance),
		"TOTAL",
		rs.RenderTime.String(),
	})
	table.Render()
	return buf.String()
}

// Log writes the statistics table to the renderer logger
func (rs RenderStats) Log() {
	logger.Noticef("render statistics\n%s", rs.Table())
}
