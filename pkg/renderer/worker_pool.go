package renderer

import (
	"sync"
	"time"
)

// band is a contiguous range of image rows [Start, End) owned by one worker
type band struct {
	Index int
	Start int
	End   int
}

// bandResult reports the work done by one worker
type bandResult struct {
	Band    band
	Elapsed time.Duration
}

// splitRows divides height rows into at most threads contiguous bands of
// height/threads rows; the last band absorbs the remainder
func splitRows(height, threads int) []band {
	if height <= 0 {
		return nil
	}
	if threads > height {
		threads = height
	}
	if threads < 1 {
		threads = 1
	}

	rows := height / threads
	bands := make([]band, threads)
	for i := range bands {
		bands[i] = band{Index: i, Start: i * rows, End: (i + 1) * rows}
	}
	bands[threads-1].End = height
	return bands
}

// runBands starts one goroutine per band, waits for all of them and
// returns their results ordered by band index
func runBands(bands []band, work func(b band)) []bandResult {
	results := make([]bandResult, len(bands))

	var wg sync.WaitGroup
	for i, b := range bands {
		wg.Add(1)
		go func(i int, b band) {
			defer wg.Done()
			start := time.Now()
			work(b)
			// Each worker writes only its own slot
			results[i] = bandResult{Band: b, Elapsed: time.Since(start)}
		}(i, b)
	}
	wg.Wait()

	return results
}
