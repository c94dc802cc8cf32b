package renderer

import (
	"sync"
	"testing"
)

func TestSplitRows(t *testing.T) {
	tests := []struct {
		name     string
		height   int
		threads  int
		expected []band
	}{
		{"even", 6, 3, []band{{0, 0, 2}, {1, 2, 4}, {2, 4, 6}}},
		{"remainder in last band", 10, 3, []band{{0, 0, 3}, {1, 3, 6}, {2, 6, 10}}},
		{"single thread", 5, 1, []band{{0, 0, 5}}},
		{"more threads than rows", 2, 8, []band{{0, 0, 1}, {1, 1, 2}}},
		{"no rows", 0, 4, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitRows(tt.height, tt.threads)
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d bands, got %d: %v", len(tt.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Band %d: expected %v, got %v", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestRunBands_CoversEveryRowOnce(t *testing.T) {
	const height = 37
	bands := splitRows(height, 6)

	var mu sync.Mutex
	counts := make([]int, height)
	results := runBands(bands, func(b band) {
		for j := b.Start; j < b.End; j++ {
			mu.Lock()
			counts[j]++
			mu.Unlock()
		}
	})

	for j, c := range counts {
		if c != 1 {
			t.Errorf("Row %d rendered %d times", j, c)
		}
	}
	for i, r := range results {
		if r.Band.Index != i {
			t.Errorf("Result %d belongs to band %d", i, r.Band.Index)
		}
	}
}
