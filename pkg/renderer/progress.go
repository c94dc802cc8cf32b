package renderer

import "sync"

// Progress counts completed rows across all render workers
type Progress struct {
	mu       sync.Mutex
	done     int
	total    int
	callback func(done, total int)
}

// NewProgress creates a counter for total rows. callback may be nil; it is
// called with the lock held, so calls never interleave and done only grows.
func NewProgress(total int, callback func(done, total int)) *Progress {
	return &Progress{total: total, callback: callback}
}

// Increment records one more finished row
func (p *Progress) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	if p.callback != nil {
		p.callback(p.done, p.total)
	}
}

// Done returns the number of finished rows
func (p *Progress) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Fraction returns the finished share of rows in [0, 1]
func (p *Progress) Fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.total == 0 {
		return 1
	}
	return float64(p.done) / float64(p.total)
}
