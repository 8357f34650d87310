// Package parallel provides a small worker pool for row-parallel grid
// processing.
//
// Grid filters write each output row independently, reading shared input
// that nobody mutates. Splitting the rows into contiguous bands and handing
// one band to each worker is therefore enough; no locking is needed around
// the pixel data itself.
package parallel

import (
	"runtime"
	"sync"
)

// RowPool is a fixed set of goroutines that process bands of rows.
//
// A nil *RowPool is valid and runs all work inline on the calling goroutine.
//
// Thread safety: RowPool is safe for concurrent use. Rows must not be called
// from inside a band callback.
type RowPool struct {
	// workers is the number of worker goroutines.
	workers int

	// tasks is the shared work queue.
	tasks chan func()

	// mu guards closed and keeps Close from racing with queue sends.
	mu     sync.RWMutex
	closed bool

	// wg waits for all workers to finish.
	wg sync.WaitGroup
}

// NewRowPool creates a pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewRowPool(workers int) *RowPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Buffer size: a few bands per worker hides queueing latency.
	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &RowPool{
		workers: workers,
		tasks:   make(chan func(), queueSize),
	}

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *RowPool) worker() {
	defer p.wg.Done()

	for task := range p.tasks {
		task()
	}
}

// Bands returns how many bands Rows would split n rows into.
func (p *RowPool) Bands(n int) int {
	if p == nil || n <= 1 {
		return 1
	}
	if p.workers < n {
		return p.workers
	}
	return n
}

// Rows splits the half-open range [0, n) into contiguous bands, calls fn
// once per band and waits until every band is done. Bands never overlap
// and together cover the whole range.
//
// On a nil or closed pool, or when only one band is needed, fn(0, n) runs
// on the calling goroutine.
func (p *RowPool) Rows(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	bands := p.Bands(n)
	if bands <= 1 {
		fn(0, n)
		return
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		fn(0, n)
		return
	}

	size := (n + bands - 1) / bands

	var done sync.WaitGroup
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		done.Add(1)
		p.tasks <- func() {
			defer done.Done()
			fn(start, end)
		}
	}
	p.mu.RUnlock()

	done.Wait()
}

// Close stops the workers after all queued bands have run.
// Close is safe to call multiple times. Rows keeps working after Close,
// running inline.
func (p *RowPool) Close() {
	if p == nil {
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool, or 1 for a nil pool.
func (p *RowPool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workers
}
