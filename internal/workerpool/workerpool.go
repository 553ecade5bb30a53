// Package workerpool implements the N-goroutine pool that drives each
// pipeline stage with a package-based work split and a hard barrier
// between stages, grounded on the original's execute_threads and
// raster/parallel.go's WorkerPool.
package workerpool

import (
	"runtime"
	"sync"

	"golang.org/x/sys/cpu"

	"github.com/swraster/salvia/internal/obslog"
)

// Stage package sizes, per spec.md §5.
const (
	DispatchPackageSize = 8 // tile binning
	ViewportPackageSize = 8 // viewport/project transform
	RasterPackageSize   = 1 // rasterize
)

// Config configures a Pool.
type Config struct {
	// Workers is the number of goroutines in the pool. Zero selects
	// runtime.NumCPU().
	Workers int
}

// DefaultConfig mirrors raster/parallel.go's DefaultParallelConfig.
func DefaultConfig() Config {
	return Config{Workers: runtime.NumCPU()}
}

// Pool runs package-sized chunks of work across a fixed set of
// goroutines, with a hard barrier at the end of each RunStage call:
// RunStage does not return until every worker has drained its share of
// the current stage's items.
type Pool struct {
	workers int
}

var loggedFeatures sync.Once

// New creates a pool with cfg.Workers goroutines (or NumCPU if zero).
// It logs, once per process, whether the host CPU exposes the wide SIMD
// feature sets a vectorized quad-coverage path could use; this module
// does not implement that path yet, so the log line is informational.
func New(cfg Config) *Pool {
	n := cfg.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	loggedFeatures.Do(func() {
		obslog.Get().Debug("workerpool: cpu features",
			"x86_avx2", cpu.X86.HasAVX2,
			"x86_sse41", cpu.X86.HasSSE41,
			"arm64_asimd", cpu.ARM64.HasASIMD,
		)
	})
	return &Pool{workers: n}
}

// Workers reports the pool's goroutine count.
func (p *Pool) Workers() int { return p.workers }

// RunStage splits itemCount items into packages of pkgSize, lets the
// pool's goroutines pull packages from a shared queue until it is empty,
// and calls fn(start, end) once per package. It blocks until every package has run — the
// hard barrier spec.md §5 requires between pipeline stages.
func (p *Pool) RunStage(itemCount, pkgSize int, fn func(start, end int)) {
	if itemCount <= 0 {
		return
	}
	if pkgSize <= 0 {
		pkgSize = 1
	}

	type pkg struct{ start, end int }
	var packages []pkg
	for start := 0; start < itemCount; start += pkgSize {
		end := start + pkgSize
		if end > itemCount {
			end = itemCount
		}
		packages = append(packages, pkg{start, end})
	}

	workers := p.workers
	if workers > len(packages) {
		workers = len(packages)
	}
	if workers <= 1 {
		for _, pk := range packages {
			fn(pk.start, pk.end)
		}
		return
	}

	next := make(chan pkg, len(packages))
	for _, pk := range packages {
		next <- pk
	}
	close(next)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for pk := range next {
				fn(pk.start, pk.end)
			}
		}()
	}
	wg.Wait()
}

// PerWorkerSlots returns one slot per goroutine for workers to
// accumulate thread-local results into (e.g. per-worker tile bins)
// during a RunStage call, merged by the caller afterward.
func (p *Pool) PerWorkerSlots() int {
	return p.workers
}
