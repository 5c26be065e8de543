// Package pool provides the bounded-concurrency worker pool the engine
// uses for its three internally data-parallel workloads (spec §5):
// Karatsuba recursion, product-tree construction/evaluation, and batch
// proof verification. Partitioning only kicks in above a tunable
// threshold, so small inputs never pay task-scheduling overhead.
package pool

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// DefaultParallelThreshold is the default granularity below which work is
// run inline rather than handed to the pool (spec §5: "default 1024
// scalars").
const DefaultParallelThreshold = 1024

// Pool bounds the number of goroutines concurrently executing tasks
// submitted via Parallel. It holds no mutable shared state beyond the
// semaphore, matching spec §5's "no shared mutable state" requirement for
// parallel tasks.
type Pool struct {
	sem *semaphore.Weighted
	n   int64
}

// NewPool creates a pool with the given worker count. A count <= 0 uses
// runtime.GOMAXPROCS(0), mirroring the teacher's pool.NewPool(0) idiom for
// "use all available cores".
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{sem: semaphore.NewWeighted(int64(workers)), n: int64(workers)}
}

// TearDown releases pool resources. Present for API parity with the
// teacher's pl.TearDown() call sites; the semaphore-backed pool has
// nothing to release but this keeps call sites uniform if the
// implementation grows a worker-goroutine pool later.
func (p *Pool) TearDown() {}

// Workers reports the configured concurrency bound.
func (p *Pool) Workers() int { return int(p.n) }

// Parallel runs every fn concurrently, bounded by the pool's worker count,
// and blocks until all have returned. Intended for a small, fixed set of
// independent tasks (e.g. the two Karatsuba sub-products).
func (p *Pool) Parallel(fns ...func()) {
	if len(fns) == 0 {
		return
	}
	if len(fns) == 1 {
		fns[0]()
		return
	}
	ctx := context.Background()
	done := make(chan struct{}, len(fns))
	for _, fn := range fns {
		fn := fn
		_ = p.sem.Acquire(ctx, 1)
		go func() {
			defer p.sem.Release(1)
			defer func() { done <- struct{}{} }()
			fn()
		}()
	}
	for range fns {
		<-done
	}
}

// ParallelFor runs fn over each index of [0, n) on its own goroutine, at
// most the pool's worker count at a time, provided n is at least
// threshold; otherwise it runs sequentially inline. Used by batch
// verification.
func (p *Pool) ParallelFor(n, threshold int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if n < threshold {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	ctx := context.Background()
	done := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		i := i
		_ = p.sem.Acquire(ctx, 1)
		go func() {
			defer p.sem.Release(1)
			defer func() { done <- struct{}{} }()
			fn(i)
		}()
	}
	for i := 0; i < n; i++ {
		<-done
	}
}
