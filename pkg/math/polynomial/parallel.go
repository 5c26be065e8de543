package polynomial

import "github.com/cryptographyteam/zk-thresh-pro/pkg/pool"

// defaultPool backs the package's internal data-parallel workloads
// (Karatsuba recursion, product-tree build/eval) (spec §5). The package
// takes no caller-supplied *pool.Pool; all of its parallel work runs here.
var defaultPool = pool.NewPool(0)

// runParallel runs fns concurrently via the default pool. Karatsuba only
// calls this once per recursion level above the crossover, so task counts
// stay small and scheduling overhead stays negligible.
func runParallel(fns ...func()) {
	defaultPool.Parallel(fns...)
}
