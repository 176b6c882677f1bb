package gravity

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"
)

func clamp[T constraints.Ordered](in, lo, hi T) T {
	if in > hi {
		return hi
	} else if in < lo {
		return lo
	}
	return in
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// parallelRanges splits [0, n) into workers contiguous ranges whose bounds
// are multiples of align, except for the final n, and calls fn on each
// range in its own goroutine. A panic in fn is raised again on the
// calling goroutine once all ranges are done.
func parallelRanges(n, align, workers int, fn func(lo, hi int)) {
	align = max(align, 1)
	units := (n + align - 1) / align
	workers = min(workers, units)
	if workers <= 1 {
		fn(0, n)
		return
	}
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		lo := i * units / workers * align
		hi := min((i+1)*units/workers*align, n)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Errorf("range [%d, %d): %v", lo, hi, r)
				}
			}()
			fn(lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}
}
