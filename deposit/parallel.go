package deposit

import (
	"runtime"
	"sync"

	"github.com/appcell/turbvis/geom"
)

// NumCores is the default number of worker goroutines used by
// DepositParallel.
var NumCores = runtime.NumCPU()

// DepositParallel deposits the particles in xs onto a fresh grid covering
// dom, splitting the sequence across workers goroutines. Each worker
// accumulates into its own partial grid and the partials are merged by
// summation, so no cell update races another. Deposition is commutative, so
// the result matches a serial run up to float summation order.
//
// If workers is not positive, NumCores is used.
func DepositParallel(
	dom Domain, intr Depositor, xs []geom.Vec, vals []float64, workers int,
) (*Grid, Stats, error) {
	checkLens(xs, vals)

	g := NewGrid(dom)
	total := len(xs)
	if total == 0 {
		return g, Stats{}, nil
	}

	if workers <= 0 {
		workers = NumCores
	}
	if workers > total {
		workers = total
	}

	grids := make([]*Grid, workers)
	statsList := make([]Stats, workers)
	errs := make([]error, workers)

	chunk := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > total {
			end = total
		}
		if start >= total {
			break
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			grids[w] = NewGrid(dom)
			errs[w] = intr.Deposit(
				grids[w], xs[start:end], vals[start:end], &statsList[w],
			)
		}(w, start, end)
	}
	wg.Wait()

	stats := Stats{}
	for w := range grids {
		if grids[w] == nil {
			continue
		}
		if errs[w] != nil {
			return nil, stats, errs[w]
		}
		g.Merge(grids[w])
		stats.Add(&statsList[w])
	}

	return g, stats, nil
}
