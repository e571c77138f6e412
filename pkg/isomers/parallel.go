package isomers

import (
	"context"
	"math/big"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// checkEvery is how many centroid partitions TreePermutationsContext
// visits between context checks.
const checkEvery = 1024

// TreePermutationsContext computes TreePermutations on the calling
// goroutine, streaming the centroid partitions without materializing them.
// ctx is checked every few partitions; a cancelled context returns
// ctx.Err().
func TreePermutationsContext(ctx context.Context, vertices, degree int) (*big.Int, error) {
	checkTree("TreePermutationsContext", vertices, degree)
	if vertices == 1 {
		return big.NewInt(1), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := NewCounter(vertices/2, degree-1)
	total := new(big.Int)
	i := 0
	for q := range centroidPartitions(vertices, degree).All() {
		if i++; i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		total.Add(total, c.product(q))
	}
	if vertices%2 == 0 {
		total.Add(total, c.bicentral(vertices/2))
	}
	return total, nil
}

// TreePermutationsParallel computes TreePermutations by splitting the
// centroid partitions across workers goroutines. If workers <= 0,
// GOMAXPROCS is used.
//
// The partitions are materialized first so each worker reads independent
// snapshots, and each worker fills a private Counter. ctx is checked
// between partitions; a cancelled context returns ctx.Err().
func TreePermutationsParallel(ctx context.Context, vertices, degree, workers int) (*big.Int, error) {
	checkTree("TreePermutationsParallel", vertices, degree)
	if vertices == 1 {
		return big.NewInt(1), nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	parts := centroidPartitions(vertices, degree).Collect()
	workers = max(min(workers, len(parts)), 1)

	partial := make([]*big.Int, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			c := NewCounter(vertices/2, degree-1)
			sum := new(big.Int)
			for i := w; i < len(parts); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				sum.Add(sum, c.product(&parts[i]))
			}
			partial[w] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := new(big.Int)
	for _, s := range partial {
		total.Add(total, s)
	}
	if vertices%2 == 0 {
		total.Add(total, NewCounter(vertices/2, degree-1).bicentral(vertices/2))
	}
	return total, nil
}
