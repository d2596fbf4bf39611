package ncm

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Fetch requests rawURL and decodes the response into a new T.
func Fetch[T any](ctx context.Context, client Client, rawURL string, payload any) (*T, error) {
	var result T
	if err := client.Request(ctx, rawURL, payload, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// SplitBatches splits items into consecutive batches of at most size items.
// A size outside 1..MaxBatchSize is clamped to MaxBatchSize.
func SplitBatches[T any](items []T, size int) [][]T {
	if size <= 0 || size > MaxBatchSize {
		size = MaxBatchSize
	}

	if len(items) == 0 {
		return nil
	}

	return slices.Collect(slices.Chunk(items, size))
}

// FetchBatches runs fetch concurrently for every batch of items and returns
// the results in batch order. The first failing batch cancels the others.
func FetchBatches[T, R any](
	ctx context.Context,
	items []T,
	size int,
	fetch func(ctx context.Context, batch []T) (R, error),
) ([]R, error) {
	batches := SplitBatches(items, size)
	results := make([]R, len(batches))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentBatches)

	for i, batch := range batches {
		group.Go(func() error {
			result, err := fetch(groupCtx, batch)
			if err != nil {
				return fmt.Errorf("batch %d of %d: %w", i+1, len(batches), err)
			}

			results[i] = result

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
