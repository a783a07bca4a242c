// Package paginate retrieves result sets that the portal serves in fixed
// size pages behind a count-only request.
package paginate

import (
	"context"
	"strconv"

	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
)

// PageSize is the largest page the portal returns.
const PageSize = 500

// Fetcher describes how to count and page through one result set.
type Fetcher[T any] struct {
	// Count returns the total number of results.
	Count func(ctx context.Context) (int, error)
	// Page returns the results starting at offset.
	Page func(ctx context.Context, offset int) ([]T, error)
	// Size overrides PageSize when non-zero.
	Size int
}

// Pages returns how many pages of size are needed for total results.
func Pages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Offsets returns the page offsets for total results in request order.
func Offsets(total, size int) []int {
	return lo.Times(Pages(total, size), func(i int) int {
		return i * size
	})
}

// Fetch counts the results, then requests every page in ascending offset
// order and concatenates them. A failed request aborts the whole fetch.
// A zero count yields an empty, non-nil slice.
func (f Fetcher[T]) Fetch(ctx context.Context) ([]T, error) {
	size := f.Size
	if size == 0 {
		size = PageSize
	}

	total, err := f.Count(ctx)
	if err != nil {
		return nil, failure.Wrap(err)
	}

	results := make([]T, 0, total)
	for _, offset := range Offsets(total, size) {
		if err := ctx.Err(); err != nil {
			return nil, failure.Wrap(err)
		}
		page, err := f.Page(ctx, offset)
		if err != nil {
			return nil, failure.Wrap(err, failure.Context{"offset": strconv.Itoa(offset)})
		}
		results = append(results, page...)
	}
	return results, nil
}
