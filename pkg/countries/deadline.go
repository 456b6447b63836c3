package countries

import (
	"context"
	"time"
)

// Deadline bounds a whole call to src, retries included, by d. It keeps a
// slow upstream from outliving the HTTP write timeout of the request that
// asked for the list. Non-positive d returns src unchanged.
func Deadline(src Source, d time.Duration) Source {
	if d <= 0 {
		return src
	}
	return SourceFunc(func(ctx context.Context) ([]string, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return src.Countries(ctx)
	})
}
