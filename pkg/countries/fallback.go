package countries

import (
	"context"
	"log/slog"
	"slices"
)

// Fallback wraps a source so that it never fails: any error, or an empty
// list, yields the given options (FallbackOption when none are given). The
// original error is logged, not returned.
func Fallback(src Source, log *slog.Logger, options ...string) Source {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if len(options) == 0 {
		options = []string{FallbackOption}
	}
	return SourceFunc(func(ctx context.Context) ([]string, error) {
		names, err := src.Countries(ctx)
		if err == nil && len(names) > 0 {
			return names, nil
		}
		if err == nil {
			err = ErrEmptyList
		}
		log.WarnContext(ctx, "country list unavailable, using fallback",
			slog.Any("error", err),
			slog.Any("options", options),
		)
		return slices.Clone(options), nil
	})
}
