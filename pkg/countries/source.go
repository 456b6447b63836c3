package countries

import (
	"context"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FallbackOption is the single option offered when the list cannot be fetched,
// so the country field is never unsatisfiable.
const FallbackOption = "Other"

// Source provides the options of the country selector.
type Source interface {
	Countries(ctx context.Context) ([]string, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]string, error)

func (f SourceFunc) Countries(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// Static returns a Source that always yields a copy of names.
func Static(names ...string) Source {
	return SourceFunc(func(context.Context) ([]string, error) {
		if len(names) == 0 {
			return nil, ErrEmptyList
		}
		return slices.Clone(names), nil
	})
}

// SortNames sorts names in place by the collation rules of tag and drops
// empty entries and duplicates.
func SortNames(names []string, tag language.Tag) []string {
	out := names[:0]
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	collate.New(tag).SortStrings(out)
	return slices.Compact(out)
}
