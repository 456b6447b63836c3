// Package countries supplies the option list of the country selector.
//
// The list is a host concern kept apart from validation: the validator only
// requires that a non-empty country is selected. Sources compose as
// decorators:
//
//	src := countries.Fallback(
//	    countries.Cached(
//	        countries.RedisCached(countries.NewRESTSource(), rdb, "", 24*time.Hour, log),
//	        cache.NewLRUCache[string, []string](1, cache.WithTTL(time.Hour)),
//	    ),
//	    log,
//	)
//
// RESTSource retries network errors, 429 and 5xx responses with exponential
// backoff and sorts names with locale collation. Fallback guarantees at least
// one selectable option ("Other") when everything else fails, so the country
// field is never permanently unsatisfiable.
package countries
