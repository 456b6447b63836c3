package validator

import "errors"

// Configuration errors returned while building a rule registry.
// Evaluation itself never fails: a field is either valid or invalid.
var (
	// ErrEmptyFieldName is returned when a rule has no field name.
	ErrEmptyFieldName = errors.New("rule field name is empty")

	// ErrDuplicateRule is returned when two rules share a field name.
	ErrDuplicateRule = errors.New("duplicate rule for field")

	// ErrMissingPattern is returned when a pattern rule has no compiled expression.
	ErrMissingPattern = errors.New("pattern rule has no pattern")

	// ErrMissingPredicate is returned when a predicate rule has no function.
	ErrMissingPredicate = errors.New("predicate rule has no predicate")

	// ErrUnknownKind is returned for a rule whose kind is neither pattern nor predicate.
	ErrUnknownKind = errors.New("unknown rule kind")

	// ErrInvalidPattern is returned when a pattern or sanitize expression does not compile.
	ErrInvalidPattern = errors.New("invalid rule expression")

	// ErrInvalidRuleFile is returned when a YAML rule file cannot be turned into rules.
	ErrInvalidRuleFile = errors.New("invalid rule file")

	// ErrUnknownPredicate is returned when a rule file names a predicate that is not registered.
	ErrUnknownPredicate = errors.New("unknown predicate")
)
