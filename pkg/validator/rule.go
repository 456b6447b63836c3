package validator

import (
	"errors"
	"fmt"
	"regexp"
)

// RuleKind selects how a FieldRule judges a value.
type RuleKind int

const (
	// KindPattern matches the trimmed value against a regular expression.
	KindPattern RuleKind = iota + 1
	// KindPredicate delegates to an arbitrary function of the value and form state.
	KindPredicate
)

// String returns the string representation of the rule kind
func (k RuleKind) String() string {
	switch k {
	case KindPattern:
		return "pattern"
	case KindPredicate:
		return "predicate"
	default:
		return "unknown"
	}
}

// PredicateFunc decides validity from the trimmed field value and a read-only
// view of the whole form. It must not retain or mutate the snapshot.
type PredicateFunc func(value string, snap Snapshot) bool

// FieldRule describes how to validate one named field.
type FieldRule struct {
	Name      string
	Kind      RuleKind
	Pattern   *regexp.Regexp
	Predicate PredicateFunc
	// Sanitize, when set, matches characters stripped from raw input.
	Sanitize *regexp.Regexp
	// Message is reported for the field when it is invalid.
	Message string
}

// RuleOption configures a FieldRule built by Pattern or Predicate.
type RuleOption func(*FieldRule)

// WithSanitize attaches a sanitize expression. Panics on bad syntax:
// rules are static configuration and must fail at startup.
func WithSanitize(expr string) RuleOption {
	re := regexp.MustCompile(expr)
	return func(r *FieldRule) { r.Sanitize = re }
}

// WithSanitizeRegexp attaches an already compiled sanitize expression.
func WithSanitizeRegexp(re *regexp.Regexp) RuleOption {
	return func(r *FieldRule) { r.Sanitize = re }
}

// WithMessage sets the message reported when the field is invalid.
func WithMessage(msg string) RuleOption {
	return func(r *FieldRule) {
		if msg != "" {
			r.Message = msg
		}
	}
}

// Pattern builds a pattern rule. The expression is compiled eagerly and
// panics on bad syntax.
func Pattern(name, expr string, opts ...RuleOption) FieldRule {
	return PatternRegexp(name, regexp.MustCompile(expr), opts...)
}

// PatternRegexp builds a pattern rule from a compiled expression.
func PatternRegexp(name string, re *regexp.Regexp, opts ...RuleOption) FieldRule {
	r := FieldRule{Name: name, Kind: KindPattern, Pattern: re}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Predicate builds a predicate rule.
func Predicate(name string, fn PredicateFunc, opts ...RuleOption) FieldRule {
	r := FieldRule{Name: name, Kind: KindPredicate, Predicate: fn}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// CompilePattern is the non-panicking form of Pattern, used for rules read
// from files. An empty sanitize expression means no sanitization.
func CompilePattern(name, expr, sanitize string) (FieldRule, error) {
	re, err := compileExpr(name, "pattern", expr)
	if err != nil {
		return FieldRule{}, err
	}
	r := PatternRegexp(name, re)
	if sanitize != "" {
		if r.Sanitize, err = compileExpr(name, "sanitize", sanitize); err != nil {
			return FieldRule{}, err
		}
	}
	return r, nil
}

func compileExpr(field, label, expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Join(ErrInvalidPattern, fmt.Errorf("field %q %s: %w", field, label, err))
	}
	return re, nil
}

// message returns the configured message or a generic fallback.
func (r FieldRule) message() string {
	if r.Message != "" {
		return r.Message
	}
	return "is invalid"
}

func (r FieldRule) check() error {
	if r.Name == "" {
		return ErrEmptyFieldName
	}
	switch r.Kind {
	case KindPattern:
		if r.Pattern == nil {
			return fmt.Errorf("%w: %s", ErrMissingPattern, r.Name)
		}
	case KindPredicate:
		if r.Predicate == nil {
			return fmt.Errorf("%w: %s", ErrMissingPredicate, r.Name)
		}
	default:
		return fmt.Errorf("%w %d: %s", ErrUnknownKind, r.Kind, r.Name)
	}
	return nil
}
