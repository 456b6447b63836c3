package validator

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// NonEmpty is valid when the trimmed value has at least one character.
func NonEmpty() PredicateFunc {
	return func(value string, _ Snapshot) bool {
		return value != ""
	}
}

// MinLength is valid when the trimmed value has at least n characters.
func MinLength(n int) PredicateFunc {
	return func(value string, _ Snapshot) bool {
		return utf8.RuneCountInString(value) >= n
	}
}

// EqualsField is valid when the value is non-empty and equals the current
// raw value of another field.
func EqualsField(other string) PredicateFunc {
	return func(value string, snap Snapshot) bool {
		return value != "" && value == snap.Value(other)
	}
}

// GroupChecked is valid when any member of the group is checked. The field
// value is ignored.
func GroupChecked(group string) PredicateFunc {
	return func(_ string, snap Snapshot) bool {
		return snap.Checked(group)
	}
}

// PredicateFactory builds a predicate for a field from rule-file arguments.
type PredicateFactory func(field string, args []string) (PredicateFunc, error)

// PredicateSet maps rule-file predicate names to factories.
type PredicateSet map[string]PredicateFactory

// DefaultPredicates returns the predicates available to rule files:
// nonEmpty, minLength(n), equalsField(other) and checked([group]).
func DefaultPredicates() PredicateSet {
	return PredicateSet{
		"nonEmpty": func(_ string, args []string) (PredicateFunc, error) {
			if err := wantArgs(args, 0); err != nil {
				return nil, err
			}
			return NonEmpty(), nil
		},
		"minLength": func(_ string, args []string) (PredicateFunc, error) {
			if err := wantArgs(args, 1); err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("minLength: %q is not a non-negative integer", args[0])
			}
			return MinLength(n), nil
		},
		"equalsField": func(_ string, args []string) (PredicateFunc, error) {
			if err := wantArgs(args, 1); err != nil {
				return nil, err
			}
			if args[0] == "" {
				return nil, fmt.Errorf("equalsField: empty field name")
			}
			return EqualsField(args[0]), nil
		},
		"checked": func(field string, args []string) (PredicateFunc, error) {
			switch len(args) {
			case 0:
				return GroupChecked(field), nil
			case 1:
				return GroupChecked(args[0]), nil
			default:
				return nil, fmt.Errorf("checked: takes at most 1 argument, got %d", len(args))
			}
		},
	}
}

func wantArgs(args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("takes %d argument(s), got %d", n, len(args))
	}
	return nil
}
