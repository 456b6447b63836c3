package validator

import (
	"fmt"
	"slices"
)

// Registry is the immutable mapping of field name to rule. Iteration order is
// registration order. Safe for concurrent reads.
type Registry struct {
	rules map[string]FieldRule
	order []string
}

// NewRegistry validates the rules and returns a registry holding them.
func NewRegistry(rules ...FieldRule) (*Registry, error) {
	reg := &Registry{
		rules: make(map[string]FieldRule, len(rules)),
		order: make([]string, 0, len(rules)),
	}
	for _, r := range rules {
		if err := r.check(); err != nil {
			return nil, err
		}
		if _, exists := reg.rules[r.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, r.Name)
		}
		reg.rules[r.Name] = r
		reg.order = append(reg.order, r.Name)
	}
	return reg, nil
}

// MustRegistry works like NewRegistry but panics on invalid configuration.
func MustRegistry(rules ...FieldRule) *Registry {
	reg, err := NewRegistry(rules...)
	if err != nil {
		panic(fmt.Sprintf("invalid validation rules: %v", err))
	}
	return reg
}

// Lookup returns the rule for a field. A miss is not an error: unregistered
// fields are skipped.
func (r *Registry) Lookup(name string) (FieldRule, bool) {
	if r == nil {
		return FieldRule{}, false
	}
	rule, ok := r.rules[name]
	return rule, ok
}

// Names returns field names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.order)
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}
