package validator

import (
	"maps"
	"net/url"
	"slices"
	"strings"
)

// Snapshot is a read-only view of current form state. Predicates use it to
// read other fields (confirm password) or group state (radio, checkbox).
type Snapshot interface {
	// Value returns the raw value of a field, or "" when absent.
	Value(name string) string
	// Checked reports whether any member of a radio/checkbox group is checked.
	Checked(group string) bool
	// FieldNames returns every field name present in the snapshot.
	FieldNames() []string
}

// Values is a map-backed Snapshot. The zero value is an empty form.
type Values struct {
	Fields map[string]string
	Groups map[string]bool
}

var _ Snapshot = Values{}

func (v Values) Value(name string) string {
	return v.Fields[name]
}

func (v Values) Checked(group string) bool {
	return v.Groups[group]
}

// FieldNames returns the sorted union of value and group names.
func (v Values) FieldNames() []string {
	seen := make(map[string]struct{}, len(v.Fields)+len(v.Groups))
	for name := range v.Fields {
		seen[name] = struct{}{}
	}
	for name := range v.Groups {
		seen[name] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// FromURLValues builds a snapshot from a parsed HTML form. Only the first
// value of each key is kept. A key counts as checked when it carries at least
// one value other than "", "off", "false" or "0": browsers omit unchecked
// boxes entirely.
func FromURLValues(form url.Values) Values {
	v := Values{
		Fields: make(map[string]string, len(form)),
		Groups: make(map[string]bool, len(form)),
	}
	for name, vals := range form {
		if len(vals) > 0 {
			v.Fields[name] = vals[0]
		}
		for _, val := range vals {
			if isCheckedValue(val) {
				v.Groups[name] = true
				break
			}
		}
	}
	return v
}

func isCheckedValue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "false", "0":
		return false
	}
	return true
}
