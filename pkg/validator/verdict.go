package validator

import (
	"fmt"
	"strings"
)

// Verdict is the outcome of evaluating one field.
type Verdict struct {
	Field string `json:"field"`
	Valid bool   `json:"valid"`
}

// FormVerdict is the outcome of evaluating every registered field plus the
// required groups.
type FormVerdict struct {
	Valid  bool               `json:"valid"`
	Fields map[string]Verdict `json:"fields"`
	Groups map[string]bool    `json:"groups,omitempty"`
	// Order lists evaluated fields in registration order.
	Order []string `json:"-"`
	// GroupOrder lists required groups in configuration order.
	GroupOrder []string `json:"-"`

	messages map[string]string
}

// Invalid returns the names of failing fields in registration order,
// followed by failing groups.
func (fv FormVerdict) Invalid() []string {
	var out []string
	for _, name := range fv.Order {
		if v, ok := fv.Fields[name]; ok && !v.Valid {
			out = append(out, name)
		}
	}
	for _, g := range fv.GroupOrder {
		if !fv.Groups[g] {
			out = append(out, g)
		}
	}
	return out
}

// FirstInvalid returns the first failing field, the one a host scrolls to.
func (fv FormVerdict) FirstInvalid() (string, bool) {
	invalid := fv.Invalid()
	if len(invalid) == 0 {
		return "", false
	}
	return invalid[0], true
}

// Errors converts failures into a ValidationErrors collection. It returns nil
// when the form is valid.
func (fv FormVerdict) Errors() ValidationErrors {
	var errs ValidationErrors
	for _, name := range fv.Invalid() {
		msg := fv.messages[name]
		if msg == "" {
			msg = "is invalid"
		}
		errs.Add(ValidationError{Field: name, Message: msg})
	}
	return errs
}

// ValidationError describes a single failing field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a collection of failing fields that satisfies error.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Map groups messages by field, the shape JSON error details use.
func (ve ValidationErrors) Map() map[string][]string {
	out := make(map[string][]string, len(ve))
	for _, err := range ve {
		out[err.Field] = append(out[err.Field], err.Message)
	}
	return out
}
