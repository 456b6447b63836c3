package validator

import (
	"context"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/sanitizer"
)

// Engine evaluates fields and whole forms against an immutable Registry.
// It holds no per-form state and is safe for concurrent use.
type Engine struct {
	registry *Registry
	groups   []string
	eager    map[string]bool
	log      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRequiredGroup adds radio/checkbox groups that must have at least one
// checked member for the form to pass. Groups are reported in FormVerdict.Groups,
// not as field verdicts.
func WithRequiredGroup(groups ...string) Option {
	return func(e *Engine) {
		for _, g := range groups {
			if g != "" {
				e.groups = append(e.groups, g)
			}
		}
	}
}

// WithEagerErrors marks selection-type fields whose error is eligible for
// display as soon as they are evaluated, even when empty.
func WithEagerErrors(fields ...string) Option {
	return func(e *Engine) {
		for _, f := range fields {
			e.eager[f] = true
		}
	}
}

// WithLogger sets the logger used for evaluation diagnostics. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New returns an Engine over the given registry. A nil registry yields an
// engine with no rules, for which every form is valid.
func New(reg *Registry, opts ...Option) *Engine {
	if reg == nil {
		reg = MustRegistry()
	}
	e := &Engine{
		registry: reg,
		eager:    make(map[string]bool),
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's rule registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Sanitize strips the characters the field's sanitize pattern matches.
// Fields without a rule or without a sanitize pattern are returned unchanged.
func (e *Engine) Sanitize(raw, field string) string {
	rule, ok := e.registry.Lookup(field)
	if !ok {
		return raw
	}
	return sanitizer.StripPattern(raw, rule.Sanitize)
}

// EvaluateField reads the field's value from the snapshot and evaluates it.
func (e *Engine) EvaluateField(field string, snap Snapshot) bool {
	return e.EvaluateValue(field, snap.Value(field), snap)
}

// EvaluateValue evaluates an explicit value for a field. A required group
// without its own rule is valid when any member is checked. Other
// unregistered fields are valid.
func (e *Engine) EvaluateValue(field, value string, snap Snapshot) bool {
	rule, ok := e.registry.Lookup(field)
	if !ok {
		if e.isGroup(field) {
			return snap.Checked(field)
		}
		return true
	}
	return evaluate(rule, value, snap)
}

func (e *Engine) isGroup(name string) bool {
	return slices.Contains(e.groups, name)
}

func evaluate(rule FieldRule, value string, snap Snapshot) bool {
	trimmed := sanitizer.Trim(value)
	switch rule.Kind {
	case KindPattern:
		return rule.Pattern.MatchString(trimmed)
	case KindPredicate:
		return rule.Predicate(trimmed, snap)
	default:
		return false
	}
}

// EvaluateForm evaluates every registered field in registration order and
// every required group. It never mutates the snapshot, so repeated calls on
// an unchanged snapshot return equal verdicts.
func (e *Engine) EvaluateForm(snap Snapshot) FormVerdict {
	names := e.registry.Names()
	fv := FormVerdict{
		Valid:      true,
		Fields:     make(map[string]Verdict, len(names)),
		Order:      names,
		GroupOrder: append([]string(nil), e.groups...),
		messages:   make(map[string]string),
	}

	for _, name := range names {
		rule, _ := e.registry.Lookup(name)
		valid := evaluate(rule, snap.Value(name), snap)
		fv.Fields[name] = Verdict{Field: name, Valid: valid}
		if !valid {
			fv.Valid = false
			fv.messages[name] = rule.message()
		}
	}

	if len(e.groups) > 0 {
		fv.Groups = make(map[string]bool, len(e.groups))
		for _, g := range e.groups {
			checked := snap.Checked(g)
			fv.Groups[g] = checked
			if !checked {
				fv.Valid = false
				fv.messages[g] = "selection is required"
			}
		}
	}

	if e.log.Enabled(context.Background(), slog.LevelDebug) {
		e.log.Debug("form evaluated",
			logger.Valid(fv.Valid),
			logger.Fields(fv.Invalid()),
		)
	}

	return fv
}

// ShowError applies the display policy: an invalid field shows its error on
// a submit attempt, once the user has typed something, or immediately for
// eager fields.
func (e *Engine) ShowError(field string, valid bool, raw string, submit bool) bool {
	if valid {
		return false
	}
	return submit || raw != "" || e.eager[field]
}

// Visible returns the fields of fv whose errors should be displayed for the
// given snapshot, in the same order as FormVerdict.Invalid.
func (e *Engine) Visible(fv FormVerdict, snap Snapshot, submit bool) []string {
	var out []string
	for _, name := range fv.Invalid() {
		if e.ShowError(name, false, snap.Value(name), submit) {
			out = append(out, name)
		}
	}
	return out
}
