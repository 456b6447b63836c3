// Package validator implements a declarative, rule-driven form validation
// engine.
//
// A Registry maps field names to FieldRule values. Each rule is a tagged
// variant: a KindPattern rule matches the trimmed field value against a
// regular expression, a KindPredicate rule calls a PredicateFunc with the
// trimmed value and a read-only Snapshot of the whole form. A rule may also
// carry a sanitize expression whose matches are stripped from raw input.
//
// An Engine evaluates a single field (EvaluateField, EvaluateValue) or the
// whole form (EvaluateForm). Fields without a rule are never validated and
// count as valid. Required radio/checkbox groups, which have no single input
// carrying the group name, are checked out of band and joined into the
// aggregate result.
//
// # Usage
//
//	reg := validator.MustRegistry(
//	    validator.Pattern("zipcode", `^\d{3,10}$`, validator.WithSanitize(`[^\d]`)),
//	    validator.Predicate("confirmPassword", validator.EqualsField("password")),
//	)
//	engine := validator.New(reg, validator.WithRequiredGroup("gender"))
//
//	snap := validator.FromURLValues(r.PostForm)
//	verdict := engine.EvaluateForm(snap)
//	if !verdict.Valid {
//	    first, _ := verdict.FirstInvalid()
//	    // scroll to first, render verdict.Errors()
//	}
//
// # Display policy
//
// ShowError decides whether a host should surface an error: only for invalid
// fields, and only on submit, once the user has typed something, or at once
// for fields registered with WithEagerErrors (selection-type inputs).
//
// # Error Handling
//
// Evaluation never fails. Configuration problems (duplicate names, missing
// patterns, bad YAML rule files) are reported by NewRegistry and LoadRules as
// errors wrapping the sentinels in errors.go. Invalid forms can be reported as
// ValidationErrors, which implements error.
//
// Engines are immutable after New and safe for concurrent use.
package validator
