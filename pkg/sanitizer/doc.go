// Package sanitizer provides small, pure string transforms used to clean
// user input before validation.
//
// The central helper is StripPattern, which removes every character (or
// substring) a regular expression matches and is idempotent. Trim,
// RemoveControlChars and MaxLength cover the remaining input hygiene, and
// Apply/Compose chain transforms into pipelines:
//
//	clean := sanitizer.Compose(
//	    sanitizer.RemoveControlChars,
//	    sanitizer.StripPatternFunc(regexp.MustCompile(`[^\d]`)),
//	)
//	zip := clean("12a34\x00") // "1234"
//
// None of the helpers returns an error and none holds state, so they are safe
// for concurrent use.
package sanitizer
