package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

// Trim removes leading and trailing whitespace from a string. Unicode
// spaces such as NBSP and a stray byte order mark are trimmed as well.
func Trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// StripPattern removes every substring matched by re. A nil pattern returns s
// unchanged. The result is a fixed point: StripPattern(StripPattern(s, re), re)
// equals StripPattern(s, re) for any pattern.
func StripPattern(s string, re *regexp.Regexp) string {
	if re == nil || s == "" {
		return s
	}
	// removal can join fragments into a new match; repeat until stable
	for {
		next := re.ReplaceAllLiteralString(s, "")
		if next == s {
			return s
		}
		s = next
	}
}

// StripPatternFunc binds a pattern into a transform usable with Apply and Compose.
func StripPatternFunc(re *regexp.Regexp) Transform {
	return func(s string) string {
		return StripPattern(s, re)
	}
}

// RemoveControlChars removes control characters, keeping newlines and tabs.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// MaxLength truncates a string to at most maxLen runes.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
