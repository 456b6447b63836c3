package sanitizer

// Transform rewrites one field value.
type Transform func(string) string

// Apply runs value through transforms in order. Nil transforms are skipped,
// so optional steps can be passed unconditionally.
func Apply(value string, transforms ...Transform) string {
	for _, t := range transforms {
		if t != nil {
			value = t(value)
		}
	}
	return value
}

// Compose fixes a transform chain so it can be reused per value.
func Compose(transforms ...Transform) Transform {
	chain := make([]Transform, 0, len(transforms))
	for _, t := range transforms {
		if t != nil {
			chain = append(chain, t)
		}
	}
	return func(value string) string {
		return Apply(value, chain...)
	}
}
