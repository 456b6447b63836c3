package registration

import (
	"bytes"
	_ "embed"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

//go:embed rules.yaml
var rulesYAML []byte

// RuleFile returns the registration rules in YAML form, the default rule file
// of the formguard binary.
func RuleFile() []byte {
	return bytes.Clone(rulesYAML)
}

// LoadDefaultRules parses the embedded rule file.
func LoadDefaultRules() (validator.RuleSet, error) {
	return validator.LoadRules(bytes.NewReader(rulesYAML), nil)
}
