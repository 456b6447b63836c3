package validator

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// RuleSet is a parsed rule file: the rules plus engine-level settings.
type RuleSet struct {
	Rules  []FieldRule
	Groups []string
	Eager  []string
}

type ruleFile struct {
	Rules  []ruleSpec `yaml:"rules"`
	Groups []string   `yaml:"groups"`
	Eager  []string   `yaml:"eager"`
}

type ruleSpec struct {
	Name      string   `yaml:"name"`
	Pattern   string   `yaml:"pattern"`
	Sanitize  string   `yaml:"sanitize"`
	Predicate string   `yaml:"predicate"`
	Args      []string `yaml:"args"`
	Message   string   `yaml:"message"`
}

// LoadRules parses a YAML rule file. Each rule sets exactly one of pattern or
// predicate; predicates are resolved by name in preds. A nil preds uses
// DefaultPredicates.
//
//	rules:
//	  - name: zipcode
//	    pattern: '^\d{3,10}$'
//	    sanitize: '[^\d]'
//	  - name: address
//	    predicate: minLength
//	    args: ["10"]
//	groups: [gender]
//	eager: [country, terms]
func LoadRules(r io.Reader, preds PredicateSet) (RuleSet, error) {
	if preds == nil {
		preds = DefaultPredicates()
	}

	var file ruleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return RuleSet{}, errors.Join(ErrInvalidRuleFile, err)
	}

	set := RuleSet{
		Rules:  make([]FieldRule, 0, len(file.Rules)),
		Groups: file.Groups,
		Eager:  file.Eager,
	}
	for i, spec := range file.Rules {
		rule, err := spec.build(preds)
		if err != nil {
			return RuleSet{}, errors.Join(ErrInvalidRuleFile, fmt.Errorf("rule %d: %w", i, err))
		}
		set.Rules = append(set.Rules, rule)
	}
	return set, nil
}

// LoadRulesFile reads and parses a YAML rule file from disk.
func LoadRulesFile(path string, preds PredicateSet) (RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return RuleSet{}, errors.Join(ErrInvalidRuleFile, err)
	}
	defer f.Close()
	return LoadRules(f, preds)
}

// Engine builds an engine from the rule set. Extra options are applied after
// the file's groups and eager fields.
func (s RuleSet) Engine(opts ...Option) (*Engine, error) {
	reg, err := NewRegistry(s.Rules...)
	if err != nil {
		return nil, err
	}
	all := make([]Option, 0, len(opts)+2)
	all = append(all, WithRequiredGroup(s.Groups...), WithEagerErrors(s.Eager...))
	all = append(all, opts...)
	return New(reg, all...), nil
}

func (s ruleSpec) build(preds PredicateSet) (FieldRule, error) {
	if s.Name == "" {
		return FieldRule{}, ErrEmptyFieldName
	}

	switch {
	case s.Pattern != "" && s.Predicate != "":
		return FieldRule{}, fmt.Errorf("field %q: pattern and predicate are mutually exclusive", s.Name)

	case s.Pattern != "":
		rule, err := CompilePattern(s.Name, s.Pattern, s.Sanitize)
		if err != nil {
			return FieldRule{}, err
		}
		rule.Message = s.Message
		return rule, nil

	case s.Predicate != "":
		factory, ok := preds[s.Predicate]
		if !ok {
			return FieldRule{}, fmt.Errorf("%w %q for field %q", ErrUnknownPredicate, s.Predicate, s.Name)
		}
		fn, err := factory(s.Name, s.Args)
		if err != nil {
			return FieldRule{}, fmt.Errorf("field %q: %w", s.Name, err)
		}
		rule := Predicate(s.Name, fn, WithMessage(s.Message))
		if s.Sanitize != "" {
			if rule.Sanitize, err = compileExpr(s.Name, "sanitize", s.Sanitize); err != nil {
				return FieldRule{}, err
			}
		}
		return rule, nil

	default:
		return FieldRule{}, fmt.Errorf("field %q: one of pattern or predicate is required", s.Name)
	}
}
