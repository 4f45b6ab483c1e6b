package validation

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// ContactFields is the order in which the contact form presents its controls.
var ContactFields = []string{"firstName", "lastName", "email", "phone", "subject", "budget", "message"}

// ContactLabels are the display labels of the contact form.
var ContactLabels = Labels{
	"firstName": "First name",
	"lastName":  "Last name",
	"email":     "Email",
	"phone":     "Phone",
	"subject":   "Subject",
	"message":   "Message",
	"budget":    "Budget",
}

// ContactRules returns the default rule table of the contact form.
// budget carries a label but no rule, so any value is accepted.
func ContactRules() RuleTable {
	return MustCompile(Rules{
		"firstName": "required|between:2,50|alpha",
		"lastName":  "required|between:2,50|alpha",
		"email":     "required|email",
		"phone":     "nullable|phone",
		"subject":   "required",
		"message":   "required|between:10,1000",
	}, ContactLabels)
}

// ── Rule files ───────────────────────────────────────────────────────────────

// ruleFile is the YAML layout of a rule table:
//
//	fields:
//	  email:
//	    label: Email
//	    rules: required|email
//	  message:
//	    label: Message
//	    required: true
//	    min_length: 10
//	    max_length: 1000
//	order: [email, message]
type ruleFile struct {
	Fields map[string]ruleEntry `yaml:"fields"`
	Order  []string             `yaml:"order"`
}

type ruleEntry struct {
	Label          string `yaml:"label"`
	Rules          string `yaml:"rules"`
	Required       *bool  `yaml:"required"`
	MinLength      *int   `yaml:"min_length"`
	MaxLength      *int   `yaml:"max_length"`
	Pattern        string `yaml:"pattern"`
	PatternMessage string `yaml:"pattern_message"`
}

// RuleSet is a rule table together with the form's field order. Order names
// every ruled field.
type RuleSet struct {
	Table RuleTable
	Order []string
}

// LoadRuleFile reads a YAML rule table from disk.
func LoadRuleFile(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("validation: read rules: %w", err)
	}
	return ParseRuleFile(data)
}

// ParseRuleFile decodes a YAML rule table. Explicit keys override whatever the
// rules shorthand set. Ruled fields missing from order follow the listed ones,
// sorted by name.
func ParseRuleFile(data []byte) (RuleSet, error) {
	var doc ruleFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RuleSet{}, fmt.Errorf("validation: decode rules: %w", err)
	}

	table := make(RuleTable, len(doc.Fields))
	for name, entry := range doc.Fields {
		rule, err := ParseRule(entry.Rules)
		if err != nil {
			return RuleSet{}, fmt.Errorf("validation: field %q: %w", name, err)
		}
		rule.Label = entry.Label
		if entry.Required != nil {
			rule.Required = *entry.Required
		}
		if entry.MinLength != nil {
			rule.MinLength = entry.MinLength
		}
		if entry.MaxLength != nil {
			rule.MaxLength = entry.MaxLength
		}
		if rule.MinLength != nil && rule.MaxLength != nil && *rule.MinLength > *rule.MaxLength {
			return RuleSet{}, fmt.Errorf("validation: field %q: min_length greater than max_length", name)
		}
		if entry.Pattern != "" {
			re, err := regexp.Compile(entry.Pattern)
			if err != nil {
				return RuleSet{}, fmt.Errorf("validation: field %q: %w", name, err)
			}
			rule.Pattern = re
			rule.PatternMessage = DefaultPatternMessage
		}
		if entry.PatternMessage != "" {
			rule.PatternMessage = entry.PatternMessage
		}
		table[name] = rule
	}

	return RuleSet{Table: table, Order: CompleteOrder(doc.Order, table.Names())}, nil
}
