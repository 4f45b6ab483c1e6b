package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// space is the whitespace class of browser regular expressions. RE2's \s is
// ASCII only and misses separators such as U+00A0.
const space = `\s\v\p{Z}\x{FEFF}`

// Built-in patterns shared by the rule shorthands.
var (
	EmailPattern = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
	PhonePattern = regexp.MustCompile(`^[+]?[0-9` + space + `\-()]{10,15}$`)
	AlphaPattern = regexp.MustCompile(`^[a-zA-ZğüşıöçĞÜŞİÖÇ` + space + `]+$`)
)

// Messages reported by the pattern shorthands. ":label" is replaced with the
// field label.
const (
	EmailMessage = "Please enter a valid email."
	PhoneMessage = "Please enter a valid phone number."
	AlphaMessage = ":label must contain letters only."
)

// Rules is a map of field → pipe-separated rule string.
// e.g. Rules{"email": "required|email", "message": "required|min:10|max:1000"}
type Rules map[string]string

// Labels maps field names to the labels used in messages.
type Labels map[string]string

// Compile turns pipe-separated rule strings into a RuleTable.
// Fields that only appear in labels are left out of the table.
func Compile(rules Rules, labels Labels) (RuleTable, error) {
	table := make(RuleTable, len(rules))
	for field, spec := range rules {
		rule, err := ParseRule(spec)
		if err != nil {
			return nil, fmt.Errorf("validation: field %q: %w", field, err)
		}
		rule.Label = labels[field]
		table[field] = rule
	}
	return table, nil
}

// MustCompile is like Compile but panics on error. Use it for static tables.
func MustCompile(rules Rules, labels Labels) RuleTable {
	t, err := Compile(rules, labels)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseRule parses one pipe-separated rule string into a FieldRule.
//
// Supported rules:
//   - required          value must be non-empty after trimming
//   - nullable          explicit "optional", no effect
//   - min:n / max:n     rune length bounds, inclusive
//   - between:a,b       shorthand for min:a|max:b
//   - email             EmailPattern
//   - phone             PhonePattern
//   - alpha             letters and spaces
//   - regex:pattern     custom pattern; must be the last rule
func ParseRule(spec string) (FieldRule, error) {
	var rule FieldRule

	rest := strings.TrimSpace(spec)
	for rest != "" {
		var part string
		if strings.HasPrefix(rest, "regex:") {
			// the pattern may contain pipes, so it takes the remainder
			part, rest = rest, ""
		} else {
			part, rest, _ = strings.Cut(rest, "|")
		}
		part = strings.TrimSpace(part)
		rest = strings.TrimSpace(rest)
		if part == "" {
			continue
		}

		name, param, _ := strings.Cut(part, ":")
		if err := applyRule(&rule, name, param); err != nil {
			return FieldRule{}, err
		}
	}
	return rule, nil
}

func applyRule(rule *FieldRule, name, param string) error {
	switch name {
	case "required":
		rule.Required = true

	case "nullable":
		rule.Required = false

	case "min":
		n, err := length(name, param)
		if err != nil {
			return err
		}
		rule.MinLength = &n

	case "max":
		n, err := length(name, param)
		if err != nil {
			return err
		}
		rule.MaxLength = &n

	case "between":
		lo, hi, ok := strings.Cut(param, ",")
		if !ok {
			return fmt.Errorf("rule between expects two bounds, got %q", param)
		}
		min, err := length(name, lo)
		if err != nil {
			return err
		}
		max, err := length(name, hi)
		if err != nil {
			return err
		}
		if min > max {
			return fmt.Errorf("rule between: min %d greater than max %d", min, max)
		}
		rule.MinLength, rule.MaxLength = &min, &max

	case "email":
		rule.Pattern, rule.PatternMessage = EmailPattern, EmailMessage

	case "phone":
		rule.Pattern, rule.PatternMessage = PhonePattern, PhoneMessage

	case "alpha":
		rule.Pattern, rule.PatternMessage = AlphaPattern, AlphaMessage

	case "regex":
		re, err := regexp.Compile(param)
		if err != nil {
			return fmt.Errorf("rule regex: %w", err)
		}
		rule.Pattern, rule.PatternMessage = re, DefaultPatternMessage

	default:
		return fmt.Errorf("unknown rule %q", name)
	}
	return nil
}

func length(rule, param string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(param))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("rule %s expects a non-negative integer, got %q", rule, param)
	}
	return n, nil
}
