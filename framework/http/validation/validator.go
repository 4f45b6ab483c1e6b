package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// ── Types ────────────────────────────────────────────────────────────────────

// FieldRule is the constraint set for one named field.
// Nil MinLength / MaxLength / Pattern mean "no constraint".
type FieldRule struct {
	Required       bool
	MinLength      *int
	MaxLength      *int
	Pattern        *regexp.Regexp
	Label          string // human name used in messages, defaults to the field name
	PatternMessage string // reported when Pattern does not match
}

// RuleTable maps field names to their rules.
type RuleTable map[string]FieldRule

// Field is one form control value, in the order the form presents it.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FieldState is the verdict for one field at one point in time.
type FieldState struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ValidationResult is the aggregate verdict for a whole form.
type ValidationResult struct {
	AllValid bool         `json:"all_valid"`
	Fields   []FieldState `json:"fields"`
	Invalid  []string     `json:"invalid,omitempty"`
}

// DefaultPatternMessage is used when a rule has a pattern but no message.
const DefaultPatternMessage = "Invalid format."

// ── Engine ───────────────────────────────────────────────────────────────────

// Engine validates field values against a fixed RuleTable.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	rules RuleTable
}

// New creates an Engine. The table is copied; later changes to rules do not
// affect the engine.
//
//	engine := validation.New(validation.ContactRules())
//	state := engine.ValidateField("email", "a@b.com")
func New(rules RuleTable) *Engine {
	table := make(RuleTable, len(rules))
	for name, rule := range rules {
		table[name] = rule
	}
	return &Engine{rules: table}
}

// Rule returns the rule for a field and whether one exists.
func (e *Engine) Rule(name string) (FieldRule, bool) {
	r, ok := e.rules[name]
	return r, ok
}

// Names returns the ruled field names, sorted.
func (e *Engine) Names() []string { return e.rules.Names() }

// Names returns the ruled field names, sorted.
func (t RuleTable) Names() []string {
	out := make([]string, 0, len(t))
	for name := range t {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CompleteOrder returns order followed by every name in names that order
// does not list. Map input is padded from the result, so a ruled field left
// out of a submission is still checked.
func CompleteOrder(order, names []string) []string {
	seen := make(map[string]bool, len(order))
	out := make([]string, 0, len(order)+len(names))
	for _, name := range order {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// Label returns the display label for a field.
func (e *Engine) Label(name string) string {
	if r, ok := e.rules[name]; ok && r.Label != "" {
		return r.Label
	}
	return name
}

// ValidateField checks a single value. Checks run in a fixed order and the
// first failure decides the message.
func (e *Engine) ValidateField(name, raw string) FieldState {
	value := strings.TrimSpace(raw)
	state := FieldState{Name: name, Value: value, Valid: true}

	rule, ok := e.rules[name]
	if !ok {
		return state
	}

	if value == "" {
		if rule.Required {
			return state.fail(fmt.Sprintf("%s is required.", e.Label(name)))
		}
		// optional and empty: nothing else applies
		return state
	}

	length := utf8.RuneCountInString(value)

	if rule.MinLength != nil && length < *rule.MinLength {
		return state.fail(fmt.Sprintf("%s must be at least %d characters.", e.Label(name), *rule.MinLength))
	}

	if rule.MaxLength != nil && length > *rule.MaxLength {
		return state.fail(fmt.Sprintf("%s must be at most %d characters.", e.Label(name), *rule.MaxLength))
	}

	if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
		msg := rule.PatternMessage
		if msg == "" {
			msg = DefaultPatternMessage
		}
		return state.fail(strings.ReplaceAll(msg, ":label", e.Label(name)))
	}

	return state
}

// ValidateForm validates every field, ruled or not, keeping the given order.
func (e *Engine) ValidateForm(fields []Field) ValidationResult {
	res := ValidationResult{
		AllValid: true,
		Fields:   make([]FieldState, 0, len(fields)),
	}
	for _, f := range fields {
		st := e.ValidateField(f.Name, f.Value)
		res.Fields = append(res.Fields, st)
		if !st.Valid {
			res.AllValid = false
			res.Invalid = append(res.Invalid, f.Name)
		}
	}
	return res
}

// ValidateValues validates a map of values. Names listed in order come first,
// in that order; remaining keys follow sorted by name.
func (e *Engine) ValidateValues(values map[string]string, order []string) ValidationResult {
	return e.ValidateForm(Ordered(values, order))
}

// Ordered turns a value map into an ordered field list.
// Names in order that are missing from values are skipped.
func Ordered(values map[string]string, order []string) []Field {
	seen := make(map[string]bool, len(order))
	fields := make([]Field, 0, len(values))
	for _, name := range order {
		v, ok := values[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		fields = append(fields, Field{Name: name, Value: v})
	}

	rest := make([]string, 0, len(values)-len(fields))
	for name := range values {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		fields = append(fields, Field{Name: name, Value: values[name]})
	}
	return fields
}

func (s FieldState) fail(msg string) FieldState {
	s.Valid = false
	s.Message = msg
	return s
}

// ── Result helpers ───────────────────────────────────────────────────────────

// FirstInvalid returns the first invalid field in encounter order, or "".
func (r ValidationResult) FirstInvalid() string {
	if len(r.Invalid) == 0 {
		return ""
	}
	return r.Invalid[0]
}

// State returns the state recorded for a field.
func (r ValidationResult) State(name string) (FieldState, bool) {
	for _, st := range r.Fields {
		if st.Name == name {
			return st, true
		}
	}
	return FieldState{}, false
}

// Values returns the trimmed values keyed by field name.
func (r ValidationResult) Values() map[string]string {
	out := make(map[string]string, len(r.Fields))
	for _, st := range r.Fields {
		out[st.Name] = st.Value
	}
	return out
}

// Errors converts the result into a message bag.
func (r ValidationResult) Errors() *Errors {
	bag := &Errors{}
	for _, st := range r.Fields {
		if !st.Valid {
			bag.add(st.Name, st.Message)
		}
	}
	return bag
}

// ── Errors ───────────────────────────────────────────────────────────────────

// Errors holds validation messages keyed by field, like Laravel's MessageBag.
// JSON output: {"errors": {"field": ["msg"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs, ok := e.Bag[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}
