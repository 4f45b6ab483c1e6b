package site

import (
	"html/template"

	"github.com/km-arc/go-portfolio/framework/http/validation"
)

// Form is the contact form as the page renders it.
type Form struct {
	Values    map[string]string
	States    map[string]validation.FieldState
	Submitted bool
	Error     string // delivery failure shown above the button
}

// NewForm returns an untouched form.
func NewForm() Form {
	return Form{Values: map[string]string{}, States: map[string]validation.FieldState{}}
}

// FormFrom fills a form from a validation result.
func FormFrom(res validation.ValidationResult) Form {
	f := NewForm()
	f.Submitted = true
	for _, st := range res.Fields {
		f.Values[st.Name] = st.Value
		f.States[st.Name] = st
	}
	return f
}

// Value returns the echoed value of a field.
func (f Form) Value(name string) string { return f.Values[name] }

// Class is the CSS state of a field: "valid", "invalid" or "" before
// submission. Optional fields left empty stay neutral.
func (f Form) Class(name string) string {
	st, ok := f.States[name]
	if !ok {
		return ""
	}
	if !st.Valid {
		return "invalid"
	}
	if st.Value == "" {
		return ""
	}
	return "valid"
}

// Message returns the field's error message, or "".
func (f Form) Message(name string) string {
	if st, ok := f.States[name]; ok && !st.Valid {
		return st.Message
	}
	return ""
}

// FieldView is the data for the "field" template.
type FieldView struct {
	Form  Form
	Name  string
	Label string
	Type  string
}

// Funcs are the template functions the page needs.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"field": func(f Form, name, label, typ string) FieldView {
			return FieldView{Form: f, Name: name, Label: label, Type: typ}
		},
	}
}
