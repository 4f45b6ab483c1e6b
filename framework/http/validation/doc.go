// Package validation validates form input against a declarative rule table.
//
// # Overview
//
// A RuleTable maps field names to FieldRules (required, length bounds,
// pattern). The Engine is a pure function of the table and the input: it never
// touches the request or the page, and every outcome is returned as data.
//
// # Basic Usage
//
//	engine := validation.New(validation.ContactRules())
//
//	state := engine.ValidateField("email", "not-an-email")
//	// state.Valid == false, state.Message == "Please enter a valid email."
//
//	res := engine.ValidateForm([]validation.Field{
//	    {Name: "firstName", Value: "Ada"},
//	    {Name: "email", Value: ""},
//	})
//	if !res.AllValid {
//	    focus := res.FirstInvalid()     // "email"
//	    bag := res.Errors()             // {"errors": {"email": ["Email is required."]}}
//	}
//
// # Check order
//
// For a field with a rule, checks run in this order and the first failure
// decides the single message:
//
//  1. required and empty        → "<Label> is required."
//  2. optional and empty        → valid, nothing else runs
//  3. shorter than MinLength    → "<Label> must be at least N characters."
//  4. longer than MaxLength     → "<Label> must be at most N characters."
//  5. Pattern does not match    → the rule's PatternMessage
//
// Fields without a rule are always valid. Lengths count runes, bounds are
// inclusive.
//
// # Rule strings
//
// Tables can be written in the framework's pipe syntax:
//
//	table, err := validation.Compile(validation.Rules{
//	    "name":  "required|between:2,50|alpha",
//	    "email": "required|email",
//	    "phone": "nullable|phone",
//	    "code":  "regex:^[A-Z]{3}-\\d{4}$",
//	}, validation.Labels{"name": "Name"})
//
// Available rules: required, nullable, min:n, max:n, between:a,b, email,
// phone, alpha, regex:pattern (last, takes the rest of the string).
//
// # Rule files
//
// LoadRuleFile reads the same table from YAML, see ParseRuleFile.
package validation
