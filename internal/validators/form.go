package validators

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Form field names shared by the signup and login pages.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

var fieldValidator = validator.New()

// Errors maps a field name to its messages in the order they were added.
type Errors map[string][]string

// Add appends msg to field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Get returns the first message for field, or "".
func (e Errors) Get(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Form is a submitted form plus the errors found while validating it.
type Form struct {
	Values url.Values
	Errors Errors
}

// NewForm wraps values. A nil values map is treated as an empty submission.
func NewForm(values url.Values) *Form {
	if values == nil {
		values = url.Values{}
	}
	return &Form{
		Values: values,
		Errors: Errors{},
	}
}

// Get returns the submitted value of field exactly as sent.
func (f *Form) Get(field string) string {
	return f.Values.Get(field)
}

// Rule is one named check on one field. Check returns the message to
// record, or "" when the value passes.
type Rule struct {
	Name  string
	Field string
	Check func(value string) string
}

// RequireRule rejects a missing or blank value.
func RequireRule(field string) Rule {
	return Rule{Name: "require", Field: field, Check: func(value string) string {
		if strings.TrimSpace(value) == "" {
			return MsgRequired
		}
		return ""
	}}
}

// MinRule rejects values shorter than n characters.
func MinRule(field string, n int) Rule {
	return Rule{Name: "min", Field: field, Check: func(value string) string {
		if utf8.RuneCountInString(value) < n {
			return fmt.Sprintf("must be at least %d characters", n)
		}
		return ""
	}}
}

// EmailRule rejects values that are not an RFC 5322 address.
func EmailRule(field string) Rule {
	return Rule{Name: "email", Field: field, Check: func(value string) string {
		if err := fieldValidator.Var(value, "required,email"); err != nil {
			return MsgInvalidEmail
		}
		return ""
	}}
}

// Apply runs every rule in order without short-circuiting.
func (f *Form) Apply(rules ...Rule) *Form {
	for _, rule := range rules {
		if msg := rule.Check(f.Get(rule.Field)); msg != "" {
			f.Errors.Add(rule.Field, msg)
		}
	}
	return f
}

// Require adds MsgRequired to every field that is missing or blank.
func (f *Form) Require(fields ...string) *Form {
	for _, field := range fields {
		f.Apply(RequireRule(field))
	}
	return f
}

// Min requires field to be at least n characters long.
func (f *Form) Min(field string, n int) *Form {
	return f.Apply(MinRule(field, n))
}

// Email requires field to hold a well-formed address.
func (f *Form) Email(field string) *Form {
	return f.Apply(EmailRule(field))
}

// AddError records a message that did not come from a rule, such as a
// duplicate email found in storage.
func (f *Form) AddError(field, msg string) {
	f.Errors.Add(field, msg)
}

// OK reports whether no errors were recorded.
func (f *Form) OK() bool {
	return len(f.Errors) == 0
}

// Err returns nil when the form is valid, otherwise a [*ValidationError].
func (f *Form) Err() error {
	if f.OK() {
		return nil
	}
	return &ValidationError{Errors: f.Errors}
}
