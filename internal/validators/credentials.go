package validators

import (
	"context"
	"fmt"
)

// MinPasswordLength is enforced on signup only, so accounts created under
// an older policy can still log in.
const MinPasswordLength = 6

// SignupRules is require(email, password), min(password), email(email).
func SignupRules() []Rule {
	return []Rule{
		RequireRule(FieldEmail),
		RequireRule(FieldPassword),
		MinRule(FieldPassword, MinPasswordLength),
		EmailRule(FieldEmail),
	}
}

// LoginRules is require(email, password), email(email).
func LoginRules() []Rule {
	return []Rule{
		RequireRule(FieldEmail),
		RequireRule(FieldPassword),
		EmailRule(FieldEmail),
	}
}

// RulesValidator applies a fixed rule set to a [*Form].
type RulesValidator struct {
	rules []Rule
}

func NewSignupValidator() Validator {
	return &RulesValidator{rules: SignupRules()}
}

func NewLoginValidator() Validator {
	return &RulesValidator{rules: LoginRules()}
}

// Validate runs the rules on obj, which must be a [*Form]. When fields are
// given only rules for those fields run. Errors are recorded on the form and
// returned as a [*ValidationError].
func (v *RulesValidator) Validate(_ context.Context, obj any, fields ...string) error {
	form, ok := obj.(*Form)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}

	rules := v.rules
	if len(fields) > 0 {
		rules = make([]Rule, 0, len(v.rules))
		for _, field := range fields {
			matched := false
			for _, rule := range v.rules {
				if rule.Field == field {
					rules = append(rules, rule)
					matched = true
				}
			}
			if !matched {
				return fmt.Errorf("%w: %s", ErrUnknownField, field)
			}
		}
	}

	return form.Apply(rules...).Err()
}
