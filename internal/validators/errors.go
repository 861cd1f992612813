package validators

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrInvalidForm is matched by every [*ValidationError].
	ErrInvalidForm = errors.New("invalid form")

	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// Messages shown to users.
const (
	MsgRequired           = "is required"
	MsgInvalidEmail       = "must be a valid email address"
	MsgAlreadyRegistered  = "already registered"
	MsgInvalidCredentials = "invalid email or password"
)

// ValidationError carries the field errors of a rejected form.
type ValidationError struct {
	Errors Errors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.Errors[field], ", "))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidForm
}
