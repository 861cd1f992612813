package service

import "errors"

var (
	// ErrInvalidDataProvided wraps every field-level rejection of a form,
	// including a duplicate email on signup.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned for an unknown email or a wrong
	// password. The two cases are deliberately the same error.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrThrottled is returned when the client key is blocked. Callers must
	// present it exactly like ErrInvalidCredentials.
	ErrThrottled = errors.New("too many failed login attempts")

	// ErrUnauthorized is returned when a protected operation has no principal.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCredentialHashFailure means the password could not be hashed,
	// which only happens when the entropy source fails.
	ErrCredentialHashFailure = errors.New("credential hash failure")

	ErrSessionIssueFailed = errors.New("failed to issue session")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
