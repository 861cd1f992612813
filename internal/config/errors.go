package config

import "errors"

// ErrInvalidConfig is returned by the builder when the merged configuration
// fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")
