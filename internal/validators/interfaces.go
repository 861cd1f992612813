// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators validates submitted HTML forms.
//
// A [Form] wraps the submitted values and collects messages per field.
// Rules are chained (Require, Min, Email), every rule runs, and messages
// accumulate in the order the rules were applied. Handlers re-render the
// page with the same Form so the messages show next to their fields.
package validators

import "context"

// Validator validates a value, optionally restricted to the named fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
