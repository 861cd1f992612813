// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrFormParsing is returned when a submitted form body cannot be parsed.
var ErrFormParsing = errors.New("cannot parse submitted form")
