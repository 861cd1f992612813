// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-shipy/internal/logger"
)

// methodNotAllowed is registered as the router's MethodNotAllowed handler.
// A known path requested with the wrong method answers 404, the same as an
// unknown path, so callers cannot probe which routes exist.
func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("method not allowed, answering 404")
	http.NotFound(w, r)
}
