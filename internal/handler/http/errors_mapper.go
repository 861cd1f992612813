package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-shipy/internal/service"
	"github.com/MKhiriev/go-shipy/internal/store"
	"github.com/MKhiriev/go-shipy/internal/throttle"
	"github.com/MKhiriev/go-shipy/internal/validators"
)

// errorStatusMap must not contain two errors that can appear in the same
// chain, since map iteration order is random.
var errorStatusMap = map[error]int{
	ErrFormParsing: http.StatusBadRequest,

	service.ErrInvalidDataProvided: http.StatusUnprocessableEntity,
	validators.ErrInvalidForm:      http.StatusUnprocessableEntity,
	// throttled and wrong credentials must look the same
	service.ErrInvalidCredentials:    http.StatusUnauthorized,
	service.ErrThrottled:             http.StatusUnauthorized,
	service.ErrUnauthorized:          http.StatusUnauthorized,
	service.ErrCredentialHashFailure: http.StatusInternalServerError,
	service.ErrSessionIssueFailed:    http.StatusInternalServerError,

	throttle.ErrBackendUnavailable: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
