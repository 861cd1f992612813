package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/internal/utils"
	"github.com/MKhiriev/go-shipy/models"
)

func bareHandler(l *logger.Logger) *Handler {
	return &Handler{logger: l}
}

// ─────────────────────────────────────────────
// withTraceID
// ─────────────────────────────────────────────

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name           string
		requestTraceID string
		wantSame       bool
	}{
		{name: "incoming ID is reused", requestTraceID: "my-custom-trace-id", wantSame: true},
		{name: "missing ID is generated"},
		{name: "oversized ID is replaced", requestTraceID: strings.Repeat("x", maxTraceIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := bareHandler(&logger.Logger{Logger: zerolog.New(&buf)})

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.FromRequest(r).Info().Msg("inside")
				w.WriteHeader(http.StatusTeapot)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.requestTraceID != "" {
				req.Header.Set(traceIDHeader, tt.requestTraceID)
			}
			rec := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rec, req)

			traceID := rec.Header().Get(traceIDHeader)
			require.NotEmpty(t, traceID)
			assert.Equal(t, http.StatusTeapot, rec.Code)
			assert.Contains(t, buf.String(), `"trace_id":"`+traceID+`"`)
			assert.Contains(t, buf.String(), `"client":"192.0.2.1"`)

			if tt.wantSame {
				assert.Equal(t, tt.requestTraceID, traceID)
			} else {
				_, err := uuid.Parse(traceID)
				assert.NoError(t, err)
			}
		})
	}
}

// ─────────────────────────────────────────────
// withLogging
// ─────────────────────────────────────────────

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	h := bareHandler(logger.Nop())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("hello"))
	})

	req := httptest.NewRequest(http.MethodPost, "/signup", nil)
	l := zerolog.New(&buf)
	principal := utils.NewPrincipal(func(context.Context) (models.User, bool, error) {
		return models.User{UserID: 42}, true, nil
	})
	req = req.WithContext(utils.WithPrincipal(l.WithContext(req.Context()), principal))

	rec := httptest.NewRecorder()
	h.withLogging(next).ServeHTTP(rec, req)

	out := buf.String()
	for _, want := range []string{
		`"method":"POST"`,
		`"uri":"/signup"`,
		`"status":201`,
		`"size":5`,
		`"duration":`,
		`"user_id":42`,
		`"htmx":false`,
	} {
		assert.Contains(t, out, want)
	}
}

func TestWithLogging_AnonymousHasNoUserID(t *testing.T) {
	var buf bytes.Buffer
	h := bareHandler(logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	l := zerolog.New(&buf)
	req = req.WithContext(l.WithContext(req.Context()))

	h.withLogging(http.NotFoundHandler()).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"status":404`)
	assert.NotContains(t, buf.String(), "user_id")
}

// ─────────────────────────────────────────────
// responseWriter
// ─────────────────────────────────────────────

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusAccepted)
	w.WriteHeader(http.StatusBadRequest)
	n, err := w.Write([]byte("abc"))

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, http.StatusAccepted, w.status)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 3, w.size)
	assert.Same(t, rec, w.Unwrap())
}

func TestResponseWriter_WriteImpliesOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.Write([]byte("a"))
	w.Write([]byte("bc"))

	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, 3, w.size)
	assert.Equal(t, "abc", rec.Body.String())
}

// ─────────────────────────────────────────────
// statusFromError
// ─────────────────────────────────────────────

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFromError(ErrFormParsing))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(assert.AnError))
}
