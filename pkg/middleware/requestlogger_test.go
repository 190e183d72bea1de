package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egalea504/LightBnB/pkg/logger"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logger.NewWithWriter("lightbnb", "debug", buf), buf
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestRequestLogger_StoresEnrichedLogger(t *testing.T) {
	base, buf := newBufferLogger()

	h := RequestLogging(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))(
		RequestLogger(base)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			l := logger.FromContext(r.Context(), nil)
			assert.NotSame(t, base, l)
			l.Info("handled")
		})),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil)
	req.Header.Set(CorrelationIDHeader, "corr-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	entry := lastLogLine(t, buf)
	assert.Equal(t, "handled", entry["msg"])
	assert.Equal(t, "corr-42", entry["correlation_id"])
	assert.NotContains(t, entry, "user_id")
}

func TestRequestLogging_GeneratesCorrelationID(t *testing.T) {
	base, buf := newBufferLogger()

	var seen string
	h := RequestLogging(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.CorrelationIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(CorrelationIDHeader))

	entry := lastLogLine(t, buf)
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, "/api/v1/reservations", entry["path"])
}

func TestRecovery_WritesEnvelope(t *testing.T) {
	base, buf := newBufferLogger()

	h := RequestLogging(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))(
		Recovery(base)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		})),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set(CorrelationIDHeader, "corr-7")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Error struct {
			Code      string `json:"code"`
			RequestID string `json:"request_id"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.Equal(t, "corr-7", body.Error.RequestID)

	entry := lastLogLine(t, buf)
	assert.Equal(t, "panic recovered", entry["msg"])
	assert.Equal(t, "boom", entry["panic"])
}

func TestRecovery_RepanicsAbortHandler(t *testing.T) {
	base, _ := newBufferLogger()
	h := Recovery(base)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
