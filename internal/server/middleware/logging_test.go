package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		handler        http.HandlerFunc
		name           string
		method         string
		path           string
		expectedLevel  string
		expectedStatus int
	}{
		{
			name:   "GET request with 200 OK",
			method: http.MethodGet,
			path:   "/api/word",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("success"))
			},
			expectedStatus: http.StatusOK,
			expectedLevel:  "INFO",
		},
		{
			name:   "Wrong credentials with 409 Conflict",
			method: http.MethodPost,
			path:   "/api/login",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
			},
			expectedStatus: http.StatusConflict,
			expectedLevel:  "WARN",
		},
		{
			name:   "Request with 500 Internal Server Error",
			method: http.MethodPost,
			path:   "/api/reissue",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedLevel:  "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf strings.Builder
			logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))

			handler := LoggingMiddleware(logger)(tt.handler)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.RemoteAddr = "192.168.1.1:12345"
			req.Header.Set("User-Agent", "TestAgent/1.0")
			req.Header.Set("X-Request-ID", "req-42")
			req.Header.Set("Authorization", "Bearer secret-token")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			logOutput := logBuf.String()
			assert.Contains(t, logOutput, "HTTP request")
			assert.Contains(t, logOutput, tt.method)
			assert.Contains(t, logOutput, tt.path)
			assert.Contains(t, logOutput, "192.168.1.1:12345")
			assert.Contains(t, logOutput, "TestAgent/1.0")
			assert.Contains(t, logOutput, "request_id=req-42")
			assert.Contains(t, logOutput, "level="+tt.expectedLevel)
			assert.NotContains(t, logOutput, "secret-token", "tokens must not be logged")
		})
	}
}

func TestLoggingMiddleware_CapturesResponseMetrics(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(10 * time.Millisecond)
		_, _ = w.Write([]byte("Hello, World!")) // 13 bytes
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	logOutput := logBuf.String()
	assert.Contains(t, logOutput, "duration_ms=")
	assert.Contains(t, logOutput, "bytes_written=13")
	assert.Contains(t, logOutput, "status=200")
	assert.NotContains(t, logOutput, "request_id")
}

func TestLoggingWithSkip(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	handler := LoggingWithSkip(logger, []string{"/api/health"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Empty(t, logBuf.String(), "health check should not be logged")

	req = httptest.NewRequest(http.MethodGet, "/api/word", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Contains(t, logBuf.String(), "/api/word")
}

func TestResponseWriter_CapturesStatusAndBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusTeapot)
	n, err := rw.Write([]byte("abc"))
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.Equal(t, http.StatusTeapot, rw.statusCode)
	assert.Equal(t, int64(3), rw.written)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
