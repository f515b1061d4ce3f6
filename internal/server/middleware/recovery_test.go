package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/vocab/pkg/api"
)

func TestRecoveryMiddleware(t *testing.T) {
	tests := []struct {
		handler        http.HandlerFunc
		name           string
		expectedStatus int
		shouldPanic    bool
	}{
		{
			name: "Normal request without panic",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Panic with string",
			handler: func(w http.ResponseWriter, r *http.Request) {
				panic("something went wrong")
			},
			expectedStatus: http.StatusInternalServerError,
			shouldPanic:    true,
		},
		{
			name: "Panic with nil map write",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var m map[string]int
				m["boom"] = 1
			},
			expectedStatus: http.StatusInternalServerError,
			shouldPanic:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf strings.Builder
			logger := slog.New(slog.NewTextHandler(&logBuf, nil))

			handler := RecoveryMiddleware(logger)(tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/api/word", nil)
			w := httptest.NewRecorder()

			assert.NotPanics(t, func() {
				handler.ServeHTTP(w, req)
			})

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.shouldPanic {
				var resp api.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, "internal server error", resp.Message)

				logOutput := logBuf.String()
				assert.Contains(t, logOutput, "Panic recovered")
				assert.Contains(t, logOutput, "stack=")
			} else {
				assert.Empty(t, logBuf.String())
			}
		})
	}
}

func TestRecoveryMiddleware_RepanicsAbortHandler(t *testing.T) {
	handler := RecoveryMiddleware(setupTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/word", nil)
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	})
}

func TestRecoveryMiddleware_ChainWithOtherMiddleware(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler failure")
	})

	// Recovery снаружи логирования, как в cmd/server
	handler := RecoveryMiddleware(logger)(LoggingMiddleware(logger)(panicking))

	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	w := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(w, req)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, logBuf.String(), "handler failure")
}
