package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rankings-api/internal/http/mocks"
	"rankings-api/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware_InjectsLogEvent(t *testing.T) {
	var captured string

	handler := loggingMiddleware(newPermissiveLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = logger.GetLogEvent(r.Context()).ProcessID
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/rankings?domains=a.com", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.NotEmpty(t, captured)
}

func TestRateLimitingMiddleware_Allowed(t *testing.T) {
	limiter := &mocks.MockRateLimiter{}
	limiter.On("Allow", "10.0.0.1").Return(true)

	var called bool
	handler := rateLimitingMiddleware(limiter, newPermissiveLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/rankings", nil)
	req = req.WithContext(logger.WithLogEvent(req.Context(), logger.NewRequestLogEvent("10.0.0.1")))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	limiter.AssertExpectations(t)
}

func TestRateLimitingMiddleware_Rejected(t *testing.T) {
	limiter := &mocks.MockRateLimiter{}
	limiter.On("Allow", "10.0.0.1").Return(false)

	handler := rateLimitingMiddleware(limiter, newPermissiveLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run when rate limited")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/rankings", nil)
	req = req.WithContext(logger.WithLogEvent(req.Context(), logger.NewRequestLogEvent("10.0.0.1")))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Retry-After"))
}

func TestCorsMiddleware_Preflight(t *testing.T) {
	handler := corsMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for preflight")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/rankings", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware_Panic(t *testing.T) {
	handler := recoveryMiddleware(newPermissiveLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/rankings", nil)
	rec := httptest.NewRecorder()

	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *http.Request)
		expected string
	}{
		{
			name:     "x-forwarded-for single",
			setup:    func(r *http.Request) { r.Header.Set("X-Forwarded-For", "1.2.3.4") },
			expected: "1.2.3.4",
		},
		{
			name:     "x-forwarded-for list takes first",
			setup:    func(r *http.Request) { r.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8") },
			expected: "1.2.3.4",
		},
		{
			name:     "x-real-ip",
			setup:    func(r *http.Request) { r.Header.Set("X-Real-IP", "9.9.9.9") },
			expected: "9.9.9.9",
		},
		{
			name:     "remote addr fallback",
			setup:    func(r *http.Request) { r.RemoteAddr = "192.168.1.1:54321" },
			expected: "192.168.1.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			assert.Equal(t, tt.expected, getClientIP(req))
		})
	}
}
