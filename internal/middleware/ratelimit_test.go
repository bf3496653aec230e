package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemoscan-screening-server/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newRateLimitedRouter(t *testing.T, config domain.RateLimitConfig) http.Handler {
	limiter, err := NewRateLimiter(config, testLogger())
	require.NoError(t, err)
	return newTestRouter(limiter.Handler())
}

func requestFrom(router http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRateLimiterAllowsBurst(t *testing.T) {
	router := newRateLimitedRouter(t, domain.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		Burst:             3,
		MaxClients:        16,
	})

	for i := 0; i < 3; i++ {
		recorder := requestFrom(router, "10.0.0.1:1234")
		assert.Equal(t, http.StatusOK, recorder.Code, "request %d within burst", i+1)
	}
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	router := newRateLimitedRouter(t, domain.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		Burst:             2,
		MaxClients:        16,
	})

	requestFrom(router, "10.0.0.1:1234")
	requestFrom(router, "10.0.0.1:1234")
	recorder := requestFrom(router, "10.0.0.1:1234")

	require.Equal(t, http.StatusTooManyRequests, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, domain.ErrRateLimit, body["code"])
}

func TestRateLimiterIsPerClient(t *testing.T) {
	router := newRateLimitedRouter(t, domain.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		Burst:             1,
		MaxClients:        16,
	})

	first := requestFrom(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, first.Code)

	exhausted := requestFrom(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, exhausted.Code)

	// A different client has its own bucket.
	other := requestFrom(router, "10.0.0.2:1234")
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestRateLimiterDefaultsMaxClients(t *testing.T) {
	limiter, err := NewRateLimiter(domain.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 5,
		Burst:             5,
	}, testLogger())

	require.NoError(t, err)
	assert.NotNil(t, limiter)
}
