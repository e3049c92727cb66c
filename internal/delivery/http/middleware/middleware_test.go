package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func newLimiter(t *testing.T, config RateLimiterConfig) *RateLimiter {
	t.Helper()
	rl, err := NewRateLimiter(config)
	require.NoError(t, err)
	return rl
}

func sendFrom(h http.Handler, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_PerClient(t *testing.T) {
	h := newLimiter(t, RateLimiterConfig{Rate: 0.001, Burst: 1}).Handle(okHandler)

	assert.Equal(t, http.StatusOK, sendFrom(h, "10.0.0.1:5000", ""))
	assert.Equal(t, http.StatusTooManyRequests, sendFrom(h, "10.0.0.1:5000", ""))
	assert.Equal(t, http.StatusOK, sendFrom(h, "10.0.0.2:5000", ""))
}

func TestRateLimiter_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	rl := newLimiter(t, RateLimiterConfig{Rate: 0.001, Burst: 1})
	h := rl.Handle(okHandler)

	allowed := 0
	for i := 0; i < 1000; i++ {
		if sendFrom(h, "198.51.100.4:4000", fmt.Sprintf("203.0.113.%d", i%250)) == http.StatusOK {
			allowed++
		}
	}

	assert.Equal(t, 1, allowed)
	assert.Equal(t, 1, rl.limiters.ItemCount())
}

func TestRateLimiter_TrustedProxy(t *testing.T) {
	rl := newLimiter(t, RateLimiterConfig{Rate: 0.001, Burst: 1, TrustedProxies: []string{"10.0.0.0/8"}})
	h := rl.Handle(okHandler)

	assert.Equal(t, http.StatusOK, sendFrom(h, "10.1.2.3:80", "203.0.113.7, 10.0.0.9"))
	assert.Equal(t, http.StatusTooManyRequests, sendFrom(h, "10.1.2.4:80", "203.0.113.7"))
	assert.Equal(t, http.StatusOK, sendFrom(h, "10.1.2.3:80", "203.0.113.8"))

	// A client cannot claim another address by prepending to the chain.
	assert.Equal(t, http.StatusTooManyRequests, sendFrom(h, "10.1.2.3:80", "192.0.2.1, 203.0.113.8"))
}

func TestRateLimiter_RejectsInvalidTrustedProxy(t *testing.T) {
	_, err := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 1, TrustedProxies: []string{"not-an-ip"}})
	assert.Error(t, err)
}

func TestRateLimiter_IdleBucketsExpire(t *testing.T) {
	rl := newLimiter(t, RateLimiterConfig{Rate: 0.001, Burst: 1, IdleTTL: 20 * time.Millisecond})
	h := rl.Handle(okHandler)

	assert.Equal(t, http.StatusOK, sendFrom(h, "10.0.0.1:5000", ""))
	assert.Equal(t, http.StatusTooManyRequests, sendFrom(h, "10.0.0.1:5000", ""))

	time.Sleep(50 * time.Millisecond)
	rl.limiters.DeleteExpired()
	assert.Equal(t, 0, rl.limiters.ItemCount())
	assert.Equal(t, http.StatusOK, sendFrom(h, "10.0.0.1:5000", ""))
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetRequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
}

func TestLoggerMiddleware_LevelByStatus(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	h := RequestID(NewLoggerMiddleware(log).Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/consultations/1/accept", nil))

	out := buf.String()
	assert.Contains(t, out, `"level":"warning"`)
	assert.Contains(t, out, `"status":409`)
	assert.Contains(t, out, `"path":"/api/consultations/1/accept"`)
	assert.Contains(t, out, `"request_id":"`)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	h := NewCORSMiddleware().Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
