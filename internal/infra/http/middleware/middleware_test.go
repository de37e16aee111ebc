package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// TestRateLimiterBurstPerIP - cada IP tem seu próprio balde
func TestRateLimiterBurstPerIP(t *testing.T) {
	rl := NewRateLimiter(2)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))

	// meio minuto depois volta um token (2 por minuto)
	now = now.Add(30 * time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
}

// TestRateLimiterEvictIdle - visitantes parados saem do mapa
func TestRateLimiterEvictIdle(t *testing.T) {
	rl := NewRateLimiter(5)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1")
	now = now.Add(5 * time.Minute)
	rl.Allow("10.0.0.2")
	now = now.Add(6 * time.Minute)

	assert.Equal(t, 1, rl.evictIdle())
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

// TestRateLimiterMiddleware - responde 429 com o envelope padrão
func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(1)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/brief/submit", nil)
	req.RemoteAddr = "192.168.1.10:51234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"success":false,"message":"Demasiadas solicitudes. Intenta de nuevo en un momento."}`, rec.Body.String())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.10:51234"
	assert.Equal(t, "192.168.1.10", ClientIP(req))

	req.Header.Set("X-Real-IP", "172.16.0.4")
	assert.Equal(t, "172.16.0.4", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ClientIP(req))
}

// TestMetricsUsesRoutePattern - o label path vem do padrão da rota
func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Put("/brief/steps/{step}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPut, "/brief/steps/{step}", "422"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/brief/steps/3", nil))

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPut, "/brief/steps/{step}", "422"))
	assert.Equal(t, before+1, after)
}

func TestRecordDraftWrite(t *testing.T) {
	before := testutil.ToFloat64(draftWrites.WithLabelValues("error"))
	RecordDraftWrite(assert.AnError)
	assert.Equal(t, before+1, testutil.ToFloat64(draftWrites.WithLabelValues("error")))
}
