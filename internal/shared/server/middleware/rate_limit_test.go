package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func fixedSession(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

func TestRateLimitOnlyAppliesToAnalyzeRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(fixedSession("session-a"))
	r.Use(RateLimit(RateLimitConfig{
		GroupFor: GroupByRoute(map[string]string{"POST /api/v1/assistant/analyze": AnalyzeRateLimitGroup}),
		Limiter:  limiter,
		Rules: map[string]RateLimitRule{
			AnalyzeRateLimitGroup: {Rate: 1, Burst: 2},
		},
	}))
	r.POST("/api/v1/assistant/analyze", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/api/v1/library/items", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/library/items", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("library request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/analyze", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("analyze request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/analyze", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("analyze request 3 expected 429, got %d", resp.Code)
	}
}

func TestRateLimit429UsesErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(fixedSession("session-b"))
	r.Use(RateLimit(RateLimitConfig{
		GroupFor: func(c *gin.Context) string { return "DEFAULT" },
		Limiter:  limiter,
		Rules: map[string]RateLimitRule{
			"DEFAULT": {Rate: 1, Burst: 1},
		},
	}))
	r.GET("/api/v1/limited", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	resp1 := httptest.NewRecorder()
	r.ServeHTTP(resp1, httptest.NewRequest(http.MethodGet, "/api/v1/limited", nil))
	if resp1.Code != http.StatusOK {
		t.Fatalf("expected first request 200, got %d", resp1.Code)
	}

	resp2 := httptest.NewRecorder()
	r.ServeHTTP(resp2, httptest.NewRequest(http.MethodGet, "/api/v1/limited", nil))
	if resp2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp2.Code)
	}
	if resp2.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}

	var payload struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Code != "rate_limited" {
		t.Fatalf("expected code=rate_limited, got %q", payload.Error.Code)
	}
	if _, ok := payload.Error.Details["retryAfterMs"]; !ok {
		t.Fatalf("expected retryAfterMs in details")
	}
}

func TestRateLimitBucketsArePerSession(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("a|ANALYZE", rule); !ok {
		t.Fatalf("first call for a should pass")
	}
	if ok, _ := limiter.Allow("b|ANALYZE", rule); !ok {
		t.Fatalf("first call for b should pass")
	}
	ok, retry := limiter.Allow("a|ANALYZE", rule)
	if ok {
		t.Fatalf("second call for a should be limited")
	}
	if retry != time.Second {
		t.Fatalf("expected 1s retry, got %v", retry)
	}

	now = now.Add(time.Second)
	if ok, _ := limiter.Allow("a|ANALYZE", rule); !ok {
		t.Fatalf("bucket should refill after one second")
	}
}

func TestRateLimitWithoutSessionHeaderFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(SessionID())
	r.Use(RateLimit(RateLimitConfig{
		GroupFor: GroupByRoute(map[string]string{"POST /api/v1/assistant/analyze": AnalyzeRateLimitGroup}),
		Limiter:  limiter,
		Rules: map[string]RateLimitRule{
			AnalyzeRateLimitGroup: {Rate: 1, Burst: 1},
		},
	}))
	r.POST("/api/v1/assistant/analyze", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/analyze", nil)
		req.RemoteAddr = "192.0.2.10:4000"
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		codes = append(codes, resp.Code)
	}
	if codes[0] != http.StatusOK {
		t.Fatalf("expected first request 200, got %v", codes)
	}
	for i, code := range codes[1:] {
		if code != http.StatusTooManyRequests {
			t.Fatalf("request %d without session header expected 429, got %v", i+2, codes)
		}
	}
	if limiter.Len() != 1 {
		t.Fatalf("expected one bucket for the client IP, got %d", limiter.Len())
	}
}

func TestRateLimiterBucketsAreBounded(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := newRateLimiter(func() time.Time { return now }, 2)
	rule := RateLimitRule{Rate: 1, Burst: 1}

	for _, key := range []string{"a", "b", "c", "d"} {
		limiter.Allow(key+"|ANALYZE", rule)
	}
	if limiter.Len() != 2 {
		t.Fatalf("expected 2 buckets, got %d", limiter.Len())
	}
}
