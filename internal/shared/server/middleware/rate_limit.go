package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nessydroid1192/may-tejiarte/internal/shared/server/respond"
)

const (
	defaultRateLimitGroup = "DEFAULT"
	// AnalyzeRateLimitGroup covers routes that call the generative model.
	AnalyzeRateLimitGroup = "ANALYZE"
)

// RateLimitRule is a token bucket: Rate tokens per second, up to Burst.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

// RateLimitConfig maps route groups to rules. Groups without a rule pass through.
type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	Limiter      *RateLimiter
}

// maxRateBuckets bounds the limiter. The least recently used bucket goes first.
const maxRateBuckets = 4096

// RateLimiter holds one bucket per principal and group.
type RateLimiter struct {
	mu      sync.Mutex
	buckets *lru.Cache[string, *rateBucket]
	now     func() time.Time
}

type rateBucket struct {
	tokens float64
	last   time.Time
}

// NewRateLimiter returns a limiter using now as its clock; nil means time.Now.
func NewRateLimiter(now func() time.Time) *RateLimiter {
	return newRateLimiter(now, maxRateBuckets)
}

func newRateLimiter(now func() time.Time, size int) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	buckets, err := lru.New[string, *rateBucket](size)
	if err != nil {
		panic(err)
	}
	return &RateLimiter{buckets: buckets, now: now}
}

// Len reports the number of live buckets.
func (l *RateLimiter) Len() int {
	return l.buckets.Len()
}

// principal is the client's session, or its IP when the session id was minted
// for this request. A client that drops the header must not get a fresh bucket
// every time.
func principal(c *gin.Context) string {
	id := strings.TrimSpace(SessionIDFromContext(c))
	if id == "" || SessionIDMinted(c) {
		return "ip:" + strings.TrimSpace(c.ClientIP())
	}
	return "session:" + id
}

// RateLimit enforces cfg per session, falling back to the client IP.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = defaultRateLimitGroup
	}
	return func(c *gin.Context) {
		group := cfg.DefaultGroup
		if cfg.GroupFor != nil {
			if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
				group = g
			}
		}
		rule, ok := cfg.Rules[group]
		if !ok {
			c.Next()
			return
		}
		key := principal(c) + "|" + group
		allowed, retryAfter := cfg.Limiter.Allow(key, rule)
		if allowed {
			c.Next()
			return
		}
		retryAfterMs := int(retryAfter / time.Millisecond)
		if retryAfterMs <= 0 {
			retryAfterMs = 1000
		}
		retryAfterSeconds := int(math.Ceil(float64(retryAfterMs) / 1000.0))
		if retryAfterSeconds <= 0 {
			retryAfterSeconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "Too many analysis requests, try again shortly", gin.H{
			"group":        group,
			"retryAfterMs": retryAfterMs,
		})
	}
}

func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil {
		return true, 0
	}
	if rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	bucket, ok := l.buckets.Get(key)
	if !ok {
		bucket = &rateBucket{
			tokens: float64(rule.Burst),
			last:   now,
		}
		l.buckets.Add(key, bucket)
	}
	elapsed := now.Sub(bucket.last).Seconds()
	if elapsed > 0 {
		bucket.tokens = math.Min(float64(rule.Burst), bucket.tokens+elapsed*rule.Rate)
		bucket.last = now
	}
	if bucket.tokens >= 1 {
		bucket.tokens -= 1
		return true, 0
	}
	needed := 1 - bucket.tokens
	waitSec := needed / rule.Rate
	if waitSec < 0 {
		waitSec = 0
	}
	retryAfter := time.Duration(math.Ceil(waitSec*1000.0)) * time.Millisecond
	return false, retryAfter
}

// GroupByRoute assigns groups by method and gin full path, e.g.
// "POST /api/v1/assistant/analyze".
func GroupByRoute(groups map[string]string) func(*gin.Context) string {
	return func(c *gin.Context) string {
		return groups[c.Request.Method+" "+c.FullPath()]
	}
}
