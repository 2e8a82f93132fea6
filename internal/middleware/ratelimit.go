package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/idoevents/api/internal/model"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	Rate    int           // Requests per window (default 100)
	Window  time.Duration // Time window (default 1 minute)
	Burst   int           // Max burst (default 20)
	Cleanup time.Duration // Cleanup interval for idle limiters (default 5 minutes)
}

// RateLimiter applies a per-client token bucket
type RateLimiter struct {
	limiters sync.Map // key -> *rate.Limiter
	limit    rate.Limit
	burst    int
	requests int

	mu          sync.Mutex
	lastCleanup time.Time
	cleanup     time.Duration
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Rate == 0 {
		cfg.Rate = 100
	}
	if cfg.Window == 0 {
		cfg.Window = time.Minute
	}
	if cfg.Burst == 0 {
		cfg.Burst = 20
	}
	if cfg.Cleanup == 0 {
		cfg.Cleanup = 5 * time.Minute
	}

	return &RateLimiter{
		limit:       rate.Limit(float64(cfg.Rate) / cfg.Window.Seconds()),
		burst:       cfg.Rate + cfg.Burst,
		requests:    cfg.Rate,
		cleanup:     cfg.Cleanup,
		lastCleanup: time.Now(),
	}
}

// Allow checks if a request is allowed for the given key and reports the
// delay until the next token when it is not.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	limiter := rl.getLimiter(key)

	if limiter.Allow() {
		return true, 0
	}

	// Peek at the wait for the next token without consuming it
	reservation := limiter.Reserve()
	delay := reservation.Delay()
	reservation.Cancel()

	return false, delay
}

// getLimiter retrieves or creates a limiter for the given key
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	if limiter, ok := rl.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(rl.limit, rl.burst)
	actual, _ := rl.limiters.LoadOrStore(key, limiter)

	rl.maybeCleanup()

	return actual.(*rate.Limiter)
}

// maybeCleanup removes idle limiters to bound memory. A limiter with a
// full bucket has not been used for at least a window.
func (rl *RateLimiter) maybeCleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if time.Since(rl.lastCleanup) < rl.cleanup {
		return
	}
	rl.lastCleanup = time.Now()

	rl.limiters.Range(func(key, value any) bool {
		limiter := value.(*rate.Limiter)
		if limiter.Tokens() >= float64(rl.burst) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// RateLimit returns a middleware that applies rate limiting keyed on the
// client IP. It runs in the global chain, ahead of authentication, so the
// caller identity is not available as a key.
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, delay := limiter.Allow(clientIP(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.requests))

			if !allowed {
				retryAfter := int(delay.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client address, honoring proxy headers
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
