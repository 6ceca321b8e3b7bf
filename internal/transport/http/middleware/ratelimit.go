package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"appraisal/internal/transport/http/api"
)

type rateBucket struct {
	count int
	reset time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*rateBucket
}

// RateLimit enforces a fixed-window per-client cap, keyed by the session
// user when present and the client IP otherwise.
func RateLimit(limit int, window time.Duration, logger zerolog.Logger) func(http.Handler) http.Handler {
	rl := &rateLimiter{limit: limit, window: window, clients: map[string]*rateBucket{}}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.enforce(w, r, logger) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *rateLimiter) enforce(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) bool {
	if rl.limit <= 0 {
		return true
	}

	key := clientKey(r)
	now := time.Now()

	rl.mu.Lock()
	bucket, ok := rl.clients[key]
	if !ok || now.After(bucket.reset) {
		bucket = &rateBucket{reset: now.Add(rl.window)}
		rl.clients[key] = bucket
	}
	bucket.count++
	remaining := rl.limit - bucket.count
	resetIn := int(bucket.reset.Sub(now).Seconds() + 0.5)
	overLimit := bucket.count > rl.limit
	rl.mu.Unlock()

	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(maxInt(remaining, 0)))
	w.Header().Set("X-RateLimit-Reset", strconv.Itoa(resetIn))

	if overLimit {
		w.Header().Set("Retry-After", strconv.Itoa(maxInt(resetIn, 1)))
		logger.Warn().
			Str("key", key).
			Str("path", r.URL.Path).
			Int("limit", rl.limit).
			Msg("rate limit exceeded")
		api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
		return false
	}
	return true
}

func clientKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok && user.UserID != "" {
		return "user:" + user.UserID
	}
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
