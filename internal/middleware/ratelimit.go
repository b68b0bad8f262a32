package middleware

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter caps how many streaming exchanges a caller may start per window.
// Callers are keyed by their authenticated email when available, falling back
// to the remote address for unauthenticated paths. Counts live in process
// memory; a restart resets them.
type RateLimiter struct {
	mu     sync.Mutex
	counts map[string]*windowCount
	limit  int
	window time.Duration
}

type windowCount struct {
	n       int
	resetAt time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		counts: make(map[string]*windowCount),
		limit:  limit,
		window: window,
	}
	go rl.sweep()
	return rl
}

// sweep drops expired windows so the map does not grow unbounded.
func (rl *RateLimiter) sweep() {
	for {
		time.Sleep(rl.window)
		now := time.Now()
		rl.mu.Lock()
		for key, wc := range rl.counts {
			if now.After(wc.resetAt) {
				delete(rl.counts, key)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	wc, ok := rl.counts[key]
	if !ok || now.After(wc.resetAt) {
		rl.counts[key] = &windowCount{n: 1, resetAt: now.Add(rl.window)}
		return true
	}

	wc.n++
	return wc.n <= rl.limit
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := GetEmail(r.Context())
		if key == "" {
			key = r.RemoteAddr
		}

		if !rl.allow(key) {
			writeError(w, http.StatusTooManyRequests, "Too Many Requests", "Too many requests. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}
