package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter implements per-IP rate limiting
type RateLimiter struct {
	limiters map[string]*clientLimiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a new rate limiter
// rate: requests per second
// burst: max burst size
func NewRateLimiter(r float64, b int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		rate:     rate.Limit(r),
		burst:    b,
	}
}

// getLimiter returns a rate limiter for the given IP
func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.RLock()
	client, exists := rl.limiters[ip]
	rl.mu.RUnlock()

	if exists {
		rl.mu.Lock()
		client.lastSeen = time.Now()
		rl.mu.Unlock()

		return client.limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Double-check after acquiring write lock
	client, exists = rl.limiters[ip]
	if exists {
		client.lastSeen = time.Now()
		return client.limiter
	}

	client = &clientLimiter{
		limiter:  rate.NewLimiter(rl.rate, rl.burst),
		lastSeen: time.Now(),
	}
	rl.limiters[ip] = client

	return client.limiter
}

// Limit is a middleware that enforces rate limiting per IP
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := getIP(r)
		limiter := rl.getLimiter(ip)

		if !limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getIP extracts the client IP from the request
func getIP(r *http.Request) string {
	// Check X-Forwarded-For header (if behind proxy)
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		return forwarded
	}

	// Check X-Real-IP header
	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	// Fall back to RemoteAddr
	return r.RemoteAddr
}

// Cleanup drops limiters idle longer than olderThan. Should be called
// periodically to keep the map bounded.
func (rl *RateLimiter) Cleanup(olderThan time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	for ip, client := range rl.limiters {
		if client.lastSeen.Before(cutoff) {
			delete(rl.limiters, ip)
		}
	}
}
