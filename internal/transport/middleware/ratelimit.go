package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter throttles requests per client IP with a token bucket. The
// bucket starts full so a burst of rapid mala taps is never rejected; only a
// sustained rate above the limit is.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*tapBucket
	stop    chan struct{}
}

type tapBucket struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	perSec   float64
	refilled time.Time
}

// NewRateLimiter creates a rate limiter that evicts idle client buckets
// every cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*tapBucket),
		stop:    make(chan struct{}),
	}
	go rl.evictIdle(cleanupInterval)
	return rl
}

// Stop terminates the background eviction goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit returns middleware that caps each client IP at maxPerMinute requests.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b := rl.bucketFor(r.RemoteAddr, maxPerMinute)
			if !b.take() {
				retryAfter := 60.0 / float64(maxPerMinute)
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter)+1))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) bucketFor(ip string, maxPerMinute int) *tapBucket {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[ip]
	if !ok {
		capacity := float64(maxPerMinute)
		b = &tapBucket{
			tokens:   capacity,
			capacity: capacity,
			perSec:   capacity / 60.0,
			refilled: time.Now(),
		}
		rl.clients[ip] = b
	}
	return b
}

func (b *tapBucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.refilled).Seconds() * b.perSec
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.refilled = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) evictIdle(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-10 * time.Minute)
			rl.mu.Lock()
			for ip, b := range rl.clients {
				b.mu.Lock()
				idle := b.refilled.Before(cutoff)
				b.mu.Unlock()
				if idle {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}
