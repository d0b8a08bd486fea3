// Package ratelimit provides a per-client token bucket limiter for the
// HTTP surface.
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter keeps one token bucket per client key and evicts buckets that
// have been idle long enough to refill completely.
type Limiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*clientBucket
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a Limiter allowing rps requests per second with the given
// burst per client.
func New(rps float64, burst int) *Limiter {
	l := &Limiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*clientBucket),
	}
	go l.evictLoop()
	return l
}

// Allow reports whether the client identified by key may proceed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cb, ok := l.clients[key]
	if !ok {
		cb = &clientBucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = cb
	}
	cb.lastSeen = time.Now()
	return cb.limiter.Allow()
}

func (l *Limiter) evictLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-3 * time.Minute)
		l.mu.Lock()
		for key, cb := range l.clients {
			if cb.lastSeen.Before(cutoff) {
				delete(l.clients, key)
			}
		}
		l.mu.Unlock()
	}
}

// Middleware rejects requests over the per-client limit with 429. The
// client key is the remote IP, which assumes chi's RealIP middleware runs
// earlier in the chain.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			key = host
		}
		if !l.Allow(key) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
