package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"copydesk/internal/handler/http/respond"
	"copydesk/pkg/config"
)

// GenerateLimiter throttles article generation per client. Generation is the
// one expensive endpoint: every call burns model tokens, so a runaway client
// gets a 429 instead of a bill.
type GenerateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewGenerateLimiter creates a limiter allowing perMinute requests per client
// with the given burst.
func NewGenerateLimiter(perMinute, burst int) *GenerateLimiter {
	return &GenerateLimiter{
		clients: map[string]*clientLimiter{},
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   burst,
	}
}

// LoadGenerateLimiter builds a limiter from the environment.
//
// Environment variables:
//   - GENERATE_RATE_PER_MINUTE: requests per minute per client (default: 10)
//   - GENERATE_RATE_BURST: burst allowance (default: 3)
func LoadGenerateLimiter() *GenerateLimiter {
	return NewGenerateLimiter(
		config.GetEnvInt("GENERATE_RATE_PER_MINUTE", 10),
		config.GetEnvInt("GENERATE_RATE_BURST", 3),
	)
}

// Middleware rejects requests over the per-client rate with 429.
func (l *GenerateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientKey(r)) {
			respond.JSON(w, http.StatusTooManyRequests, map[string]string{
				"error": "rate limit exceeded, retry later",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *GenerateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
		l.evictStale()
	}
	c.lastSeen = time.Now()
	return c.limiter.Allow()
}

// evictStale drops clients idle for an hour. Called with the lock held, only
// on new-client insertion, so steady traffic never pays for it.
func (l *GenerateLimiter) evictStale() {
	cutoff := time.Now().Add(-time.Hour)
	for key, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, key)
		}
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
