// internal/handlers/middleware/ratelimit.go
package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter throttles requests per client IP
type RateLimiter struct {
	limiters sync.Map
	limit    rate.Limit
	burst    int
	idle     time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// NewRateLimiter allows requests per window for each client, with the given
// burst. Idle clients are forgotten by a background sweep until Stop.
func NewRateLimiter(requests int, window time.Duration, burst int) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	if burst <= 0 {
		burst = requests
	}

	rl := &RateLimiter{
		limit: rate.Every(window / time.Duration(requests)),
		burst: burst,
		idle:  10 * time.Minute,
		stop:  make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Middleware rejects clients over their budget with 429
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(getClientIP(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Rate limit exceeded"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Allow reports whether the client may make another request now
func (rl *RateLimiter) Allow(client string) bool {
	val, ok := rl.limiters.Load(client)
	if !ok {
		val, _ = rl.limiters.LoadOrStore(client, &clientLimiter{
			limiter: rate.NewLimiter(rl.limit, rl.burst),
		})
	}
	cl := val.(*clientLimiter)
	cl.lastSeen.Store(time.Now().UnixNano())
	return cl.limiter.Allow()
}

// Stop ends the background sweep
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.idle)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			cutoff := now.Add(-rl.idle).UnixNano()
			rl.limiters.Range(func(key, value any) bool {
				if value.(*clientLimiter).lastSeen.Load() < cutoff {
					rl.limiters.Delete(key)
				}
				return true
			})
		}
	}
}
