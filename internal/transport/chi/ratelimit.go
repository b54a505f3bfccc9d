package chi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/kailas-cloud/workermatch/internal/domain"
	"github.com/kailas-cloud/workermatch/internal/metrics"
	"github.com/kailas-cloud/workermatch/internal/transport/api"
)

// limiterIdleTTL is how long an unused client limiter is kept.
const limiterIdleTTL = time.Hour

// RateLimiter enforces a per-client-IP request rate.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	now      func() time.Time
	lastGC   time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewRateLimiter allows perMinute requests per client with the given burst.
// burst <= 0 defaults to perMinute. perMinute <= 0 disables limiting (nil).
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if perMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = perMinute
	}
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether a request from ip may proceed.
func (rl *RateLimiter) Allow(ip string) bool {
	now := rl.now()

	rl.mu.Lock()
	if now.Sub(rl.lastGC) > limiterIdleTTL {
		rl.evictIdle(now)
	}
	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastAccess = now
	limiter := entry.limiter
	rl.mu.Unlock()

	return limiter.AllowN(now, 1)
}

// evictIdle drops limiters idle longer than limiterIdleTTL. Caller holds mu.
func (rl *RateLimiter) evictIdle(now time.Time) {
	for ip, e := range rl.limiters {
		if now.Sub(e.lastAccess) > limiterIdleTTL {
			delete(rl.limiters, ip)
		}
	}
	rl.lastGC = now
}

// Middleware limits the listed paths. A nil limiter disables limiting.
func (rl *RateLimiter) Middleware(paths ...string) func(http.Handler) http.Handler {
	limited := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		limited[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		if rl == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := limited[r.URL.Path]; ok && !rl.Allow(clientIP(r)) {
				metrics.RateLimitedTotal.Inc()
				writeError(w, http.StatusTooManyRequests, api.ErrorResponseCodeRateLimited, domain.ErrRateLimited.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr. chi's RealIP middleware runs
// earlier and rewrites RemoteAddr from proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
