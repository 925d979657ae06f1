package chi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/kailas-cloud/faqdex/internal/domain"
	"github.com/kailas-cloud/faqdex/internal/metrics"
)

// Rate limit scopes, used as metric labels.
const (
	scopeClient = "client"
	scopeGlobal = "global"
)

// RateLimiter combines a per-client budget with a global one.
// A zero per-minute value disables that scope.
type RateLimiter struct {
	client *scopedLimiter
	global *rate.Limiter
}

// clientIdleTTL is how long an unused client bucket is kept. A bucket idle
// this long has refilled completely, so dropping it loses no budget.
const clientIdleTTL = 5 * time.Minute

type clientBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type scopedLimiter struct {
	mu        sync.Mutex
	m         map[string]*clientBucket
	rate      rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

func newScopedLimiter(perMinute int) *scopedLimiter {
	return &scopedLimiter{
		m:     make(map[string]*clientBucket),
		rate:  rate.Limit(float64(perMinute) / 60.0),
		burst: perMinute,
		now:   time.Now,
	}
}

func (s *scopedLimiter) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	b, ok := s.m[key]
	if !ok {
		b = &clientBucket{lim: rate.NewLimiter(s.rate, s.burst)}
		s.m[key] = b
	}
	b.lastSeen = now
	return b.lim.AllowN(now, 1)
}

// sweep drops idle buckets at most once per clientIdleTTL. Caller holds mu.
func (s *scopedLimiter) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < clientIdleTTL {
		return
	}
	s.lastSweep = now
	for key, b := range s.m {
		if now.Sub(b.lastSeen) >= clientIdleTTL {
			delete(s.m, key)
		}
	}
}

func (s *scopedLimiter) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// NewRateLimiter constructs a composite limiter with per-client and global budgets.
func NewRateLimiter(clientPerMinute, globalPerMinute int) *RateLimiter {
	rl := &RateLimiter{}
	if clientPerMinute > 0 {
		rl.client = newScopedLimiter(clientPerMinute)
	}
	if globalPerMinute > 0 {
		rl.global = rate.NewLimiter(rate.Limit(float64(globalPerMinute)/60.0), globalPerMinute)
	}
	return rl
}

// Enabled reports whether any scope is limited.
func (rl *RateLimiter) Enabled() bool {
	return rl.client != nil || rl.global != nil
}

// Allow reports whether a request from clientKey may proceed, and the scope that rejected it otherwise.
func (rl *RateLimiter) Allow(clientKey string) (ok bool, scope string) {
	if rl.global != nil && !rl.global.Allow() {
		return false, scopeGlobal
	}
	if rl.client != nil && !rl.client.allow(clientKey) {
		return false, scopeClient
	}
	return true, ""
}

// Middleware rejects over-budget requests with 429. Exempt paths are never limited.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !rl.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			if ok, scope := rl.Allow(clientKey(r)); !ok {
				metrics.RateLimitedTotal.WithLabelValues(scope).Inc()
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, ErrorCodeRateLimited, domain.ErrRateLimited.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the caller by API key when present, else by remote host.
func clientKey(r *http.Request) string {
	if token, ok := bearerToken(r); ok {
		return "key:" + token
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}
