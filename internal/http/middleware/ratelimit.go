package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// limiterIdleAfter is how long a caller's bucket survives without traffic
// before a sweep drops it.
const limiterIdleAfter = 3 * time.Minute

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a token-bucket limit per caller. When the route chain
// has already authenticated the request, the bucket is keyed by the token
// subject; otherwise by client IP. Idle buckets are swept so the map stays
// bounded by the set of recently active callers.
type RateLimiter struct {
	rps   float64
	burst int

	mu        sync.Mutex
	entries   map[string]*limiterEntry
	lastSweep time.Time
}

// NewRateLimiter creates a RateLimiter. rps is allowed events per second,
// burst the maximum bucket size.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		rps:       rps,
		burst:     burst,
		entries:   make(map[string]*limiterEntry),
		lastSweep: time.Now(),
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastSweep) > limiterIdleAfter {
		for k, e := range rl.entries {
			if now.Sub(e.lastSeen) > limiterIdleAfter {
				delete(rl.entries, k)
			}
		}
		rl.lastSweep = now
	}

	e, ok := rl.entries[key]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(rate.Limit(rl.rps), rl.burst)}
		rl.entries[key] = e
	}
	e.lastSeen = now
	return e.lim
}

// Handler returns the fiber middleware handler. Mount it after Auth on
// authenticated routes to get per-subject buckets; mounted before (or
// without) Auth it falls back to per-IP buckets.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "ip:" + c.IP()
		if claims := ClaimsFromCtx(c); claims != nil {
			key = "sub:" + claims.UserID
		}

		if !rl.limiter(key).Allow() {
			c.Set(fiber.HeaderRetryAfter, "1")
			return fiber.NewError(fiber.StatusTooManyRequests)
		}
		return c.Next()
	}
}
