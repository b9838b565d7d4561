package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"applyapi/internal/apperr"
)

// Limiter decides whether another request for key fits in limit per window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

// MemoryLimiter keeps one token bucket per key in process memory. Buckets idle for a whole
// window are full again and get evicted, so the map only holds recently active keys.
type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	now       func() time.Time
	lastSweep time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	window   time.Duration
	lastSeen time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{buckets: make(map[string]*bucket), now: time.Now}
}

// Allow refills limit tokens evenly over window, with a burst of limit.
func (m *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) bool {
	if limit <= 0 || window <= 0 {
		return true
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= window {
		m.evictIdle(now)
		m.lastSweep = now
	}

	b, ok := m.buckets[key]
	if !ok {
		b = &bucket{
			limiter: rate.NewLimiter(rate.Every(window/time.Duration(limit)), limit),
			window:  window,
		}
		m.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func (m *MemoryLimiter) evictIdle(now time.Time) {
	for key, b := range m.buckets {
		if now.Sub(b.lastSeen) >= b.window {
			delete(m.buckets, key)
		}
	}
}

// size reports the number of tracked keys.
func (m *MemoryLimiter) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets)
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter is a fixed-window counter shared by every replica.
// Redis failures let the request through.
type RedisLimiter struct {
	client  redis.Scripter
	prefix  string
	timeout time.Duration
	logger  logrus.FieldLogger
}

func NewRedisLimiter(client redis.Scripter, logger logrus.FieldLogger) *RedisLimiter {
	return &RedisLimiter{
		client:  client,
		prefix:  "applyapi:ratelimit:",
		timeout: 250 * time.Millisecond,
		logger:  logger,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	if limit <= 0 || window <= 0 {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	count, err := fixedWindowScript.Run(ctx, r.client, []string{r.prefix + key}, strconv.FormatInt(window.Milliseconds(), 10)).Int64()
	if err != nil {
		if r.logger != nil {
			r.logger.WithError(err).WithField("key", key).Warn("rate limiter unavailable")
		}
		return true
	}
	return count <= int64(limit)
}

// RateLimit throttles requests per authenticated actor, falling back to the client IP.
func RateLimit(l Limiter, scope string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.IP()
		if actor, ok := ActorFromCtx(c); ok && actor.ID != "" {
			key = actor.ID
		}
		if !l.Allow(c.UserContext(), scope+":"+key, limit, window) {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(window.Seconds())))
			return apperr.New(apperr.KindRateLimited, "too many requests, try again later", nil)
		}
		return c.Next()
	}
}
