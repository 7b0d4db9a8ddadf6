package services

import (
	"context"
	"sync"
	"time"

	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/redisclient"
	"go.uber.org/zap"
)

// maxBuckets bounds the in-process limiter before idle buckets are swept
const maxBuckets = 10000

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter implements a per-key token bucket rate limiter
type RateLimiter struct {
	buckets    map[string]*bucket
	maxTokens  int
	refillRate time.Duration
	mutex      sync.Mutex
	logger     *logging.SafeLogger
	now        func() time.Time
}

// NewRateLimiter creates a limiter allowing maxTokens requests per key per
// window, refilling one token every window/maxTokens.
func NewRateLimiter(maxTokens int, window time.Duration, logger *logging.SafeLogger) *RateLimiter {
	return &RateLimiter{
		buckets:    make(map[string]*bucket),
		maxTokens:  maxTokens,
		refillRate: window / time.Duration(maxTokens),
		logger:     logger,
		now:        time.Now,
	}
}

// Allow checks if a request for key should be allowed
func (rl *RateLimiter) Allow(ctx context.Context, key string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		if len(rl.buckets) >= maxBuckets {
			rl.sweep(now)
		}
		b = &bucket{tokens: rl.maxTokens, lastRefill: now}
		rl.buckets[key] = b
	}

	rl.refill(b, now)

	if b.tokens > 0 {
		b.tokens--
		return true
	}

	rl.logger.Warn("rate limiter rejected request",
		zap.Int("tokens", b.tokens),
		zap.Int("max_tokens", rl.maxTokens))
	return false
}

func (rl *RateLimiter) refill(b *bucket, now time.Time) {
	if rl.refillRate <= 0 {
		b.tokens = rl.maxTokens
		return
	}
	tokensToAdd := int(now.Sub(b.lastRefill) / rl.refillRate)
	if tokensToAdd > 0 {
		b.tokens += tokensToAdd
		if b.tokens > rl.maxTokens {
			b.tokens = rl.maxTokens
		}
		b.lastRefill = b.lastRefill.Add(time.Duration(tokensToAdd) * rl.refillRate)
	}
}

// sweep drops buckets that have fully refilled; callers hold the mutex
func (rl *RateLimiter) sweep(now time.Time) {
	removed := 0
	for key, b := range rl.buckets {
		rl.refill(b, now)
		if b.tokens >= rl.maxTokens {
			delete(rl.buckets, key)
			removed++
		}
	}
	rl.logger.Debug("swept idle rate limiter buckets", zap.Int("removed", removed))
}

// OtpRateLimiter limits OTP requests per phone with a Redis fixed window,
// falling back to an in-process token bucket when Redis is absent or failing.
type OtpRateLimiter struct {
	redis  *redisclient.Client
	local  *RateLimiter
	limit  int
	window time.Duration
	logger *logging.SafeLogger
}

func NewOtpRateLimiter(redis *redisclient.Client, limit int, window time.Duration, logger *logging.SafeLogger) *OtpRateLimiter {
	return &OtpRateLimiter{
		redis:  redis,
		local:  NewRateLimiter(limit, window, logger),
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// Allow records an OTP request for phone and reports whether it is allowed
func (l *OtpRateLimiter) Allow(ctx context.Context, phone string) bool {
	if l.redis == nil {
		return l.local.Allow(ctx, phone)
	}

	key := "civicreport:otp_rate:" + phone
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("redis rate limit unavailable, using in-process limiter", zap.Error(err))
		return l.local.Allow(ctx, phone)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("failed to set rate limit window", zap.Error(err))
		}
	} else if ttl, err := l.redis.TTL(ctx, key).Result(); err == nil && ttl < 0 {
		// a previous Expire was lost; never let the key live forever
		_ = l.redis.Expire(ctx, key, l.window).Err()
	}

	return count <= int64(l.limit)
}
