//go:build integration

package services

import (
	"context"
	"testing"
	"time"

	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOtpRateLimiter_RedisWindow(t *testing.T) {
	client := testsupport.StartRedis(t)
	ctx := context.Background()

	limiter := NewOtpRateLimiter(client, 3, time.Minute, logging.Logger)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow(ctx, "+5511990000001"), "request %d", i+1)
	}
	assert.False(t, limiter.Allow(ctx, "+5511990000001"))
	assert.True(t, limiter.Allow(ctx, "+5511990000002"))

	ttl, err := client.TTL(ctx, "civicreport:otp_rate:+5511990000001").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
