//go:build integration
// +build integration

package ratelimit

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func setupRedisLimiter(t *testing.T) func(now func() time.Time) *redisLimiter {
	t.Helper()
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR_TEST"))
	if addr == "" {
		t.Skip("REDIS_ADDR_TEST not set")
	}
	return func(now func() time.Time) *redisLimiter {
		limiter, err := NewRedisLimiter(addr, os.Getenv("REDIS_PASSWORD_TEST"), 0, now)
		if err != nil {
			t.Fatalf("new redis limiter: %v", err)
		}
		return limiter.(*redisLimiter)
	}
}

func TestRedisLimiterWindow(t *testing.T) {
	limiter := setupRedisLimiter(t)(nil)
	ctx := context.Background()

	// Fresh keys per run; counters from earlier runs expire on their own.
	key := "login:ip:" + uuid.NewString()

	for i := 0; i < 3; i++ {
		decision, err := limiter.Allow(ctx, key, 3, time.Minute)
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if !decision.Allowed {
			t.Fatalf("attempt %d should be allowed", i)
		}
		if decision.Remaining != 3-i-1 {
			t.Fatalf("attempt %d remaining = %d, want %d", i, decision.Remaining, 3-i-1)
		}
	}

	decision, err := limiter.Allow(ctx, key, 3, time.Minute)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if decision.Allowed {
		t.Fatal("fourth attempt inside the window must be denied")
	}
	if decision.ResetAt.IsZero() {
		t.Fatal("denied decision must carry a reset time")
	}

	other, err := limiter.Allow(ctx, "login:ip:"+uuid.NewString(), 3, time.Minute)
	if err != nil {
		t.Fatalf("allow other: %v", err)
	}
	if !other.Allowed {
		t.Fatal("different key must not share the window")
	}
}

func TestRedisLimiterWindowExpiry(t *testing.T) {
	limiter := setupRedisLimiter(t)(nil)
	ctx := context.Background()

	key := "login:ip:" + uuid.NewString()
	for i := 0; i < 2; i++ {
		if _, err := limiter.Allow(ctx, key, 1, 100*time.Millisecond); err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
	}
	time.Sleep(150 * time.Millisecond)
	decision, err := limiter.Allow(ctx, key, 1, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("allow after expiry: %v", err)
	}
	if !decision.Allowed {
		t.Fatal("counter must reset once the window lapses")
	}
}

func TestRedisLimiterZeroLimitDisables(t *testing.T) {
	limiter := setupRedisLimiter(t)(nil)
	decision, err := limiter.Allow(context.Background(), "login:ip:"+uuid.NewString(), 0, time.Minute)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !decision.Allowed {
		t.Fatal("zero limit must disable limiting")
	}
}
