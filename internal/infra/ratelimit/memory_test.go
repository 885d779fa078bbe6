package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiterWindow(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter(MemoryLimiterConfig{Now: func() time.Time { return current }})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		decision, err := limiter.Allow(ctx, "login:ip:1.2.3.4", 3, time.Minute)
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

	decision, err := limiter.Allow(ctx, "login:ip:1.2.3.4", 3, time.Minute)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if decision.Allowed {
		t.Fatalf("fourth attempt inside the window must be denied")
	}

	// Other keys are unaffected.
	other, err := limiter.Allow(ctx, "login:ip:5.6.7.8", 3, time.Minute)
	if err != nil {
		t.Fatalf("allow other: %v", err)
	}
	if !other.Allowed {
		t.Fatalf("different key must not share the window")
	}

	// Window expiry resets the count.
	current = current.Add(61 * time.Second)
	decision, err = limiter.Allow(ctx, "login:ip:1.2.3.4", 3, time.Minute)
	if err != nil {
		t.Fatalf("allow after window: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("attempt after the window must be allowed")
	}
}

func TestMemoryLimiterZeroLimitDisables(t *testing.T) {
	limiter := NewMemoryLimiter(MemoryLimiterConfig{})
	decision, err := limiter.Allow(context.Background(), "any", 0, time.Minute)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("zero limit must disable limiting")
	}
}
