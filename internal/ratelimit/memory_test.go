package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiterEnforcesLimit(t *testing.T) {
	limiter := NewMemoryLimiter(time.Minute)
	ctx := context.Background()
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		result, err := limiter.Allow(ctx, "k", 3, now)
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if !result.Allowed {
			t.Fatalf("request %d should be allowed", i)
		}
		if result.Remaining != 3-i-1 {
			t.Fatalf("request %d: expected remaining %d, got %d", i, 3-i-1, result.Remaining)
		}
	}

	result, err := limiter.Allow(ctx, "k", 3, now)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if result.Allowed {
		t.Fatal("fourth request in the window should be denied")
	}
	if !result.Reset.After(now) {
		t.Fatalf("expected reset after now, got %v", result.Reset)
	}
}

func TestMemoryLimiterWindowRolls(t *testing.T) {
	limiter := NewMemoryLimiter(time.Minute)
	ctx := context.Background()
	now := time.Date(2026, 8, 24, 12, 0, 30, 0, time.UTC)

	if result, _ := limiter.Allow(ctx, "k", 1, now); !result.Allowed {
		t.Fatal("first request should be allowed")
	}
	if result, _ := limiter.Allow(ctx, "k", 1, now); result.Allowed {
		t.Fatal("second request in the same window should be denied")
	}
	if result, _ := limiter.Allow(ctx, "k", 1, now.Add(time.Minute)); !result.Allowed {
		t.Fatal("request in the next window should be allowed")
	}
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewMemoryLimiter(time.Minute)
	ctx := context.Background()
	now := time.Now()

	if result, _ := limiter.Allow(ctx, "a", 1, now); !result.Allowed {
		t.Fatal("key a should be allowed")
	}
	if result, _ := limiter.Allow(ctx, "b", 1, now); !result.Allowed {
		t.Fatal("key b should be allowed")
	}
}

func TestMemoryLimiterZeroLimitDisables(t *testing.T) {
	limiter := NewMemoryLimiter(time.Minute)
	for i := 0; i < 10; i++ {
		result, err := limiter.Allow(context.Background(), "k", 0, time.Now())
		if err != nil || !result.Allowed {
			t.Fatalf("zero limit must disable throttling (allowed=%v err=%v)", result.Allowed, err)
		}
	}
}
