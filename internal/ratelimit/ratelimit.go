// Package ratelimit throttles expensive operations per caller.
package ratelimit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Result describes the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Remaining int
	Reset     time.Time
}

// Limiter provides rate limit checks.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, now time.Time) (Result, error)
}

// UserKey builds the limiter key for a per-user limit.
func UserKey(operation string, userID uuid.UUID) string {
	return operation + ":user:" + userID.String()
}
