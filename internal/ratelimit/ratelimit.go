// Package ratelimit implements per-client fixed window admission control.
//
// A limiter admits at most Limit requests per key within each Window. The
// state of different keys is independent. Two backends are provided: a Redis
// backed limiter shared by all instances of the service and an in-process
// limiter for single instance deployments and tests.
package ratelimit

import (
	"context"
	"time"
)

const (
	DefaultLimit  = 10
	DefaultWindow = time.Minute
)

// Result describes the admission decision for a single request.
type Result struct {
	Allowed bool
	// Limit is the number of requests admitted per window.
	Limit int
	// Remaining is the number of requests left in the current window.
	Remaining int
	// ResetAfter is the time until the current window ends.
	ResetAfter time.Duration
}

// Limiter decides whether a request identified by key is admitted.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

func newResult(limit int, count int64, resetAfter time.Duration) Result {
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:    count <= int64(limit),
		Limit:      limit,
		Remaining:  remaining,
		ResetAfter: resetAfter,
	}
}
