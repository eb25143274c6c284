// Package ratelimit throttles requests per client key.
package ratelimit

import "context"

// Limiter reports whether one more request for key is allowed right now.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
