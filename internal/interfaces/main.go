package interfaces

import (
	"context"

	"github.com/go-redis/redis_rate/v10"
)

// Limiter is satisfied by the toolkit redis limiter.
type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}
