package redis_store

import (
	"context"
	"fmt"
	"time"

	"prizewheel/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

func dbKeyUserLastDraw(userID int64) string {
	return fmt.Sprintf("wheel:user:%d:last_draw", userID)
}

// SetUserLastDraw keeps the record only while its cooldown is running, so a
// cache hit always means the user is still cooling down.
func SetUserLastDraw(ctx context.Context, cmd redis.Cmdable, record *models.DrawRecord, now time.Time) error {
	ttl := record.NextEligibleAt.Sub(now)
	if ttl <= 0 {
		return nil
	}

	b, err := msgpack.Marshal(record)
	if err != nil {
		return err
	}

	return cmd.Set(ctx, dbKeyUserLastDraw(record.UserID), b, ttl).Err()
}

func GetUserLastDraw(ctx context.Context, cmd redis.Cmdable, userID int64) (*models.DrawRecord, error) {
	var v *models.DrawRecord
	b, err := cmd.Get(ctx, dbKeyUserLastDraw(userID)).Bytes()
	if err != nil {
		return nil, err
	}

	err = msgpack.Unmarshal(b, &v)
	return v, err
}
