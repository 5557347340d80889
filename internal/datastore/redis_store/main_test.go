package redis_store

import (
	"context"
	"testing"
	"time"

	"prizewheel/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func TestUserLastDraw(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)

	now := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	prizeID := int64(4)
	record := &models.DrawRecord{
		ID:             uuid.New(),
		UserID:         42,
		PrizeID:        &prizeID,
		DrawnAt:        now,
		NextEligibleAt: now.Add(24 * time.Hour),
	}

	require.NoError(t, SetUserLastDraw(ctx, client, record, now))
	assert.Equal(t, 24*time.Hour, mr.TTL(dbKeyUserLastDraw(42)))

	got, err := GetUserLastDraw(ctx, client, 42)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, record.UserID, got.UserID)
	require.NotNil(t, got.PrizeID)
	assert.Equal(t, prizeID, *got.PrizeID)
	assert.True(t, record.NextEligibleAt.Equal(got.NextEligibleAt))
	assert.True(t, record.DrawnAt.Equal(got.DrawnAt))
}

func TestUserLastDraw_TTLFollowsRemainingCooldown(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)

	drawnAt := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	record := &models.DrawRecord{ID: uuid.New(), UserID: 7, DrawnAt: drawnAt, NextEligibleAt: drawnAt.Add(24 * time.Hour)}

	require.NoError(t, SetUserLastDraw(ctx, client, record, drawnAt.Add(23*time.Hour)))
	assert.Equal(t, time.Hour, mr.TTL(dbKeyUserLastDraw(7)))
}

func TestUserLastDraw_ExpiredIsNotStored(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)

	drawnAt := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	record := &models.DrawRecord{ID: uuid.New(), UserID: 7, DrawnAt: drawnAt, NextEligibleAt: drawnAt.Add(24 * time.Hour)}

	require.NoError(t, SetUserLastDraw(ctx, client, record, record.NextEligibleAt))
	assert.False(t, mr.Exists(dbKeyUserLastDraw(7)))

	require.NoError(t, SetUserLastDraw(ctx, client, record, record.NextEligibleAt.Add(time.Minute)))
	assert.False(t, mr.Exists(dbKeyUserLastDraw(7)))
}

func TestUserLastDraw_Miss(t *testing.T) {
	_, client := newTestRedis(t)

	got, err := GetUserLastDraw(context.Background(), client, 1)
	assert.ErrorIs(t, err, redis.Nil)
	assert.Nil(t, got)
}
