package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"prizewheel/internal/datastore"
	"prizewheel/internal/datastore/redis_store"
	"prizewheel/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type stubRecords struct {
	mu        sync.Mutex
	last      *models.DrawRecord
	readErr   error
	insertErr error
	reads     int
	inserted  []models.DrawRecord
}

func (s *stubRecords) MostRecent(ctx context.Context, userID int64) (*models.DrawRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reads++
	if s.readErr != nil {
		return nil, s.readErr
	}
	if s.last == nil || s.last.UserID != userID {
		return nil, sql.ErrNoRows
	}

	record := *s.last
	return &record, nil
}

func (s *stubRecords) InsertIfEligible(ctx context.Context, record *models.DrawRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.insertErr != nil {
		return s.insertErr
	}
	if s.last != nil && s.last.UserID == record.UserID && s.last.NextEligibleAt.After(record.DrawnAt) {
		return datastore.ErrDrawConflict
	}

	s.inserted = append(s.inserted, *record)
	last := *record
	s.last = &last
	return nil
}

func newTestHistoryStore(t *testing.T, records DrawRecordStore, now time.Time) (*DrawHistoryStore, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := &DrawHistoryStore{
		records: records,
		redisDB: client,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     func() time.Time { return now },
	}
	return store, mr, client
}

func drawAt(userID int64, drawnAt time.Time) *models.DrawRecord {
	return &models.DrawRecord{
		ID:             uuid.New(),
		UserID:         userID,
		DrawnAt:        drawnAt,
		NextEligibleAt: drawnAt.Add(DRAW_COOLDOWN),
	}
}

func TestDrawHistoryStore_MostRecent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	t.Run("marker hit skips postgres", func(t *testing.T) {
		records := &stubRecords{readErr: errors.New("postgres must not be read")}
		store, _, client := newTestHistoryStore(t, records, now)

		marker := drawAt(1, now.Add(-time.Hour))
		require.NoError(t, redis_store.SetUserLastDraw(ctx, client, marker, now))

		got, err := store.MostRecent(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, marker.ID, got.ID)
		assert.Zero(t, records.reads)
	})

	t.Run("miss falls back and refills", func(t *testing.T) {
		last := drawAt(1, now.Add(-time.Hour))
		records := &stubRecords{last: last}
		store, _, client := newTestHistoryStore(t, records, now)

		got, err := store.MostRecent(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, last.ID, got.ID)
		assert.Equal(t, 1, records.reads)

		refilled, err := redis_store.GetUserLastDraw(ctx, client, 1)
		require.NoError(t, err)
		assert.Equal(t, last.ID, refilled.ID)

		_, err = store.MostRecent(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, records.reads, "second read is served by the marker")
	})

	t.Run("no history", func(t *testing.T) {
		store, _, client := newTestHistoryStore(t, &stubRecords{}, now)

		got, err := store.MostRecent(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, got)

		_, err = redis_store.GetUserLastDraw(ctx, client, 1)
		assert.ErrorIs(t, err, redis.Nil)
	})

	t.Run("expired record is not mirrored", func(t *testing.T) {
		last := drawAt(1, now.Add(-DRAW_COOLDOWN-time.Minute))
		store, _, client := newTestHistoryStore(t, &stubRecords{last: last}, now)

		got, err := store.MostRecent(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, last.ID, got.ID)

		_, err = redis_store.GetUserLastDraw(ctx, client, 1)
		assert.ErrorIs(t, err, redis.Nil)
	})

	t.Run("redis down falls back to postgres", func(t *testing.T) {
		last := drawAt(1, now.Add(-time.Hour))
		store, mr, _ := newTestHistoryStore(t, &stubRecords{last: last}, now)
		mr.Close()

		got, err := store.MostRecent(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, last.ID, got.ID)
	})

	t.Run("postgres failure", func(t *testing.T) {
		boom := errors.New("connection refused")
		store, _, _ := newTestHistoryStore(t, &stubRecords{readErr: boom}, now)

		_, err := store.MostRecent(ctx, 1)
		assert.ErrorIs(t, err, boom)
	})
}

func TestDrawHistoryStore_Append(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	t.Run("writes the marker", func(t *testing.T) {
		records := &stubRecords{}
		store, _, client := newTestHistoryStore(t, records, now)

		record := drawAt(3, now)
		require.NoError(t, store.Append(ctx, record))
		assert.Len(t, records.inserted, 1)

		marker, err := redis_store.GetUserLastDraw(ctx, client, 3)
		require.NoError(t, err)
		assert.Equal(t, record.ID, marker.ID)
	})

	t.Run("conflict is a cooldown", func(t *testing.T) {
		records := &stubRecords{insertErr: datastore.ErrDrawConflict}
		store, _, client := newTestHistoryStore(t, records, now)

		err := store.Append(ctx, drawAt(3, now))
		assert.ErrorIs(t, err, ErrCooldownActive)

		_, err = redis_store.GetUserLastDraw(ctx, client, 3)
		assert.ErrorIs(t, err, redis.Nil)
	})

	t.Run("other failures pass through", func(t *testing.T) {
		boom := errors.New("disk full")
		store, _, _ := newTestHistoryStore(t, &stubRecords{insertErr: boom}, now)

		err := store.Append(ctx, drawAt(3, now))
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrCooldownActive)
	})
}

func TestPrizeAllocator_WithDrawHistoryStore(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	records := &stubRecords{}
	store, _, _ := newTestHistoryStore(t, records, clock.Now())
	allocator := newTestAllocator(&fakeCatalog{prizes: tvAndMug()}, store, NewKeyedMutex(), clock)

	_, err := allocator.Draw(ctx, 5)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = allocator.Draw(ctx, 5)

	var cooldown *CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, int64(86399), cooldown.RemainingSeconds)
	assert.Len(t, records.inserted, 1)
	assert.Equal(t, 1, records.reads, "only the first check reached postgres")
}
