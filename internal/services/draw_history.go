package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"prizewheel/internal/datastore"
	"prizewheel/internal/datastore/redis_store"
	"prizewheel/internal/models"
	"prizewheel/internal/pkg/sl"

	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"golang.org/x/exp/slog"
)

// DrawRecordStore is the durable side of the draw history.
type DrawRecordStore interface {
	// MostRecent returns sql.ErrNoRows when the user never drew.
	MostRecent(ctx context.Context, userID int64) (*models.DrawRecord, error)
	// InsertIfEligible returns datastore.ErrDrawConflict when an unexpired
	// record exists.
	InsertIfEligible(ctx context.Context, record *models.DrawRecord) error
}

type postgresDrawRecords struct {
	db *bun.DB
}

func (store *postgresDrawRecords) MostRecent(ctx context.Context, userID int64) (*models.DrawRecord, error) {
	return datastore.GetMostRecentDrawRecord(ctx, store.db, userID)
}

func (store *postgresDrawRecords) InsertIfEligible(ctx context.Context, record *models.DrawRecord) error {
	return datastore.InsertDrawRecordIfEligible(ctx, store.db, record)
}

// DrawHistoryStore keeps draw records in postgres and mirrors the latest one
// into redis for as long as its cooldown runs. A marker hit answers
// MostRecent without touching postgres, a miss falls through to the primary.
type DrawHistoryStore struct {
	records DrawRecordStore
	redisDB redis.UniversalClient
	log     *slog.Logger
	now     func() time.Time
}

func NewDrawHistoryStore(postgresDB *bun.DB, redisDB redis.UniversalClient, log *slog.Logger) *DrawHistoryStore {
	return &DrawHistoryStore{&postgresDrawRecords{postgresDB}, redisDB, log, time.Now}
}

func (store *DrawHistoryStore) MostRecent(ctx context.Context, userID int64) (*models.DrawRecord, error) {
	record, err := redis_store.GetUserLastDraw(ctx, store.redisDB, userID)
	if err == nil && record != nil {
		return record, nil
	}
	if err != nil && err != redis.Nil {
		store.log.Warn("read cooldown marker", sl.Int64("user_id", userID), sl.Err(err))
	}

	record, err = store.records.MostRecent(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	store.remember(ctx, record)
	return record, nil
}

func (store *DrawHistoryStore) Append(ctx context.Context, record *models.DrawRecord) error {
	err := store.records.InsertIfEligible(ctx, record)
	if errors.Is(err, datastore.ErrDrawConflict) {
		return ErrCooldownActive
	}
	if err != nil {
		return err
	}

	store.remember(ctx, record)
	return nil
}

func (store *DrawHistoryStore) remember(ctx context.Context, record *models.DrawRecord) {
	if err := redis_store.SetUserLastDraw(ctx, store.redisDB, record, store.now()); err != nil {
		store.log.Warn("write cooldown marker", sl.Int64("user_id", record.UserID), sl.Err(err))
	}
}
