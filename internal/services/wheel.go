package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"prizewheel/internal/datastore"
	"prizewheel/internal/interfaces"
	"prizewheel/internal/models"
	"prizewheel/internal/pkg/sl"

	"github.com/go-redis/redis_rate/v10"
	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/limiter"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"golang.org/x/exp/slog"
)

// ServiceWheel is the prize wheel as the API sees it: the allocator wired to
// postgres, redis and redsync, plus history and statistics.
type ServiceWheel struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	limiter            interfaces.Limiter
	log                *slog.Logger

	serviceConfig *ServiceConfig
	servicePrize  *ServicePrize
	allocator     *PrizeAllocator
}

func NewServiceWheel(container *do.Injector) (*ServiceWheel, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	limiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	log, err := do.Invoke[*slog.Logger](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	servicePrize, err := do.Invoke[*ServicePrize](container)
	if err != nil {
		return nil, err
	}

	allocator := NewPrizeAllocator(
		servicePrize,
		NewDrawHistoryStore(postgresDB, redisDB, log),
		NewRedsyncLocker(rs),
	)

	return &ServiceWheel{container, postgresDB, readonlyPostgresDB, limiter, log, serviceConfig, servicePrize, allocator}, nil
}

func (service *ServiceWheel) GetWheel(ctx context.Context, userID int64) (*models.Wheel, error) {
	prizes, err := service.servicePrize.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	eligibility, err := service.allocator.CheckEligibility(ctx, userID)
	if err != nil {
		return nil, err
	}

	var lastSpin *models.DrawRecord
	records, err := datastore.GetUserDrawRecords(ctx, service.postgresDB, userID, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		lastSpin = &records[0]
	}

	return &models.Wheel{
		Prizes:      prizes,
		LastSpin:    lastSpin,
		Eligibility: *eligibility,
	}, nil
}

func (service *ServiceWheel) CheckEligibility(ctx context.Context, userID int64) (*models.Eligibility, error) {
	return service.allocator.CheckEligibility(ctx, userID)
}

func (service *ServiceWheel) Spin(ctx context.Context, userID int64) (*DrawResult, error) {
	limit, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_WHEEL_SPIN_RATE_LIMIT_PER_MINUTE, DEFAULT_WHEEL_SPIN_RATE_LIMIT_PER_MINUTE)
	err := service.limiter.Allow(ctx, LimitKeyUserSpin(userID), redis_rate.PerMinute(limit))
	if err != nil {
		if err.Error() == limiter.ErrRateLimited.Error() {
			return nil, ErrSpinRateLimited
		}
		return nil, err
	}

	result, err := service.allocator.Draw(ctx, userID)
	if err != nil {
		return nil, err
	}

	if result.Overweight {
		service.log.Error("active prize weights exceed 100, no-prize padding skipped", sl.Int64("user_id", userID))
	}

	return result, nil
}

func (service *ServiceWheel) ListUserDraws(ctx context.Context, userID int64, limit int, offset int) ([]models.DrawRecord, error) {
	limit, offset = clampPage(limit, offset)
	return datastore.GetUserDrawRecords(ctx, service.readonlyPostgresDB, userID, limit, offset)
}

func (service *ServiceWheel) GetUserStats(ctx context.Context, userID int64) (*models.UserSpinStats, error) {
	total, wins, err := datastore.CountUserDrawRecords(ctx, service.readonlyPostgresDB, userID)
	if err != nil {
		return nil, err
	}

	used, err := datastore.CountUserRedemptionsUsed(ctx, service.readonlyPostgresDB, userID)
	if err != nil {
		return nil, err
	}

	return models.NewUserSpinStats(userID, total, wins, used), nil
}

func (service *ServiceWheel) GetWheelReport(ctx context.Context, since time.Time) (*models.WheelReport, error) {
	return datastore.GetWheelReport(ctx, service.readonlyPostgresDB, since)
}

func (service *ServiceWheel) ListUsers(ctx context.Context, limit int, offset int) (*models.UserList, error) {
	limit, offset = clampPage(limit, offset)

	users, err := datastore.GetUserSummaries(ctx, service.readonlyPostgresDB, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := datastore.CountDrawUsers(ctx, service.readonlyPostgresDB)
	if err != nil {
		return nil, err
	}

	return &models.UserList{Users: users, Total: total}, nil
}

func (service *ServiceWheel) GetRedemption(ctx context.Context, drawRecordID uuid.UUID) (*models.Redemption, error) {
	record, err := datastore.GetDrawRecord(ctx, service.readonlyPostgresDB, drawRecordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDrawNotFound
	}
	if err != nil {
		return nil, err
	}

	redemption, err := datastore.GetPrizeRedemption(ctx, service.readonlyPostgresDB, drawRecordID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return models.NewRedemption(record, redemption), nil
}

func (service *ServiceWheel) UpdateRedemption(ctx context.Context, drawRecordID uuid.UUID, input *models.RedemptionInput) (*models.Redemption, error) {
	var out *models.Redemption
	err := service.postgresDB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		record, err := datastore.GetDrawRecord(ctx, tx, drawRecordID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDrawNotFound
		}
		if err != nil {
			return err
		}

		existing, err := datastore.GetPrizeRedemption(ctx, tx, drawRecordID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		redemption, err := ApplyRedemption(record, existing, input, time.Now())
		if err != nil {
			return err
		}

		if err := datastore.UpsertPrizeRedemption(ctx, tx, redemption); err != nil {
			return err
		}

		out = models.NewRedemption(record, redemption)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ApplyRedemption updates the redemption of a winning draw, creating it when
// existing is nil. Draws that won nothing cannot be redeemed.
func ApplyRedemption(record *models.DrawRecord, existing *models.PrizeRedemption, input *models.RedemptionInput, now time.Time) (*models.PrizeRedemption, error) {
	if !record.Won() {
		return nil, ErrNotRedeemable
	}

	redemption := existing
	if redemption == nil {
		redemption = &models.PrizeRedemption{DrawRecordID: record.ID}
	}
	redemption.Apply(input, now)

	return redemption, nil
}

func clampPage(limit int, offset int) (int, int) {
	if limit <= 0 {
		limit = DEFAULT_HISTORY_LIMIT
	}
	if limit > MAX_HISTORY_LIMIT {
		limit = MAX_HISTORY_LIMIT
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
