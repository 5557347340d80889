package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"prizewheel/internal/datastore"
	"prizewheel/internal/models"
	"prizewheel/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServicePrize manages the prize catalog and serves the active prizes to the
// allocator.
type ServicePrize struct {
	container          *do.Injector
	rs                 *redsync.Redsync
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
}

func NewServicePrize(container *do.Injector) (*ServicePrize, error) {
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

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServicePrize{container, rs, postgresDB, readonlyPostgresDB, cache}, nil
}

// ListActive feeds the allocator, so it reads the primary and the writable
// cache only. A lagging replica could otherwise bring back a deactivated
// prize.
func (service *ServicePrize) ListActive(ctx context.Context) ([]models.Prize, error) {
	callback := func() ([]models.Prize, error) {
		return datastore.GetActivePrizes(ctx, service.postgresDB)
	}

	return caching.UseCache(ctx, service.cache, DBKeyActivePrizes(), CACHE_TTL_1_MIN, callback)
}

// publishActive replaces the cached active prizes after a catalog change.
func (service *ServicePrize) publishActive(ctx context.Context, prizes []models.Prize) error {
	return service.cache.Set(ctx, DBKeyActivePrizes(), prizes, CACHE_TTL_1_MIN)
}

func (service *ServicePrize) GetCatalog(ctx context.Context) (*models.PrizeCatalog, error) {
	prizes, err := datastore.GetActivePrizes(ctx, service.readonlyPostgresDB)
	if err != nil {
		return nil, err
	}

	return models.NewPrizeCatalog(prizes), nil
}

func (service *ServicePrize) CreatePrize(ctx context.Context, input *models.PrizeInput) (*models.Prize, error) {
	prize := &models.Prize{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Weight:      input.Weight,
		Slot:        input.Slot,
		Color:       input.Color,
		Active:      true,
	}
	if prize.Color == "" {
		prize.Color = models.PRIZE_DEFAULT_COLOR
	}

	err := service.withCatalogLock(ctx, func(tx bun.Tx) error {
		active, err := datastore.GetActivePrizes(ctx, tx)
		if err != nil {
			return err
		}

		if err := ValidatePrizePlacement(active, prize); err != nil {
			return err
		}

		return datastore.InsertPrize(ctx, tx, prize)
	})
	if err != nil {
		return nil, err
	}

	return prize, nil
}

func (service *ServicePrize) SetPrizeActive(ctx context.Context, id int64, active bool) (*models.Prize, error) {
	var prize *models.Prize
	err := service.withCatalogLock(ctx, func(tx bun.Tx) error {
		var err error
		prize, err = datastore.GetPrize(ctx, tx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPrizeNotFound
		}
		if err != nil {
			return err
		}

		if prize.Active == active {
			return nil
		}

		if active {
			current, err := datastore.GetActivePrizes(ctx, tx)
			if err != nil {
				return err
			}
			if err := ValidatePrizePlacement(current, prize); err != nil {
				return err
			}
		}

		prize.Active = active
		return datastore.SetPrizeActive(ctx, tx, id, active)
	})
	if err != nil {
		return nil, err
	}

	return prize, nil
}

func (service *ServicePrize) DeletePrize(ctx context.Context, id int64) error {
	return service.withCatalogLock(ctx, func(tx bun.Tx) error {
		deleted, err := datastore.DeletePrize(ctx, tx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrPrizeNotFound
		}

		return nil
	})
}

// withCatalogLock runs fn in a transaction while holding the catalog lock and
// then republishes the active prizes from the primary.
func (service *ServicePrize) withCatalogLock(ctx context.Context, fn func(tx bun.Tx) error) error {
	mutex := service.rs.NewMutex(LockKeyPrizeCatalog(), redsync.WithExpiry(LOCK_EXPIRY_CATALOG))
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrCatalogLock, err)
	}
	// nolint:errcheck
	defer mutex.UnlockContext(ctx)

	err := service.postgresDB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(tx)
	})
	if err != nil {
		return err
	}

	prizes, err := datastore.GetActivePrizes(ctx, service.postgresDB)
	if err == nil {
		err = service.publishActive(ctx, prizes)
	}
	if err != nil {
		return caching.Invalidate(ctx, service.cache, DBKeyActivePrizes())
	}

	return nil
}

// ValidatePrizePlacement checks candidate against the currently active
// prizes: field ranges, a free slot and a total weight of at most 100.
func ValidatePrizePlacement(active []models.Prize, candidate *models.Prize) error {
	if candidate.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPrize)
	}
	if candidate.Weight < models.PRIZE_MIN_WEIGHT || candidate.Weight > models.PRIZE_MAX_WEIGHT {
		return fmt.Errorf("%w: weight must be between %d and %d", ErrInvalidPrize, models.PRIZE_MIN_WEIGHT, models.PRIZE_MAX_WEIGHT)
	}
	if candidate.Slot < models.PRIZE_MIN_SLOT || candidate.Slot > models.PRIZE_MAX_SLOT {
		return fmt.Errorf("%w: slot must be between %d and %d", ErrInvalidPrize, models.PRIZE_MIN_SLOT, models.PRIZE_MAX_SLOT)
	}

	totalWeight := 0
	for _, prize := range active {
		if candidate.ID != 0 && prize.ID == candidate.ID {
			continue
		}
		if prize.Slot == candidate.Slot {
			return fmt.Errorf("%w: slot %d is taken by %q", ErrSlotOccupied, candidate.Slot, prize.Name)
		}
		totalWeight += prize.Weight
	}

	if totalWeight+candidate.Weight > models.PRIZE_POOL_SIZE {
		return fmt.Errorf("%w: %d%% remaining", ErrPrizeWeightOverflow, models.PRIZE_POOL_SIZE-totalWeight)
	}

	return nil
}
