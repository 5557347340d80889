package services

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"prizewheel/internal/models"
	"prizewheel/internal/pkg"

	"github.com/google/uuid"
	"github.com/mroth/weightedrand/v2"
)

type PrizeCatalog interface {
	// ListActive returns active prizes ordered by slot.
	ListActive(ctx context.Context) ([]models.Prize, error)
}

type DrawHistory interface {
	// MostRecent returns nil, nil when the user never drew.
	MostRecent(ctx context.Context, userID int64) (*models.DrawRecord, error)
	// Append must fail with ErrCooldownActive when an unexpired record for
	// the same user already exists.
	Append(ctx context.Context, record *models.DrawRecord) error
}

type UserLocker interface {
	Lock(ctx context.Context, userID int64) (unlock func(), err error)
}

type DrawResult struct {
	Prize  *models.Prize
	Slot   int
	Record *models.DrawRecord
	// Overweight reports active weights summing above 100. The draw still
	// happens over the configured weights without no-prize padding.
	Overweight bool
}

func (result *DrawResult) NextEligibleAt() time.Time {
	return result.Record.NextEligibleAt
}

type AllocatorOption func(*PrizeAllocator)

func WithClock(now func() time.Time) AllocatorOption {
	return func(allocator *PrizeAllocator) {
		allocator.now = now
	}
}

func WithRandSource(rs *rand.Rand) AllocatorOption {
	return func(allocator *PrizeAllocator) {
		allocator.rs = rs
	}
}

// PrizeAllocator decides whether a user may spin and what the spin awards.
// It never logs or retries; every failure is returned to the caller.
type PrizeAllocator struct {
	catalog PrizeCatalog
	history DrawHistory
	locker  UserLocker
	now     func() time.Time

	rsMu sync.Mutex
	rs   *rand.Rand
}

func NewPrizeAllocator(catalog PrizeCatalog, history DrawHistory, locker UserLocker, opts ...AllocatorOption) *PrizeAllocator {
	allocator := &PrizeAllocator{
		catalog: catalog,
		history: history,
		locker:  locker,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(allocator)
	}
	if allocator.rs == nil {
		allocator.rs = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return allocator
}

func (allocator *PrizeAllocator) CheckEligibility(ctx context.Context, userID int64) (*models.Eligibility, error) {
	last, err := allocator.history.MostRecent(ctx, userID)
	if err != nil {
		return nil, storeUnavailable("most recent draw", err)
	}

	return eligibilityAt(last, allocator.now()), nil
}

func (allocator *PrizeAllocator) Draw(ctx context.Context, userID int64) (*DrawResult, error) {
	unlock, err := allocator.locker.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	eligibility, err := allocator.CheckEligibility(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !eligibility.Eligible {
		return nil, &CooldownError{RemainingSeconds: eligibility.RemainingSeconds}
	}

	prizes, err := allocator.catalog.ListActive(ctx)
	if err != nil {
		return nil, storeUnavailable("active prizes", err)
	}
	if len(prizes) == 0 {
		return nil, ErrNoPrizesConfigured
	}

	prize, slot, overweight, err := allocator.pick(prizes)
	if err != nil {
		return nil, err
	}

	now := allocator.now()
	record := &models.DrawRecord{
		ID:             uuid.New(),
		UserID:         userID,
		DrawnAt:        now,
		NextEligibleAt: now.Add(DRAW_COOLDOWN),
	}
	if prize != nil {
		record.PrizeID = &prize.ID
		record.Prize = prize
	}

	if err := allocator.history.Append(ctx, record); err != nil {
		if errors.Is(err, ErrCooldownActive) {
			return nil, allocator.cooldownAfterConflict(ctx, userID)
		}
		return nil, storeUnavailable("append draw", err)
	}

	return &DrawResult{
		Prize:      prize,
		Slot:       slot,
		Record:     record,
		Overweight: overweight,
	}, nil
}

// pick draws from a pool of PRIZE_POOL_SIZE units where each prize owns
// weight units and the rest belong to "no prize". A nil prize means no prize.
func (allocator *PrizeAllocator) pick(prizes []models.Prize) (*models.Prize, int, bool, error) {
	totalWeight := 0
	choices := make([]weightedrand.Choice[*models.Prize, int], 0, len(prizes)+1)
	for i := range prizes {
		if prizes[i].Weight <= 0 {
			continue
		}
		totalWeight += prizes[i].Weight
		choices = append(choices, weightedrand.NewChoice(&prizes[i], prizes[i].Weight))
	}
	if totalWeight < models.PRIZE_POOL_SIZE {
		choices = append(choices, weightedrand.NewChoice[*models.Prize](nil, models.PRIZE_POOL_SIZE-totalWeight))
	}

	gacha, err := NewServiceGacha(choices)
	if err != nil {
		return nil, 0, false, err
	}

	allocator.rsMu.Lock()
	defer allocator.rsMu.Unlock()

	prize := gacha.PickSource(allocator.rs)
	if prize != nil {
		return prize, prize.Slot, totalWeight > models.PRIZE_POOL_SIZE, nil
	}

	// "no prize" has no fixed slot, the wheel lands anywhere
	return nil, pkg.GenSlot(allocator.rs, models.PRIZE_MIN_SLOT, models.PRIZE_MAX_SLOT), false, nil
}

func (allocator *PrizeAllocator) cooldownAfterConflict(ctx context.Context, userID int64) error {
	eligibility, err := allocator.CheckEligibility(ctx, userID)
	if err != nil || eligibility.Eligible {
		return &CooldownError{RemainingSeconds: int64(DRAW_COOLDOWN / time.Second)}
	}

	return &CooldownError{RemainingSeconds: eligibility.RemainingSeconds}
}

func eligibilityAt(last *models.DrawRecord, now time.Time) *models.Eligibility {
	if last == nil || !now.Before(last.NextEligibleAt) {
		return &models.Eligibility{Eligible: true}
	}

	remaining := last.NextEligibleAt.Sub(now)
	seconds := int64(remaining / time.Second)
	if remaining%time.Second != 0 {
		seconds++
	}

	next := last.NextEligibleAt
	return &models.Eligibility{
		Eligible:         false,
		RemainingSeconds: seconds,
		NextEligibleAt:   &next,
	}
}
