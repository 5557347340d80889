package services

import (
	"errors"
	"fmt"
)

var (
	ErrCooldownActive      = errors.New("cooldown active")
	ErrNoPrizesConfigured  = errors.New("no prizes configured")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrDrawLock            = errors.New("draw locked")
	ErrSpinRateLimited     = errors.New("too many spins")
	ErrCatalogLock         = errors.New("prize catalog locked")
	ErrPrizeNotFound       = errors.New("prize not found")
	ErrSlotOccupied        = errors.New("slot occupied")
	ErrPrizeWeightOverflow = errors.New("prize weights exceed 100")
	ErrInvalidPrize        = errors.New("invalid prize")
	ErrDrawNotFound        = errors.New("draw not found")
	ErrNotRedeemable       = errors.New("draw won no prize")
)

// CooldownError is returned by Draw while the user's last draw is still
// cooling down. It matches ErrCooldownActive.
type CooldownError struct {
	RemainingSeconds int64
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s: %d seconds remaining", ErrCooldownActive, e.RemainingSeconds)
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}

func storeUnavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
