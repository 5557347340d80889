package handler

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"prizewheel/internal/models"
	"prizewheel/internal/pkg"
	"prizewheel/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
)

func spinResult(result *services.DrawResult) *models.SpinResult {
	out := &models.SpinResult{
		Won:            result.Prize != nil,
		Slot:           result.Slot,
		NextEligibleAt: result.NextEligibleAt(),
		Message:        "No luck this time. Try again tomorrow!",
	}

	if result.Prize != nil {
		name := result.Prize.Name
		out.PrizeName = &name
		out.Color = result.Prize.Color
		out.Message = fmt.Sprintf("Congratulations! You won %s!", name)
	}

	return out
}

func cooldownMessage(remainingSeconds int64) string {
	return fmt.Sprintf("you can spin again in %s (%d seconds)", pkg.FormatCountdown(remainingSeconds), remainingSeconds)
}

// reportSince turns the hours query value into the start of the report
// window. Missing or invalid values mean one day, large ones stop at a year.
func reportSince(raw string, now time.Time) time.Time {
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		hours = services.DEFAULT_REPORT_HOURS
	}
	if hours > services.MAX_REPORT_HOURS {
		hours = services.MAX_REPORT_HOURS
	}

	return now.Add(-time.Duration(hours) * time.Hour)
}

// wheelError maps wheel failures onto the toolkit error kinds.
func wheelError(err error) error {
	var cooldown *services.CooldownError
	switch {
	case errors.As(err, &cooldown):
		return errorx.Wrap(errors.New(cooldownMessage(cooldown.RemainingSeconds)), errorx.Validation)
	case errors.Is(err, services.ErrNoPrizesConfigured):
		return errorx.Wrap(errors.New("no prizes available right now, try again later"), errorx.Invalid)
	case errors.Is(err, services.ErrSpinRateLimited):
		return errorx.Wrap(err, errorx.RateLimiting)
	case errors.Is(err, services.ErrDrawLock):
		return errorx.Wrap(errors.New("a spin is already in progress"), errorx.Invalid)
	case errors.Is(err, services.ErrPrizeNotFound),
		errors.Is(err, services.ErrDrawNotFound):
		return errorx.Wrap(err, errorx.NotExist)
	case errors.Is(err, services.ErrInvalidPrize),
		errors.Is(err, services.ErrSlotOccupied),
		errors.Is(err, services.ErrPrizeWeightOverflow),
		errors.Is(err, services.ErrNotRedeemable):
		return errorx.Wrap(err, errorx.Validation)
	case errors.Is(err, services.ErrCatalogLock):
		return errorx.Wrap(err, errorx.Invalid)
	}

	return errorx.Wrap(err, errorx.Service)
}
