package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrizeCatalog(t *testing.T) {
	catalog := NewPrizeCatalog([]Prize{
		{Name: "TV", Weight: 10, Slot: 1},
		{Name: "Mug", Weight: 30, Slot: 4},
	})

	assert.Equal(t, 40, catalog.TotalWeight)
	assert.Equal(t, 60, catalog.RemainingWeight)
	assert.Equal(t, []int{1, 4}, catalog.OccupiedSlots)
	assert.Equal(t, []int{2, 3, 5, 6, 7, 8, 9, 10}, catalog.AvailableSlots)

	empty := NewPrizeCatalog(nil)
	assert.Equal(t, 100, empty.RemainingWeight)
	assert.Len(t, empty.AvailableSlots, 10)
	assert.NotNil(t, empty.OccupiedSlots)

	over := NewPrizeCatalog([]Prize{{Weight: 80, Slot: 1}, {Weight: 40, Slot: 2}})
	assert.Zero(t, over.RemainingWeight)
}

func TestNewUserSpinStats(t *testing.T) {
	assert.Zero(t, NewUserSpinStats(1, 0, 0, 0).WinRate)

	stats := NewUserSpinStats(1, 8, 2, 1)
	assert.InDelta(t, 25.0, stats.WinRate, 1e-9)
	assert.Equal(t, 1, stats.TotalUsed)
}

func TestDrawRecordPrizeName(t *testing.T) {
	id := int64(3)
	won := &DrawRecord{PrizeID: &id, Prize: &Prize{ID: 3, Name: "Carpet"}}
	assert.True(t, won.Won())
	assert.Equal(t, "Carpet", won.PrizeName())

	lost := &DrawRecord{}
	assert.False(t, lost.Won())
	assert.Equal(t, NO_PRIZE_NAME, lost.PrizeName())
}

func TestPrizeRedemptionApply(t *testing.T) {
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)
	used := true
	unused := false
	note := "handed over at the office"

	redemption := &PrizeRedemption{}
	redemption.Apply(&RedemptionInput{Note: &note}, first)
	assert.False(t, redemption.Used)
	assert.Nil(t, redemption.UsedAt)
	assert.Equal(t, note, redemption.Note)

	redemption.Apply(&RedemptionInput{Used: &used}, first)
	require.NotNil(t, redemption.UsedAt)
	assert.True(t, redemption.Used)
	assert.Equal(t, first, *redemption.UsedAt)
	assert.Equal(t, note, redemption.Note)

	// marking used again keeps the first timestamp
	redemption.Apply(&RedemptionInput{Used: &used}, later)
	assert.Equal(t, first, *redemption.UsedAt)
	assert.Equal(t, later, redemption.UpdatedAt)

	redemption.Apply(&RedemptionInput{Used: &unused}, later)
	assert.False(t, redemption.Used)
}

func TestNewRedemption(t *testing.T) {
	id := int64(5)
	record := &DrawRecord{ID: uuid.New(), UserID: 9, PrizeID: &id, Prize: &Prize{ID: 5, Name: "Rug wash"}}

	untouched := NewRedemption(record, nil)
	assert.True(t, untouched.Won)
	assert.Equal(t, "Rug wash", untouched.PrizeName)
	assert.False(t, untouched.Used)

	usedAt := time.Now()
	redeemed := NewRedemption(record, &PrizeRedemption{DrawRecordID: record.ID, Used: true, UsedAt: &usedAt, Note: "ok"})
	assert.True(t, redeemed.Used)
	assert.Equal(t, &usedAt, redeemed.UsedAt)
	assert.Equal(t, "ok", redeemed.Note)

	lost := NewRedemption(&DrawRecord{ID: uuid.New()}, nil)
	assert.False(t, lost.Won)
	assert.Equal(t, NO_PRIZE_NAME, lost.PrizeName)
}
