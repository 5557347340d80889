package services

import (
	"testing"
	"time"

	"prizewheel/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRedemption(t *testing.T) {
	now := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
	prizeID := int64(1)
	won := &models.DrawRecord{ID: uuid.New(), UserID: 7, PrizeID: &prizeID}
	used := true

	redemption, err := ApplyRedemption(won, nil, &models.RedemptionInput{Used: &used}, now)
	require.NoError(t, err)
	assert.Equal(t, won.ID, redemption.DrawRecordID)
	assert.True(t, redemption.Used)
	require.NotNil(t, redemption.UsedAt)
	assert.Equal(t, now, *redemption.UsedAt)

	note := "second visit"
	again, err := ApplyRedemption(won, redemption, &models.RedemptionInput{Note: &note}, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, now, *again.UsedAt)
	assert.Equal(t, note, again.Note)
}

func TestApplyRedemptionRejectsNoPrize(t *testing.T) {
	used := true
	_, err := ApplyRedemption(&models.DrawRecord{ID: uuid.New()}, nil, &models.RedemptionInput{Used: &used}, time.Now())
	assert.ErrorIs(t, err, ErrNotRedeemable)
}

func TestClampPage(t *testing.T) {
	limit, offset := clampPage(0, -5)
	assert.Equal(t, DEFAULT_HISTORY_LIMIT, limit)
	assert.Zero(t, offset)

	limit, offset = clampPage(1000, 40)
	assert.Equal(t, MAX_HISTORY_LIMIT, limit)
	assert.Equal(t, 40, offset)
}
