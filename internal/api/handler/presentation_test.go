package handler

import (
	"testing"
	"time"

	"prizewheel/internal/models"
	"prizewheel/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinResult(t *testing.T) {
	next := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	t.Run("won", func(t *testing.T) {
		prize := &models.Prize{ID: 1, Name: "TV", Slot: 1, Color: "#ff0000"}
		out := spinResult(&services.DrawResult{
			Prize:  prize,
			Slot:   1,
			Record: &models.DrawRecord{NextEligibleAt: next},
		})

		assert.True(t, out.Won)
		require.NotNil(t, out.PrizeName)
		assert.Equal(t, "TV", *out.PrizeName)
		assert.Equal(t, 1, out.Slot)
		assert.Equal(t, "#ff0000", out.Color)
		assert.Equal(t, next, out.NextEligibleAt)
		assert.Contains(t, out.Message, "TV")
	})

	t.Run("no prize", func(t *testing.T) {
		out := spinResult(&services.DrawResult{
			Slot:   7,
			Record: &models.DrawRecord{NextEligibleAt: next},
		})

		assert.False(t, out.Won)
		assert.Nil(t, out.PrizeName)
		assert.Equal(t, 7, out.Slot)
		assert.NotEmpty(t, out.Message)
	})
}

func TestCooldownMessage(t *testing.T) {
	assert.Equal(t, "you can spin again in 23:59:59 (86399 seconds)", cooldownMessage(86399))
}

func TestReportSince(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(-24*time.Hour), reportSince("", now))
	assert.Equal(t, now.Add(-24*time.Hour), reportSince("-3", now))
	assert.Equal(t, now.Add(-48*time.Hour), reportSince("48", now))

	// huge values must not overflow into the future
	year := now.Add(-time.Duration(services.MAX_REPORT_HOURS) * time.Hour)
	assert.Equal(t, year, reportSince("9999999999", now))
	assert.Equal(t, year, reportSince("2562048", now))
	assert.True(t, reportSince("2562048", now).Before(now))
}
