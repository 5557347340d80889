package services

import (
	"testing"
	"time"

	"prizewheel/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatWheelReport(t *testing.T) {
	text := FormatWheelReport(&models.WheelReport{
		Since:      time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC),
		TotalSpins: 12,
		TotalWins:  3,
		Prizes: []models.PrizeWinCount{
			{PrizeName: "Rug <XL>", Wins: 2},
			{PrizeName: "Mug", Wins: 1},
		},
	})

	assert.Contains(t, text, "2024-03-07 09:00:00")
	assert.Contains(t, text, "Spins: 12\nWins: 3\n")
	assert.Contains(t, text, "• Rug &lt;XL&gt;: 2\n")
	assert.Contains(t, text, "• Mug: 1\n")
}
