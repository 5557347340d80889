package models

import (
	"time"
)

type Eligibility struct {
	Eligible         bool       `json:"can_spin"`
	RemainingSeconds int64      `json:"remaining_seconds"`
	NextEligibleAt   *time.Time `json:"next_spin_time"`
}

type Wheel struct {
	Prizes   []Prize     `json:"prizes"`
	LastSpin *DrawRecord `json:"last_spin"`
	Eligibility
}

// SpinResult is the presentation record of one draw. Won, Slot and
// NextEligibleAt are authoritative, Message is display text only.
type SpinResult struct {
	Won            bool      `json:"won"`
	PrizeName      *string   `json:"prize_name"`
	Slot           int       `json:"slot"`
	Color          string    `json:"color,omitempty"`
	NextEligibleAt time.Time `json:"next_spin_time"`
	Message        string    `json:"message"`
}

type UserSpinStats struct {
	UserID     int64   `json:"user_id"`
	TotalSpins int     `json:"total_spins"`
	TotalWins  int     `json:"total_wins"`
	TotalUsed  int     `json:"total_used"`
	WinRate    float64 `json:"win_rate"`
}

func NewUserSpinStats(userID int64, totalSpins int, totalWins int, totalUsed int) *UserSpinStats {
	return &UserSpinStats{
		UserID:     userID,
		TotalSpins: totalSpins,
		TotalWins:  totalWins,
		TotalUsed:  totalUsed,
		WinRate:    WinRate(totalSpins, totalWins),
	}
}

// WinRate is the percentage of winning spins, 0 without spins.
func WinRate(totalSpins int, totalWins int) float64 {
	if totalSpins <= 0 {
		return 0
	}

	return float64(totalWins) / float64(totalSpins) * 100
}

type PrizeWinCount struct {
	PrizeID   int64  `bun:"prize_id" json:"prize_id"`
	PrizeName string `bun:"prize_name" json:"prize_name"`
	Wins      int    `bun:"wins" json:"wins"`
}

type WheelReport struct {
	Since      time.Time       `json:"since"`
	TotalSpins int             `json:"total_spins"`
	TotalWins  int             `json:"total_wins"`
	Prizes     []PrizeWinCount `json:"prizes"`
}
