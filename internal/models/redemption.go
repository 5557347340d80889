package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PrizeRedemption tracks whether the prize of a winning draw was handed out.
// It lives beside DrawRecord so draw records stay immutable.
type PrizeRedemption struct {
	bun.BaseModel `bun:"table:prize_redemption"`
	DrawRecordID  uuid.UUID  `bun:"draw_record_id,pk,type:uuid" json:"draw_record_id"`
	Used          bool       `bun:"used,notnull,default:false" json:"used"`
	UsedAt        *time.Time `bun:"used_at" json:"used_at"`
	Note          string     `bun:"note,notnull,default:''" json:"note"`
	UpdatedAt     time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Apply copies the changed fields of input. The first time a prize is marked
// used, UsedAt is stamped with now and kept from then on.
func (redemption *PrizeRedemption) Apply(input *RedemptionInput, now time.Time) {
	if input.Note != nil {
		redemption.Note = *input.Note
	}
	if input.Used != nil {
		redemption.Used = *input.Used
	}
	if redemption.Used && redemption.UsedAt == nil {
		usedAt := now
		redemption.UsedAt = &usedAt
	}
	redemption.UpdatedAt = now
}

type RedemptionInput struct {
	Used *bool   `json:"used"`
	Note *string `json:"note" validate:"omitempty,max=2000"`
}

type Redemption struct {
	DrawRecordID uuid.UUID  `json:"draw_record_id"`
	UserID       int64      `json:"user_id"`
	PrizeName    string     `json:"prize_name"`
	Won          bool       `json:"won"`
	DrawnAt      time.Time  `json:"drawn_at"`
	Used         bool       `json:"used"`
	UsedAt       *time.Time `json:"used_at"`
	Note         string     `json:"note"`
}

// NewRedemption merges a draw with its redemption row, which may be nil
// when staff never touched the draw.
func NewRedemption(record *DrawRecord, redemption *PrizeRedemption) *Redemption {
	out := &Redemption{
		DrawRecordID: record.ID,
		UserID:       record.UserID,
		PrizeName:    record.PrizeName(),
		Won:          record.Won(),
		DrawnAt:      record.DrawnAt,
	}
	if redemption != nil {
		out.Used = redemption.Used
		out.UsedAt = redemption.UsedAt
		out.Note = redemption.Note
	}

	return out
}

type UserSummary struct {
	UserID     int64     `bun:"user_id" json:"user_id"`
	TotalSpins int       `bun:"total_spins" json:"total_spins"`
	TotalWins  int       `bun:"total_wins" json:"total_wins"`
	TotalUsed  int       `bun:"total_used" json:"total_used"`
	LastSpinAt time.Time `bun:"last_spin_at" json:"last_spin_at"`
	WinRate    float64   `bun:"-" json:"win_rate"`
}

type UserList struct {
	Users []UserSummary `json:"users"`
	Total int           `json:"total"`
}
