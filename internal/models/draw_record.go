package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const NO_PRIZE_NAME = "No prize"

// DrawRecord is written once per successful spin and never updated.
type DrawRecord struct {
	bun.BaseModel  `bun:"table:draw_record"`
	ID             uuid.UUID `bun:"id,pk,type:uuid" json:"id" msgpack:"id"`
	UserID         int64     `bun:"user_id,notnull" json:"user_id" msgpack:"user_id"`
	PrizeID        *int64    `bun:"prize_id" json:"prize_id" msgpack:"prize_id"`
	DrawnAt        time.Time `bun:"drawn_at,notnull" json:"drawn_at" msgpack:"drawn_at"`
	NextEligibleAt time.Time `bun:"next_eligible_at,notnull" json:"next_eligible_at" msgpack:"next_eligible_at"`

	Prize *Prize `bun:"rel:belongs-to,join:prize_id=id" json:"prize,omitempty" msgpack:"-"`
}

func (record *DrawRecord) Won() bool {
	return record.PrizeID != nil
}

func (record *DrawRecord) PrizeName() string {
	if record.Prize != nil {
		return record.Prize.Name
	}

	return NO_PRIZE_NAME
}
