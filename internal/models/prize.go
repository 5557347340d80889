package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	PRIZE_MIN_WEIGHT = 1
	PRIZE_MAX_WEIGHT = 100
	PRIZE_MIN_SLOT   = 1
	PRIZE_MAX_SLOT   = 10

	// weights are percentages, the draw pool always has this many units
	PRIZE_POOL_SIZE = 100

	PRIZE_DEFAULT_COLOR = "#3498db"
)

type Prize struct {
	bun.BaseModel `bun:"table:prize"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Description   string    `bun:"description" json:"description"`
	Weight        int       `bun:"weight,notnull" json:"weight"`
	Slot          int       `bun:"slot,notnull" json:"slot"`
	Color         string    `bun:"color,notnull,default:'#3498db'" json:"color"`
	Active        bool      `bun:"active,notnull,default:true" json:"active"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

type PrizeCatalog struct {
	Prizes          []Prize `json:"prizes"`
	TotalWeight     int     `json:"total_percentage"`
	RemainingWeight int     `json:"remaining_percentage"`
	OccupiedSlots   []int   `json:"occupied_slots"`
	AvailableSlots  []int   `json:"available_slots"`
}

// NewPrizeCatalog summarises active prizes for the management page.
func NewPrizeCatalog(prizes []Prize) *PrizeCatalog {
	catalog := &PrizeCatalog{
		Prizes:         prizes,
		OccupiedSlots:  []int{},
		AvailableSlots: []int{},
	}

	occupied := map[int]bool{}
	for _, prize := range prizes {
		catalog.TotalWeight += prize.Weight
		occupied[prize.Slot] = true
		catalog.OccupiedSlots = append(catalog.OccupiedSlots, prize.Slot)
	}

	for slot := PRIZE_MIN_SLOT; slot <= PRIZE_MAX_SLOT; slot++ {
		if !occupied[slot] {
			catalog.AvailableSlots = append(catalog.AvailableSlots, slot)
		}
	}

	catalog.RemainingWeight = PRIZE_POOL_SIZE - catalog.TotalWeight
	if catalog.RemainingWeight < 0 {
		catalog.RemainingWeight = 0
	}

	return catalog
}

type PrizeInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
	Weight      int    `json:"weight" validate:"required,min=1,max=100"`
	Slot        int    `json:"slot" validate:"required,min=1,max=10"`
	Color       string `json:"color" validate:"omitempty,hexcolor,len=7"`
}

type PrizeActiveInput struct {
	Active *bool `json:"active" validate:"required"`
}
