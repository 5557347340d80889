package services

import (
	"testing"

	"prizewheel/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidatePrizePlacement(t *testing.T) {
	active := []models.Prize{
		{ID: 1, Name: "Free cleaning", Weight: 10, Slot: 1, Active: true},
		{ID: 2, Name: "Discount 20%", Weight: 50, Slot: 4, Active: true},
	}

	cases := []struct {
		name      string
		candidate models.Prize
		want      error
	}{
		{"fits", models.Prize{Name: "Mug", Weight: 40, Slot: 2}, nil},
		{"missing name", models.Prize{Weight: 5, Slot: 2}, ErrInvalidPrize},
		{"weight too low", models.Prize{Name: "x", Weight: 0, Slot: 2}, ErrInvalidPrize},
		{"weight too high", models.Prize{Name: "x", Weight: 101, Slot: 2}, ErrInvalidPrize},
		{"slot out of range", models.Prize{Name: "x", Weight: 5, Slot: 11}, ErrInvalidPrize},
		{"slot taken", models.Prize{Name: "x", Weight: 5, Slot: 4}, ErrSlotOccupied},
		{"sum above 100", models.Prize{Name: "x", Weight: 41, Slot: 2}, ErrPrizeWeightOverflow},
		{"reactivating itself", models.Prize{ID: 2, Name: "Discount 20%", Weight: 50, Slot: 4}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePrizePlacement(active, &tc.candidate)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}

	err := ValidatePrizePlacement(active, &models.Prize{Name: "x", Weight: 45, Slot: 3})
	assert.ErrorContains(t, err, "40% remaining")
}
