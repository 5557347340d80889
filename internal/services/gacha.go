package services

import (
	"math/rand"

	"github.com/mroth/weightedrand/v2"
)

type ServiceGacha[T any] struct {
	chooser *weightedrand.Chooser[T, int]
}

func NewServiceGacha[T any](choices []weightedrand.Choice[T, int]) (*ServiceGacha[T], error) {
	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return nil, err
	}

	return &ServiceGacha[T]{chooser}, nil
}

// PickSource picks using rs, which must not be shared between goroutines.
func (service *ServiceGacha[T]) PickSource(rs *rand.Rand) T {
	return service.chooser.PickSource(rs)
}
