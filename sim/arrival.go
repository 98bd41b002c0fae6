package sim

import (
	"fmt"
	"math/rand"
)

// ArrivalProcess generates exponentially-distributed inter-arrival gaps
// (a Poisson arrival stream) for one station's passenger spawns.
type ArrivalProcess struct {
	mean float64 // mean gap in seconds
	rng  *rand.Rand
}

// NewArrivalProcess creates an ArrivalProcess with the given mean gap.
// Returns an error if mean is not positive.
func NewArrivalProcess(mean float64, rng *rand.Rand) (*ArrivalProcess, error) {
	if !(mean > 0) {
		return nil, fmt.Errorf("%w: mean inter-arrival time must be positive, got %v", ErrInvalidConfig, mean)
	}
	if rng == nil {
		panic("NewArrivalProcess: rng must not be nil")
	}
	return &ArrivalProcess{mean: mean, rng: rng}, nil
}

// Mean returns the configured mean gap.
func (a *ArrivalProcess) Mean() float64 {
	return a.mean
}

// NextGap returns the time until the next arrival. Never negative.
func (a *ArrivalProcess) NextGap() float64 {
	return a.rng.ExpFloat64() * a.mean
}
