package engine

import (
	"errors"
	"fmt"
)

// ErrInsufficientEnergy is the admission-control denial. Recoverable by
// waiting for the next daily rollover.
var ErrInsufficientEnergy = errors.New("not enough energy")

// ErrCheckinDone rejects a second check-in on the same calendar day.
var ErrCheckinDone = errors.New("check-in already done today")

// EnergyError carries the denied cost against the current balance.
type EnergyError struct {
	Cost int
	Have int
}

func (e EnergyError) Error() string {
	return fmt.Sprintf("not enough energy: need %d, have %d", e.Cost, e.Have)
}

func (e EnergyError) Is(target error) bool {
	return target == ErrInsufficientEnergy
}
