package policy

import "fmt"

func errInvalidWindowSize(got int) error {
	return fmt.Errorf("%w: got %d", ErrInvalidWindowSize, got)
}

func errInvalidBudget(got int) error {
	return fmt.Errorf("%w: got %d", ErrInvalidBudget, got)
}

func errInvalidEpsilon(got float64) error {
	return fmt.Errorf("%w: got %v", ErrInvalidEpsilon, got)
}

func errInvalidDecay(got float64) error {
	return fmt.Errorf("%w: got %v", ErrInvalidDecay, got)
}
