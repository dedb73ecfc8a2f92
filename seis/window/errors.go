package window

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty indicates a zero or negative window length.
	ErrEmpty = errors.New("window: size must be > 0")
	// ErrMismatchedLength indicates samples and coefficients of different length.
	ErrMismatchedLength = errors.New("window: samples and coefficients must have same length")
	// ErrInvalidWidth indicates an end-taper width outside [0, MaxTaperWidth].
	ErrInvalidWidth = errors.New("window: invalid taper width")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrEmpty, size)
	}

	return nil
}

func validateKaiser(size int, beta float64) error {
	if size <= 0 {
		return validateLength(size)
	}

	if beta < 0 {
		return fmt.Errorf("window: kaiser beta must be >= 0: %f", beta)
	}

	return nil
}

func validateTukey(size int, alpha float64) error {
	if size <= 0 {
		return validateLength(size)
	}

	if alpha < 0 || alpha > 1 {
		return fmt.Errorf("window: tukey alpha must be in [0,1]: %f", alpha)
	}

	return nil
}
