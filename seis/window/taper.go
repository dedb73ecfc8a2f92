package window

import (
	"fmt"
	"math"
)

// MaxTaperWidth is the largest end-taper width as a fraction of the trace
// length on each end.
const MaxTaperWidth = 0.5

// EndTaper returns a length-n gain curve that rises over the first
// round(width·n) samples, stays at one, and falls symmetrically over the
// last round(width·n) samples. The rising part is the first half of a
// symmetric window of type t, so sample i of the ramp sits at i/m of the
// way to the window peak.
func EndTaper(t Type, n int, width float64) ([]float64, error) {
	if err := validateLength(n); err != nil {
		return nil, err
	}

	if width < 0 || width > MaxTaperWidth || math.IsNaN(width) {
		return nil, fmt.Errorf("%w: %g not in [0,%g]", ErrInvalidWidth, width, MaxTaperWidth)
	}

	coeffs := make([]float64, n)
	for i := range coeffs {
		coeffs[i] = 1
	}

	m := int(math.Round(width * float64(n)))
	if m < 2 {
		return coeffs, nil
	}

	ramp := Generate(t, 2*m+1)
	for i := range m {
		coeffs[i] = ramp[i]
		coeffs[n-1-i] = ramp[i]
	}

	return coeffs, nil
}

// ApplyEndTaper multiplies samples in place by EndTaper(t, len(samples), width).
func ApplyEndTaper(t Type, samples []float64, width float64) error {
	coeffs, err := EndTaper(t, len(samples), width)
	if err != nil {
		return err
	}

	return ApplyCoefficientsInPlace(samples, coeffs)
}
