package resample

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-seis/seis/window"
)

var (
	// ErrInvalidFactor indicates a decimation factor below 2.
	ErrInvalidFactor = errors.New("resample: invalid decimation factor")
	// ErrInvalidCutoff indicates a normalised cutoff outside (0, 0.5).
	ErrInvalidCutoff = errors.New("resample: invalid cutoff")
	// ErrInvalidLength indicates a filter length below one tap.
	ErrInvalidLength = errors.New("resample: filter length must be > 0")
)

// DesignLowpass returns an nTaps Kaiser-windowed sinc low-pass with
// normalised cutoff (cycles per sample, in (0, 0.5)) and unit DC gain.
func DesignLowpass(nTaps int, cutoff, beta float64) ([]float64, error) {
	if nTaps <= 0 {
		return nil, ErrInvalidLength
	}

	if cutoff <= 0 || cutoff >= 0.5 || math.IsNaN(cutoff) {
		return nil, fmt.Errorf("%w: %.6f", ErrInvalidCutoff, cutoff)
	}

	kaiser, err := window.Kaiser(nTaps, beta)
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}

	taps := make([]float64, nTaps)
	center := 0.5 * float64(nTaps-1)

	var sum float64

	for n := range nTaps {
		t := float64(n) - center
		taps[n] = 2 * cutoff * sinc(2*cutoff*t) * kaiser[n]
		sum += taps[n]
	}

	if sum == 0 {
		return nil, errors.New("resample: designed zero-sum filter")
	}

	for i := range taps {
		taps[i] /= sum
	}

	return taps, nil
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}
