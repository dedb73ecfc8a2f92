package sigproc

import "fmt"

// Forward returns the n-point DFT of samples zero-padded to n. n must be a
// power of two no smaller than len(samples).
func (p *Processor) Forward(samples []float64, n int) ([]complex128, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyInput
	}

	if !isPow2(n) || n < len(samples) {
		return nil, fmt.Errorf("%w: n=%d for %d samples", ErrInvalidSize, n, len(samples))
	}

	plan, err := newPlan(n)
	if err != nil {
		return nil, err
	}

	in := make([]complex128, n)
	for i, v := range samples {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("sigproc: forward FFT failed: %w", err)
	}

	return out, nil
}

// Inverse returns the real part of the normalized inverse DFT of bins.
func (p *Processor) Inverse(bins []complex128) ([]float64, error) {
	if len(bins) == 0 {
		return nil, ErrEmptyInput
	}

	if !isPow2(len(bins)) {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidSize, len(bins))
	}

	plan, err := newPlan(len(bins))
	if err != nil {
		return nil, err
	}

	tmp := make([]complex128, len(bins))
	if err := plan.Inverse(tmp, bins); err != nil {
		return nil, fmt.Errorf("sigproc: inverse FFT failed: %w", err)
	}

	out := make([]float64, len(tmp))
	for i, c := range tmp {
		out[i] = real(c)
	}

	return out, nil
}
