package sigproc

// Hilbert returns the Hilbert transform of samples, computed as the
// imaginary part of the analytic signal. The input is zero-padded to a
// power of two and the result truncated back to len(samples).
func (p *Processor) Hilbert(samples []float64) ([]float64, error) {
	analytic, err := p.analytic(samples)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(samples))
	for i := range out {
		out[i] = imag(analytic[i])
	}

	return out, nil
}

// Envelope returns |x + iH(x)| for each sample.
func (p *Processor) Envelope(samples []float64) ([]float64, error) {
	analytic, err := p.analytic(samples)
	if err != nil {
		return nil, err
	}

	re := make([]float64, len(samples))
	im := make([]float64, len(samples))
	for i := range re {
		re[i] = samples[i]
		im[i] = imag(analytic[i])
	}

	return Magnitude(re, im), nil
}

func (p *Processor) analytic(samples []float64) ([]complex128, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyInput
	}

	n := NextPow2(len(samples))
	plan, err := newPlan(n)
	if err != nil {
		return nil, err
	}

	buf := make([]complex128, n)
	for i, v := range samples {
		buf[i] = complex(v, 0)
	}

	if err := plan.Forward(buf, buf); err != nil {
		return nil, err
	}

	// One-sided spectrum: keep DC and Nyquist, double positive bins, drop negative ones.
	half := n / 2
	for k := 1; k < n; k++ {
		switch {
		case k < half:
			buf[k] *= 2
		case k > half:
			buf[k] = 0
		}
	}

	if err := plan.Inverse(buf, buf); err != nil {
		return nil, err
	}

	return buf, nil
}
