package sigproc

import (
	"fmt"

	"github.com/cwbudde/algo-seis/seis/resample"
)

// Decimate low-pass filters samples with a linear-phase FIR and keeps every
// factor-th sample, starting with the first. The filter is applied
// centred, so the output is not delayed relative to the input.
func (p *Processor) Decimate(samples []float64, factor int) ([]float64, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyInput
	}

	if factor < 2 || factor > MaxDecimation {
		return nil, fmt.Errorf("%w: %d (want 2..%d)", ErrInvalidFactor, factor, MaxDecimation)
	}

	d, err := resample.NewDecimator(factor,
		resample.WithTapsPerFactor(p.cfg.tapsPerFactor),
		resample.WithKaiserBeta(p.cfg.kaiserBeta),
		resample.WithCutoffScale(p.cfg.cutoffScale),
	)
	if err != nil {
		return nil, fmt.Errorf("sigproc: %w", err)
	}

	return d.Process(samples), nil
}
