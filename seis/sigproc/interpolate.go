package sigproc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-seis/seis/interp"
)

// Interpolate resamples an evenly sampled series from interval delta to
// newDelta over the same time span. The first output sample coincides with
// the first input sample; the output stops at the last input sample.
func (p *Processor) Interpolate(samples []float64, delta, newDelta float64) ([]float64, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyInput
	}

	if !validInterval(delta) || !validInterval(newDelta) {
		return nil, fmt.Errorf("%w: delta=%g newDelta=%g", ErrInvalidInterval, delta, newDelta)
	}

	span := float64(len(samples)-1) * delta
	series := interp.NewSeries(samples, p.cfg.interpOrder)

	out := make([]float64, int(math.Floor(span/newDelta+1e-9))+1)
	for j := range out {
		out[j] = series.At(float64(j) * newDelta / delta)
	}

	return out, nil
}

// InterpolateXY resamples an unevenly sampled series (xs, ys) onto an even
// grid starting at xs[0] with interval newDelta, linearly between points.
func (p *Processor) InterpolateXY(xs, ys []float64, newDelta float64) ([]float64, error) {
	if len(ys) == 0 || len(xs) != len(ys) {
		return nil, ErrEmptyInput
	}

	if !validInterval(newDelta) {
		return nil, fmt.Errorf("%w: newDelta=%g", ErrInvalidInterval, newDelta)
	}

	x0 := xs[0]
	out := make([]float64, int(math.Floor((xs[len(xs)-1]-x0)/newDelta+1e-9))+1)

	k := 0
	for j := range out {
		x := x0 + float64(j)*newDelta
		for k < len(xs)-2 && xs[k+1] < x {
			k++
		}

		if k+1 >= len(xs) || xs[k+1] == xs[k] {
			out[j] = ys[k]
			continue
		}

		out[j] = interp.Linear2((x-xs[k])/(xs[k+1]-xs[k]), ys[k], ys[k+1])
	}

	return out, nil
}

func validInterval(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
