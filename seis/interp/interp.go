package interp

import "math"

// Linear2 interpolates between x0 and x1 at t in [0,1].
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)

	return ((c3*t+c2)*t+c1)*t + c0
}

// Series evaluates samples at fractional positions.
type Series struct {
	samples []float64
	order   int
}

// NewSeries wraps samples. order 1 selects Linear2, anything else Hermite4.
func NewSeries(samples []float64, order int) *Series {
	return &Series{samples: samples, order: order}
}

// At returns the value at sample position pos. Positions at or past the
// last sample return the last sample; negative positions the first.
func (s *Series) At(pos float64) float64 {
	n := len(s.samples)
	if n == 0 {
		return 0
	}

	if pos <= 0 {
		return s.samples[0]
	}

	i := int(math.Floor(pos))
	if i >= n-1 {
		return s.samples[n-1]
	}

	t := pos - float64(i)
	if s.order == 1 {
		return Linear2(t, s.samples[i], s.samples[i+1])
	}

	return Hermite4(t, s.sample(i-1), s.samples[i], s.samples[i+1], s.sample(i+2))
}

// sample returns samples[i], extrapolating linearly one step past either end.
func (s *Series) sample(i int) float64 {
	n := len(s.samples)

	switch {
	case n == 1:
		return s.samples[0]
	case i < 0:
		return 2*s.samples[0] - s.samples[1]
	case i >= n:
		return 2*s.samples[n-1] - s.samples[n-2]
	}

	return s.samples[i]
}
