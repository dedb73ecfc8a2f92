package trace

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-seis/seis/fault"
	"github.com/cwbudde/algo-seis/seis/sigproc"
)

// deltaTolerance is the relative sample-interval difference accepted by
// binary trace operations.
const deltaTolerance = 1e-6

// Add adds c to every sample.
func (t *Trace) Add(c float64) error {
	return t.mapSamples("add", func(v float64) float64 { return v + c })
}

// Sub subtracts c from every sample.
func (t *Trace) Sub(c float64) error {
	return t.mapSamples("sub", func(v float64) float64 { return v - c })
}

// Mul multiplies every sample by c.
func (t *Trace) Mul(c float64) error {
	return t.mapSamples("mul", func(v float64) float64 { return v * c })
}

// Div divides every sample by c.
func (t *Trace) Div(c float64) error {
	if c == 0 {
		return fault.New(fault.Configuration, "div", ErrDivideByZero)
	}

	return t.mapSamples("div", func(v float64) float64 { return v / c })
}

// Abs replaces every sample by its absolute value.
func (t *Trace) Abs() error {
	return t.mapSamples("abs", math.Abs)
}

// Square replaces every sample by its square.
func (t *Trace) Square() error {
	return t.mapSamples("sqr", func(v float64) float64 { return v * v })
}

func (t *Trace) mapSamples(op string, f func(float64) float64) error {
	ts, err := t.timeSeries(op, false)
	if err != nil {
		return err
	}

	for i, v := range ts.Y {
		ts.Y[i] = float32(f(float64(v)))
	}

	t.rederive()

	return nil
}

// AddTrace adds other's samples to t sample by sample.
func (t *Trace) AddTrace(other *Trace) error {
	return t.combine("addf", other, func(a, b float64) float64 { return a + b })
}

// SubTrace subtracts other's samples from t.
func (t *Trace) SubTrace(other *Trace) error {
	return t.combine("subf", other, func(a, b float64) float64 { return a - b })
}

// MulTrace multiplies t by other sample by sample.
func (t *Trace) MulTrace(other *Trace) error {
	a, b, err := t.pair("mulf", other)
	if err != nil {
		return err
	}

	x := toFloat64(a.Y)
	sigproc.MulInPlace(x, toFloat64(b.Y))
	a.Y = toFloat32(x)
	t.rederive()

	return nil
}

// DivTrace divides t by other sample by sample. Division by a zero sample
// yields zero for that index.
func (t *Trace) DivTrace(other *Trace) error {
	return t.combine("divf", other, func(a, b float64) float64 {
		if b == 0 {
			return 0
		}

		return a / b
	})
}

func (t *Trace) combine(op string, other *Trace, f func(a, b float64) float64) error {
	a, b, err := t.pair(op, other)
	if err != nil {
		return err
	}

	for i := range a.Y {
		a.Y[i] = float32(f(float64(a.Y[i]), float64(b.Y[i])))
	}

	t.rederive()

	return nil
}

func (t *Trace) pair(op string, other *Trace) (*TimeSeries, *TimeSeries, error) {
	a, err := t.timeSeries(op, true)
	if err != nil {
		return nil, nil, err
	}

	b, err := other.timeSeries(op, true)
	if err != nil {
		return nil, nil, err
	}

	if len(a.Y) != len(b.Y) {
		return nil, nil, fault.Newf(fault.Consistency, op, "%w: %d vs %d", ErrLengthMismatch, len(a.Y), len(b.Y))
	}

	d1, d2 := t.hdr.Delta, other.hdr.Delta
	if math.Abs(d1-d2) > deltaTolerance*math.Max(math.Abs(d1), math.Abs(d2)) {
		return nil, nil, fault.Newf(fault.Consistency, op, "%w: %g vs %g", ErrDeltaMismatch, d1, d2)
	}

	return a, b, nil
}

// RemoveMean subtracts the sample mean.
func (t *Trace) RemoveMean() error {
	ts, err := t.timeSeries("rmean", false)
	if err != nil {
		return err
	}

	if len(ts.Y) == 0 {
		return nil
	}

	return t.Sub(stat.Mean(toFloat64(ts.Y), nil))
}

// RemoveTrend subtracts the least-squares straight line through the
// samples. Unevenly sampled traces use their X values as abscissae.
func (t *Trace) RemoveTrend() error {
	ts, err := t.timeSeries("rtrend", false)
	if err != nil {
		return err
	}

	if len(ts.Y) < 2 {
		return nil
	}

	xs := make([]float64, len(ts.Y))
	for i := range xs {
		if ts.X != nil {
			xs[i] = float64(ts.X[i])
		} else {
			xs[i] = t.hdr.B + float64(i)*t.hdr.Delta
		}
	}

	ys := toFloat64(ts.Y)
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	for i := range ts.Y {
		ts.Y[i] = float32(ys[i] - (alpha + beta*xs[i]))
	}

	t.rederive()

	return nil
}

// Reverse reverses the sample order in time.
func (t *Trace) Reverse() error {
	ts, err := t.timeSeries("reverse", true)
	if err != nil {
		return err
	}

	for i, j := 0, len(ts.Y)-1; i < j; i, j = i+1, j-1 {
		ts.Y[i], ts.Y[j] = ts.Y[j], ts.Y[i]
	}

	t.rederive()

	return nil
}

// Integrate replaces the samples with their running trapezoidal integral.
// The first output sample is zero and NPTS is unchanged.
func (t *Trace) Integrate() error {
	ts, err := t.timeSeries("int", true)
	if err != nil {
		return err
	}

	dt := t.hdr.Delta
	var acc float64
	prev := 0.0
	for i, v := range ts.Y {
		f := float64(v)
		if i > 0 {
			acc += 0.5 * dt * (prev + f)
		}

		prev = f
		ts.Y[i] = float32(acc)
	}

	t.rederive()

	return nil
}

// Differentiate replaces the samples with the two-point forward
// difference. NPTS shrinks by one and B moves half a sample later.
func (t *Trace) Differentiate() error {
	ts, err := t.timeSeries("dif", true)
	if err != nil {
		return err
	}

	if len(ts.Y) < 2 {
		return fault.Newf(fault.Precondition, "dif", "%w: need at least 2 samples", ErrEmpty)
	}

	dt := t.hdr.Delta
	y := make([]float32, len(ts.Y)-1)
	for i := range y {
		y[i] = float32((float64(ts.Y[i+1]) - float64(ts.Y[i])) / dt)
	}

	ts.Y = y
	t.hdr.B += 0.5 * dt
	t.rederive()

	return nil
}
