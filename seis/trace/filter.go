package trace

import (
	"fmt"

	"github.com/cwbudde/algo-seis/seis/fault"
	"github.com/cwbudde/algo-seis/seis/window"
)

// Taper applies a symmetric taper of the given kind over width (a fraction
// of NPTS, at most 0.5) at each end of the trace.
func (t *Trace) Taper(kind window.Type, width float64) error {
	ts, err := t.timeSeries("taper", false)
	if err != nil {
		return err
	}

	if len(ts.Y) == 0 {
		return nil
	}

	x := toFloat64(ts.Y)
	if err := window.ApplyEndTaper(kind, x, width); err != nil {
		return fault.New(fault.Configuration, "taper", err)
	}

	ts.Y = toFloat32(x)
	t.rederive()

	return nil
}

// Hilbert replaces the samples with their Hilbert transform.
func (t *Trace) Hilbert() error {
	return t.transformEven("hilbert", t.backend.Hilbert)
}

// Envelope replaces the samples with the envelope of the analytic signal.
func (t *Trace) Envelope() error {
	return t.transformEven("envelope", t.backend.Envelope)
}

func (t *Trace) transformEven(op string, f func([]float64) ([]float64, error)) error {
	ts, err := t.timeSeries(op, true)
	if err != nil {
		return err
	}

	if len(ts.Y) == 0 {
		return fault.New(fault.Precondition, op, ErrEmpty)
	}

	y, err := f(toFloat64(ts.Y))
	if err != nil {
		return fmt.Errorf("trace: %s: %w", op, err)
	}

	ts.Y = toFloat32(y)
	t.rederive()

	return nil
}

// Decimate low-pass filters and keeps every factor-th sample. DELTA is
// multiplied by factor.
func (t *Trace) Decimate(factor int) error {
	ts, err := t.timeSeries("decimate", true)
	if err != nil {
		return err
	}

	if len(ts.Y) == 0 {
		return fault.New(fault.Precondition, "decimate", ErrEmpty)
	}

	y, err := t.backend.Decimate(toFloat64(ts.Y), factor)
	if err != nil {
		return fault.New(fault.Configuration, "decimate", err)
	}

	ts.Y = toFloat32(y)
	t.hdr.Delta *= float64(factor)
	t.rederive()

	return nil
}

// Interpolate resamples the trace at interval newDelta. Unevenly sampled
// traces become evenly sampled, starting at their first X value.
func (t *Trace) Interpolate(newDelta float64) error {
	ts, err := t.timeSeries("interpolate", false)
	if err != nil {
		return err
	}

	if len(ts.Y) == 0 {
		return fault.New(fault.Precondition, "interpolate", ErrEmpty)
	}

	var y []float64
	if ts.Even() {
		y, err = t.backend.Interpolate(toFloat64(ts.Y), t.hdr.Delta, newDelta)
	} else {
		t.hdr.B = float64(ts.X[0])
		y, err = t.backend.InterpolateXY(toFloat64(ts.X), toFloat64(ts.Y), newDelta)
	}

	if err != nil {
		return fault.New(fault.Configuration, "interpolate", err)
	}

	ts.Y = toFloat32(y)
	ts.X = nil
	t.hdr.Delta = newDelta
	t.rederive()

	return nil
}
