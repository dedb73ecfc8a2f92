package trace

import (
	"fmt"

	"github.com/cwbudde/algo-seis/seis/fault"
	"github.com/cwbudde/algo-seis/seis/header"
	"github.com/cwbudde/algo-seis/seis/sigproc"
	"github.com/cwbudde/algo-seis/seis/spectral"
)

// minFFTSize keeps at least one visible bin below Nyquist.
const minFFTSize = 4

// FFT replaces the time series with its spectrum. The samples are
// zero-padded to the next power of two and the bins scaled by DELTA so
// their magnitude approximates the continuous transform. The header then
// describes the spectrum: DELTA is the frequency spacing, B is zero, E the
// Nyquist frequency and NPTS the bin count.
func (t *Trace) FFT(format spectral.Format) error {
	const op = "fft"

	ts, err := t.timeSeries(op, true)
	if err != nil {
		return err
	}

	if len(ts.Y) == 0 {
		return fault.New(fault.Precondition, op, ErrEmpty)
	}

	h := t.hdr
	n := sigproc.NextPow2(max(len(ts.Y), minFFTSize))
	bins, err := t.backend.Forward(toFloat64(ts.Y), n)
	if err != nil {
		return fmt.Errorf("trace: forward transform: %w", err)
	}

	scale := complex(h.Delta, 0)
	for i := range bins {
		bins[i] *= scale
	}

	sd, err := spectral.New(bins, h.Delta, len(ts.Y), h.B, format)
	if err != nil {
		return fault.New(fault.Precondition, op, err)
	}

	t.data = &Spectrum{Data: sd}
	if format == spectral.AmpPhase {
		h.IfType = header.AmpPhase
	} else {
		h.IfType = header.RealImag
	}

	t.rederive()

	return nil
}

// IFFT replaces the spectrum with the time series it represents, truncated
// to the original sample count, and restores B, DELTA and NPTS. A backend
// failure is returned and leaves the spectrum in place.
func (t *Trace) IFFT() error {
	const op = "ifft"

	s, ok := t.data.(*Spectrum)
	if !ok {
		return fault.New(fault.Precondition, op, ErrNotSpectral)
	}

	y, err := t.backend.Inverse(s.Bins())
	if err != nil {
		return fmt.Errorf("trace: inverse transform: %w", err)
	}

	if len(y) < s.NPTS() {
		return fmt.Errorf("trace: inverse transform returned %d samples, want >= %d", len(y), s.NPTS())
	}

	inv := 1 / s.Delta()
	out := make([]float32, s.NPTS())
	for i := range out {
		out[i] = float32(y[i] * inv)
	}

	h := t.hdr
	h.Delta = s.Delta()
	h.B = s.Begin()
	h.IfType = header.TimeSeries
	t.data = &TimeSeries{Y: out}
	t.rederive()

	return nil
}

// DivOmega integrates a spectral trace by dividing by iω.
func (t *Trace) DivOmega() error {
	s, ok := t.data.(*Spectrum)
	if !ok {
		return fault.New(fault.Precondition, "divomega", ErrNotSpectral)
	}

	s.DivOmega()
	t.rederive()

	return nil
}

// MulOmega differentiates a spectral trace by multiplying by iω.
func (t *Trace) MulOmega() error {
	s, ok := t.data.(*Spectrum)
	if !ok {
		return fault.New(fault.Precondition, "mulomega", ErrNotSpectral)
	}

	s.MulOmega()
	t.rederive()

	return nil
}

// SetSpectralFormat changes how a spectral trace presents its bins.
func (t *Trace) SetSpectralFormat(format spectral.Format) error {
	s, ok := t.data.(*Spectrum)
	if !ok {
		return fault.New(fault.Precondition, "format", ErrNotSpectral)
	}

	s.SetFormat(format)
	if format == spectral.AmpPhase {
		t.hdr.IfType = header.AmpPhase
	} else {
		t.hdr.IfType = header.RealImag
	}

	t.rederive()

	return nil
}
