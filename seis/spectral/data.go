package spectral

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/cwbudde/algo-seis/seis/sigproc"
)

var (
	// ErrTooShort indicates fewer than four bins, which leaves no visible range.
	ErrTooShort = errors.New("spectral: need at least 4 bins")
	// ErrNotPow2 indicates a bin count that is not a power of two.
	ErrNotPow2 = errors.New("spectral: bin count must be a power of two")
	// ErrInvalidDelta indicates a non-positive sample interval.
	ErrInvalidDelta = errors.New("spectral: sample interval must be > 0")
)

// Format is the presentation of spectral values.
type Format int

const (
	// RealImag presents bins as real and imaginary parts.
	RealImag Format = iota
	// AmpPhase presents bins as amplitude and phase in radians.
	AmpPhase
)

func (f Format) String() string {
	switch f {
	case RealImag:
		return "RLIM"
	case AmpPhase:
		return "AMPH"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat converts RLIM or AMPH (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch {
	case strings.EqualFold(s, "RLIM"):
		return RealImag, nil
	case strings.EqualFold(s, "AMPH"):
		return AmpPhase, nil
	}

	return RealImag, fmt.Errorf("spectral: unknown format %q", s)
}

// Data is one trace's spectrum.
type Data struct {
	bins   []complex128
	delta  float64 // time-domain sample interval
	npts   int     // time-domain sample count before padding
	begin  float64 // time-domain begin time
	format Format
	start  int
	end    int
}

// New wraps bins computed from npts samples at interval delta starting at
// begin. The visible range covers every positive frequency below Nyquist.
func New(bins []complex128, delta float64, npts int, begin float64, format Format) (*Data, error) {
	n := len(bins)
	if n < 4 {
		return nil, fmt.Errorf("%w: %d", ErrTooShort, n)
	}

	if n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrNotPow2, n)
	}

	if !(delta > 0) || math.IsInf(delta, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidDelta, delta)
	}

	if npts <= 0 || npts > n {
		return nil, fmt.Errorf("spectral: npts %d outside (0,%d]", npts, n)
	}

	d := &Data{
		bins:   bins,
		delta:  delta,
		npts:   npts,
		begin:  begin,
		format: format,
	}

	d.ResetWindow()

	return d, nil
}

// Len returns the number of bins N.
func (d *Data) Len() int { return len(d.bins) }

// Bins returns the full bin slice, including DC and the negative half.
// The slice is shared with d.
func (d *Data) Bins() []complex128 { return d.bins }

// Delta returns the time-domain sample interval.
func (d *Data) Delta() float64 { return d.delta }

// Df returns the frequency spacing 1/(N·delta) in Hz.
func (d *Data) Df() float64 { return 1 / (float64(len(d.bins)) * d.delta) }

// NPTS returns the time-domain sample count before zero-padding.
func (d *Data) NPTS() int { return d.npts }

// Begin returns the time-domain begin time.
func (d *Data) Begin() float64 { return d.begin }

// Format returns the presentation format.
func (d *Data) Format() Format { return d.format }

// SetFormat changes the presentation format. The bins are not modified.
func (d *Data) SetFormat(f Format) { d.format = f }

// Window returns the visible bin index range [start, end].
func (d *Data) Window() (start, end int) { return d.start, d.end }

// SetWindow sets the visible range, clamped to [1, N/2-1]. It reports
// whether the clamped range is non-empty; an empty range leaves the
// window unchanged.
func (d *Data) SetWindow(start, end int) bool {
	lo, hi := 1, len(d.bins)/2-1
	start = max(start, lo)
	end = min(end, hi)
	if start > end {
		return false
	}

	d.start, d.end = start, end

	return true
}

// SetWindowFreq sets the visible range by frequency in Hz.
func (d *Data) SetWindowFreq(fmin, fmax float64) bool {
	df := d.Df()

	return d.SetWindow(int(math.Ceil(fmin/df-1e-9)), int(math.Floor(fmax/df+1e-9)))
}

// ResetWindow makes every bin in [1, N/2-1] visible.
func (d *Data) ResetWindow() {
	d.start, d.end = 1, len(d.bins)/2-1
}

// Frequencies returns the frequency of each visible bin.
func (d *Data) Frequencies() []float64 {
	df := d.Df()
	out := make([]float64, d.end-d.start+1)
	for i := range out {
		out[i] = float64(d.start+i) * df
	}

	return out
}

// Real returns the real parts of the visible bins.
func (d *Data) Real() []float64 {
	out := make([]float64, d.end-d.start+1)
	for i := range out {
		out[i] = real(d.bins[d.start+i])
	}

	return out
}

// Imag returns the imaginary parts of the visible bins.
func (d *Data) Imag() []float64 {
	out := make([]float64, d.end-d.start+1)
	for i := range out {
		out[i] = imag(d.bins[d.start+i])
	}

	return out
}

// Amplitude returns |X[k]| of the visible bins.
func (d *Data) Amplitude() []float64 {
	return sigproc.Magnitude(d.Real(), d.Imag())
}

// Phase returns arg(X[k]) of the visible bins in radians.
func (d *Data) Phase() []float64 {
	out := make([]float64, d.end-d.start+1)
	for i := range out {
		out[i] = cmplx.Phase(d.bins[d.start+i])
	}

	return out
}

// Components returns the visible bins as two series in the presentation
// format: (real, imaginary) or (amplitude, phase).
func (d *Data) Components() (first, second []float64) {
	if d.format == AmpPhase {
		return d.Amplitude(), d.Phase()
	}

	return d.Real(), d.Imag()
}

// Clone returns a deep copy of d.
func (d *Data) Clone() *Data {
	c := *d
	c.bins = append([]complex128(nil), d.bins...)

	return &c
}
