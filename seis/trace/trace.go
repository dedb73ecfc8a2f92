package trace

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-seis/seis/fault"
	"github.com/cwbudde/algo-seis/seis/header"
	"github.com/cwbudde/algo-seis/seis/sigproc"
	"github.com/cwbudde/algo-seis/seis/spectral"
)

// Trace is one waveform record.
type Trace struct {
	name    string
	hdr     *header.Header
	data    Data
	backend Backend
}

// Option configures a Trace.
type Option func(*Trace)

// WithBackend replaces the default signal-processing backend.
func WithBackend(b Backend) Option {
	return func(t *Trace) {
		if b != nil {
			t.backend = b
		}
	}
}

// WithName sets the trace name, usually the file it was read from.
func WithName(name string) Option {
	return func(t *Trace) {
		t.name = name
	}
}

// New returns an evenly sampled trace owning h and y. NPTS, E and the
// amplitude extrema in h are derived from y.
func New(h *header.Header, y []float32, opts ...Option) (*Trace, error) {
	if h == nil {
		h = header.New()
	}

	if !header.IsDefined(h.Delta) || h.Delta <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidDelta, h.Delta)
	}

	if !header.IsDefined(h.B) {
		h.B = 0
	}

	t := newTrace(h, &TimeSeries{Y: y}, opts)
	t.hdr.Leven = true
	t.hdr.IfType = header.TimeSeries
	t.rederive()

	return t, nil
}

// NewUneven returns an unevenly sampled trace with independent values x.
// x and y must hold the same, non-zero number of values.
func NewUneven(h *header.Header, x, y []float32, opts ...Option) (*Trace, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d x values for %d samples", ErrLengthMismatch, len(x), len(y))
	}

	if len(x) == 0 {
		return nil, fmt.Errorf("%w: unevenly sampled trace needs x values", ErrEmpty)
	}

	if h == nil {
		h = header.New()
	}

	for i := 1; i < len(x); i++ {
		if x[i] < x[i-1] {
			return nil, fmt.Errorf("trace: x values must be non-decreasing (index %d)", i)
		}
	}

	t := newTrace(h, &TimeSeries{Y: y, X: x}, opts)
	t.hdr.Leven = false
	t.hdr.IfType = header.TimeSeries
	t.rederive()

	return t, nil
}

func newTrace(h *header.Header, d Data, opts []Option) *Trace {
	t := &Trace{hdr: h, data: d, backend: sigproc.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}

	return t
}

// Name returns the trace name.
func (t *Trace) Name() string { return t.name }

// SetName sets the trace name.
func (t *Trace) SetName(name string) { t.name = name }

// Header returns the trace header. Callers may edit it; derived fields are
// rewritten by the next data-changing operation.
func (t *Trace) Header() *header.Header { return t.hdr }

// Data returns the current representation.
func (t *Trace) Data() Data { return t.data }

// Samples returns the time-domain samples, or false for spectral traces.
// The slice is shared with t.
func (t *Trace) Samples() ([]float32, bool) {
	ts, ok := t.data.(*TimeSeries)
	if !ok {
		return nil, false
	}

	return ts.Y, true
}

// XValues returns the independent values of an unevenly sampled trace.
func (t *Trace) XValues() ([]float32, bool) {
	ts, ok := t.data.(*TimeSeries)
	if !ok || ts.X == nil {
		return nil, false
	}

	return ts.X, true
}

// Spectrum returns the spectral data, or false for time-domain traces.
func (t *Trace) Spectrum() (*spectral.Data, bool) {
	s, ok := t.data.(*Spectrum)
	if !ok {
		return nil, false
	}

	return s.Data, true
}

// IsSpectral reports whether the trace holds spectral data.
func (t *Trace) IsSpectral() bool {
	_, ok := t.data.(*Spectrum)

	return ok
}

// IsEven reports whether the trace is an evenly sampled time series.
func (t *Trace) IsEven() bool {
	ts, ok := t.data.(*TimeSeries)

	return ok && ts.Even()
}

// Len returns the number of samples or bins.
func (t *Trace) Len() int {
	switch d := t.data.(type) {
	case *TimeSeries:
		return len(d.Y)
	case *Spectrum:
		return d.Len()
	}

	return 0
}

// Clone returns a deep copy of t sharing only the backend.
func (t *Trace) Clone() *Trace {
	return &Trace{
		name:    t.name,
		hdr:     t.hdr.Clone(),
		data:    t.data.clone(),
		backend: t.backend,
	}
}

// Backend returns the signal-processing backend used by t.
func (t *Trace) Backend() Backend { return t.backend }

// SetSamples replaces the samples of an evenly sampled trace and
// re-derives the header. B and DELTA are kept.
func (t *Trace) SetSamples(y []float32) error {
	ts, err := t.timeSeries("set samples", true)
	if err != nil {
		return err
	}

	ts.Y = y
	t.rederive()

	return nil
}

// timeSeries returns the time-domain data or a classified error naming op.
func (t *Trace) timeSeries(op string, needEven bool) (*TimeSeries, error) {
	ts, ok := t.data.(*TimeSeries)
	if !ok {
		return nil, fault.New(fault.Precondition, op, ErrNotTimeDomain)
	}

	if needEven && !ts.Even() {
		return nil, fault.New(fault.Precondition, op, ErrUnevenlySpaced)
	}

	return ts, nil
}

// rederive rewrites NPTS, E and the amplitude extrema from the data.
func (t *Trace) rederive() {
	h := t.hdr
	switch d := t.data.(type) {
	case *TimeSeries:
		h.NPTS = len(d.Y)
		if d.Even() {
			h.Leven = true
			if h.NPTS > 0 {
				h.E = h.B + float64(h.NPTS-1)*h.Delta
			} else {
				h.E = h.B
			}
		} else {
			h.Leven = false
			if n := len(d.X); n > 0 {
				h.B = float64(d.X[0])
				h.E = float64(d.X[n-1])
			}
		}

		h.DepMin, h.DepMax, h.DepMen = extrema32(d.Y)
	case *Spectrum:
		h.NPTS = d.Len()
		h.Leven = true
		h.Delta = d.Df()
		h.B = 0
		h.E = float64(d.Len()/2) * d.Df()
		first, _ := d.Components()
		h.DepMin, h.DepMax, h.DepMen = extrema64(first)
	}
}

func extrema32(y []float32) (lo, hi, mean float64) {
	if len(y) == 0 {
		return header.Undefined, header.Undefined, header.Undefined
	}

	lo, hi = math.Inf(1), math.Inf(-1)
	var sum float64
	for _, v := range y {
		f := float64(v)
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
		sum += f
	}

	return lo, hi, sum / float64(len(y))
}

func extrema64(y []float64) (lo, hi, mean float64) {
	if len(y) == 0 {
		return header.Undefined, header.Undefined, header.Undefined
	}

	lo, hi = math.Inf(1), math.Inf(-1)
	var sum float64
	for _, v := range y {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		sum += v
	}

	return lo, hi, sum / float64(len(y))
}

func toFloat64(y []float32) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = float64(v)
	}

	return out
}

func toFloat32(y []float64) []float32 {
	out := make([]float32, len(y))
	for i, v := range y {
		out[i] = float32(v)
	}

	return out
}

func (t *Trace) String() string {
	h := t.hdr
	kind := "time"
	switch {
	case t.IsSpectral():
		kind = "spectral"
	case !t.IsEven():
		kind = "uneven"
	}

	return fmt.Sprintf("%s %s npts=%d b=%g e=%g delta=%g", h.Channel(), kind, h.NPTS, h.B, h.E, h.Delta)
}
