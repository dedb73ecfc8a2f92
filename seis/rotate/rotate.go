package rotate

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/soniakeys/unit"

	"github.com/cwbudde/algo-seis/seis/fault"
	"github.com/cwbudde/algo-seis/seis/geo"
	"github.com/cwbudde/algo-seis/seis/header"
	"github.com/cwbudde/algo-seis/seis/trace"
)

var (
	// ErrNotHorizontal indicates a component whose CMPINC is not 90.
	ErrNotHorizontal = errors.New("rotate: component is not horizontal")
	// ErrAzimuthUndefined indicates a component without CMPAZ.
	ErrAzimuthUndefined = errors.New("rotate: component azimuth is undefined")
	// ErrBazUndefined indicates a pair without a usable back-azimuth.
	ErrBazUndefined = errors.New("rotate: back-azimuth is undefined")
	// ErrBazMismatch indicates a pair whose back-azimuths disagree.
	ErrBazMismatch = errors.New("rotate: back-azimuths do not match")
	// ErrPairMismatch indicates a pair with different sample counts.
	ErrPairMismatch = errors.New("rotate: components differ in length")
)

// inclinationTolerance is the accepted deviation of CMPINC from 90 degrees.
const inclinationTolerance = 1e-6

// Rotator rotates horizontal component pairs.
type Rotator struct {
	cfg    Config
	calc   AzimuthCalculator
	logger *slog.Logger
}

// New returns a Rotator for cfg. Back-azimuths missing from the header are
// computed with geo.Default unless WithCalculator is given.
func New(cfg Config, opts ...Option) (*Rotator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Rotator{cfg: cfg, calc: geo.Default(), logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r, nil
}

// Default returns a Rotator using DefaultConfig.
func Default() *Rotator {
	r, _ := New(DefaultConfig())

	return r
}

type groupKey struct {
	station  string
	location string
	npts     int
	b, delta float64
}

// RotateTraces rotates every group of exactly two traces sharing station,
// location, NPTS, B and DELTA. Traces in other groups are left alone.
// Members that are not horizontal or lack an azimuth are skipped with a
// warning. It returns the number of rotated pairs and the joined errors of
// pairs that failed.
func (r *Rotator) RotateTraces(traces []*trace.Trace, style Style, mode Mode, angle float64) (int, error) {
	var order []groupKey
	groups := make(map[groupKey][]*trace.Trace)
	for _, t := range traces {
		if t == nil {
			continue
		}

		h := t.Header()
		ch := h.Channel()
		k := groupKey{station: ch.Station, location: ch.Location, npts: h.NPTS, b: h.B, delta: h.Delta}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}

		groups[k] = append(groups[k], t)
	}

	var (
		rotated int
		errs    []error
	)
	for _, k := range order {
		g := groups[k]
		if len(g) != 2 {
			r.logger.Debug("rotate: group not a pair", "station", k.station, "location", k.location, "members", len(g))
			continue
		}

		err := r.RotatePair(g[0], g[1], style, mode, angle)
		switch {
		case err == nil:
			rotated++
		case errors.Is(err, ErrNotHorizontal), errors.Is(err, ErrAzimuthUndefined):
			r.logger.Warn("rotate: skipping pair", "station", k.station, "location", k.location, "error", err)
		default:
			errs = append(errs, fmt.Errorf("rotate %s.%s: %w", k.station, k.location, err))
		}
	}

	return rotated, errors.Join(errs...)
}

// component is one member of a pair prepared for rotation.
type component struct {
	tr *trace.Trace
	y  []float32
	az float64
}

// RotatePair normalizes and rotates a and b in place. Nothing is modified
// when an error is returned.
func (r *Rotator) RotatePair(a, b *trace.Trace, style Style, mode Mode, angle float64) error {
	ca, err := horizontal(a)
	if err != nil {
		return err
	}

	cb, err := horizontal(b)
	if err != nil {
		return err
	}

	if len(ca.y) != len(cb.y) {
		return fault.Newf(fault.Consistency, "rotate", "%w: %d vs %d", ErrPairMismatch, len(ca.y), len(cb.y))
	}

	// y is the component with x lying less than 180 degrees clockwise of it.
	y, x := ca, cb
	if geo.NormalizeAzimuth(cb.az-ca.az) > 180 {
		y, x = cb, ca
	}

	var theta float64
	switch mode {
	case ToAzimuth:
		theta = angle - y.az
	case Through:
		theta = angle
	case ToGCP:
		baz, err := r.pairBackAzimuth(a, b)
		if err != nil {
			return err
		}

		theta = baz + 180 - y.az
	default:
		return fault.Newf(fault.Configuration, "rotate", "unknown mode %v", mode)
	}

	alpha := unit.AngleFromDeg(y.az + 90 - x.az)
	th := unit.AngleFromDeg(theta)
	r.logger.Debug("rotate pair", "y", y.tr.Header().Channel().String(), "x", x.tr.Header().Channel().String(),
		"alpha", alpha.Deg(), "theta", theta, "mode", mode, "style", style)

	ny, nx := rotate(y.y, x.y, alpha, th, style)

	azY := y.az + theta
	azX := azY + 90
	if style == Reversed {
		azX -= 180
	}

	finish(y.tr, ny, azY)
	finish(x.tr, nx, azX)

	return nil
}

func horizontal(t *trace.Trace) (component, error) {
	y, ok := t.Samples()
	if !ok {
		return component{}, fault.New(fault.Precondition, "rotate", trace.ErrNotTimeDomain)
	}

	if !t.IsEven() {
		return component{}, fault.New(fault.Precondition, "rotate", trace.ErrUnevenlySpaced)
	}

	h := t.Header()
	if !header.IsDefined(h.Cmpinc) || math.Abs(h.Cmpinc-90) > inclinationTolerance {
		return component{}, fault.Newf(fault.Precondition, "rotate", "%w: %s cmpinc=%g", ErrNotHorizontal, h.Channel(), h.Cmpinc)
	}

	if !header.IsDefined(h.Cmpaz) {
		return component{}, fault.Newf(fault.Precondition, "rotate", "%w: %s", ErrAzimuthUndefined, h.Channel())
	}

	return component{tr: t, y: y, az: geo.NormalizeAzimuth(h.Cmpaz)}, nil
}

// pairBackAzimuth returns the common back-azimuth of a and b.
func (r *Rotator) pairBackAzimuth(a, b *trace.Trace) (float64, error) {
	ba, err := r.backAzimuth(a.Header())
	if err != nil {
		return 0, err
	}

	bb, err := r.backAzimuth(b.Header())
	if err != nil {
		return 0, err
	}

	d := geo.NormalizeAzimuth(ba - bb)
	d = math.Min(d, 360-d)
	if d > r.cfg.BazTolerance {
		return 0, fault.Newf(fault.Consistency, "rotate", "%w: %g vs %g (tolerance %g)", ErrBazMismatch, ba, bb, r.cfg.BazTolerance)
	}

	return ba, nil
}

func (r *Rotator) backAzimuth(h *header.Header) (float64, error) {
	if header.IsDefined(h.Baz) {
		return h.Baz, nil
	}

	baz, err := r.calc.BackAzimuth(h.Stla, h.Stlo, h.Evla, h.Evlo)
	if err != nil {
		return 0, fault.Newf(fault.Configuration, "rotate", "%w: %s: %w", ErrBazUndefined, h.Channel(), err)
	}

	return baz, nil
}

// rotate projects x onto the axis 90 degrees clockwise of y (alpha is the
// deviation from orthogonality) and turns the resulting pair through theta.
func rotate(y, x []float32, alpha, theta unit.Angle, style Style) ([]float32, []float32) {
	sa, ca := alpha.Sin(), alpha.Cos()
	st, ct := theta.Sin(), theta.Cos()
	sign := 1.0
	if style == Reversed {
		sign = -1
	}

	ny := make([]float32, len(y))
	nx := make([]float32, len(x))
	for i := range y {
		yi := float64(y[i]) + float64(x[i])*sa
		xi := float64(x[i]) * ca
		ny[i] = float32(yi*ct + xi*st)
		nx[i] = float32(sign * (-yi*st + xi*ct))
	}

	return ny, nx
}

func finish(t *trace.Trace, y []float32, az float64) {
	h := t.Header()
	h.Cmpaz = geo.NormalizeAzimuth(az)
	h.Kcmpnm = header.UndefinedString
	// SetSamples only fails for spectral or uneven traces, excluded above.
	_ = t.SetSamples(y)
}
