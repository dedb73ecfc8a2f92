package trace

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-seis/seis/fault"
	"github.com/cwbudde/algo-seis/seis/timewindow"
)

// CutPolicy selects what Cut does when the window exceeds the trace span.
type CutPolicy int

const (
	// Fatal fails and leaves the trace unmodified.
	Fatal CutPolicy = iota
	// UseBE leaves the trace unmodified and reports success.
	UseBE
	// FillZeros pads the short side(s) with zeros.
	FillZeros
)

func (p CutPolicy) String() string {
	switch p {
	case Fatal:
		return "FATAL"
	case UseBE:
		return "USEBE"
	case FillZeros:
		return "FILLZ"
	default:
		return fmt.Sprintf("CutPolicy(%d)", int(p))
	}
}

// ParseCutPolicy converts FATAL, USEBE or FILLZ (case-insensitive) to a CutPolicy.
func ParseCutPolicy(s string) (CutPolicy, error) {
	switch {
	case strings.EqualFold(s, "FATAL"):
		return Fatal, nil
	case strings.EqualFold(s, "USEBE"):
		return UseBE, nil
	case strings.EqualFold(s, "FILLZ"), strings.EqualFold(s, "FILLZEROS"):
		return FillZeros, nil
	}

	return Fatal, fault.Newf(fault.Configuration, "cut", "unknown cut policy %q", s)
}

// Cut trims the trace to window w. It returns true if the trace now covers
// the requested window, or if UseBE left it untouched.
//
// An invalid or unresolvable window returns false and a configuration
// error; the trace is untouched and the caller should skip it. A window
// that exceeds the trace span is handled by policy.
func (t *Trace) Cut(w *timewindow.Window, policy CutPolicy) (bool, error) {
	const op = "cut"

	if _, err := t.timeSeries(op, false); err != nil {
		return false, err
	}

	start, end, err := w.Resolve(t.hdr)
	if err != nil {
		return false, err
	}

	return t.CutTimes(start, end, policy)
}

// CutTimes trims the trace to the absolute window [start, end], relative to
// the header reference time, applying policy when the window exceeds the span.
func (t *Trace) CutTimes(start, end float64, policy CutPolicy) (bool, error) {
	const op = "cut"

	ts, err := t.timeSeries(op, false)
	if err != nil {
		return false, err
	}

	if len(ts.Y) == 0 {
		return false, fault.New(fault.Precondition, op, ErrEmpty)
	}

	if !(end > start) {
		return false, fault.Newf(fault.Configuration, op, "window end %g is not after start %g", end, start)
	}

	b, e := t.hdr.B, t.hdr.E
	eps := t.timeEpsilon()
	inside := start >= b-eps && end <= e+eps

	if !inside {
		switch policy {
		case Fatal:
			return false, fault.Newf(fault.Consistency, op, "%w: [%g,%g] vs [%g,%g]", ErrWindowOutOfRange, start, end, b, e)
		case UseBE:
			return true, nil
		case FillZeros:
			if !ts.Even() {
				return false, fault.New(fault.Precondition, op, ErrUnevenlySpaced)
			}

			if start < b-eps {
				if err := t.PadFront(b - start); err != nil {
					return false, err
				}
			}

			if end > e+eps {
				if err := t.PadBack(end - e); err != nil {
					return false, err
				}
			}
		default:
			return false, fault.Newf(fault.Configuration, op, "unknown cut policy %v", policy)
		}
	}

	if ts.Even() {
		t.trimEven(start, end)
	} else {
		t.trimUneven(start, end)
	}

	return true, nil
}

// trimEven keeps the samples nearest to [start, end]. start and end are
// assumed to lie inside the current span.
func (t *Trace) trimEven(start, end float64) {
	ts := t.data.(*TimeSeries)
	h := t.hdr

	i0 := int(math.Round((start - h.B) / h.Delta))
	i0 = max(0, min(i0, len(ts.Y)-1))
	n := int(math.Round((end-start)/h.Delta)) + 1
	n = max(1, min(n, len(ts.Y)-i0))

	if i0 == 0 && n == len(ts.Y) {
		return
	}

	y := make([]float32, n)
	copy(y, ts.Y[i0:i0+n])
	ts.Y = y

	newB := h.B + float64(i0)*h.Delta
	if math.Abs(newB-start) <= t.timeEpsilon() {
		newB = start
	}

	h.B = newB
	t.rederive()
}

func (t *Trace) trimUneven(start, end float64) {
	ts := t.data.(*TimeSeries)
	eps := t.timeEpsilon()

	i0 := 0
	for i0 < len(ts.X) && float64(ts.X[i0]) < start-eps {
		i0++
	}

	i1 := len(ts.X) - 1
	for i1 > i0 && float64(ts.X[i1]) > end+eps {
		i1--
	}

	if i0 == 0 && i1 == len(ts.X)-1 {
		return
	}

	ts.Y = append([]float32(nil), ts.Y[i0:i1+1]...)
	ts.X = append([]float32(nil), ts.X[i0:i1+1]...)
	t.rederive()
}

// PadFront prepends round(dt·sampleRate) zeros and moves B back by that
// many sample intervals. dt is in seconds and must not be negative.
func (t *Trace) PadFront(dt float64) error {
	n, ts, err := t.padCount("pad front", dt)
	if err != nil || n == 0 {
		return err
	}

	y := make([]float32, n+len(ts.Y))
	copy(y[n:], ts.Y)
	ts.Y = y
	t.hdr.B -= float64(n) * t.hdr.Delta
	t.rederive()

	return nil
}

// PadBack appends round(dt·sampleRate) zeros, extending E.
func (t *Trace) PadBack(dt float64) error {
	n, ts, err := t.padCount("pad back", dt)
	if err != nil || n == 0 {
		return err
	}

	ts.Y = append(ts.Y, make([]float32, n)...)
	t.rederive()

	return nil
}

func (t *Trace) padCount(op string, dt float64) (int, *TimeSeries, error) {
	ts, err := t.timeSeries(op, true)
	if err != nil {
		return 0, nil, err
	}

	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return 0, nil, fault.Newf(fault.Configuration, op, "pad duration must be >= 0: %g", dt)
	}

	return int(math.Round(math.Abs(dt) * t.hdr.SampleRate())), ts, nil
}

// timeEpsilon is the slack used when comparing times against sample positions.
func (t *Trace) timeEpsilon() float64 {
	if t.hdr.Delta > 0 {
		return t.hdr.Delta * 1e-3
	}

	return 1e-9
}
