package timewindow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-seis/seis/fault"
	"github.com/cwbudde/algo-seis/seis/header"
)

// RefTime is the reference name that resolves to absolute zero.
const RefTime = "REFTIME"

var (
	// ErrUnresolved indicates a reference that is unknown or unset in the header.
	ErrUnresolved = errors.New("timewindow: reference cannot be resolved")
	// ErrInvalid indicates a window that failed validation.
	ErrInvalid = errors.New("timewindow: invalid window")
	// ErrDisabled indicates a window that has been switched off.
	ErrDisabled = errors.New("timewindow: window is disabled")
)

// Lookup is the header view a window resolves against.
type Lookup interface {
	Float(name string) (float64, bool)
}

// Edge is one end of a window. Its time is the reference value plus
// Offset seconds plus Samples sample intervals.
type Edge struct {
	Ref     string
	Offset  float64
	Samples int
}

// At returns an edge offset seconds from ref.
func At(ref string, offset float64) Edge {
	return Edge{Ref: normalizeRef(ref), Offset: offset}
}

// AtSample returns an edge n samples from ref.
func AtSample(ref string, n int) Edge {
	return Edge{Ref: normalizeRef(ref), Samples: n}
}

func (e Edge) String() string {
	if e.Samples != 0 {
		return fmt.Sprintf("%s %+g %+d samples", e.Ref, e.Offset, e.Samples)
	}

	return fmt.Sprintf("%s %+g", e.Ref, e.Offset)
}

// Window is a partial data window.
type Window struct {
	Start Edge
	End   Edge

	enabled bool
	valid   bool
	reason  error
}

// New returns an enabled, not yet validated window.
func New(start, end Edge) *Window {
	start.Ref = normalizeRef(start.Ref)
	end.Ref = normalizeRef(end.Ref)

	return &Window{Start: start, End: end, enabled: true}
}

// Validate checks that both references are known marker names and that a
// window with identical references has a positive width. An invalid
// window is disabled. The returned error describes why validation failed.
func (w *Window) Validate() error {
	w.valid = false
	w.reason = nil

	for _, e := range []Edge{w.Start, w.End} {
		if !knownRef(e.Ref) {
			w.invalidate(fmt.Errorf("%w: unknown reference %q", ErrInvalid, e.Ref))

			return w.reason
		}
	}

	if w.Start.Ref == w.End.Ref && w.End.Offset <= w.Start.Offset && w.End.Samples <= w.Start.Samples {
		w.invalidate(fmt.Errorf("%w: end offset %s must exceed start offset %s",
			ErrInvalid, w.End, w.Start))

		return w.reason
	}

	w.valid = true

	return nil
}

func (w *Window) invalidate(err error) {
	w.valid = false
	w.enabled = false
	w.reason = err
}

// IsValid reports whether the last Validate succeeded.
func (w *Window) IsValid() bool { return w != nil && w.valid }

// IsEnabled reports whether the window is switched on and valid.
func (w *Window) IsEnabled() bool { return w != nil && w.enabled && w.valid }

// Enable switches the window on. It stays unusable until it validates.
func (w *Window) Enable() { w.enabled = true }

// Disable switches the window off.
func (w *Window) Disable() { w.enabled = false }

// Err returns the reason of the last failed validation, or nil.
func (w *Window) Err() error { return w.reason }

// Resolve converts the window into absolute start and end times for the
// header h. It never substitutes defaults: a reference that is unset in h
// yields a configuration error wrapping ErrUnresolved.
func (w *Window) Resolve(h Lookup) (start, end float64, err error) {
	switch {
	case w == nil:
		return 0, 0, fault.New(fault.Configuration, "timewindow", ErrInvalid)
	case !w.valid:
		if w.reason != nil {
			return 0, 0, fault.New(fault.Configuration, "timewindow", w.reason)
		}

		return 0, 0, fault.Newf(fault.Configuration, "timewindow", "%w: not validated", ErrInvalid)
	case !w.enabled:
		return 0, 0, fault.New(fault.Configuration, "timewindow", ErrDisabled)
	}

	start, err = resolveEdge(w.Start, h)
	if err != nil {
		return 0, 0, err
	}

	end, err = resolveEdge(w.End, h)
	if err != nil {
		return 0, 0, err
	}

	if end <= start {
		return 0, 0, fault.Newf(fault.Configuration, "timewindow",
			"%w: resolved end %g is not after start %g", ErrInvalid, end, start)
	}

	return start, end, nil
}

func resolveEdge(e Edge, h Lookup) (float64, error) {
	var base float64
	if e.Ref != RefTime {
		v, ok := h.Float(e.Ref)
		if !ok || !header.IsDefined(v) {
			return 0, fault.Newf(fault.Configuration, "timewindow", "%w: %s is not set", ErrUnresolved, e.Ref)
		}

		base = v
	}

	if e.Samples == 0 {
		return base + e.Offset, nil
	}

	delta, ok := h.Float("DELTA")
	if !ok || !header.IsDefined(delta) || delta <= 0 {
		return 0, fault.Newf(fault.Configuration, "timewindow", "%w: sample offset needs DELTA", ErrUnresolved)
	}

	return base + e.Offset + float64(e.Samples)*delta, nil
}

func (w *Window) String() string {
	return w.Start.String() + " .. " + w.End.String()
}

// Parse reads a textual window of the form "REF [offset] REF [offset]".
// The second reference may be N followed by a sample count, which makes
// the end edge a sample offset from the start reference:
//
//	B 0 E 0
//	A -5 A 30
//	T0 -1 N 400
//	B E
func Parse(s string) (*Window, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fault.Newf(fault.Configuration, "timewindow", "%w: empty window", ErrInvalid)
	}

	start, rest, err := parseEdge(fields)
	if err != nil {
		return nil, err
	}

	if len(rest) == 0 {
		return nil, fault.Newf(fault.Configuration, "timewindow", "%w: missing end edge in %q", ErrInvalid, s)
	}

	var end Edge
	if strings.EqualFold(rest[0], "N") {
		if len(rest) != 2 {
			return nil, fault.Newf(fault.Configuration, "timewindow", "%w: N needs a sample count in %q", ErrInvalid, s)
		}

		n, err := strconv.Atoi(rest[1])
		if err != nil || n <= 0 {
			return nil, fault.Newf(fault.Configuration, "timewindow", "%w: bad sample count %q", ErrInvalid, rest[1])
		}

		end = Edge{Ref: start.Ref, Offset: start.Offset, Samples: start.Samples + n - 1}
		rest = nil
	} else {
		end, rest, err = parseEdge(rest)
		if err != nil {
			return nil, err
		}
	}

	if len(rest) != 0 {
		return nil, fault.Newf(fault.Configuration, "timewindow", "%w: trailing tokens %v", ErrInvalid, rest)
	}

	w := New(start, end)
	if err := w.Validate(); err != nil {
		return w, fault.New(fault.Configuration, "timewindow", err)
	}

	return w, nil
}

func parseEdge(fields []string) (Edge, []string, error) {
	ref := normalizeRef(fields[0])
	if !knownRef(ref) {
		return Edge{}, nil, fault.Newf(fault.Configuration, "timewindow", "%w: unknown reference %q", ErrInvalid, fields[0])
	}

	if len(fields) > 1 {
		if v, err := strconv.ParseFloat(fields[1], 64); err == nil {
			return At(ref, v), fields[2:], nil
		}
	}

	return At(ref, 0), fields[1:], nil
}

func normalizeRef(ref string) string {
	r := strings.ToUpper(strings.TrimSpace(ref))
	if r == "Z" {
		return RefTime
	}

	return r
}

func knownRef(ref string) bool {
	switch ref {
	case RefTime, "B", "E", "O", "A", "F":
		return true
	}

	return len(ref) == 2 && ref[0] == 'T' && ref[1] >= '0' && ref[1] <= '9'
}
