package header

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Undefined marks a float field that has not been set.
const Undefined = -12345.0

// UndefinedString marks a string field that has not been set.
const UndefinedString = "-12345"

var (
	// ErrUnknownField indicates a field name that is not part of the header.
	ErrUnknownField = errors.New("header: unknown field")
	// ErrReadOnly indicates a field that is derived from the data and cannot be set by name.
	ErrReadOnly = errors.New("header: field is read-only")
)

// FileType describes the representation of the data a header belongs to.
type FileType int

const (
	// TimeSeries is evenly or unevenly sampled amplitude data.
	TimeSeries FileType = iota
	// RealImag is spectral data presented as real/imaginary pairs.
	RealImag
	// AmpPhase is spectral data presented as amplitude/phase pairs.
	AmpPhase
	// GeneralXY is an arbitrary x-y data set.
	GeneralXY
)

func (t FileType) String() string {
	switch t {
	case TimeSeries:
		return "ITIME"
	case RealImag:
		return "IRLIM"
	case AmpPhase:
		return "IAMPH"
	case GeneralXY:
		return "IXY"
	default:
		return "FileType(" + strconv.Itoa(int(t)) + ")"
	}
}

// Header is the logical metadata of one trace.
type Header struct {
	Delta float64 // sample interval in seconds
	B     float64 // begin time relative to RefTime
	E     float64 // end time relative to RefTime
	O     float64 // event origin time
	A     float64 // first arrival pick
	F     float64 // fini (end of event) pick

	T    [10]float64
	KT   [10]string
	User [10]float64

	Stla, Stlo, Stel float64
	Evla, Evlo, Evdp float64
	Dist, Az, Baz    float64
	Gcarc            float64

	Cmpaz  float64 // component azimuth, degrees clockwise from north
	Cmpinc float64 // component inclination, degrees from vertical

	DepMin, DepMax, DepMen float64

	NPTS   int
	Leven  bool
	IfType FileType

	Knetwk string
	Kstnm  string
	Kcmpnm string
	Khole  string

	// RefTime is the absolute epoch all relative time markers refer to.
	RefTime time.Time
}

// New returns a header with every optional field undefined and LEVEN set.
func New() *Header {
	h := &Header{
		Delta: Undefined, B: Undefined, E: Undefined,
		O: Undefined, A: Undefined, F: Undefined,
		Stla: Undefined, Stlo: Undefined, Stel: Undefined,
		Evla: Undefined, Evlo: Undefined, Evdp: Undefined,
		Dist: Undefined, Az: Undefined, Baz: Undefined, Gcarc: Undefined,
		Cmpaz: Undefined, Cmpinc: Undefined,
		DepMin: Undefined, DepMax: Undefined, DepMen: Undefined,
		Leven:  true,
		IfType: TimeSeries,
		Knetwk: UndefinedString, Kstnm: UndefinedString,
		Kcmpnm: UndefinedString, Khole: UndefinedString,
	}

	for i := range h.T {
		h.T[i] = Undefined
		h.KT[i] = UndefinedString
		h.User[i] = Undefined
	}

	return h
}

// NewEven returns a header for an evenly sampled trace of npts samples
// starting at b with sample interval delta.
func NewEven(npts int, b, delta float64) *Header {
	h := New()
	h.Delta = delta
	h.B = b
	h.NPTS = npts
	h.E = b + float64(npts-1)*delta

	return h
}

// Clone returns a deep copy of h.
func (h *Header) Clone() *Header {
	c := *h

	return &c
}

// IsDefined reports whether v holds a value other than Undefined.
func IsDefined(v float64) bool {
	return v != Undefined && !math.IsNaN(v)
}

// IsDefinedString reports whether s holds a value other than UndefinedString.
func IsDefinedString(s string) bool {
	s = strings.TrimSpace(s)

	return s != "" && s != UndefinedString
}

// SampleRate returns 1/Delta, or 0 if Delta is undefined or not positive.
func (h *Header) SampleRate() float64 {
	if !IsDefined(h.Delta) || h.Delta <= 0 {
		return 0
	}

	return 1 / h.Delta
}

// Channel identifies the recording channel of a trace.
type Channel struct {
	Network   string
	Station   string
	Location  string
	Component string
}

// Channel returns the logical channel identity of h.
func (h *Header) Channel() Channel {
	return Channel{
		Network:   clean(h.Knetwk),
		Station:   clean(h.Kstnm),
		Location:  clean(h.Khole),
		Component: clean(h.Kcmpnm),
	}
}

func (c Channel) String() string {
	return c.Network + "." + c.Station + "." + c.Location + "." + c.Component
}

func clean(s string) string {
	if !IsDefinedString(s) {
		return ""
	}

	return strings.TrimSpace(s)
}

// Float returns the value of the named float field. The boolean is false
// if name is not a float field of the header. Undefined values are
// returned as Undefined with ok=true; use IsDefined to test them.
func (h *Header) Float(name string) (float64, bool) {
	p := h.floatField(name)
	if p != nil {
		return *p, true
	}

	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NPTS":
		return float64(h.NPTS), true
	}

	return Undefined, false
}

// SetFloat assigns the named float field.
func (h *Header) SetFloat(name string, v float64) error {
	p := h.floatField(name)
	if p == nil {
		if strings.EqualFold(strings.TrimSpace(name), "NPTS") {
			return fmt.Errorf("%w: %s", ErrReadOnly, name)
		}

		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	*p = v

	return nil
}

// String returns the value of the named string field.
func (h *Header) String(name string) (string, bool) {
	p := h.stringField(name)
	if p == nil {
		return "", false
	}

	return *p, true
}

// SetString assigns the named string field.
func (h *Header) SetString(name, v string) error {
	p := h.stringField(name)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	*p = v

	return nil
}

// Has reports whether name is a field of the header.
func (h *Header) Has(name string) bool {
	if h.floatField(name) != nil || h.stringField(name) != nil {
		return true
	}

	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NPTS", "LEVEN", "IFTYPE":
		return true
	}

	return false
}

func (h *Header) floatField(name string) *float64 {
	n := strings.ToUpper(strings.TrimSpace(name))
	switch n {
	case "DELTA":
		return &h.Delta
	case "B":
		return &h.B
	case "E":
		return &h.E
	case "O":
		return &h.O
	case "A":
		return &h.A
	case "F":
		return &h.F
	case "STLA":
		return &h.Stla
	case "STLO":
		return &h.Stlo
	case "STEL":
		return &h.Stel
	case "EVLA":
		return &h.Evla
	case "EVLO":
		return &h.Evlo
	case "EVDP":
		return &h.Evdp
	case "DIST":
		return &h.Dist
	case "AZ":
		return &h.Az
	case "BAZ":
		return &h.Baz
	case "GCARC":
		return &h.Gcarc
	case "CMPAZ":
		return &h.Cmpaz
	case "CMPINC":
		return &h.Cmpinc
	case "DEPMIN":
		return &h.DepMin
	case "DEPMAX":
		return &h.DepMax
	case "DEPMEN":
		return &h.DepMen
	}

	if i, ok := indexed(n, "T"); ok {
		return &h.T[i]
	}

	if i, ok := indexed(n, "USER"); ok {
		return &h.User[i]
	}

	return nil
}

func (h *Header) stringField(name string) *string {
	n := strings.ToUpper(strings.TrimSpace(name))
	switch n {
	case "KNETWK":
		return &h.Knetwk
	case "KSTNM":
		return &h.Kstnm
	case "KCMPNM":
		return &h.Kcmpnm
	case "KHOLE":
		return &h.Khole
	}

	if i, ok := indexed(n, "KT"); ok {
		return &h.KT[i]
	}

	return nil
}

// indexed parses names like T3 or USER9 into their 0..9 index.
func indexed(name, prefix string) (int, bool) {
	if len(name) != len(prefix)+1 || !strings.HasPrefix(name, prefix) {
		return 0, false
	}

	d := name[len(prefix)]
	if d < '0' || d > '9' {
		return 0, false
	}

	return int(d - '0'), true
}

// EvenlySampledCount returns the sample count implied by B, E and Delta,
// (E-B+Delta)/Delta, as a real number.
func (h *Header) EvenlySampledCount() float64 {
	return (h.E - h.B + h.Delta) / h.Delta
}

// Shift moves every defined relative time marker by dt seconds. It is used
// when the reference time changes so absolute pick times stay fixed.
func (h *Header) Shift(dt float64) {
	for _, p := range []*float64{&h.B, &h.E, &h.O, &h.A, &h.F} {
		if IsDefined(*p) {
			*p += dt
		}
	}

	for i := range h.T {
		if IsDefined(h.T[i]) {
			h.T[i] += dt
		}
	}
}
