package merge

import (
	"cmp"
	"errors"
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-seis/seis/fault"
	"github.com/cwbudde/algo-seis/seis/trace"
)

var (
	// ErrIncompatibleChannels indicates segments from different channels.
	ErrIncompatibleChannels = errors.New("merge: incompatible channels")
	// ErrInconsistentSampleCount indicates NPTS disagreeing with B, E and DELTA.
	ErrInconsistentSampleCount = errors.New("merge: inconsistent sample count")
	// ErrOffsetMismatch indicates overlapping segments whose samples disagree.
	ErrOffsetMismatch = errors.New("merge: traces do not match at predicted offset")
	// ErrNotImplemented indicates an unsupported gap strategy.
	ErrNotImplemented = errors.New("merge: gap strategy not implemented")
	// ErrNoTraces indicates an empty input list.
	ErrNoTraces = errors.New("merge: no traces")
)

// deltaTolerance is the relative sample-interval difference accepted
// between segments.
const deltaTolerance = 1e-3

// Merger splices trace segments.
type Merger struct {
	cfg    Config
	logger *slog.Logger
}

// New returns a Merger for cfg.
func New(cfg Config, opts ...Option) (*Merger, error) {
	m := &Merger{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Default returns a Merger using DefaultConfig.
func Default() *Merger {
	m, _ := New(DefaultConfig())

	return m
}

// Config returns the merger configuration.
func (m *Merger) Config() Config { return m.cfg }

// segment is the read-only view of one input.
type segment struct {
	tr    *trace.Trace
	y     []float32
	b, e  float64
	delta float64
}

// Merge splices a and b into a new trace. Neither input is modified.
func (m *Merger) Merge(a, b *trace.Trace) (*trace.Trace, error) {
	s1, err := m.segment(a)
	if err != nil {
		return nil, err
	}

	s2, err := m.segment(b)
	if err != nil {
		return nil, err
	}

	c1, c2 := a.Header().Channel(), b.Header().Channel()
	if c1 != c2 {
		return nil, fault.Newf(fault.Configuration, "merge", "%w: %s vs %s", ErrIncompatibleChannels, c1, c2)
	}

	if math.Abs(s1.delta-s2.delta) > deltaTolerance*math.Max(s1.delta, s2.delta) {
		return nil, fault.Newf(fault.Consistency, "merge", "%w: %g vs %g", trace.ErrDeltaMismatch, s1.delta, s2.delta)
	}

	if s2.b < s1.b {
		s1, s2 = s2, s1
	}

	if err := m.checkCount(s1); err != nil {
		return nil, err
	}

	if err := m.checkCount(s2); err != nil {
		return nil, err
	}

	delta := (s1.delta + s2.delta) / 2
	eps := delta * 1e-3
	log := m.logger.With("channel", c1.String())

	var y []float32
	switch {
	case s2.b >= s1.b-eps && s2.e <= s1.e+eps:
		log.Debug("merge subset", "b1", s1.b, "e1", s1.e, "b2", s2.b, "e2", s2.e)

		return s1.tr.Clone(), nil

	case s2.b <= s1.e+eps:
		y, err = m.spliceOverlap(s1, s2, log)
		if err != nil {
			return nil, err
		}

	default:
		gap := s2.b - s1.e
		if gap <= 1.5*delta {
			log.Debug("merge sequential", "gap", gap)
			y = concat(s1.y, nil, s2.y)
			break
		}

		if m.cfg.Gap != GapZero {
			return nil, fault.Newf(fault.Configuration, "merge", "%w: %v", ErrNotImplemented, m.cfg.Gap)
		}

		n := int(math.Round(gap/delta)) - 1
		log.Debug("merge gap", "gap", gap, "zeros", n)
		y = concat(s1.y, make([]float32, n), s2.y)
	}

	h := s1.tr.Header().Clone()
	h.Delta = delta
	h.B = s1.b

	return trace.New(h, y, trace.WithName(s1.tr.Name()), trace.WithBackend(s1.tr.Backend()))
}

// MergeAll sorts traces by begin time and merges them pairwise from the
// earliest. The inputs are not modified.
func (m *Merger) MergeAll(traces []*trace.Trace) (*trace.Trace, error) {
	if len(traces) == 0 {
		return nil, fault.New(fault.Configuration, "merge", ErrNoTraces)
	}

	sorted := slices.Clone(traces)
	slices.SortStableFunc(sorted, func(a, b *trace.Trace) int {
		return cmp.Compare(a.Header().B, b.Header().B)
	})

	out := sorted[0].Clone()
	for _, next := range sorted[1:] {
		merged, err := m.Merge(out, next)
		if err != nil {
			return nil, err
		}

		out = merged
	}

	return out, nil
}

func (m *Merger) segment(t *trace.Trace) (segment, error) {
	y, ok := t.Samples()
	if !ok {
		return segment{}, fault.New(fault.Precondition, "merge", trace.ErrNotTimeDomain)
	}

	if !t.IsEven() {
		return segment{}, fault.New(fault.Precondition, "merge", trace.ErrUnevenlySpaced)
	}

	if len(y) == 0 {
		return segment{}, fault.New(fault.Precondition, "merge", trace.ErrEmpty)
	}

	h := t.Header()

	return segment{tr: t, y: y, b: h.B, e: h.E, delta: h.Delta}, nil
}

func (m *Merger) checkCount(s segment) error {
	h := s.tr.Header()
	if d := math.Abs(h.EvenlySampledCount() - float64(h.NPTS)); d >= m.cfg.Tolerance {
		return fault.Newf(fault.Consistency, "merge", "%w: %s npts=%d, span implies %.3f",
			ErrInconsistentSampleCount, h.Channel(), h.NPTS, h.EvenlySampledCount())
	}

	return nil
}

// spliceOverlap aligns s2 against the tail of s1 and appends the part of
// s2 that extends beyond s1.
func (m *Merger) spliceOverlap(s1, s2 segment, log *slog.Logger) ([]float32, error) {
	n1 := len(s1.y)
	k0 := int(math.Round((s2.b - s1.b) / s1.delta))

	bestK, bestShift := -1, 0
	best := math.Inf(1)
	for shift := -m.cfg.ShiftWindow; shift <= m.cfg.ShiftWindow; shift++ {
		k := k0 + shift
		if k < 0 || k >= n1 {
			continue
		}

		d := medianAbsDiff(s1.y[k:], s2.y)
		if d < best || (d == best && abs(shift) < abs(bestShift)) {
			best, bestK, bestShift = d, k, shift
		}
	}

	if bestK < 0 || best > m.cfg.MismatchThreshold {
		return nil, fault.Newf(fault.Consistency, "merge", "%w: offset %d, median difference %g",
			ErrOffsetMismatch, k0, best)
	}

	log.Debug("merge overlap", "offset", k0, "shift", bestShift, "median", best)
	tail := n1 - bestK
	if tail >= len(s2.y) {
		return concat(s1.y, nil, nil), nil
	}

	return concat(s1.y, nil, s2.y[tail:]), nil
}

// medianAbsDiff returns the median of |a[i]-b[i]| over the common length.
func medianAbsDiff(a, b []float32) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return math.Inf(1)
	}

	d := make([]float64, n)
	for i := range d {
		d[i] = math.Abs(float64(a[i]) - float64(b[i]))
	}

	slices.Sort(d)

	return stat.Quantile(0.5, stat.Empirical, d, nil)
}

func concat(parts ...[]float32) []float32 {
	var n int
	for _, p := range parts {
		n += len(p)
	}

	out := make([]float32, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}

	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
