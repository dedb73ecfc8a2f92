package merge

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-seis/internal/testutil"
	"github.com/cwbudde/algo-seis/seis/fault"
	"github.com/cwbudde/algo-seis/seis/header"
	"github.com/cwbudde/algo-seis/seis/trace"
)

const delta = 0.01

// segmentOf returns a BHZ trace holding values first..first+n-1 and
// starting at b.
func segmentOf(t *testing.T, first, n int, b float64) *trace.Trace {
	t.Helper()
	h := header.New()
	h.Delta = delta
	h.B = b
	h.Knetwk, h.Kstnm, h.Kcmpnm = "NZ", "WEL", "BHZ"
	y := make([]float32, n)
	for i := range y {
		y[i] = float32(first + i)
	}

	tr, err := trace.New(h, y)
	if err != nil {
		t.Fatalf("trace.New: %v", err)
	}

	return tr
}

func samples(t *testing.T, tr *trace.Trace) []float32 {
	t.Helper()
	y, ok := tr.Samples()
	if !ok {
		t.Fatal("merged trace has no samples")
	}

	return y
}

func TestMergeContiguous(t *testing.T) {
	a := segmentOf(t, 0, 100, 0)
	b := segmentOf(t, 100, 100, 1.0)

	out, err := Default().Merge(a, b)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	h := out.Header()
	if h.NPTS != 200 || h.B != 0 || math.Abs(h.E-1.99) > 1e-9 {
		t.Fatalf("NPTS=%d B=%v E=%v want=(200,0,1.99)", h.NPTS, h.B, h.E)
	}

	testutil.RequireSamplesNearlyEqual(t, samples(t, out), testutil.Ramp(200), 0)

	if a.Len() != 100 || b.Len() != 100 {
		t.Fatal("inputs modified")
	}
}

func TestMergeOrderIndependent(t *testing.T) {
	a := segmentOf(t, 0, 50, 0)
	b := segmentOf(t, 50, 50, 0.5)

	out, err := Default().Merge(b, a)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	testutil.RequireSamplesNearlyEqual(t, samples(t, out), testutil.Ramp(100), 0)
}

func TestMergeGapZero(t *testing.T) {
	a := segmentOf(t, 1, 100, 0)
	// a ends at 0.99; b starts 0.05 s later.
	b := segmentOf(t, 1, 100, 1.04)

	out, err := Default().Merge(a, b)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	zeros := int(math.Round(0.05/delta)) - 1
	y := samples(t, out)
	if len(y) != 200+zeros {
		t.Fatalf("len=%d want=%d", len(y), 200+zeros)
	}

	for i := 100; i < 100+zeros; i++ {
		if y[i] != 0 {
			t.Fatalf("gap y[%d]=%v want=0", i, y[i])
		}
	}

	if y[99] != 100 || y[100+zeros] != 1 {
		t.Fatalf("edges=(%v,%v) want=(100,1)", y[99], y[100+zeros])
	}

	if math.Abs(out.Header().E-(1.04+0.99)) > 1e-9 {
		t.Fatalf("E=%v want=%v", out.Header().E, 1.04+0.99)
	}
}

func TestMergeGapInterpNotImplemented(t *testing.T) {
	a := segmentOf(t, 0, 100, 0)
	b := segmentOf(t, 0, 100, 2)

	m, err := New(DefaultConfig(), WithGapStrategy(GapInterp))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := m.Merge(a, b); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("err=%v want ErrNotImplemented", err)
	}
}

func TestMergeOverlap(t *testing.T) {
	tests := []struct {
		name string
		b2   float64
	}{
		{"aligned", 0.80},
		{"begin time two samples late", 0.82},
		{"begin time three samples early", 0.77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := segmentOf(t, 0, 100, 0)
			b := segmentOf(t, 80, 100, tt.b2)

			out, err := Default().Merge(a, b)
			if err != nil {
				t.Fatalf("Merge: %v", err)
			}

			testutil.RequireSamplesNearlyEqual(t, samples(t, out), testutil.Ramp(180), 0)
			if out.Header().B != 0 {
				t.Fatalf("B=%v want=0", out.Header().B)
			}
		})
	}
}

func TestMergeOverlapMismatch(t *testing.T) {
	a := segmentOf(t, 0, 100, 0)
	b := segmentOf(t, 180, 100, 0.80)

	_, err := Default().Merge(a, b)
	if !errors.Is(err, ErrOffsetMismatch) || !fault.Is(err, fault.Consistency) {
		t.Fatalf("err=%v want consistency ErrOffsetMismatch", err)
	}
}

func TestMergeSubset(t *testing.T) {
	a := segmentOf(t, 0, 100, 0)
	b := segmentOf(t, 20, 10, 0.2)

	out, err := Default().Merge(b, a)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	if out == a {
		t.Fatal("subset merge returned the input itself")
	}

	testutil.RequireSamplesNearlyEqual(t, samples(t, out), testutil.Ramp(100), 0)
}

func TestMergeIncompatibleChannels(t *testing.T) {
	a := segmentOf(t, 0, 100, 0)
	b := segmentOf(t, 100, 100, 1)
	b.Header().Kcmpnm = "BHN"

	_, err := Default().Merge(a, b)
	if !errors.Is(err, ErrIncompatibleChannels) || !fault.Skippable(err) {
		t.Fatalf("err=%v want skippable ErrIncompatibleChannels", err)
	}
}

func TestMergeInconsistentSampleCount(t *testing.T) {
	a := segmentOf(t, 0, 100, 0)
	b := segmentOf(t, 100, 100, 1)
	a.Header().E += 0.5

	_, err := Default().Merge(a, b)
	if !errors.Is(err, ErrInconsistentSampleCount) || !fault.Is(err, fault.Consistency) {
		t.Fatalf("err=%v want consistency ErrInconsistentSampleCount", err)
	}
}

func TestMergeRejectsUneven(t *testing.T) {
	a := segmentOf(t, 0, 10, 0)
	u, err := trace.NewUneven(a.Header().Clone(), []float32{0, 1, 3}, []float32{1, 2, 3})
	if err != nil {
		t.Fatalf("NewUneven: %v", err)
	}

	if _, err := Default().Merge(a, u); !errors.Is(err, trace.ErrUnevenlySpaced) {
		t.Fatalf("err=%v want ErrUnevenlySpaced", err)
	}
}

func TestMergeAll(t *testing.T) {
	parts := []*trace.Trace{
		segmentOf(t, 200, 100, 2.0),
		segmentOf(t, 0, 100, 0),
		segmentOf(t, 100, 100, 1.0),
	}

	out, err := Default().MergeAll(parts)
	if err != nil {
		t.Fatalf("MergeAll: %v", err)
	}

	testutil.RequireSamplesNearlyEqual(t, samples(t, out), testutil.Ramp(300), 0)

	if _, err := Default().MergeAll(nil); !errors.Is(err, ErrNoTraces) {
		t.Fatalf("err=%v want ErrNoTraces", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShiftWindow = -1
	if _, err := New(cfg); !fault.Is(err, fault.Configuration) {
		t.Fatalf("err=%v want configuration error", err)
	}

	if g, err := ParseGapStrategy("interp"); err != nil || g != GapInterp {
		t.Fatalf("ParseGapStrategy=(%v,%v)", g, err)
	}
}
