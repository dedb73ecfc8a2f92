package collection

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-seis/internal/testutil"
	"github.com/cwbudde/algo-seis/seis/fault"
	"github.com/cwbudde/algo-seis/seis/header"
	"github.com/cwbudde/algo-seis/seis/merge"
	"github.com/cwbudde/algo-seis/seis/rotate"
	"github.com/cwbudde/algo-seis/seis/spectral"
	"github.com/cwbudde/algo-seis/seis/timewindow"
	"github.com/cwbudde/algo-seis/seis/trace"
)

func newTrace(t *testing.T, name, cmp string, first, n int, b float64) *trace.Trace {
	t.Helper()
	h := header.New()
	h.Delta = 0.01
	h.B = b
	h.Knetwk, h.Kstnm, h.Kcmpnm = "NZ", "WEL", cmp
	y := make([]float32, n)
	for i := range y {
		y[i] = float32(first + i)
	}

	tr, err := trace.New(h, y, trace.WithName(name))
	if err != nil {
		t.Fatalf("trace.New: %v", err)
	}

	return tr
}

func quietLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func TestAddGetRemoveReplace(t *testing.T) {
	c := New()
	a := newTrace(t, "a", "BHZ", 0, 10, 0)
	b := newTrace(t, "b", "BHZ", 0, 10, 0)

	ida := c.Add(a)
	idb := c.Add(b)
	if ida == idb || c.Len() != 2 {
		t.Fatalf("ids=(%v,%v) len=%d", ida, idb, c.Len())
	}

	if got, ok := c.Get(idb); !ok || got != b {
		t.Fatal("Get returned wrong trace")
	}

	if got, err := c.At(0); err != nil || got != a {
		t.Fatalf("At(0)=(%v,%v)", got, err)
	}

	if _, err := c.At(2); !fault.Is(err, fault.Configuration) {
		t.Fatalf("At(2) err=%v", err)
	}

	r := newTrace(t, "r", "BHZ", 0, 10, 0)
	if err := c.Replace(ida, r); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if got := c.Traces(); got[0] != r || got[1] != b {
		t.Fatal("Replace changed order")
	}

	if err := c.Replace(uuid.New(), r); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Replace unknown err=%v", err)
	}

	if !c.Remove(ida) || c.Remove(ida) {
		t.Fatal("Remove did not report existence correctly")
	}

	if c.Len() != 1 || c.Entries()[0].ID != idb {
		t.Fatal("wrong entry left after Remove")
	}
}

func TestApplyVisitsEveryTraceOnce(t *testing.T) {
	c := New(WithWorkers(4))
	for i := range 32 {
		c.Add(newTrace(t, "t", "BHZ", i, 8, 0))
	}

	var calls atomic.Int64
	err := c.Apply(context.Background(), "add", func(tr *trace.Trace) error {
		calls.Add(1)

		return tr.Add(1)
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if calls.Load() != 32 {
		t.Fatalf("calls=%d want=32", calls.Load())
	}

	for i, tr := range c.Traces() {
		y, _ := tr.Samples()
		if y[0] != float32(i+1) {
			t.Fatalf("trace %d y[0]=%v want=%d", i, y[0], i+1)
		}
	}
}

func TestApplyPartialFailure(t *testing.T) {
	var buf bytes.Buffer
	c := New(WithWorkers(2), WithLogger(quietLogger(&buf)))
	c.Add(newTrace(t, "a", "BHZ", 0, 1001, 0))
	bad := newTrace(t, "bad", "BHZ", 0, 1001, 0)
	badID := c.Add(bad)
	c.Add(newTrace(t, "c", "BHZ", 0, 1001, 0))

	for i, tr := range c.Traces() {
		if i != 1 {
			tr.Header().T[1] = 2
		}
	}

	w, err := timewindow.Parse("T1 0 T1 3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	err = c.Cut(context.Background(), w, trace.Fatal)
	if !errors.Is(err, timewindow.ErrUnresolved) {
		t.Fatalf("err=%v want ErrUnresolved", err)
	}

	var te *TraceError
	if !errors.As(err, &te) || te.ID != badID || te.Op != "cut" {
		t.Fatalf("TraceError=%+v", te)
	}

	for i, tr := range c.Traces() {
		want := 301
		if i == 1 {
			want = 1001
		}

		if tr.Len() != want {
			t.Fatalf("trace %d len=%d want=%d", i, tr.Len(), want)
		}
	}

	if !strings.Contains(buf.String(), "skipping trace") || !strings.Contains(buf.String(), "trace=bad") {
		t.Fatalf("log=%q", buf.String())
	}
}

func TestApplyCanceled(t *testing.T) {
	c := New()
	c.Add(newTrace(t, "a", "BHZ", 0, 8, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int64
	err := c.Apply(ctx, "noop", func(*trace.Trace) error {
		calls.Add(1)

		return nil
	})
	if !errors.Is(err, context.Canceled) || calls.Load() != 0 {
		t.Fatalf("err=%v calls=%d", err, calls.Load())
	}
}

func TestFFTRoundTrip(t *testing.T) {
	c := New()
	for i := range 3 {
		c.Add(newTrace(t, "t", "BHZ", i, 100, 0))
	}

	if err := c.Taper(context.Background(), 0, 0); err != nil {
		t.Fatalf("Taper: %v", err)
	}

	if err := c.FFT(context.Background(), spectral.RealImag); err != nil {
		t.Fatalf("FFT: %v", err)
	}

	if err := c.IFFT(context.Background()); err != nil {
		t.Fatalf("IFFT: %v", err)
	}

	for i, tr := range c.Traces() {
		y, ok := tr.Samples()
		if !ok || len(y) != 100 {
			t.Fatalf("trace %d not restored", i)
		}

		want := make([]float32, 100)
		for j := range want {
			want[j] = float32(i + j)
		}

		testutil.RequireSamplesNearlyEqual(t, y, want, 1e-3)
	}
}

func TestMergeChannels(t *testing.T) {
	c := New(WithLogger(quietLogger(new(bytes.Buffer))))
	c.Add(newTrace(t, "z2", "BHZ", 100, 100, 1.0))
	nID := c.Add(newTrace(t, "n", "BHN", 0, 100, 0))
	z1ID := c.Add(newTrace(t, "z1", "BHZ", 0, 100, 0))
	c.Add(newTrace(t, "z3", "BHZ", 200, 100, 2.0))

	n, err := c.MergeChannels(merge.GapZero)
	if err != nil || n != 1 {
		t.Fatalf("MergeChannels=(%d,%v) want=(1,nil)", n, err)
	}

	entries := c.Entries()
	if len(entries) != 2 || entries[0].ID != nID || entries[1].ID != z1ID {
		t.Fatalf("entries=%+v", entries)
	}

	y, _ := entries[1].Trace.Samples()
	testutil.RequireSamplesNearlyEqual(t, y, testutil.Ramp(300), 0)
}

func TestMergeChannelsFailureKeepsSegments(t *testing.T) {
	c := New(WithLogger(quietLogger(new(bytes.Buffer))))
	c.Add(newTrace(t, "a", "BHZ", 0, 100, 0))
	c.Add(newTrace(t, "b", "BHZ", 500, 100, 0.5))

	n, err := c.MergeChannels(merge.GapZero)
	if n != 0 || !errors.Is(err, merge.ErrOffsetMismatch) {
		t.Fatalf("MergeChannels=(%d,%v) want ErrOffsetMismatch", n, err)
	}

	if c.Len() != 2 {
		t.Fatalf("len=%d want=2", c.Len())
	}
}

func TestRotate(t *testing.T) {
	c := New()
	n := newTrace(t, "n", "BHN", 0, 64, 0)
	e := newTrace(t, "e", "BHE", 5, 64, 0)
	n.Header().Cmpaz, n.Header().Cmpinc = 0, 90
	e.Header().Cmpaz, e.Header().Cmpinc = 90, 90
	c.Add(n)
	c.Add(e)

	count, err := c.Rotate(rotate.Normal, rotate.Through, 30)
	if err != nil || count != 1 {
		t.Fatalf("Rotate=(%d,%v) want=(1,nil)", count, err)
	}

	if n.Header().Cmpaz != 30 {
		t.Fatalf("cmpaz=%v want=30", n.Header().Cmpaz)
	}
}

func TestCopyHeaderValue(t *testing.T) {
	c := New()
	for range 3 {
		c.Add(newTrace(t, "t", "BHZ", 0, 4, 0))
	}

	src, _ := c.At(1)
	src.Header().Evla = -41.3
	src.Header().Kstnm = "SNZO"

	if err := c.CopyHeaderValue("evla", 1); err != nil {
		t.Fatalf("CopyHeaderValue: %v", err)
	}

	if err := c.CopyHeaderValue("KSTNM", 1); err != nil {
		t.Fatalf("CopyHeaderValue: %v", err)
	}

	for i, tr := range c.Traces() {
		if tr.Header().Evla != -41.3 || tr.Header().Kstnm != "SNZO" {
			t.Fatalf("trace %d evla=%v kstnm=%q", i, tr.Header().Evla, tr.Header().Kstnm)
		}
	}

	if err := c.CopyHeaderValue("DELTA", 0); !errors.Is(err, header.ErrReadOnly) {
		t.Fatalf("DELTA err=%v want ErrReadOnly", err)
	}

	if err := c.CopyHeaderValue("NOPE", 0); !errors.Is(err, header.ErrUnknownField) {
		t.Fatalf("unknown err=%v want ErrUnknownField", err)
	}

	if err := c.CopyHeaderValue("EVLA", 7); !fault.Is(err, fault.Configuration) {
		t.Fatalf("index err=%v", err)
	}
}
