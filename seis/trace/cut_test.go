package trace

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-seis/seis/fault"
	"github.com/cwbudde/algo-seis/seis/spectral"
	"github.com/cwbudde/algo-seis/seis/timewindow"
)

func mustWindow(t *testing.T, text string) *timewindow.Window {
	t.Helper()
	w, err := timewindow.Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}

	return w
}

func TestCutInsideSpan(t *testing.T) {
	tests := []struct {
		window     string
		start, end float64
	}{
		{"B 2 B 5", 2, 5},
		{"B 0 E 0", 0, 10},
		{"E -1 E 0", 9, 10},
		{"Z 3.33 Z 3.5", 3.33, 3.5},
		{"B 1 N 50", 1, 1.49},
	}

	for _, tt := range tests {
		t.Run(tt.window, func(t *testing.T) {
			tr := rampTrace(t, 1001, 0, 0.01)
			for _, policy := range []CutPolicy{Fatal, UseBE, FillZeros} {
				c := tr.Clone()
				ok, err := c.Cut(mustWindow(t, tt.window), policy)
				if err != nil || !ok {
					t.Fatalf("%v: Cut=(%v,%v)", policy, ok, err)
				}

				h := c.Header()
				wantN := int(math.Round((tt.end-tt.start)/0.01)) + 1
				if h.NPTS != wantN || c.Len() != wantN {
					t.Fatalf("%v: NPTS=%d len=%d want=%d", policy, h.NPTS, c.Len(), wantN)
				}

				if h.B != tt.start {
					t.Fatalf("%v: B=%v want=%v", policy, h.B, tt.start)
				}

				if math.Abs(h.E-tt.end) > 1e-9 {
					t.Fatalf("%v: E=%v want=%v", policy, h.E, tt.end)
				}

				y, _ := c.Samples()
				if want := float32(math.Round(tt.start / 0.01)); y[0] != want {
					t.Fatalf("%v: y[0]=%v want=%v", policy, y[0], want)
				}
			}
		})
	}
}

func TestCutFatalOutsideSpan(t *testing.T) {
	tr := rampTrace(t, 101, 0, 0.1)
	ok, err := tr.Cut(mustWindow(t, "B -1 E 0"), Fatal)
	if ok {
		t.Fatal("Fatal cut outside span reported success")
	}

	if !errors.Is(err, ErrWindowOutOfRange) || !fault.Is(err, fault.Consistency) {
		t.Fatalf("err=%v want consistency ErrWindowOutOfRange", err)
	}

	if tr.Len() != 101 || tr.Header().B != 0 {
		t.Fatal("Fatal cut modified the trace")
	}
}

func TestCutUseBELeavesTraceUnmodified(t *testing.T) {
	for _, text := range []string{"B -1 E 1", "B -1 B 5", "B 5 E 3", "E 5 E 6"} {
		tr := rampTrace(t, 101, 0, 0.1)
		want, _ := tr.Samples()
		want = append([]float32(nil), want...)

		ok, err := tr.Cut(mustWindow(t, text), UseBE)
		if err != nil || !ok {
			t.Fatalf("%q: Cut=(%v,%v) want=(true,<nil>)", text, ok, err)
		}

		h := tr.Header()
		if tr.Len() != 101 || h.NPTS != 101 || h.B != 0 || math.Abs(h.E-10) > 1e-9 {
			t.Fatalf("%q: len=%d npts=%d B=%v E=%v want=(101,101,0,10)", text, tr.Len(), h.NPTS, h.B, h.E)
		}

		y, _ := tr.Samples()
		for i := range want {
			if y[i] != want[i] {
				t.Fatalf("%q: y[%d]=%v want=%v", text, i, y[i], want[i])
			}
		}
	}
}

func TestCutFillZeros(t *testing.T) {
	tr := rampTrace(t, 101, 0, 0.1)
	ok, err := tr.Cut(mustWindow(t, "B -1 E 2"), FillZeros)
	if err != nil || !ok {
		t.Fatalf("Cut=(%v,%v)", ok, err)
	}

	const front, back = 10, 20
	if tr.Len() != 101+front+back {
		t.Fatalf("len=%d want=%d", tr.Len(), 101+front+back)
	}

	h := tr.Header()
	if math.Abs(h.B+1) > 1e-9 || math.Abs(h.E-12) > 1e-9 {
		t.Fatalf("B=%v E=%v want=(-1,12)", h.B, h.E)
	}

	y, _ := tr.Samples()
	for i := range front {
		if y[i] != 0 {
			t.Fatalf("front pad y[%d]=%v", i, y[i])
		}
	}

	for i := range back {
		if v := y[len(y)-1-i]; v != 0 {
			t.Fatalf("back pad y[%d]=%v", len(y)-1-i, v)
		}
	}

	for i := range 101 {
		if y[front+i] != float32(i) {
			t.Fatalf("data y[%d]=%v want=%d", front+i, y[front+i], i)
		}
	}
}

func TestCutFillZerosDisjointWindow(t *testing.T) {
	tr := rampTrace(t, 11, 0, 1)
	ok, err := tr.Cut(mustWindow(t, "Z 20 Z 25"), FillZeros)
	if err != nil || !ok {
		t.Fatalf("Cut=(%v,%v)", ok, err)
	}

	y, _ := tr.Samples()
	if len(y) != 6 || tr.Header().B != 20 {
		t.Fatalf("len=%d B=%v want=(6,20)", len(y), tr.Header().B)
	}

	for i, v := range y {
		if v != 0 {
			t.Fatalf("y[%d]=%v want=0", i, v)
		}
	}
}

func TestCutUnresolvedWindowSkips(t *testing.T) {
	tr := rampTrace(t, 101, 0, 0.1)
	ok, err := tr.Cut(mustWindow(t, "T3 0 T3 1"), Fatal)
	if ok {
		t.Fatal("unresolved window reported success")
	}

	if !errors.Is(err, timewindow.ErrUnresolved) || !fault.Skippable(err) {
		t.Fatalf("err=%v want skippable ErrUnresolved", err)
	}

	if tr.Len() != 101 {
		t.Fatal("unresolved cut modified the trace")
	}
}

func TestCutInvalidWindowSkips(t *testing.T) {
	tr := rampTrace(t, 101, 0, 0.1)
	w := timewindow.New(timewindow.At("B", 2), timewindow.At("B", 1))
	_ = w.Validate()
	ok, err := tr.Cut(w, FillZeros)
	if ok || !fault.Skippable(err) {
		t.Fatalf("Cut=(%v,%v) want skippable failure", ok, err)
	}
}

func TestCutSpectralTrace(t *testing.T) {
	tr := rampTrace(t, 64, 0, 0.1)
	if err := tr.FFT(spectral.RealImag); err != nil {
		t.Fatalf("FFT: %v", err)
	}

	ok, err := tr.Cut(mustWindow(t, "B 0 E 0"), Fatal)
	if ok || !errors.Is(err, ErrNotTimeDomain) {
		t.Fatalf("Cut=(%v,%v) want ErrNotTimeDomain", ok, err)
	}
}

func TestCutUneven(t *testing.T) {
	x := []float32{0, 0.5, 1.5, 2, 4, 7}
	tr, err := NewUneven(nil, x, []float32{0, 1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("NewUneven: %v", err)
	}

	ok, err := tr.Cut(mustWindow(t, "B 0.5 B 4"), Fatal)
	if err != nil || !ok {
		t.Fatalf("Cut=(%v,%v)", ok, err)
	}

	y, _ := tr.Samples()
	if len(y) != 4 || y[0] != 1 || y[3] != 4 {
		t.Fatalf("samples=%v want=[1 2 3 4]", y)
	}

	if h := tr.Header(); h.B != 0.5 || h.E != 4 {
		t.Fatalf("B=%v E=%v want=(0.5,4)", h.B, h.E)
	}

	ok, err = tr.Cut(mustWindow(t, "B -1 E 0"), FillZeros)
	if ok || !errors.Is(err, ErrUnevenlySpaced) {
		t.Fatalf("FillZeros on uneven: (%v,%v)", ok, err)
	}
}

func TestPadFrontBack(t *testing.T) {
	tr := rampTrace(t, 10, 5, 0.5)
	if err := tr.PadFront(1.0); err != nil {
		t.Fatalf("PadFront: %v", err)
	}

	if err := tr.PadBack(0.74); err != nil {
		t.Fatalf("PadBack: %v", err)
	}

	h := tr.Header()
	if h.NPTS != 13 || h.B != 4 || h.E != 10 {
		t.Fatalf("NPTS=%d B=%v E=%v want=(13,4,10)", h.NPTS, h.B, h.E)
	}

	if err := tr.PadFront(-1); !fault.Is(err, fault.Configuration) {
		t.Fatalf("negative pad err=%v", err)
	}
}

func TestParseCutPolicy(t *testing.T) {
	for in, want := range map[string]CutPolicy{"fatal": Fatal, "USEBE": UseBE, "fillz": FillZeros} {
		got, err := ParseCutPolicy(in)
		if err != nil || got != want {
			t.Fatalf("ParseCutPolicy(%q)=(%v,%v) want=%v", in, got, err, want)
		}
	}

	if _, err := ParseCutPolicy("grow"); err == nil {
		t.Fatal("unknown policy accepted")
	}
}
