package resample

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-seis/internal/testutil"
)

func TestDesignLowpassUnitGainSymmetric(t *testing.T) {
	taps, err := DesignLowpass(49, 0.1, 7.5)
	if err != nil {
		t.Fatalf("DesignLowpass: %v", err)
	}

	var sum float64
	for _, v := range taps {
		sum += v
	}

	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("DC gain=%v want=1", sum)
	}

	for i := range 24 {
		if math.Abs(taps[i]-taps[48-i]) > 1e-15 {
			t.Fatalf("asymmetric at %d", i)
		}
	}

	if taps[24] <= taps[23] {
		t.Fatalf("centre tap %v not the peak", taps[24])
	}
}

func TestDesignLowpassRejects(t *testing.T) {
	if _, err := DesignLowpass(0, 0.1, 5); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("err=%v want ErrInvalidLength", err)
	}

	for _, fc := range []float64{0, 0.5, -0.1, math.NaN()} {
		if _, err := DesignLowpass(31, fc, 5); !errors.Is(err, ErrInvalidCutoff) {
			t.Fatalf("cutoff %v: err=%v want ErrInvalidCutoff", fc, err)
		}
	}
}

func TestNewDecimatorRejectsFactor(t *testing.T) {
	if _, err := NewDecimator(1); !errors.Is(err, ErrInvalidFactor) {
		t.Fatalf("err=%v want ErrInvalidFactor", err)
	}
}

func TestDecimatorTapsOdd(t *testing.T) {
	d, err := NewDecimator(4, WithTapsPerFactor(10))
	if err != nil {
		t.Fatalf("NewDecimator: %v", err)
	}

	if n := len(d.Taps()); n != 41 {
		t.Fatalf("taps=%d want=41", n)
	}

	if d.Factor() != 4 {
		t.Fatalf("factor=%d want=4", d.Factor())
	}
}

func TestDecimatorPassAndStop(t *testing.T) {
	const (
		n      = 4096
		factor = 4
	)

	d, err := NewDecimator(factor)
	if err != nil {
		t.Fatalf("NewDecimator: %v", err)
	}

	edge := len(d.Taps())/factor + 1

	pass := d.Process(testutil.DeterministicSine(2, 100, 1, n))
	stop := d.Process(testutil.DeterministicSine(40, 100, 1, n))

	if len(pass) != n/factor {
		t.Fatalf("len=%d want=%d", len(pass), n/factor)
	}

	passRMS := rms(pass[edge : len(pass)-edge])
	if math.Abs(passRMS-1/math.Sqrt2) > 0.01 {
		t.Fatalf("passband rms=%v want=%v", passRMS, 1/math.Sqrt2)
	}

	if stopRMS := rms(stop[edge : len(stop)-edge]); stopRMS > 1e-3 {
		t.Fatalf("stopband rms=%v want < 1e-3", stopRMS)
	}
}

func rms(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(x)))
}
