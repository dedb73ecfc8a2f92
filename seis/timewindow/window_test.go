package timewindow

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-seis/seis/fault"
	"github.com/cwbudde/algo-seis/seis/header"
)

func testHeader() *header.Header {
	h := header.NewEven(1001, 10, 0.01)
	h.A = 12.5
	h.T[1] = 15

	return h
}

func TestValidateSameReference(t *testing.T) {
	tests := []struct {
		name  string
		start Edge
		end   Edge
		valid bool
	}{
		{"equal offsets", At("B", 1), At("B", 1), false},
		{"end before start", At("B", 2), At("B", 1), false},
		{"positive width", At("B", 1), At("B", 2), true},
		{"different refs", At("B", 5), At("E", -5), true},
		{"sample width", AtSample("A", 0), AtSample("A", 100), true},
		{"negative sample width", AtSample("A", 10), AtSample("A", 10), false},
		{"unknown reference", At("X", 0), At("E", 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(tt.start, tt.end)
			err := w.Validate()
			if w.IsValid() != tt.valid {
				t.Fatalf("IsValid=%v want=%v (err=%v)", w.IsValid(), tt.valid, err)
			}

			if w.IsEnabled() != tt.valid {
				t.Fatalf("IsEnabled=%v want=%v", w.IsEnabled(), tt.valid)
			}

			if !tt.valid && !errors.Is(err, ErrInvalid) {
				t.Fatalf("err=%v want ErrInvalid", err)
			}
		})
	}
}

func TestResolveNamedAndSampleOffsets(t *testing.T) {
	h := testHeader()

	w := New(At("A", -0.5), AtSample("A", 200))
	if err := w.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	start, end, err := w.Resolve(h)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if math.Abs(start-12.0) > 1e-12 || math.Abs(end-14.5) > 1e-12 {
		t.Fatalf("Resolve=(%v,%v) want=(12,14.5)", start, end)
	}
}

func TestResolveRefTime(t *testing.T) {
	h := testHeader()
	w := New(At(RefTime, 10.5), At("T1", 0))
	if err := w.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	start, end, err := w.Resolve(h)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if start != 10.5 || end != 15 {
		t.Fatalf("Resolve=(%v,%v) want=(10.5,15)", start, end)
	}
}

func TestResolveUnsetReference(t *testing.T) {
	h := testHeader()
	w := New(At("T5", 0), At("E", 0))
	if err := w.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	_, _, err := w.Resolve(h)
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("err=%v want ErrUnresolved", err)
	}

	if !fault.Is(err, fault.Configuration) {
		t.Fatalf("kind=%v want configuration", fault.KindOf(err))
	}
}

func TestResolveRequiresValidation(t *testing.T) {
	w := New(At("B", 0), At("E", 0))
	if _, _, err := w.Resolve(testHeader()); !errors.Is(err, ErrInvalid) {
		t.Fatalf("unvalidated Resolve err=%v want ErrInvalid", err)
	}

	if err := w.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	w.Disable()
	if w.IsEnabled() {
		t.Fatal("disabled window reports enabled")
	}

	if _, _, err := w.Resolve(testHeader()); !errors.Is(err, ErrDisabled) {
		t.Fatalf("disabled Resolve err=%v want ErrDisabled", err)
	}

	w.Enable()
	if !w.IsEnabled() {
		t.Fatal("re-enabled window reports disabled")
	}
}

func TestResolveEmptyAfterResolution(t *testing.T) {
	h := testHeader()
	w := New(At("E", 0), At("B", 0))
	if err := w.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if _, _, err := w.Resolve(h); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err=%v want ErrInvalid", err)
	}
}

func TestParse(t *testing.T) {
	h := testHeader()
	tests := []struct {
		in         string
		start, end float64
	}{
		{"B 0 E 0", 10, 20},
		{"b e", 10, 20},
		{"A -1 A 2", 11.5, 14.5},
		{"T1 -0.5 N 101", 14.5, 15.5},
		{"B N 11", 10, 10.1},
		{"Z 11 Z 12", 11, 12},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}

			start, end, err := w.Resolve(h)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}

			if math.Abs(start-tt.start) > 1e-9 || math.Abs(end-tt.end) > 1e-9 {
				t.Fatalf("Resolve=(%v,%v) want=(%v,%v)", start, end, tt.start, tt.end)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "B", "Q 0 E 0", "B 0 N", "B 0 N -3", "B 0 E 0 X", "A 2 A 1"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("Parse(%q) succeeded", in)
		}
	}
}
