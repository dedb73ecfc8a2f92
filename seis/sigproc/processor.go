package sigproc

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

var (
	// ErrEmptyInput indicates an empty sample slice.
	ErrEmptyInput = errors.New("sigproc: empty input")
	// ErrInvalidFactor indicates a decimation factor outside 2..MaxDecimation.
	ErrInvalidFactor = errors.New("sigproc: invalid decimation factor")
	// ErrInvalidInterval indicates a non-positive or non-finite sample interval.
	ErrInvalidInterval = errors.New("sigproc: invalid sample interval")
	// ErrInvalidSize indicates a transform size that is not a power of two.
	ErrInvalidSize = errors.New("sigproc: transform size must be a power of two")
)

// MaxDecimation is the largest single-stage decimation factor.
const MaxDecimation = 7

type config struct {
	tapsPerFactor int
	kaiserBeta    float64
	cutoffScale   float64
	interpOrder   int
}

// Option configures a Processor.
type Option func(*config)

// WithTapsPerFactor sets the anti-alias FIR length per unit of decimation factor.
func WithTapsPerFactor(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tapsPerFactor = n
		}
	}
}

// WithKaiserBeta sets the Kaiser window beta of the anti-alias filter.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta >= 0 {
			cfg.kaiserBeta = beta
		}
	}
}

// WithCutoffScale scales the anti-alias cutoff relative to the new Nyquist.
func WithCutoffScale(v float64) Option {
	return func(cfg *config) {
		if v > 0 && v <= 1 {
			cfg.cutoffScale = v
		}
	}
}

// WithLinearInterpolation switches Interpolate from cubic to linear.
func WithLinearInterpolation() Option {
	return func(cfg *config) {
		cfg.interpOrder = 1
	}
}

func defaultConfig() config {
	return config{
		tapsPerFactor: 24,
		kaiserBeta:    7.5,
		cutoffScale:   0.9,
		interpOrder:   3,
	}
}

// Processor implements the transforms needed by trace operations.
type Processor struct {
	cfg config
}

// New returns a Processor configured by opts.
func New(opts ...Option) *Processor {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Processor{cfg: cfg}
}

var defaultProcessor = New()

// Default returns the shared default Processor.
func Default() *Processor { return defaultProcessor }

// NextPow2 returns the smallest power of two >= n, and 1 for n <= 1.
func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func newPlan(n int) (*algofft.Plan[complex128], error) {
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("sigproc: failed to create FFT plan of size %d: %w", n, err)
	}

	return plan, nil
}
