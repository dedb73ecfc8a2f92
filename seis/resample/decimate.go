package resample

import "fmt"

type config struct {
	tapsPerFactor int
	cutoffScale   float64
	kaiserBeta    float64
}

// Option configures a Decimator.
type Option func(*config)

// WithTapsPerFactor sets the filter length per unit of decimation factor.
// The designed filter always has an odd number of taps.
func WithTapsPerFactor(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tapsPerFactor = n
		}
	}
}

// WithCutoffScale scales the cutoff relative to the post-decimation Nyquist
// frequency, in range (0, 1].
func WithCutoffScale(v float64) Option {
	return func(cfg *config) {
		if v > 0 && v <= 1 {
			cfg.cutoffScale = v
		}
	}
}

// WithKaiserBeta overrides the Kaiser window beta parameter.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta >= 0 {
			cfg.kaiserBeta = beta
		}
	}
}

func defaultConfig() config {
	return config{
		tapsPerFactor: 24,
		cutoffScale:   0.9,
		kaiserBeta:    7.5,
	}
}

// Decimator low-pass filters and keeps every factor-th sample.
type Decimator struct {
	factor int
	taps   []float64
}

// NewDecimator designs the anti-alias filter for factor.
func NewDecimator(factor int, opts ...Option) (*Decimator, error) {
	if factor < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFactor, factor)
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	cutoff := 0.5 / float64(factor) * cfg.cutoffScale

	taps, err := DesignLowpass(cfg.tapsPerFactor*factor|1, cutoff, cfg.kaiserBeta)
	if err != nil {
		return nil, err
	}

	return &Decimator{factor: factor, taps: taps}, nil
}

// Factor returns the decimation factor.
func (d *Decimator) Factor() int { return d.factor }

// Taps returns a copy of the filter coefficients.
func (d *Decimator) Taps() []float64 {
	return append([]float64(nil), d.taps...)
}

// Process returns ceil(len(samples)/factor) samples. Output j is the
// filter centred on input j·factor; taps that fall outside the input see
// zeros.
func (d *Decimator) Process(samples []float64) []float64 {
	half := len(d.taps) / 2
	out := make([]float64, (len(samples)+d.factor-1)/d.factor)

	for j := range out {
		center := j * d.factor

		var acc float64

		for k, h := range d.taps {
			idx := center + k - half
			if idx < 0 || idx >= len(samples) {
				continue
			}

			acc += h * samples[idx]
		}

		out[j] = acc
	}

	return out
}
