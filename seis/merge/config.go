package merge

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cwbudde/algo-seis/seis/fault"
)

// GapStrategy selects how a time gap between segments is filled.
type GapStrategy int

const (
	// GapZero fills the gap with zero-valued samples.
	GapZero GapStrategy = iota
	// GapInterp interpolates across the gap. It is not implemented.
	GapInterp
)

func (g GapStrategy) String() string {
	switch g {
	case GapZero:
		return "ZERO"
	case GapInterp:
		return "INTERP"
	default:
		return fmt.Sprintf("GapStrategy(%d)", int(g))
	}
}

// ParseGapStrategy converts ZERO or INTERP (case-insensitive).
func ParseGapStrategy(s string) (GapStrategy, error) {
	switch {
	case strings.EqualFold(s, "ZERO"):
		return GapZero, nil
	case strings.EqualFold(s, "INTERP"):
		return GapInterp, nil
	}

	return GapZero, fault.Newf(fault.Configuration, "merge", "unknown gap strategy %q", s)
}

// Config holds the merge tolerances.
type Config struct {
	// Tolerance is the accepted difference, in samples, between NPTS and
	// the count implied by B, E and DELTA.
	Tolerance float64
	// ShiftWindow is the half-width, in samples, of the overlap alignment search.
	ShiftWindow int
	// MismatchThreshold is the largest accepted median absolute sample
	// difference in an aligned overlap.
	MismatchThreshold float64
	// Gap selects how gaps are filled.
	Gap GapStrategy
}

// DefaultConfig returns the default merge configuration.
func DefaultConfig() Config {
	return Config{
		Tolerance:         1.0,
		ShiftWindow:       5,
		MismatchThreshold: 2,
		Gap:               GapZero,
	}
}

// Validate reports a configuration error for out-of-range settings.
func (c Config) Validate() error {
	switch {
	case c.Tolerance <= 0:
		return fault.Newf(fault.Configuration, "merge", "tolerance must be > 0: %g", c.Tolerance)
	case c.ShiftWindow < 0:
		return fault.Newf(fault.Configuration, "merge", "shift window must be >= 0: %d", c.ShiftWindow)
	case c.MismatchThreshold < 0:
		return fault.Newf(fault.Configuration, "merge", "mismatch threshold must be >= 0: %g", c.MismatchThreshold)
	case c.Gap != GapZero && c.Gap != GapInterp:
		return fault.Newf(fault.Configuration, "merge", "unknown gap strategy %v", c.Gap)
	}

	return nil
}

// Option configures a Merger.
type Option func(*Merger)

// WithGapStrategy overrides the configured gap strategy.
func WithGapStrategy(g GapStrategy) Option {
	return func(m *Merger) {
		m.cfg.Gap = g
	}
}

// WithLogger sets the logger used for classification diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Merger) {
		if l != nil {
			m.logger = l
		}
	}
}
