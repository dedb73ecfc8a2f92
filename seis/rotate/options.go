package rotate

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cwbudde/algo-seis/seis/fault"
)

// Style selects the handedness of the rotated pair.
type Style int

const (
	// Normal keeps the second component 90 degrees clockwise of the first.
	Normal Style = iota
	// Reversed negates the second component and turns its azimuth by 180 degrees.
	Reversed
)

func (s Style) String() string {
	switch s {
	case Normal:
		return "NORMAL"
	case Reversed:
		return "REVERSED"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ParseStyle converts NORMAL or REVERSED (case-insensitive).
func ParseStyle(s string) (Style, error) {
	switch {
	case strings.EqualFold(s, "NORMAL"):
		return Normal, nil
	case strings.EqualFold(s, "REVERSED"):
		return Reversed, nil
	}

	return Normal, fault.Newf(fault.Configuration, "rotate", "unknown style %q", s)
}

// Mode selects how the rotation angle is determined.
type Mode int

const (
	// ToAzimuth rotates the first component to the given azimuth.
	ToAzimuth Mode = iota
	// Through rotates by the given angle.
	Through
	// ToGCP rotates the first component onto the great-circle path,
	// pointing away from the event.
	ToGCP
)

func (m Mode) String() string {
	switch m {
	case ToAzimuth:
		return "TO_AZIMUTH"
	case Through:
		return "THROUGH"
	case ToGCP:
		return "TO_GCP"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts TO_AZIMUTH, THROUGH or TO_GCP (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch {
	case strings.EqualFold(s, "TO_AZIMUTH"), strings.EqualFold(s, "TO"):
		return ToAzimuth, nil
	case strings.EqualFold(s, "THROUGH"):
		return Through, nil
	case strings.EqualFold(s, "TO_GCP"), strings.EqualFold(s, "GCP"):
		return ToGCP, nil
	}

	return ToAzimuth, fault.Newf(fault.Configuration, "rotate", "unknown mode %q", s)
}

// Config holds the rotation tolerances.
type Config struct {
	// BazTolerance is the largest accepted back-azimuth difference, in
	// degrees, between the two members of a pair in ToGCP mode.
	BazTolerance float64
}

// DefaultConfig returns the default rotation configuration.
func DefaultConfig() Config {
	return Config{BazTolerance: 0.01}
}

// Validate reports a configuration error for out-of-range settings.
func (c Config) Validate() error {
	if c.BazTolerance < 0 {
		return fault.Newf(fault.Configuration, "rotate", "back-azimuth tolerance must be >= 0: %g", c.BazTolerance)
	}

	return nil
}

// AzimuthCalculator computes the back-azimuth from station to event.
type AzimuthCalculator interface {
	BackAzimuth(stla, stlo, evla, evlo float64) (float64, error)
}

// Option configures a Rotator.
type Option func(*Rotator)

// WithCalculator replaces the back-azimuth calculator.
func WithCalculator(c AzimuthCalculator) Option {
	return func(r *Rotator) {
		if c != nil {
			r.calc = c
		}
	}
}

// WithLogger sets the logger used for skipped traces and diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Rotator) {
		if l != nil {
			r.logger = l
		}
	}
}
