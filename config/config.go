// Package config loads the processing configuration used by tracetool.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-seis/seis/merge"
	"github.com/cwbudde/algo-seis/seis/rotate"
	"github.com/cwbudde/algo-seis/seis/trace"
	"github.com/cwbudde/algo-seis/seis/window"
)

// Config is the complete processing configuration.
type Config struct {
	// Workers bounds concurrent per-trace work. Zero uses GOMAXPROCS.
	Workers int `yaml:"workers"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string       `yaml:"log_level"`
	Cut      CutConfig    `yaml:"cut"`
	Taper    TaperConfig  `yaml:"taper"`
	Merge    MergeConfig  `yaml:"merge"`
	Rotate   RotateConfig `yaml:"rotate"`
}

// CutConfig configures cut.
type CutConfig struct {
	// Policy is FATAL, USEBE or FILLZ.
	Policy string `yaml:"policy"`
}

// TaperConfig configures taper.
type TaperConfig struct {
	// Kind is hanning, hamming or cosine.
	Kind string `yaml:"kind"`
	// Width is the taper length at each end as a fraction of the trace.
	Width float64 `yaml:"width"`
}

// MergeConfig configures merge.
type MergeConfig struct {
	Tolerance         float64 `yaml:"tolerance"`
	ShiftWindow       int     `yaml:"shift_window"`
	MismatchThreshold float64 `yaml:"mismatch_threshold"`
	// Gap is ZERO or INTERP.
	Gap string `yaml:"gap"`
}

// RotateConfig configures rotation.
type RotateConfig struct {
	BazTolerance float64 `yaml:"baz_tolerance"`
}

// DefaultConfig returns a Config with the library defaults.
func DefaultConfig() *Config {
	m := merge.DefaultConfig()

	return &Config{
		Workers:  0,
		LogLevel: "info",
		Cut:      CutConfig{Policy: trace.Fatal.String()},
		Taper:    TaperConfig{Kind: window.TypeHann.String(), Width: 0.05},
		Merge: MergeConfig{
			Tolerance:         m.Tolerance,
			ShiftWindow:       m.ShiftWindow,
			MismatchThreshold: m.MismatchThreshold,
			Gap:               m.Gap.String(),
		},
		Rotate: RotateConfig{BazTolerance: rotate.DefaultConfig().BazTolerance},
	}
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0")
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	if _, err := c.CutPolicy(); err != nil {
		return err
	}

	if _, err := c.TaperKind(); err != nil {
		return err
	}

	if c.Taper.Width < 0 || c.Taper.Width > window.MaxTaperWidth {
		return fmt.Errorf("taper.width must be between 0 and %g", window.MaxTaperWidth)
	}

	m, err := c.MergeSettings()
	if err != nil {
		return err
	}

	if err := m.Validate(); err != nil {
		return err
	}

	return c.RotateSettings().Validate()
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}

	return l, nil
}

// CutPolicy returns the configured cut policy.
func (c *Config) CutPolicy() (trace.CutPolicy, error) {
	return trace.ParseCutPolicy(c.Cut.Policy)
}

// TaperKind returns the configured taper shape.
func (c *Config) TaperKind() (window.Type, error) {
	k, err := window.ParseType(c.Taper.Kind)
	if err != nil {
		return 0, fmt.Errorf("taper.kind: %w", err)
	}

	return k, nil
}

// MergeSettings converts the merge section.
func (c *Config) MergeSettings() (merge.Config, error) {
	g, err := merge.ParseGapStrategy(c.Merge.Gap)
	if err != nil {
		return merge.Config{}, err
	}

	return merge.Config{
		Tolerance:         c.Merge.Tolerance,
		ShiftWindow:       c.Merge.ShiftWindow,
		MismatchThreshold: c.Merge.MismatchThreshold,
		Gap:               g,
	}, nil
}

// RotateSettings converts the rotate section.
func (c *Config) RotateSettings() rotate.Config {
	return rotate.Config{BazTolerance: c.Rotate.BazTolerance}
}

// LoadFromFile reads a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile writes c as YAML, creating the parent directory.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
