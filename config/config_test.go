package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-seis/seis/merge"
	"github.com/cwbudde/algo-seis/seis/trace"
	"github.com/cwbudde/algo-seis/seis/window"
)

func TestDefaultConfigValid(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	m, err := c.MergeSettings()
	if err != nil {
		t.Fatalf("MergeSettings: %v", err)
	}

	if m != merge.DefaultConfig() {
		t.Fatalf("merge=%+v want=%+v", m, merge.DefaultConfig())
	}

	if l, _ := c.Level(); l != slog.LevelInfo {
		t.Fatalf("level=%v want=info", l)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracetool.yaml")
	data := `
workers: 3
log_level: debug
cut:
  policy: FILLZ
taper:
  kind: cosine
merge:
  shift_window: 8
  gap: INTERP
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if c.Workers != 3 {
		t.Fatalf("workers=%d want=3", c.Workers)
	}

	if p, _ := c.CutPolicy(); p != trace.FillZeros {
		t.Fatalf("policy=%v want=FILLZ", p)
	}

	if k, _ := c.TaperKind(); k != window.TypeCosine {
		t.Fatalf("taper=%v want=cosine", k)
	}

	m, _ := c.MergeSettings()
	if m.ShiftWindow != 8 || m.Gap != merge.GapInterp || m.MismatchThreshold != 2 {
		t.Fatalf("merge=%+v", m)
	}

	if c.Taper.Width != 0.05 {
		t.Fatalf("taper width=%v want default 0.05", c.Taper.Width)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("workers: [1"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFile(path); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("err=%v want parse error", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"cut policy", func(c *Config) { c.Cut.Policy = "grow" }},
		{"taper kind", func(c *Config) { c.Taper.Kind = "boxcar" }},
		{"taper width", func(c *Config) { c.Taper.Width = 0.7 }},
		{"gap", func(c *Config) { c.Merge.Gap = "SPLINE" }},
		{"merge tolerance", func(c *Config) { c.Merge.Tolerance = 0 }},
		{"baz tolerance", func(c *Config) { c.Rotate.BazTolerance = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(c)
			if err := c.Validate(); err == nil {
				t.Fatal("Validate accepted invalid config")
			}
		})
	}
}

func TestSaveToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tracetool.yaml")
	c := DefaultConfig()
	c.Workers = 7
	if err := c.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	got, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if got.Workers != 7 || got.Merge != c.Merge {
		t.Fatalf("loaded=%+v want=%+v", got, c)
	}
}
