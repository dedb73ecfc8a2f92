package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-seis/config"
	"github.com/cwbudde/algo-seis/seis/collection"
	"github.com/cwbudde/algo-seis/seis/merge"
	"github.com/cwbudde/algo-seis/seis/rotate"
)

// app carries the state shared by all subcommands.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *slog.Logger
	stderr io.Writer

	input inputOptions
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), stderr: os.Stderr}

	root := &cobra.Command{
		Use:           "tracetool",
		Short:         "Seismic trace processing on CSV waveforms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.stderr = cmd.ErrOrStderr()

			return a.init()
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "YAML configuration file")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.Int("workers", 0, "concurrent traces (0 uses the configured value)")
	pf.IntVar(&a.input.columns, "columns", 1, "CSV columns per row: 1 (amplitude) or 2 (time, amplitude)")
	pf.StringArrayVar(&a.input.set, "set", nil, "header assignment NAME=VALUE or FILE:NAME=VALUE, repeatable")

	for _, name := range []string{"config", "log-level", "workers"} {
		_ = a.v.BindPFlag(name, pf.Lookup(name))
	}

	a.v.SetEnvPrefix("TRACETOOL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		newInfoCmd(a),
		newCutCmd(a),
		newFFTCmd(a),
		newMergeCmd(a),
		newRotateCmd(a),
	)

	return root
}

// init loads the configuration and builds the logger. Flags and
// TRACETOOL_* environment variables override the file.
func (a *app) init() error {
	cfg := config.DefaultConfig()
	if path := a.v.GetString("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	if lvl := a.v.GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	if w := a.v.GetInt("workers"); w > 0 {
		cfg.Workers = w
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.Level()
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	return nil
}

// collection returns an empty collection configured from a.cfg.
func (a *app) collection() (*collection.Collection, error) {
	ms, err := a.cfg.MergeSettings()
	if err != nil {
		return nil, err
	}

	m, err := merge.New(ms, merge.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}

	r, err := rotate.New(a.cfg.RotateSettings(), rotate.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}

	return collection.New(
		collection.WithWorkers(a.cfg.Workers),
		collection.WithLogger(a.logger),
		collection.WithMerger(m),
		collection.WithRotator(r),
	), nil
}

// load reads every file into a new collection.
func (a *app) load(paths []string) (*collection.Collection, error) {
	c, err := a.collection()
	if err != nil {
		return nil, err
	}

	for _, p := range paths {
		t, err := readTrace(p, a.input)
		if err != nil {
			return nil, err
		}

		c.Add(t)
		a.logger.Debug("loaded trace", slog.String("trace", t.String()), slog.String("file", p))
	}

	return c, nil
}
