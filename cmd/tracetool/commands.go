package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-seis/seis/collection"
	"github.com/cwbudde/algo-seis/seis/merge"
	"github.com/cwbudde/algo-seis/seis/rotate"
	"github.com/cwbudde/algo-seis/seis/spectral"
	"github.com/cwbudde/algo-seis/seis/timewindow"
	"github.com/cwbudde/algo-seis/seis/trace"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE...",
		Short: "Print header summaries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.load(args)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCHANNEL\tNPTS\tB\tE\tDELTA\tDEPMIN\tDEPMAX\tDEPMEN")
			for _, t := range c.Traces() {
				h := t.Header()
				fmt.Fprintf(tw, "%s\t%s\t%d\t%g\t%g\t%g\t%.6g\t%.6g\t%.6g\n",
					t.Name(), h.Channel(), h.NPTS, h.B, h.E, h.Delta, h.DepMin, h.DepMax, h.DepMen)
			}

			return tw.Flush()
		},
	}
}

func newCutCmd(a *app) *cobra.Command {
	var window, policy, out string
	cmd := &cobra.Command{
		Use:   "cut FILE...",
		Short: "Cut traces to a partial data window",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := timewindow.Parse(window)
			if err != nil {
				return err
			}

			if policy == "" {
				policy = a.cfg.Cut.Policy
			}

			p, err := trace.ParseCutPolicy(policy)
			if err != nil {
				return err
			}

			c, err := a.load(args)
			if err != nil {
				return err
			}

			return a.finish(c, out, c.Cut(cmd.Context(), w, p))
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", "", `window such as "B 0 E 10" or "T0 -1 N 400"`)
	cmd.Flags().StringVar(&policy, "policy", "", "FATAL, USEBE or FILLZ (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory")
	_ = cmd.MarkFlagRequired("window")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newFFTCmd(a *app) *cobra.Command {
	var format, out string
	var taper bool
	cmd := &cobra.Command{
		Use:   "fft FILE...",
		Short: "Transform traces to spectra",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := spectral.ParseFormat(format)
			if err != nil {
				return err
			}

			c, err := a.load(args)
			if err != nil {
				return err
			}

			if taper {
				kind, _ := a.cfg.TaperKind()
				if err := c.Taper(cmd.Context(), kind, a.cfg.Taper.Width); err != nil {
					return a.finish(c, out, err)
				}
			}

			return a.finish(c, out, c.FFT(cmd.Context(), f))
		},
	}

	cmd.Flags().StringVar(&format, "format", spectral.AmpPhase.String(), "RLIM or AMPH")
	cmd.Flags().BoolVar(&taper, "taper", false, "taper with the configured window first")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newMergeCmd(a *app) *cobra.Command {
	var gap, out string
	cmd := &cobra.Command{
		Use:   "merge FILE...",
		Short: "Merge segments of the same channel",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if gap == "" {
				gap = a.cfg.Merge.Gap
			}

			g, err := merge.ParseGapStrategy(gap)
			if err != nil {
				return err
			}

			c, err := a.load(args)
			if err != nil {
				return err
			}

			n, err := c.MergeChannels(g)
			a.logger.Info("merged channels", slog.Int("merged", n), slog.Int("traces", c.Len()))

			return a.finish(c, out, err)
		},
	}

	cmd.Flags().StringVar(&gap, "gap", "", "ZERO or INTERP (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newRotateCmd(a *app) *cobra.Command {
	var azimuths, mode, style, out string
	var angle float64
	cmd := &cobra.Command{
		Use:   "rotate FILE...",
		Short: "Rotate horizontal component pairs",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := rotate.ParseMode(mode)
			if err != nil {
				return err
			}

			s, err := rotate.ParseStyle(style)
			if err != nil {
				return err
			}

			c, err := a.load(args)
			if err != nil {
				return err
			}

			if err := assignAzimuths(c, azimuths); err != nil {
				return err
			}

			n, err := c.Rotate(s, m, angle)
			a.logger.Info("rotated pairs", slog.Int("pairs", n))

			return a.finish(c, out, err)
		},
	}

	cmd.Flags().StringVar(&azimuths, "azimuths", "", "comma-separated CMPAZ per input file; sets CMPINC=90")
	cmd.Flags().StringVar(&mode, "mode", rotate.ToAzimuth.String(), "TO_AZIMUTH, THROUGH or TO_GCP")
	cmd.Flags().StringVar(&style, "style", rotate.Normal.String(), "NORMAL or REVERSED")
	cmd.Flags().Float64Var(&angle, "angle", 0, "target azimuth or rotation angle in degrees")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func assignAzimuths(c *collection.Collection, list string) error {
	if list == "" {
		return nil
	}

	fields := strings.Split(list, ",")
	if len(fields) != c.Len() {
		return fmt.Errorf("tracetool: %d azimuths for %d files", len(fields), c.Len())
	}

	for i, t := range c.Traces() {
		az, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		if err != nil {
			return fmt.Errorf("tracetool: azimuth %q: %w", fields[i], err)
		}

		h := t.Header()
		h.Cmpaz = az
		h.Cmpinc = 90
	}

	return nil
}

// finish writes every trace of c into dir and returns opErr. Traces that
// failed the operation are written unchanged.
func (a *app) finish(c *collection.Collection, dir string, opErr error) error {
	var errs []error
	if opErr != nil {
		errs = append(errs, opErr)
	}

	for _, t := range c.Traces() {
		name := t.Name()
		if name == "" {
			name = "trace.csv"
		}

		path := filepath.Join(dir, name)
		if err := writeTrace(path, t); err != nil {
			errs = append(errs, err)
			continue
		}

		a.logger.Debug("wrote trace", slog.String("file", path))
	}

	return errors.Join(errs...)
}
