package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-seis/seis/fault"
	"github.com/cwbudde/algo-seis/seis/spectral"
	"github.com/cwbudde/algo-seis/seis/timewindow"
	"github.com/cwbudde/algo-seis/seis/trace"
	"github.com/cwbudde/algo-seis/seis/window"
)

// Op is a per-trace operation.
type Op func(t *trace.Trace) error

// TraceError records the failure of an operation on one trace.
type TraceError struct {
	ID   uuid.UUID
	Name string
	Op   string
	Err  error
}

func (e *TraceError) Error() string {
	name := e.Name
	if name == "" {
		name = e.ID.String()
	}

	return fmt.Sprintf("%s on %s: %v", e.Op, name, e.Err)
}

func (e *TraceError) Unwrap() error { return e.Err }

// Apply runs op on every trace, at most Workers at a time. A failing trace
// is logged and recorded; the others still run. The returned error joins
// one *TraceError per failed trace, or is the context error if ctx ends
// before every trace was visited.
func (c *Collection) Apply(ctx context.Context, name string, op Op) error {
	entries := c.Entries()
	failures := make([]error, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if err := op(e.Trace); err != nil {
				failures[i] = &TraceError{ID: e.ID, Name: e.Trace.Name(), Op: name, Err: err}
				c.logFailure(gctx, name, e, err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return errors.Join(failures...)
}

func (c *Collection) logFailure(ctx context.Context, op string, e Entry, err error) {
	level := slog.LevelWarn
	if !fault.Skippable(err) {
		level = slog.LevelError
	}

	c.logger.Log(ctx, level, "skipping trace",
		slog.String("op", op),
		slog.String("trace", e.Trace.Name()),
		slog.String("id", e.ID.String()),
		slog.String("kind", fault.KindOf(err).String()),
		slog.String("error", err.Error()))
}

// Cut cuts every trace to w under policy.
func (c *Collection) Cut(ctx context.Context, w *timewindow.Window, policy trace.CutPolicy) error {
	return c.Apply(ctx, "cut", func(t *trace.Trace) error {
		_, err := t.Cut(w, policy)

		return err
	})
}

// FFT transforms every trace to the frequency domain.
func (c *Collection) FFT(ctx context.Context, format spectral.Format) error {
	return c.Apply(ctx, "fft", func(t *trace.Trace) error { return t.FFT(format) })
}

// IFFT transforms every trace back to the time domain.
func (c *Collection) IFFT(ctx context.Context) error {
	return c.Apply(ctx, "ifft", func(t *trace.Trace) error { return t.IFFT() })
}

// Taper tapers every trace.
func (c *Collection) Taper(ctx context.Context, kind window.Type, width float64) error {
	return c.Apply(ctx, "taper", func(t *trace.Trace) error { return t.Taper(kind, width) })
}
