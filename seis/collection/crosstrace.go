package collection

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/cwbudde/algo-seis/seis/fault"
	"github.com/cwbudde/algo-seis/seis/header"
	"github.com/cwbudde/algo-seis/seis/merge"
	"github.com/cwbudde/algo-seis/seis/rotate"
	"github.com/cwbudde/algo-seis/seis/trace"
)

// derivedFields are rewritten from the samples and cannot be copied.
var derivedFields = []string{"DELTA", "B", "E", "NPTS", "DEPMIN", "DEPMAX", "DEPMEN", "LEVEN", "IFTYPE"}

// MergeChannels merges every set of traces sharing a channel identity into
// one trace using gap strategy g. The merged trace takes the position and
// ID of the earliest member of its set. A set that fails to merge is kept
// as it was. It returns the number of merged sets and the joined errors.
func (c *Collection) MergeChannels(g merge.GapStrategy) (int, error) {
	m, err := merge.New(c.merger.Config(), merge.WithGapStrategy(g), merge.WithLogger(c.logger))
	if err != nil {
		return 0, err
	}

	var order []header.Channel
	groups := make(map[header.Channel][]Entry)
	for _, e := range c.entries {
		ch := e.Trace.Header().Channel()
		if _, ok := groups[ch]; !ok {
			order = append(order, ch)
		}

		groups[ch] = append(groups[ch], e)
	}

	var (
		merged int
		errs   []error
		drop   = make(map[int]bool)
	)
	for _, ch := range order {
		members := groups[ch]
		if len(members) < 2 {
			continue
		}

		traces := make([]*trace.Trace, len(members))
		for i, e := range members {
			traces[i] = e.Trace
		}

		out, err := m.MergeAll(traces)
		if err != nil {
			c.logger.Warn("merge failed", slog.String("channel", ch.String()), slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("merge %s: %w", ch, err))
			continue
		}

		keep := earliest(members)
		for _, e := range members {
			i := c.index(e.ID)
			if e.ID == keep.ID {
				c.entries[i].Trace = out
			} else {
				drop[i] = true
			}
		}

		merged++
	}

	if len(drop) > 0 {
		kept := c.entries[:0]
		for i, e := range c.entries {
			if !drop[i] {
				kept = append(kept, e)
			}
		}

		clear(c.entries[len(kept):])
		c.entries = kept
	}

	return merged, errors.Join(errs...)
}

func earliest(members []Entry) Entry {
	return slices.MinFunc(members, func(a, b Entry) int {
		return cmp.Compare(a.Trace.Header().B, b.Trace.Header().B)
	})
}

// Rotate rotates every matching horizontal pair in the collection.
func (c *Collection) Rotate(style rotate.Style, mode rotate.Mode, angle float64) (int, error) {
	return c.rotator.RotateTraces(c.Traces(), style, mode, angle)
}

// CopyHeaderValue copies header field name from the trace at index from to
// every other trace. Fields derived from the samples cannot be copied.
func (c *Collection) CopyHeaderValue(name string, from int) error {
	const op = "copyhdr"

	src, err := c.At(from)
	if err != nil {
		return err
	}

	h := src.Header()
	if !h.Has(name) {
		return fault.New(fault.Configuration, op, fmt.Errorf("%w: %q", header.ErrUnknownField, name))
	}

	if slices.Contains(derivedFields, strings.ToUpper(strings.TrimSpace(name))) {
		return fault.New(fault.Configuration, op, fmt.Errorf("%w: %s", header.ErrReadOnly, name))
	}

	var set func(dst *header.Header) error
	if v, ok := h.Float(name); ok {
		set = func(dst *header.Header) error { return dst.SetFloat(name, v) }
	} else {
		s, _ := h.String(name)
		set = func(dst *header.Header) error { return dst.SetString(name, s) }
	}

	for i, e := range c.entries {
		if i == from {
			continue
		}

		if err := set(e.Trace.Header()); err != nil {
			return fault.New(fault.Configuration, op, err)
		}
	}

	return nil
}
