package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go-hep.org/x/hep/csvutil"

	"github.com/cwbudde/algo-seis/seis/header"
	"github.com/cwbudde/algo-seis/seis/trace"
)

type inputOptions struct {
	columns int
	set     []string
}

// readTrace loads one trace from a CSV file and applies the header
// assignments in opts. One-column files need DELTA to be set.
func readTrace(path string, opts inputOptions) (*trace.Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tracetool: %w", err)
	}

	defer f.Close()

	h := header.New()
	h.B = 0
	if err := applyAssignments(h, assignmentsFor(filepath.Base(path), opts.set)); err != nil {
		return nil, err
	}

	xs, ys, err := loadColumns(f, opts.columns)
	if err != nil {
		return nil, fmt.Errorf("tracetool: %s: %w", path, err)
	}

	name := filepath.Base(path)
	if opts.columns == 2 {
		return trace.NewUneven(h, xs, ys, trace.WithName(name))
	}

	if !header.IsDefined(h.Delta) {
		return nil, fmt.Errorf("tracetool: %s: one-column input needs --set DELTA=<seconds>", path)
	}

	return trace.New(h, ys, trace.WithName(name))
}

func loadColumns(r io.Reader, columns int) (xs, ys []float32, err error) {
	if columns != 1 && columns != 2 {
		return nil, nil, fmt.Errorf("unsupported column count %d", columns)
	}

	tbl := &csvutil.Table{
		Reader: csv.NewReader(bufio.NewReader(r)),
	}

	tbl.Reader.Comment = '#'
	tbl.Reader.TrimLeadingSpace = true
	defer tbl.Close()

	rows, err := tbl.ReadRows(0, -1)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read rows: %w", err)
	}

	defer rows.Close()

	id := 0
	for rows.Next() {
		var x, y float64
		if columns == 2 {
			err = rows.Scan(&x, &y)
		} else {
			err = rows.Scan(&y)
		}

		if err != nil {
			return nil, nil, fmt.Errorf("could not scan row %d: %w", id, err)
		}

		if columns == 2 {
			xs = append(xs, float32(x))
		}

		ys = append(ys, float32(y))
		id++
	}

	if err := rows.Err(); err != nil && err != io.EOF {
		return nil, nil, fmt.Errorf("error while processing rows: %w", err)
	}

	return xs, ys, nil
}

// assignmentsFor selects the assignments that apply to the file base.
// A FILE:NAME=VALUE assignment applies only to the file named FILE, a plain
// NAME=VALUE to every file.
func assignmentsFor(base string, set []string) []string {
	var out []string
	for _, kv := range set {
		file, rest, scoped := strings.Cut(kv, ":")
		if !scoped || strings.Contains(file, "=") {
			out = append(out, kv)
			continue
		}

		if file == base {
			out = append(out, rest)
		}
	}

	return out
}

// applyAssignments sets NAME=VALUE pairs on h. Values of float fields are
// parsed as numbers; all other fields are stored as strings.
func applyAssignments(h *header.Header, set []string) error {
	for _, kv := range set {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("tracetool: --set %q: want NAME=VALUE", kv)
		}

		if !h.Has(name) {
			return fmt.Errorf("tracetool: --set %q: %w", kv, header.ErrUnknownField)
		}

		if _, isFloat := h.Float(name); isFloat {
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("tracetool: --set %q: %w", kv, err)
			}

			if err := h.SetFloat(name, v); err != nil {
				return fmt.Errorf("tracetool: --set %q: %w", kv, err)
			}

			continue
		}

		if err := h.SetString(name, value); err != nil {
			return fmt.Errorf("tracetool: --set %q: %w", kv, err)
		}
	}

	return nil
}

// writeTrace stores t as CSV: one amplitude column for evenly sampled
// series, time and amplitude for uneven ones, or frequency and the two
// spectral components for spectra.
func writeTrace(path string, t *trace.Trace) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("tracetool: %w", err)
	}

	tbl, err := csvutil.Create(path)
	if err != nil {
		return fmt.Errorf("tracetool: could not create %q: %w", path, err)
	}

	defer tbl.Close()

	if err := tbl.WriteHeader(fmt.Sprintf("# %s\n", t)); err != nil {
		return fmt.Errorf("tracetool: could not write header of %q: %w", path, err)
	}

	if s, ok := t.Spectrum(); ok {
		freqs := s.Frequencies()
		first, second := s.Components()
		for i, f := range freqs {
			if err := tbl.WriteRow(f, first[i], second[i]); err != nil {
				return fmt.Errorf("tracetool: could not write row %d of %q: %w", i, path, err)
			}
		}

		return tbl.Close()
	}

	y, _ := t.Samples()
	xs, uneven := t.XValues()
	for i, v := range y {
		var err error
		if uneven {
			err = tbl.WriteRow(float64(xs[i]), float64(v))
		} else {
			err = tbl.WriteRow(float64(v))
		}

		if err != nil {
			return fmt.Errorf("tracetool: could not write row %d of %q: %w", i, path, err)
		}
	}

	return tbl.Close()
}
