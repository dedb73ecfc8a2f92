package collection

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-seis/seis/fault"
	"github.com/cwbudde/algo-seis/seis/merge"
	"github.com/cwbudde/algo-seis/seis/rotate"
	"github.com/cwbudde/algo-seis/seis/trace"
)

// ErrNotFound indicates an unknown trace ID.
var ErrNotFound = errors.New("collection: trace not found")

// Entry is one trace and its stable ID.
type Entry struct {
	ID    uuid.UUID
	Trace *trace.Trace
}

// Collection is an ordered list of traces.
type Collection struct {
	entries []Entry
	workers int
	logger  *slog.Logger
	merger  *merge.Merger
	rotator *rotate.Rotator
}

// Option configures a Collection.
type Option func(*Collection)

// WithWorkers bounds the number of traces processed concurrently.
// Values below one select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(c *Collection) {
		c.workers = n
	}
}

// WithLogger sets the logger for skipped traces and batch diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Collection) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMerger sets the merger used by MergeChannels.
func WithMerger(m *merge.Merger) Option {
	return func(c *Collection) {
		if m != nil {
			c.merger = m
		}
	}
}

// WithRotator sets the rotator used by Rotate.
func WithRotator(r *rotate.Rotator) Option {
	return func(c *Collection) {
		if r != nil {
			c.rotator = r
		}
	}
}

// New returns an empty collection.
func New(opts ...Option) *Collection {
	c := &Collection{
		logger:  slog.Default(),
		merger:  merge.Default(),
		rotator: rotate.Default(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.workers < 1 {
		c.workers = runtime.GOMAXPROCS(0)
	}

	return c
}

// Add appends t and returns its new ID.
func (c *Collection) Add(t *trace.Trace) uuid.UUID {
	id := uuid.New()
	c.entries = append(c.entries, Entry{ID: id, Trace: t})

	return id
}

// Get returns the trace with the given ID.
func (c *Collection) Get(id uuid.UUID) (*trace.Trace, bool) {
	i := c.index(id)
	if i < 0 {
		return nil, false
	}

	return c.entries[i].Trace, true
}

// At returns the i-th trace.
func (c *Collection) At(i int) (*trace.Trace, error) {
	if i < 0 || i >= len(c.entries) {
		return nil, fault.Newf(fault.Configuration, "collection", "index %d out of range [0,%d)", i, len(c.entries))
	}

	return c.entries[i].Trace, nil
}

// Remove deletes the trace with the given ID and reports whether it existed.
func (c *Collection) Remove(id uuid.UUID) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}

	c.entries = slices.Delete(c.entries, i, i+1)

	return true
}

// Replace swaps the trace stored under id for t, keeping its position.
func (c *Collection) Replace(id uuid.UUID, t *trace.Trace) error {
	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	c.entries[i].Trace = t

	return nil
}

// Len returns the number of traces.
func (c *Collection) Len() int { return len(c.entries) }

// Traces returns the traces in order. The slice is a copy; the traces are not.
func (c *Collection) Traces() []*trace.Trace {
	out := make([]*trace.Trace, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Trace
	}

	return out
}

// Entries returns a copy of the entry list.
func (c *Collection) Entries() []Entry { return slices.Clone(c.entries) }

func (c *Collection) index(id uuid.UUID) int {
	return slices.IndexFunc(c.entries, func(e Entry) bool { return e.ID == id })
}
