// Package trace implements the seismic trace entity and its per-trace
// processing operations.
//
// A Trace owns a header.Header and exactly one Data value: a TimeSeries of
// 32-bit samples (optionally paired with X values for unevenly sampled
// data) or a Spectrum. FFT and IFFT switch between the two and discard the
// previous representation.
//
// Every operation that edits samples re-derives NPTS, E, DEPMIN, DEPMAX
// and DEPMEN so the header always describes the data it accompanies.
//
// Routine problems are returned as errors classified by package fault:
// an unresolvable cut window or a spectral trace passed to a time-domain
// operation is skippable, while an out-of-range window under the Fatal
// policy is a consistency failure.
//
// A Trace is not safe for concurrent mutation. Batch drivers must hand
// each trace to at most one goroutine at a time.
package trace
