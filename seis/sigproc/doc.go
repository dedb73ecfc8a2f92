// Package sigproc is the signal-processing backend used by trace
// operations.
//
// It provides forward and inverse discrete Fourier transforms sized to the
// next power of two and the Hilbert transform via the analytic signal.
// Decimation and interpolation delegate their filter design and kernels to
// packages resample and interp; end tapers live in package window.
//
// All functions operate on float64 scratch slices; callers convert their
// own sample storage. A Processor holds only configuration and is safe for
// concurrent use.
package sigproc
