// Package spectral holds the frequency-domain representation of a trace.
//
// A Data value owns N complex bins (N a power of two) produced by a
// forward transform of a zero-padded time series, together with what is
// needed to invert it: the original sample count, begin time and sample
// interval. The presentation Format decides whether callers see the bins
// as real/imaginary or amplitude/phase pairs. The visible index range
// selects the part of the spectrum that is exported or displayed; it never
// includes DC or the negative-frequency mirror.
package spectral
