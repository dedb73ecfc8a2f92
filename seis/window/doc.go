// Package window generates window functions and end tapers for seismic
// traces.
//
// Generate and Apply cover the full-length windows (Hann, Hamming, cosine,
// Kaiser, Tukey). EndTaper builds the gain curve used to taper the two ends
// of a trace: it rises over a fraction of the trace length, stays at one,
// and falls symmetrically, with the rising half taken from a window type.
//
// Kaiser coefficients also back the anti-alias FIR design in package
// resample.
package window
