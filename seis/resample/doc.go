// Package resample designs linear-phase anti-alias FIR filters and applies
// them for integer-factor decimation of evenly sampled traces.
//
// The low-pass is a Kaiser-windowed sinc normalised to unit DC gain. A
// Decimator filters centred on each kept sample, so the output keeps the
// time of its first sample and is not delayed.
//
// Common workflows:
//   - DesignLowpass(taps, cutoff, beta)
//   - NewDecimator(factor, opts...) then Process
package resample
