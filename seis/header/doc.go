// Package header holds the logical metadata of a seismic trace.
//
// A Header is a mutable set of named scalar and string fields modelled on
// the SAC header: time markers (B, E, O, A, F, T0..T9), sampling (DELTA,
// NPTS, LEVEN), station and event geometry, component orientation and
// user scratch values. Floating-point fields that have not been set carry
// the Undefined sentinel. Fields are addressable by name, case-insensitive,
// through Float/SetFloat and String/SetString.
//
// Only the logical fields are modelled here; the binary on-disk layout is
// the concern of file codecs.
package header
