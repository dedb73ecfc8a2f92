// Package timewindow resolves symbolic time windows against trace headers.
//
// A Window has two edges. Each edge names a reference point, either a
// header time marker (B, E, A, F, O, T0..T9) or RefTime for absolute
// zero, and an offset from it. Offsets are seconds unless the edge is a
// sample-count edge, in which case the offset is multiplied by DELTA.
//
// A Window must be validated before use. Invalid windows are disabled and
// operations that receive them skip the trace instead of editing it.
package timewindow
