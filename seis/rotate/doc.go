// Package rotate rotates pairs of orthogonal horizontal components.
//
// RotateTraces groups traces by station, location, sample count, begin
// time and sample interval and rotates every group of exactly two. A pair
// is first normalized so the second component points exactly 90 degrees
// clockwise from the first, then rotated sample by sample through an
// angle chosen by Mode. Every check runs before any buffer is written, so
// a failed pair is left exactly as it was.
package rotate
