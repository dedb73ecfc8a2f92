// Package interp provides the interpolation kernels used to resample
// evenly sampled traces onto a new sample interval.
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite (default)
//
// A [Series] evaluates a kernel at a fractional sample position, extending
// the series linearly by one sample past either end so the cubic kernel is
// defined on the outer intervals.
package interp
