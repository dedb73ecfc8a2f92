package sigproc

import "github.com/cwbudde/algo-vecmath"

// Magnitude returns sqrt(re[k]^2 + im[k]^2). re and im must have equal length.
func Magnitude(re, im []float64) []float64 {
	out := make([]float64, len(re))
	if len(re) == 0 {
		return out
	}

	vecmath.Magnitude(out, re, im)

	return out
}

// MulInPlace multiplies dst by src element-wise. Both must have equal length.
func MulInPlace(dst, src []float64) {
	if len(dst) == 0 {
		return
	}

	vecmath.MulBlockInPlace(dst, src)
}
