package spectral

import (
	"math"
	"math/cmplx"
)

// DivOmega divides every positive-frequency bin by iω, ω = 2π·k·Df, which
// integrates the underlying time series. The DC bin is set to zero and the
// negative-frequency half is rebuilt as the complex conjugate mirror.
func (d *Data) DivOmega() {
	d.scaleOmega(func(c complex128, w float64) complex128 {
		return c / complex(0, w)
	})
}

// MulOmega multiplies every positive-frequency bin by iω, which
// differentiates the underlying time series. DC and the mirror are handled
// as in DivOmega.
func (d *Data) MulOmega() {
	d.scaleOmega(func(c complex128, w float64) complex128 {
		return c * complex(0, w)
	})
}

func (d *Data) scaleOmega(f func(c complex128, w float64) complex128) {
	n := len(d.bins)
	half := n / 2
	dw := 2 * math.Pi * d.Df()

	d.bins[0] = 0
	for k := 1; k <= half; k++ {
		d.bins[k] = f(d.bins[k], float64(k)*dw)
	}

	for k := 1; k < half; k++ {
		d.bins[n-k] = cmplx.Conj(d.bins[k])
	}
}
