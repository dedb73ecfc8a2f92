package trace

import "github.com/cwbudde/algo-seis/seis/sigproc"

// Backend provides the numeric transforms trace operations delegate to.
type Backend interface {
	// Forward returns the n-point DFT of samples zero-padded to n.
	Forward(samples []float64, n int) ([]complex128, error)
	// Inverse returns the real part of the normalized inverse DFT.
	Inverse(bins []complex128) ([]float64, error)
	Hilbert(samples []float64) ([]float64, error)
	Envelope(samples []float64) ([]float64, error)
	Decimate(samples []float64, factor int) ([]float64, error)
	Interpolate(samples []float64, delta, newDelta float64) ([]float64, error)
	InterpolateXY(xs, ys []float64, newDelta float64) ([]float64, error)
}

var _ Backend = (*sigproc.Processor)(nil)
