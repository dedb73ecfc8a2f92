package trace

import "github.com/cwbudde/algo-seis/seis/spectral"

// Data is the sample representation of a trace: *TimeSeries or *Spectrum.
type Data interface {
	isData()
	clone() Data
}

// TimeSeries holds time-domain samples. X is nil for evenly sampled data
// and otherwise holds one independent value per sample.
type TimeSeries struct {
	Y []float32
	X []float32
}

// Even reports whether the series is evenly sampled.
func (ts *TimeSeries) Even() bool { return ts.X == nil }

func (*TimeSeries) isData() {}

func (ts *TimeSeries) clone() Data {
	c := &TimeSeries{Y: append([]float32(nil), ts.Y...)}
	if ts.X != nil {
		c.X = append([]float32(nil), ts.X...)
	}

	return c
}

// Spectrum holds frequency-domain data.
type Spectrum struct {
	*spectral.Data
}

func (*Spectrum) isData() {}

func (s *Spectrum) clone() Data { return &Spectrum{Data: s.Data.Clone()} }
