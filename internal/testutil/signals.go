// Package testutil provides deterministic synthetic waveforms and
// tolerance assertions shared by the trace packages' tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave of freqHz sampled at sampleRate.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DeterministicNoise generates white noise in [-amplitude, amplitude) with
// a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Ricker generates a Ricker (Mexican hat) wavelet with peak frequency f0
// centred at time t0, sampled every delta seconds.
func Ricker(f0, t0, delta float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		a := math.Pi * f0 * (float64(i)*delta - t0)
		a2 := a * a
		out[i] = (1 - 2*a2) * math.Exp(-a2)
	}

	return out
}

// Ramp returns 0, 1, ..., length-1 as 32-bit samples.
func Ramp(length int) []float32 {
	out := make([]float32, length)
	for i := range out {
		out[i] = float32(i)
	}

	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// Float32 converts samples to the 32-bit storage used by traces.
func Float32(x []float64) []float32 {
	out := make([]float32, len(x))
	for i, v := range x {
		out[i] = float32(v)
	}

	return out
}

// Float64 widens 32-bit samples.
func Float64(x []float32) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = float64(v)
	}

	return out
}
