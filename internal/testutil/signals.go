package testutil

import (
	"math"
	"math/cmplx"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// ComplexTone generates amplitude·exp(j2πf n/fs).
func ComplexTone(freqHz, sampleRate, amplitude float64, length int) []complex128 {
	out := make([]complex128, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = complex(amplitude, 0) * cmplx.Exp(complex(0, step*float64(i)))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DeterministicComplexNoise generates circular complex Gaussian noise with
// E|n|² = power and a fixed seed.
func DeterministicComplexNoise(seed int64, power float64, length int) []complex128 {
	out := make([]complex128, length)
	rng := rand.New(rand.NewSource(seed))
	sigma := math.Sqrt(power / 2)
	for i := range out {
		out[i] = complex(sigma*rng.NormFloat64(), sigma*rng.NormFloat64())
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}
