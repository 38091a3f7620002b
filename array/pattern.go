package array

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-sonar/dsp/core"
	"github.com/cwbudde/algo-sonar/dsp/window"
)

// ErrLengthMismatch is returned when element positions and weights differ
// in length.
var ErrLengthMismatch = errors.New("array: length mismatch")

// patternFloor keeps exact nulls of a normalised pattern finite (−200 dB).
const patternFloor = 1e-10

// Positions returns n element positions spaced d apart and centred on 0.
func Positions(n int, d float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = (float64(i) - float64(n-1)/2) * d
	}
	return out
}

// TaperWeights returns the n coefficients of window t as element weights.
// TypeRectangular gives uniform weighting.
func TaperWeights(t window.Type, n int, opts ...window.Option) []complex128 {
	coeffs := window.Generate(t, n, opts...)
	if coeffs == nil {
		return nil
	}
	out := make([]complex128, n)
	for i, c := range coeffs {
		out[i] = complex(c, 0)
	}
	return out
}

// Steer returns weights phased so the main lobe points at thetaDeg.
// k is the wavenumber 2π/λ in the units of positions.
func Steer(weights []complex128, positions []float64, thetaDeg, k float64) ([]complex128, error) {
	if len(weights) != len(positions) {
		return nil, fmt.Errorf("%w: %d weights, %d positions", ErrLengthMismatch, len(weights), len(positions))
	}
	u := k * math.Sin(thetaDeg*math.Pi/180)
	out := make([]complex128, len(weights))
	for n, w := range weights {
		out[n] = w * cmplx.Exp(complex(0, u*positions[n]))
	}
	return out, nil
}

// Pattern returns the response Σ conj(wₙ)·exp(j·k·xₙ·sin θ) of elements at
// positions xₙ with weights wₙ, for each angle in degrees.
func Pattern(positions []float64, weights []complex128, anglesDeg []float64, k float64) ([]complex128, error) {
	if len(positions) != len(weights) {
		return nil, fmt.Errorf("%w: %d positions, %d weights", ErrLengthMismatch, len(positions), len(weights))
	}
	if len(positions) == 0 {
		return nil, core.ErrEmptyInput
	}
	out := make([]complex128, len(anglesDeg))
	for i, theta := range anglesDeg {
		u := k * math.Sin(theta*math.Pi/180)
		var sum complex128
		for n, x := range positions {
			sum += cmplx.Conj(weights[n]) * cmplx.Exp(complex(0, u*x))
		}
		out[i] = sum
	}
	return out, nil
}

// PatternDB returns the pattern magnitude in dB, normalised to 0 dB at its
// maximum.
func PatternDB(positions []float64, weights []complex128, anglesDeg []float64, k float64) ([]float64, error) {
	p, err := Pattern(positions, weights, anglesDeg, k)
	if err != nil {
		return nil, err
	}
	mag := make([]float64, len(p))
	for i, v := range p {
		mag[i] = cmplx.Abs(v)
	}
	return core.NormalizeMagnitudeDB(mag, patternFloor)
}
