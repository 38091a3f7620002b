package array

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

var (
	// ErrDimensionMismatch is returned when a steering vector cannot be
	// matched to a correlation matrix dimension.
	ErrDimensionMismatch = errors.New("array: dimension mismatch")
	// ErrInvalidGrid is returned for an angle grid with a non-positive or
	// non-finite step, or an empty range.
	ErrInvalidGrid = errors.New("array: invalid angle grid")
)

// Steering returns the m-element steering vector of a ULA for a plane wave
// arriving from thetaDeg: a[n] = exp(jn·kd·sin θ). Every entry has unit
// modulus and a[0] = 1. It returns nil for m <= 0.
func Steering(thetaDeg, kd float64, m int) []complex128 {
	if m <= 0 {
		return nil
	}
	a := make([]complex128, m)
	SteeringTo(a, thetaDeg, kd)
	return a
}

// SteeringTo writes the len(dst)-element steering vector into dst.
func SteeringTo(dst []complex128, thetaDeg, kd float64) {
	phi := -kd * math.Sin(thetaDeg*math.Pi/180)
	for n := range dst {
		dst[n] = cmplx.Exp(complex(0, -phi*float64(n)))
	}
}

// AdaptSteeringVector truncates a to its first dim entries so it matches a
// dim×dim correlation matrix, as needed after spatial smoothing reduced the
// matrix size. The result aliases a.
func AdaptSteeringVector(a []complex128, dim int) ([]complex128, error) {
	if dim < 1 || dim > len(a) {
		return nil, fmt.Errorf("%w: vector of length %d for dimension %d", ErrDimensionMismatch, len(a), dim)
	}
	return a[:dim], nil
}

// ULA is a uniform linear array.
type ULA struct {
	Sensors int
	// KD is the wavenumber times the element spacing, in radians.
	KD float64
}

// Steering returns the array's steering vector towards thetaDeg.
func (u ULA) Steering(thetaDeg float64) []complex128 {
	return Steering(thetaDeg, u.KD, u.Sensors)
}

// KD returns the inter-element phase scale 2π·spacing/wavelength.
func KD(spacing, wavelength float64) float64 {
	return 2 * math.Pi * spacing / wavelength
}
