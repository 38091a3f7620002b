// Package array describes uniform linear sensor arrays: steering vectors and
// the angle grids that spatial spectra are evaluated on. Pattern computes
// the weighted beam pattern of any linear layout.
//
// Angles are in degrees measured from broadside. The phase progression
// between adjacent sensors is kd·sin(θ), where kd is the wavenumber times the
// element spacing (π for half-wavelength spacing).
package array
