// Package resolution measures the 3 dB resolution of a point-scatterer
// image.
//
// The image is converted to normalised dB, slices along x and y are taken
// through the brightest pixel, each slice is resampled onto a fine uniform
// grid and the full width at the -3 dB level is measured by walking outward
// from the peak.
package resolution
