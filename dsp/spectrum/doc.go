// Package spectrum provides spectral estimates of complex baseband series:
// magnitude and power of complex bins, the periodogram, the Kaiser-windowed
// modified periodogram and a short-time Fourier transform for inspecting
// pulses such as LFM chirps.
//
// Frequency axes are centred: bins run from -fs/2 to just below fs/2.
package spectrum
