// Package frequency describes power spectra on an explicit frequency axis:
// centroid, spread, flatness, roll-off, −3 dB bandwidth and occupied
// bandwidth. It is used to check transmit pulses against their nominal
// centre frequency and bandwidth.
package frequency
