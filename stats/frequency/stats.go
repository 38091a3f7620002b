package frequency

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-sonar/dsp/core"
	"github.com/cwbudde/algo-sonar/dsp/spectrum"
)

// Fractions used by Calculate.
const (
	RolloffFraction  = 0.85
	OccupiedFraction = 0.90
)

// ErrLengthMismatch is returned when the frequency axis and the spectrum
// differ in length.
var ErrLengthMismatch = errors.New("frequency: axis and spectrum length mismatch")

// Stats holds statistics of a power spectrum.
type Stats struct {
	BinCount      int
	Peak          float64 // largest bin power
	PeakFrequency float64 // Hz
	Energy        float64 // sum of bin powers
	// Spectral shape descriptors
	Centroid  float64 // power-weighted mean frequency (Hz)
	Spread    float64 // power-weighted standard deviation around Centroid (Hz)
	Flatness  float64 // Wiener entropy, 0..1
	Rolloff   float64 // frequency below which RolloffFraction of the energy lies (Hz)
	Bandwidth float64 // half-power width around the peak (Hz)
	// OccupiedLow and OccupiedHigh bound the central OccupiedFraction of
	// the energy.
	OccupiedLow, OccupiedHigh float64
}

// OccupiedBandwidth returns OccupiedHigh − OccupiedLow.
func (s Stats) OccupiedBandwidth() float64 {
	return s.OccupiedHigh - s.OccupiedLow
}

// Calculate computes all statistics of power (linear scale, NOT dB) sampled
// at freqs. freqs must be ascending, as returned by spectrum.Frequencies.
func Calculate(freqs, power []float64) (Stats, error) {
	if err := validate(freqs, power); err != nil {
		return Stats{}, err
	}

	var s Stats
	s.BinCount = len(power)
	peakBin, peak := core.MaxIndex(power)
	if peakBin < 0 {
		return Stats{}, fmt.Errorf("%w: no finite bins", core.ErrEmptyInput)
	}
	s.Peak = peak
	s.PeakFrequency = freqs[peakBin]
	for _, p := range power {
		s.Energy += p
	}

	s.Centroid = centroid(freqs, power, s.Energy)
	s.Spread = spread(freqs, power, s.Centroid, s.Energy)
	s.Flatness = flatness(power)
	s.Rolloff = cumulativeFrequency(freqs, power, RolloffFraction, s.Energy)
	s.Bandwidth = bandwidth(freqs, power, peakBin)
	s.OccupiedLow = cumulativeFrequency(freqs, power, (1-OccupiedFraction)/2, s.Energy)
	s.OccupiedHigh = cumulativeFrequency(freqs, power, (1+OccupiedFraction)/2, s.Energy)

	return s, nil
}

// FromSignal computes the statistics of data's periodogram, zero-padded to
// zeroPad times its length.
func FromSignal(data []complex128, sampleRate float64, zeroPad int) (Stats, error) {
	power, err := spectrum.Periodogram(data, zeroPad)
	if err != nil {
		return Stats{}, fmt.Errorf("frequency: %w", err)
	}
	return Calculate(spectrum.Frequencies(len(power), sampleRate), power)
}

// Centroid returns the spectral centroid in Hz.
//
//	centroid = sum(f_i * P_i) / sum(P_i)
func Centroid(freqs, power []float64) float64 {
	if validate(freqs, power) != nil {
		return 0
	}
	sum := 0.0
	for _, p := range power {
		sum += p
	}
	return centroid(freqs, power, sum)
}

func centroid(freqs, power []float64, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	weighted := 0.0
	for i, p := range power {
		weighted += freqs[i] * p
	}
	return weighted / sum
}

func spread(freqs, power []float64, cent, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	weighted := 0.0
	for i, p := range power {
		diff := freqs[i] - cent
		weighted += diff * diff * p
	}
	return math.Sqrt(weighted / sum)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
//	Flatness = exp(mean(log(P_i))) / mean(P_i)
//
// A spectrum with any zero bin has flatness 0.
func Flatness(power []float64) float64 {
	return flatness(power)
}

func flatness(power []float64) float64 {
	if len(power) == 0 {
		return 0
	}

	sumLin, sumLog := 0.0, 0.0
	for _, p := range power {
		if p <= 0 {
			return 0
		}
		sumLin += p
		sumLog += math.Log(p)
	}

	n := float64(len(power))
	return math.Exp(sumLog/n) / (sumLin / n)
}

// Rolloff returns the frequency below which fraction (0..1) of the
// spectral energy lies.
func Rolloff(freqs, power []float64, fraction float64) float64 {
	if validate(freqs, power) != nil {
		return 0
	}
	energy := 0.0
	for _, p := range power {
		energy += p
	}
	return cumulativeFrequency(freqs, power, fraction, energy)
}

func cumulativeFrequency(freqs, power []float64, fraction, energy float64) float64 {
	if energy == 0 {
		return freqs[0]
	}
	threshold := fraction * energy
	cum := 0.0
	for i, p := range power {
		cum += p
		if cum >= threshold {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}

// Bandwidth returns the half-power (−3 dB) width around the spectral peak
// in Hz. Crossings are interpolated linearly between bins; a side that
// never drops is clamped to the end of the axis.
func Bandwidth(freqs, power []float64) float64 {
	if validate(freqs, power) != nil {
		return 0
	}
	peakBin, _ := core.MaxIndex(power)
	if peakBin < 0 {
		return 0
	}
	return bandwidth(freqs, power, peakBin)
}

func bandwidth(freqs, power []float64, peakBin int) float64 {
	n := len(power)
	peak := power[peakBin]
	if n < 2 || peak <= 0 {
		return 0
	}
	threshold := peak / 2

	lower := freqs[0]
	for i := peakBin; i >= 1; i-- {
		if power[i-1] <= threshold && power[i] > threshold {
			lower = interpFreq(freqs[i-1], freqs[i], power[i-1], power[i], threshold)
			break
		}
	}

	upper := freqs[n-1]
	for i := peakBin; i < n-1; i++ {
		if power[i+1] <= threshold && power[i] > threshold {
			upper = interpFreq(freqs[i], freqs[i+1], power[i], power[i+1], threshold)
			break
		}
	}

	return max(upper-lower, 0)
}

// interpFreq linearly interpolates the frequency where the power crosses
// threshold between two neighbouring bins.
func interpFreq(fLow, fHigh, pLow, pHigh, threshold float64) float64 {
	denom := pHigh - pLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}
	t := (threshold - pLow) / denom
	return fLow + t*(fHigh-fLow)
}

func validate(freqs, power []float64) error {
	if len(power) == 0 {
		return core.ErrEmptyInput
	}
	if len(freqs) != len(power) {
		return fmt.Errorf("%w: %d frequencies, %d bins", ErrLengthMismatch, len(freqs), len(power))
	}
	return nil
}
