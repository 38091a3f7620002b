package core

import (
	"errors"
	"math"
)

const defaultEpsilon = 1e-12

// ErrEmptyInput is returned by slice helpers given no data.
var ErrEmptyInput = errors.New("core: empty input")

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}

// MaxIndex returns the index and value of the largest element.
// Returns -1 for empty input. NaN values are skipped.
func MaxIndex(data []float64) (int, float64) {
	idx := -1
	best := math.Inf(-1)
	for i, v := range data {
		if math.IsNaN(v) {
			continue
		}
		if idx < 0 || v > best {
			idx = i
			best = v
		}
	}
	return idx, best
}

// MinIndex returns the index and value of the smallest element.
// Returns -1 for empty input. NaN values are skipped.
func MinIndex(data []float64) (int, float64) {
	idx := -1
	best := math.Inf(1)
	for i, v := range data {
		if math.IsNaN(v) {
			continue
		}
		if idx < 0 || v < best {
			idx = i
			best = v
		}
	}
	return idx, best
}

// NormalizePowerDB returns 10*log10(p/max(p)) for a power curve.
// The largest value maps to 0 dB. A curve whose maximum is zero maps to
// all -Inf.
func NormalizePowerDB(power []float64) ([]float64, error) {
	if len(power) == 0 {
		return nil, ErrEmptyInput
	}

	_, peak := MaxIndex(power)
	out := make([]float64, len(power))
	for i, v := range power {
		if peak == 0 {
			out[i] = math.Inf(-1)
			continue
		}
		out[i] = LinearPowerToDB(v / peak)
	}
	return out, nil
}

// NormalizeMagnitudeDB returns 20*log10(m/max(m) + floor) for an amplitude
// curve. A positive floor keeps zero samples finite.
func NormalizeMagnitudeDB(magnitude []float64, floor float64) ([]float64, error) {
	if len(magnitude) == 0 {
		return nil, ErrEmptyInput
	}
	if floor < 0 {
		floor = 0
	}

	_, peak := MaxIndex(magnitude)
	out := make([]float64, len(magnitude))
	for i, v := range magnitude {
		ratio := 0.0
		if peak > 0 {
			ratio = v / peak
		}
		out[i] = LinearToDB(ratio + floor)
	}
	return out, nil
}
