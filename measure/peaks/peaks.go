// Package peaks locates the dominant lobes of a spatial spectrum and
// measures their −3 dB widths. AnalyzeLobes measures the main lobe and side
// lobes of a beam pattern.
package peaks

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-sonar/dsp/core"
)

var (
	// ErrInsufficientPeaks is returned when the curve has fewer usable local
	// maxima than requested sources.
	ErrInsufficientPeaks = errors.New("peaks: fewer local maxima than sources")
	// ErrInvalidSourceCount is returned for a source count below one.
	ErrInvalidSourceCount = errors.New("peaks: source count must be positive")
	// ErrLengthMismatch is returned when paired slices differ in length.
	ErrLengthMismatch = errors.New("peaks: length mismatch")
)

// HalfPowerDrop is the level below a peak, in dB, that delimits its lobe.
const HalfPowerDrop = 3.0

// Edge is one −3 dB crossing of a lobe.
type Edge struct {
	Index int
	Angle float64
	// Found is false when the curve never fell 3 dB below the peak on this
	// side and the edge was clamped to the end of the curve.
	Found bool
}

// Peak is one selected local maximum.
type Peak struct {
	Index int
	Angle float64
	Level float64
	Left  Edge
	Right Edge
	// HalfWidth is the mean distance from the peak to its two edges.
	HalfWidth float64
}

// Result summarises a spectrum.
type Result struct {
	// DOA holds the selected peak angles in ascending order.
	DOA []float64
	// Peaks holds the selected peaks, strongest first.
	Peaks []Peak
	// Beamwidth is the mean HalfWidth over the selected peaks.
	Beamwidth float64
	// MinLevel is the smallest value of the curve.
	MinLevel float64
}

// Option configures Analyze.
type Option func(*config)

type config struct {
	minSeparation float64
}

func defaultConfig() config {
	return config{}
}

// WithMinSeparation discards a candidate peak closer than deg to a peak
// already selected. Zero disables the check.
func WithMinSeparation(deg float64) Option {
	return func(c *config) {
		if deg >= 0 {
			c.minSeparation = deg
		}
	}
}

// Analyze selects the ns strongest local maxima of curveDB (sampled on
// angles) and measures each one's −3 dB lobe.
func Analyze(angles, curveDB []float64, ns int, opts ...Option) (*Result, error) {
	if ns < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSourceCount, ns)
	}
	if len(angles) != len(curveDB) {
		return nil, fmt.Errorf("%w: %d angles, %d values", ErrLengthMismatch, len(angles), len(curveDB))
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	candidates := LocalMaxima(curveDB)
	sort.SliceStable(candidates, func(i, j int) bool {
		return curveDB[candidates[i]] > curveDB[candidates[j]]
	})

	selected := make([]int, 0, ns)
	for _, idx := range candidates {
		if len(selected) == ns {
			break
		}
		if cfg.minSeparation > 0 && tooClose(angles, selected, idx, cfg.minSeparation) {
			continue
		}
		selected = append(selected, idx)
	}
	if len(selected) < ns {
		return nil, fmt.Errorf("%w: found %d, want %d", ErrInsufficientPeaks, len(selected), ns)
	}

	res := &Result{
		DOA:   make([]float64, 0, ns),
		Peaks: make([]Peak, 0, ns),
	}
	for _, idx := range selected {
		p := measure(angles, curveDB, idx)
		res.Peaks = append(res.Peaks, p)
		res.DOA = append(res.DOA, p.Angle)
		res.Beamwidth += p.HalfWidth
	}
	res.Beamwidth /= float64(ns)
	sort.Float64s(res.DOA)
	_, res.MinLevel = core.MinIndex(curveDB)
	return res, nil
}

// LocalMaxima returns the indices of samples that rise strictly above the
// previous distinct level and fall strictly after. A flat top is reported
// at its middle sample (rounded down). The first and last samples are never
// maxima.
func LocalMaxima(curve []float64) []int {
	var out []int
	n := len(curve)
	i := 1
	for i < n-1 {
		if curve[i-1] < curve[i] {
			ahead := i + 1
			for ahead < n-1 && curve[ahead] == curve[i] {
				ahead++
			}
			if curve[ahead] < curve[i] {
				out = append(out, (i+ahead-1)/2)
				i = ahead
				continue
			}
		}
		i++
	}
	return out
}

func tooClose(angles []float64, selected []int, idx int, sep float64) bool {
	for _, s := range selected {
		if math.Abs(angles[s]-angles[idx]) < sep {
			return true
		}
	}
	return false
}

func measure(angles, curve []float64, idx int) Peak {
	threshold := curve[idx] - HalfPowerDrop
	left := walk(angles, curve, idx, -1, threshold)
	right := walk(angles, curve, idx, +1, threshold)
	return Peak{
		Index:     idx,
		Angle:     angles[idx],
		Level:     curve[idx],
		Left:      left,
		Right:     right,
		HalfWidth: (math.Abs(left.Angle-angles[idx]) + math.Abs(right.Angle-angles[idx])) / 2,
	}
}

// walk steps from idx in direction dir until the curve is at or below
// threshold, clamping at the ends of the curve.
func walk(angles, curve []float64, idx, dir int, threshold float64) Edge {
	i := idx
	for curve[i] > threshold {
		next := i + dir
		if next < 0 || next >= len(curve) {
			return Edge{Index: i, Angle: angles[i], Found: false}
		}
		i = next
	}
	return Edge{Index: i, Angle: angles[i], Found: true}
}

// MeanAbsoluteError returns mean |estimated[i] − truth[i]| after sorting
// both sets, pairing the k-th smallest estimate with the k-th smallest
// true value.
func MeanAbsoluteError(estimated, truth []float64) (float64, error) {
	if len(estimated) != len(truth) {
		return 0, fmt.Errorf("%w: %d estimates, %d true values", ErrLengthMismatch, len(estimated), len(truth))
	}
	if len(truth) == 0 {
		return 0, core.ErrEmptyInput
	}
	e := append([]float64(nil), estimated...)
	tr := append([]float64(nil), truth...)
	sort.Float64s(e)
	sort.Float64s(tr)
	var sum float64
	for i := range e {
		sum += math.Abs(e[i] - tr[i])
	}
	return sum / float64(len(e)), nil
}
