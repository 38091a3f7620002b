package peaks

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-sonar/dsp/core"
)

// Lobes describes the main lobe and side lobes of a beam pattern.
type Lobes struct {
	// Main is the global maximum with its −3 dB edges.
	Main Peak
	// Width3dB and Width6dB are the main-lobe widths between the edges at
	// 3 dB and 6 dB below the peak.
	Width3dB float64
	Width6dB float64
	// Sidelobes counts the local maxima other than the main lobe.
	Sidelobes int
	// SidelobeMax and SidelobeMean are the highest and the mean side-lobe
	// level. Both are −Inf without side lobes.
	SidelobeMax  float64
	SidelobeMean float64
	// SidelobeWidth is the mean null-to-null width of the side lobes, or
	// zero when fewer than two nulls flank them.
	SidelobeWidth float64
}

// AnalyzeLobes measures the lobes of patternDB sampled on angles. Nulls
// are the local minima; the interval between the two nulls around the main
// lobe is not a side lobe.
func AnalyzeLobes(angles, patternDB []float64) (*Lobes, error) {
	if len(angles) != len(patternDB) {
		return nil, fmt.Errorf("%w: %d angles, %d values", ErrLengthMismatch, len(angles), len(patternDB))
	}
	idx, _ := core.MaxIndex(patternDB)
	if idx < 0 {
		return nil, core.ErrEmptyInput
	}

	res := &Lobes{
		Main:         measure(angles, patternDB, idx),
		SidelobeMax:  math.Inf(-1),
		SidelobeMean: math.Inf(-1),
	}
	res.Width3dB = res.Main.Right.Angle - res.Main.Left.Angle
	threshold := patternDB[idx] - 2*HalfPowerDrop
	res.Width6dB = walk(angles, patternDB, idx, +1, threshold).Angle - walk(angles, patternDB, idx, -1, threshold).Angle

	var sum float64
	for _, i := range LocalMaxima(patternDB) {
		if i == idx {
			continue
		}
		res.Sidelobes++
		sum += patternDB[i]
		res.SidelobeMax = math.Max(res.SidelobeMax, patternDB[i])
	}
	if res.Sidelobes > 0 {
		res.SidelobeMean = sum / float64(res.Sidelobes)
	}

	nulls := LocalMaxima(negate(patternDB))
	var widths float64
	var count int
	for k := 1; k < len(nulls); k++ {
		lo, hi := nulls[k-1], nulls[k]
		if lo < idx && idx < hi {
			continue
		}
		widths += angles[hi] - angles[lo]
		count++
	}
	if count > 0 {
		res.SidelobeWidth = widths / float64(count)
	}
	return res, nil
}

func negate(curve []float64) []float64 {
	out := make([]float64, len(curve))
	for i, v := range curve {
		out[i] = -v
	}
	return out
}
