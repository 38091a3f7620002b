package array

import (
	"fmt"
	"math"
)

// Default scan range in degrees.
const (
	DefaultStartDeg = -50.0
	DefaultStopDeg  = 50.0
	DefaultStepDeg  = 0.01
)

// AngleGrid returns start, start+step, ... for all values below stop.
// Values are computed as start + i·step to avoid accumulating rounding.
func AngleGrid(start, stop, step float64) ([]float64, error) {
	if !(step > 0) || math.IsInf(step, 0) || math.IsNaN(start) || math.IsNaN(stop) {
		return nil, fmt.Errorf("%w: start=%v stop=%v step=%v", ErrInvalidGrid, start, stop, step)
	}
	// The tolerance keeps a stop that lands on the grid exclusive despite
	// rounding in the division.
	n := int(math.Ceil((stop-start)/step - 1e-9))
	if n <= 0 {
		return nil, fmt.Errorf("%w: empty range [%v, %v)", ErrInvalidGrid, start, stop)
	}
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = start + float64(i)*step
	}
	return grid, nil
}

// DefaultAngleGrid returns the −50°..50° grid with 0.01° resolution.
func DefaultAngleGrid() []float64 {
	grid, _ := AngleGrid(DefaultStartDeg, DefaultStopDeg, DefaultStepDeg)
	return grid
}
