package imaging

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGrid is returned for grid bounds that produce no pixels.
var ErrInvalidGrid = errors.New("imaging: invalid grid")

// Point is a position in metres. Arrays usually lie on the x axis and the
// imaged scene at positive y.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// GridConfig bounds the pixel grid. Each axis starts at its minimum
// (inclusive) and stops before its maximum.
type GridConfig struct {
	XMin  float64 `yaml:"x_min"`
	XMax  float64 `yaml:"x_max"`
	XStep float64 `yaml:"x_step"`
	YMin  float64 `yaml:"y_min"`
	YMax  float64 `yaml:"y_max"`
	YStep float64 `yaml:"y_step"`
}

// Grid holds the pixel centre coordinates along each axis.
type Grid struct {
	X []float64
	Y []float64
}

// NewGrid builds the pixel grid described by cfg.
func NewGrid(cfg GridConfig) (Grid, error) {
	x, err := axis("x", cfg.XMin, cfg.XMax, cfg.XStep)
	if err != nil {
		return Grid{}, err
	}
	y, err := axis("y", cfg.YMin, cfg.YMax, cfg.YStep)
	if err != nil {
		return Grid{}, err
	}
	return Grid{X: x, Y: y}, nil
}

func axis(name string, start, stop, step float64) ([]float64, error) {
	for _, v := range []float64{start, stop, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s axis has non-finite bound", ErrInvalidGrid, name)
		}
	}
	if step <= 0 || stop <= start {
		return nil, fmt.Errorf("%w: %s axis [%g, %g) step %g", ErrInvalidGrid, name, start, stop, step)
	}

	n := int(math.Ceil((stop-start)/step - 1e-9))
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out, nil
}

// Pixels returns the number of pixels.
func (g Grid) Pixels() int {
	return len(g.X) * len(g.Y)
}

// Nearest returns the indices of the pixel closest to p.
func (g Grid) Nearest(p Point) (ix, iy int) {
	return nearestIndex(g.X, p.X), nearestIndex(g.Y, p.Y)
}

func nearestIndex(axis []float64, v float64) int {
	best := 0
	for i, a := range axis {
		if math.Abs(a-v) < math.Abs(axis[best]-v) {
			best = i
		}
	}
	return best
}
