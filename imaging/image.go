package imaging

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-sonar/dsp/core"
	"github.com/cwbudde/algo-sonar/dsp/spectrum"
)

// Image is a complex pixel array indexed Data[iy][ix].
type Image struct {
	X    []float64
	Y    []float64
	Data [][]complex128
}

// NewImage returns a zero image over grid.
func NewImage(grid Grid) *Image {
	data := make([][]complex128, len(grid.Y))
	backing := make([]complex128, grid.Pixels())
	for iy := range data {
		data[iy] = backing[iy*len(grid.X) : (iy+1)*len(grid.X)]
	}
	return &Image{X: grid.X, Y: grid.Y, Data: data}
}

// Grid returns the coordinate grid of the image.
func (img *Image) Grid() Grid {
	return Grid{X: img.X, Y: img.Y}
}

// Add accumulates other into img. Both images must share the same shape.
func (img *Image) Add(other *Image) error {
	if len(other.Data) != len(img.Data) {
		return fmt.Errorf("imaging: add: %d rows vs %d", len(other.Data), len(img.Data))
	}
	for iy, row := range other.Data {
		dst := img.Data[iy]
		if len(row) != len(dst) {
			return fmt.Errorf("imaging: add: row %d has %d pixels vs %d", iy, len(row), len(dst))
		}
		for ix, v := range row {
			dst[ix] += v
		}
	}
	return nil
}

// Magnitude returns |I| per pixel.
func (img *Image) Magnitude() [][]float64 {
	out := make([][]float64, len(img.Data))
	for iy, row := range img.Data {
		out[iy] = make([]float64, len(row))
		spectrum.MagnitudeTo(out[iy], row)
	}
	return out
}

// MagnitudeDB returns 20·log10(|I|/max|I| + floor) per pixel. The floor
// keeps empty pixels finite; 1e-5 limits the display to -100 dB.
func (img *Image) MagnitudeDB(floor float64) [][]float64 {
	mag := img.Magnitude()
	peak := 0.0
	for _, row := range mag {
		if _, v := core.MaxIndex(row); v > peak {
			peak = v
		}
	}
	for _, row := range mag {
		for ix, v := range row {
			ratio := 0.0
			if peak > 0 {
				ratio = v / peak
			}
			row[ix] = core.LinearToDB(ratio + floor)
		}
	}
	return mag
}

// Phase returns arg(I) per pixel in radians.
func (img *Image) Phase() [][]float64 {
	out := make([][]float64, len(img.Data))
	for iy, row := range img.Data {
		out[iy] = spectrum.Phase(row)
	}
	return out
}

// Peak returns the indices and value of the pixel with the largest
// magnitude. It returns -1, -1 for an empty image.
func (img *Image) Peak() (ix, iy int, value complex128) {
	ix, iy = -1, -1
	best := -1.0
	for y, row := range img.Data {
		for x, v := range row {
			if m := cmplx.Abs(v); m > best {
				best = m
				ix, iy, value = x, y, v
			}
		}
	}
	return ix, iy, value
}
