package interp

import (
	"errors"
	"fmt"
)

// ErrInvalidLength is returned when a resampling request has too few input
// or output samples.
var ErrInvalidLength = errors.New("interp: invalid length")

// Mode selects the interpolation kernel used by Resample.
type Mode int

const (
	// ModeHermite uses 4-point cubic Hermite interpolation.
	ModeHermite Mode = iota
	// ModeLinear uses 2-point linear interpolation.
	ModeLinear
)

func (m Mode) String() string {
	switch m {
	case ModeHermite:
		return "hermite"
	case ModeLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// Linear2 interpolates from x0 to x1.
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// Resample returns n samples spanning the same interval as data, so
// out[0] = data[0] and out[n-1] = data[len(data)-1]. Samples beyond the ends
// are extended by repeating the edge value.
func Resample(data []float64, n int, mode Mode) ([]float64, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 input samples, got %d", ErrInvalidLength, len(data))
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 output samples, got %d", ErrInvalidLength, n)
	}

	last := len(data) - 1
	at := func(i int) float64 {
		return data[max(0, min(last, i))]
	}

	out := make([]float64, n)
	step := float64(last) / float64(n-1)
	for k := range out {
		pos := float64(k) * step
		i := int(pos)
		if i >= last {
			out[k] = data[last]
			continue
		}
		t := pos - float64(i)
		switch mode {
		case ModeLinear:
			out[k] = Linear2(t, data[i], data[i+1])
		default:
			out[k] = Hermite4(t, at(i-1), data[i], data[i+1], at(i+2))
		}
	}
	return out, nil
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}
