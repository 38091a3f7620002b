package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by spectral estimators.
var (
	ErrEmptyInput      = errors.New("spectrum: empty input")
	ErrInvalidArgument = errors.New("spectrum: invalid argument")
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

func split(in []complex128, re, im []float64) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// Magnitude returns |X[k]| for each complex value.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	MagnitudeTo(out, in)
	return out
}

// MagnitudeTo writes |X[k]| into dst, which must be at least len(in) long.
func MagnitudeTo(dst []float64, in []complex128) {
	if len(in) == 0 {
		return
	}
	re, im, buf := getScratch(len(in))
	split(in, re, im)
	vecmath.Magnitude(dst[:len(in)], re, im)
	putScratch(buf)
}

// Power returns |X[k]|^2 for each complex value.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	split(in, re, im)
	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// Phase returns arg(X[k]) for each complex value in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// UnwrapPhase returns a new phase slice with +/-2*pi discontinuities removed.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}
		out[i] = phase[i] + offset
	}
	return out
}

// InstantaneousFrequency returns the frequency in Hz between consecutive
// samples of a complex signal, estimated from the unwrapped phase. The
// result has len(x)-1 entries.
func InstantaneousFrequency(x []complex128, sampleRate float64) ([]float64, error) {
	if len(x) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrEmptyInput, len(x))
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %g", ErrInvalidArgument, sampleRate)
	}

	phase := UnwrapPhase(Phase(x))
	out := make([]float64, len(x)-1)
	scale := sampleRate / (2 * math.Pi)
	for i := range out {
		out[i] = (phase[i+1] - phase[i]) * scale
	}
	return out, nil
}
