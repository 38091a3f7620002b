package conv

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// directThreshold is the shorter input length up to which the direct
// O(N*M) method is used.
const directThreshold = 64

// CorrelateComplex computes the full cross-correlation
//
//	c[k] = Σ a[n+k]·conj(b[n])
//
// of complex sequences. The result has length len(a) + len(b) - 1 and
// output index i corresponds to lag i - (len(b) - 1).
//
// Short inputs use direct summation, longer ones FFT correlation.
func CorrelateComplex(a, b []complex128) ([]complex128, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}
	if min(len(a), len(b)) <= directThreshold {
		return CorrelateComplexDirect(a, b)
	}
	return CorrelateComplexFFT(a, b)
}

// CorrelateComplexMode computes cross-correlation with the specified output
// mode. ModeSame matches numpy.correlate(a, b, "same") when len(a) >= len(b).
func CorrelateComplexMode(a, b []complex128, mode Mode) ([]complex128, error) {
	full, err := CorrelateComplex(a, b)
	if err != nil {
		return nil, err
	}
	return trimToMode(full, len(a), len(b), mode), nil
}

// CorrelateComplexDirect computes the full cross-correlation by direct
// summation.
func CorrelateComplexDirect(a, b []complex128) ([]complex128, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	n, m := len(a), len(b)
	out := make([]complex128, n+m-1)
	for i := range out {
		lag := i - (m - 1)
		j0 := max(0, -lag)
		j1 := min(m, n-lag)
		var sum complex128
		for j := j0; j < j1; j++ {
			sum += a[j+lag] * cmplx.Conj(b[j])
		}
		out[i] = sum
	}
	return out, nil
}

// CorrelateComplexFFT computes the full cross-correlation as
// IFFT(FFT(a)·conj(FFT(b))) with zero padding to avoid circular wrap.
func CorrelateComplexFFT(a, b []complex128) ([]complex128, error) {
	c, err := NewCorrelator(b, len(a))
	if err != nil {
		return nil, err
	}
	return c.Correlate(a)
}

// Norm returns the Euclidean norm of x.
func Norm(x []complex128) float64 {
	var sum float64
	for _, v := range x {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}
	return math.Sqrt(sum)
}

// FindPeakComplex returns the index and value of the sample with the
// largest magnitude. It returns -1 for empty input.
func FindPeakComplex(corr []complex128) (index int, value complex128) {
	if len(corr) == 0 {
		return -1, 0
	}
	best := -1.0
	for i, v := range corr {
		if m := real(v)*real(v) + imag(v)*imag(v); m > best {
			best = m
			index = i
			value = v
		}
	}
	return index, value
}

// LagFromIndex converts a full correlation result index to a lag value.
// For a correlation of signals with lengths lenA and lenB,
// the lag at index i is i - (lenB - 1).
func LagFromIndex(index, lenB int) int {
	return index - (lenB - 1)
}

// IndexFromLag converts a lag value to a full correlation result index.
func IndexFromLag(lag, lenB int) int {
	return lag + (lenB - 1)
}

// LagFromModeIndex converts an index into a ModeSame or ModeValid result
// back to a lag.
func LagFromModeIndex(index, lenA, lenB int, mode Mode) int {
	return LagFromIndex(index+modeOffset(lenA, lenB, mode), lenB)
}

// Correlator correlates inputs against a fixed template using a cached
// template spectrum. It is not safe for concurrent use.
type Correlator struct {
	// Conjugated template in frequency domain
	templateFFT []complex128

	templateLen int
	maxInputLen int
	fftSize     int

	plan *algofft.Plan[complex128]

	// Scratch buffer
	work []complex128
}

// NewCorrelator prepares a correlator for template and inputs of up to
// maxInputLen samples.
func NewCorrelator(template []complex128, maxInputLen int) (*Correlator, error) {
	if len(template) == 0 {
		return nil, ErrEmptyKernel
	}
	if maxInputLen <= 0 {
		return nil, ErrEmptyInput
	}

	fftSize := nextPowerOf2(maxInputLen + len(template) - 1)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	c := &Correlator{
		templateFFT: make([]complex128, fftSize),
		templateLen: len(template),
		maxInputLen: maxInputLen,
		fftSize:     fftSize,
		plan:        plan,
		work:        make([]complex128, fftSize),
	}

	padded := make([]complex128, fftSize)
	copy(padded, template)
	if err := plan.Forward(c.templateFFT, padded); err != nil {
		return nil, fmt.Errorf("conv: failed to compute template FFT: %w", err)
	}
	for i, v := range c.templateFFT {
		c.templateFFT[i] = cmplx.Conj(v)
	}
	return c, nil
}

// TemplateLen returns the template length.
func (c *Correlator) TemplateLen() int { return c.templateLen }

// FFTSize returns the FFT size used internally.
func (c *Correlator) FFTSize() int { return c.fftSize }

// Correlate returns the full cross-correlation of a with the template.
func (c *Correlator) Correlate(a []complex128) ([]complex128, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	out := make([]complex128, len(a)+c.templateLen-1)
	if err := c.CorrelateTo(out, a); err != nil {
		return nil, err
	}
	return out, nil
}

// CorrelateTo writes the full cross-correlation of a with the template into
// dst, which must have length len(a) + TemplateLen() - 1.
func (c *Correlator) CorrelateTo(dst, a []complex128) error {
	n, m := len(a), c.templateLen
	if n == 0 {
		return ErrEmptyInput
	}
	if n > c.maxInputLen {
		return fmt.Errorf("%w: input of %d samples exceeds %d", ErrLengthMismatch, n, c.maxInputLen)
	}
	if len(dst) != n+m-1 {
		return fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, n+m-1, len(dst))
	}

	copy(c.work, a)
	clear(c.work[n:])
	if err := c.plan.Forward(c.work, c.work); err != nil {
		return fmt.Errorf("conv: forward FFT failed: %w", err)
	}
	for i := range c.work {
		c.work[i] *= c.templateFFT[i]
	}
	if err := c.plan.Inverse(c.work, c.work); err != nil {
		return fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	// Non-negative lags sit at the start of the circular result, negative
	// lags wrap to the end.
	for i := 0; i < n; i++ {
		dst[m-1+i] = c.work[i]
	}
	for i := 0; i < m-1; i++ {
		dst[i] = c.work[c.fftSize-m+1+i]
	}
	return nil
}
