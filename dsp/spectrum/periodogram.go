package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-sonar/dsp/window"
)

// Option configures the modified periodogram and the STFT.
type Option func(*config)

type config struct {
	window  window.Type
	winOpts []window.Option
}

func defaultConfig() config {
	return config{
		window:  window.TypeKaiser,
		winOpts: []window.Option{window.WithAlpha(window.DefaultKaiserBeta)},
	}
}

// WithWindow selects the taper applied by ModifiedPeriodogram and STFT.
// The default is a symmetric Kaiser window with beta 4.
func WithWindow(t window.Type, opts ...window.Option) Option {
	return func(cfg *config) {
		cfg.window = t
		cfg.winOpts = opts
	}
}

// Periodogram returns (1/N)·|X[k]|² of data zero-padded to
// zeroPad·len(data) points, with bins ordered from -fs/2 upwards.
func Periodogram(data []complex128, zeroPad int) ([]float64, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if zeroPad < 1 {
		return nil, fmt.Errorf("%w: zero padding factor %d", ErrInvalidArgument, zeroPad)
	}

	spec, err := transform(data, len(data)*zeroPad)
	if err != nil {
		return nil, err
	}

	p := Power(spec)
	inv := 1 / float64(len(data))
	for i := range p {
		p[i] *= inv
	}
	return Shift(p), nil
}

// ModifiedPeriodogram windows data before the periodogram and divides by
// the window energy (1/N)·Σw², so white noise keeps its level.
func ModifiedPeriodogram(data []complex128, zeroPad int, opts ...Option) ([]float64, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return modifiedPeriodogram(data, zeroPad, cfg)
}

func modifiedPeriodogram(data []complex128, zeroPad int, cfg config) ([]float64, error) {
	w := window.Generate(cfg.window, len(data), cfg.winOpts...)
	u, err := window.EnergyGain(w)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}
	if u == 0 {
		return nil, fmt.Errorf("%w: window has zero energy", ErrInvalidArgument)
	}

	tapered := make([]complex128, len(data))
	for i, v := range data {
		tapered[i] = v * complex(w[i], 0)
	}

	p, err := Periodogram(tapered, zeroPad)
	if err != nil {
		return nil, err
	}
	inv := 1 / u
	for i := range p {
		p[i] *= inv
	}
	return p, nil
}

// Frequencies returns the centred frequency axis in Hz for n bins at
// sampleRate, matching the ordering of Periodogram.
func Frequencies(n int, sampleRate float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	df := sampleRate / float64(n)
	for i := range out {
		out[i] = float64(i-n/2) * df
	}
	return out
}

// Shift reorders FFT bins so that the zero-frequency bin is at index n/2.
func Shift[T any](in []T) []T {
	n := len(in)
	out := make([]T, n)
	for i := range out {
		out[i] = in[(i-n/2+n)%n]
	}
	return out
}

// transform returns the size-point DFT of data zero-padded to size. Sizes
// the FFT backend cannot plan fall back to direct evaluation.
func transform(data []complex128, size int) ([]complex128, error) {
	padded := make([]complex128, size)
	copy(padded, data)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return directDFT(padded), nil
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, padded); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}
	return out, nil
}

func directDFT(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := range out {
		var sum complex128
		for i, v := range x {
			angle := -2 * math.Pi * float64((k*i)%n) / float64(n)
			sum += v * cmplx.Exp(complex(0, angle))
		}
		out[k] = sum
	}
	return out
}
