package resolution

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-sonar/dsp/core"
	"github.com/cwbudde/algo-sonar/dsp/interp"
	"github.com/cwbudde/algo-sonar/imaging"
)

const (
	// DefaultResampleLength is the number of points each slice is resampled to.
	DefaultResampleLength = 10000
	// DisplayFloor is added to the normalised magnitude before the dB
	// conversion, bounding empty pixels at -100 dB.
	DisplayFloor = 1e-5
	// HalfPowerDrop is the level below the peak, in dB, at which widths are
	// measured.
	HalfPowerDrop = 3.0
)

// Errors returned by the evaluator.
var (
	ErrEmptyImage     = errors.New("resolution: empty image")
	ErrLengthMismatch = errors.New("resolution: values and data length mismatch")
)

// Width is a -3 dB width along one axis.
type Width struct {
	// Value is the full width in axis units (metres for images).
	Value float64
	// Left and Right are the axis positions where the curve first falls to
	// the -3 dB level on either side of the peak.
	Left, Right float64
	// Bounded reports whether both crossings were found. An unbounded side
	// is clamped to the end of the axis.
	Bounded bool
}

// InWavelengths expresses the width in units of lambda.
func (w Width) InWavelengths(lambda float64) float64 {
	return w.Value / lambda
}

// Result holds the resolution along both image axes.
type Result struct {
	X, Y         Width
	PeakX, PeakY float64
}

// Option configures Evaluate.
type Option func(*config)

type config struct {
	resampleLength int
	mode           interp.Mode
}

func defaultConfig() config {
	return config{resampleLength: DefaultResampleLength, mode: interp.ModeHermite}
}

// WithResampleLength sets the number of points slices are resampled to.
// Values below 2 are ignored.
func WithResampleLength(n int) Option {
	return func(cfg *config) {
		if n >= 2 {
			cfg.resampleLength = n
		}
	}
}

// WithInterpolation selects the resampling kernel.
func WithInterpolation(mode interp.Mode) Option {
	return func(cfg *config) {
		cfg.mode = mode
	}
}

// Evaluate measures the -3 dB widths of the brightest scatterer in img.
// With several scatterers only the brightest is considered.
func Evaluate(img *imaging.Image, opts ...Option) (*Result, error) {
	if img == nil || len(img.X) < 2 || len(img.Y) < 2 || len(img.Data) != len(img.Y) {
		return nil, ErrEmptyImage
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	ix, iy, _ := img.Peak()
	if ix < 0 {
		return nil, ErrEmptyImage
	}
	db := img.MagnitudeDB(DisplayFloor)

	column := make([]float64, len(db))
	for y, row := range db {
		column[y] = row[ix]
	}

	xw, err := sliceWidth(img.X, db[iy], cfg)
	if err != nil {
		return nil, fmt.Errorf("resolution: x axis: %w", err)
	}
	yw, err := sliceWidth(img.Y, column, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolution: y axis: %w", err)
	}

	return &Result{X: xw, Y: yw, PeakX: img.X[ix], PeakY: img.Y[iy]}, nil
}

func sliceWidth(axis, slice []float64, cfg config) (Width, error) {
	data, err := interp.Resample(slice, cfg.resampleLength, cfg.mode)
	if err != nil {
		return Width{}, err
	}
	values := interp.Linspace(axis[0], axis[len(axis)-1], cfg.resampleLength)
	return FWHM(values, data)
}

// FWHM returns the width of the main lobe of dataDB at HalfPowerDrop below
// its maximum. values holds the axis position of every sample.
func FWHM(values, dataDB []float64) (Width, error) {
	if len(dataDB) == 0 {
		return Width{}, core.ErrEmptyInput
	}
	if len(values) != len(dataDB) {
		return Width{}, fmt.Errorf("%w: %d values, %d samples", ErrLengthMismatch, len(values), len(dataDB))
	}

	peak, level := core.MaxIndex(dataDB)
	threshold := level - HalfPowerDrop

	left, leftFound := peak, false
	for i := peak; i >= 0; i-- {
		left = i
		if dataDB[i] <= threshold {
			leftFound = true
			break
		}
	}

	right, rightFound := peak, false
	for i := peak; i < len(dataDB); i++ {
		right = i
		if dataDB[i] <= threshold {
			rightFound = true
			break
		}
	}

	centre := values[peak]
	return Width{
		Value:   math.Abs(centre-values[left]) + math.Abs(values[right]-centre),
		Left:    values[left],
		Right:   values[right],
		Bounded: leftFound && rightFound,
	}, nil
}
