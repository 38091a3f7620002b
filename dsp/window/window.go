package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeKaiser
	TypeTukey
)

// DefaultKaiserBeta is the Kaiser shape used when no WithAlpha option is
// given.
const DefaultKaiserBeta = 4.0

var typeNames = map[Type]string{
	TypeRectangular: "rectangular",
	TypeHann:        "hann",
	TypeHamming:     "hamming",
	TypeBlackman:    "blackman",
	TypeKaiser:      "kaiser",
	TypeTukey:       "tukey",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType returns the window type for a case-insensitive name. An empty
// name selects TypeRectangular.
func ParseType(name string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "rect", "boxcar", "none":
		return TypeRectangular, nil
	case "hanning":
		return TypeHann, nil
	}
	for t, n := range typeNames {
		if n == key {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	alphaSet bool
	periodic bool
}

func defaultConfig() config {
	return config{}
}

// WithAlpha sets the shape parameter: beta for Kaiser, the taper fraction
// for Tukey. Other types ignore it.
func WithAlpha(v float64) Option {
	return func(cfg *config) {
		cfg.alpha = v
		cfg.alphaSet = true
	}
}

// WithPeriodic generates the DFT-even variant used for spectral analysis.
// The default is symmetric.
func WithPeriodic() Option {
	return func(cfg *config) {
		cfg.periodic = true
	}
}

func (c config) shape(t Type) float64 {
	if c.alphaSet {
		return c.alpha
	}
	switch t {
	case TypeKaiser:
		return DefaultKaiserBeta
	case TypeTukey:
		return 0.5
	default:
		return 0
	}
}

// Generate returns length coefficients of window t. It returns nil for a
// non-positive length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		x := samplePosition(i, length, cfg.periodic)
		out[i] = evalWindow(t, x, cfg)
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// ApplyComplex multiplies a complex buffer in-place by the selected window.
func ApplyComplex(t Type, buf []complex128, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	coeffs := Generate(t, len(buf), opts...)
	for i, c := range coeffs {
		buf[i] *= complex(c, 0)
	}
}

// Kaiser returns a symmetric Kaiser window with shape beta.
func Kaiser(size int, beta float64, opts ...Option) ([]float64, error) {
	if err := validateKaiser(size, beta); err != nil {
		return nil, err
	}

	return Generate(TypeKaiser, size, append(opts, WithAlpha(beta))...), nil
}

// Tukey returns a Tukey window with taper fraction alpha.
func Tukey(size int, alpha float64, opts ...Option) ([]float64, error) {
	if err := validateTukey(size, alpha); err != nil {
		return nil, err
	}

	return Generate(TypeTukey, size, append(opts, WithAlpha(alpha))...), nil
}

// EnergyGain returns the mean squared coefficient (1/N)·Σw². Dividing a
// windowed periodogram by it restores the power of white noise.
func EnergyGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sumSquares := 0.0
	for _, c := range coeffs {
		sumSquares += c * c
	}

	return sumSquares / float64(len(coeffs)), nil
}

// EquivalentNoiseBandwidth returns the window ENBW in bins.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

// ApplyCoefficients multiplies samples with coefficients and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

func evalWindow(t Type, x float64, cfg config) float64 {
	switch t {
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeKaiser:
		return kaiserAt(x, cfg.shape(t))
	case TypeTukey:
		return tukeyAt(x, cfg.shape(t))
	default:
		return 1
	}
}

// cosineFromCoeffs evaluates Σ c_k·cos(2πkx).
func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(2*math.Pi*float64(k)*x)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}

func kaiserAt(x, beta float64) float64 {
	if beta <= 0 {
		return 1
	}

	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / besselI0(beta)
}

func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}

	if alpha >= 1 {
		return cosineFromCoeffs(x, hannCoeffs)
	}

	a := alpha / 2
	switch {
	case x < a:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-1)))
	case x <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-2/alpha+1)))
	}
}

// besselI0 returns a numerical approximation of the modified Bessel function I0.
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y

		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}

	y := 3.75 / ax

	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}
