// Package synth generates synthetic narrowband array data: plane-wave
// sources with random per-snapshot phase observed by a ULA in spatially
// white complex Gaussian noise.
package synth

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/cwbudde/algo-sonar/array"
	"github.com/cwbudde/algo-sonar/linalg"
)

// ErrInvalidScenario is returned by Scenario.Validate and Generate.
var ErrInvalidScenario = errors.New("synth: invalid scenario")

// Source is one narrowband emitter.
type Source struct {
	// DOA is the direction of arrival in degrees from broadside.
	DOA float64 `yaml:"doa"`
	// SNR is the per-sensor signal-to-noise ratio in dB.
	SNR float64 `yaml:"snr"`
	// Phase is the constant phase offset in degrees.
	Phase float64 `yaml:"phase"`
	// Omega is the normalised pulsation in rad per unit time.
	Omega float64 `yaml:"omega"`
}

// Scenario describes a synthetic recording.
type Scenario struct {
	Sensors   int      `yaml:"sensors"`
	Snapshots int      `yaml:"snapshots"`
	Sources   []Source `yaml:"sources"`
	// Spacing is the element spacing and Wavenumber the normalised
	// wavenumber; their product is kd.
	Spacing    float64 `yaml:"spacing"`
	Wavenumber float64 `yaml:"wavenumber"`
	// Interval is the time between snapshots.
	Interval float64 `yaml:"interval"`
	// Coherent makes all sources share the first source's random phase.
	Coherent bool `yaml:"coherent"`
	// NoiseVariance is the variance of the real and of the imaginary noise
	// part; the complex noise power is twice this.
	NoiseVariance float64 `yaml:"noise_variance"`
	Seed          int64   `yaml:"seed"`
}

// IncoherentScenario returns two uncorrelated 0 dB sources at 0° and −10°
// seen by a 10-element half-wavelength array over 100 snapshots.
func IncoherentScenario() Scenario {
	return Scenario{
		Sensors:   10,
		Snapshots: 100,
		Sources: []Source{
			{DOA: 0, SNR: 0, Phase: 0, Omega: 2 * math.Pi},
			{DOA: -10, SNR: 0, Phase: 45, Omega: 2 * math.Pi},
		},
		Spacing:       0.5,
		Wavenumber:    2 * math.Pi,
		Interval:      0.5,
		NoiseVariance: 1,
		Seed:          0,
	}
}

// CoherentScenario returns two fully coherent 0 dB sources at 0° and 10°.
func CoherentScenario() Scenario {
	s := IncoherentScenario()
	s.Sources[1].DOA = 10
	s.Coherent = true
	return s
}

// WithSNR returns a copy of s with every source set to snr dB.
func (s Scenario) WithSNR(snr float64) Scenario {
	out := s
	out.Sources = append([]Source(nil), s.Sources...)
	for i := range out.Sources {
		out.Sources[i].SNR = snr
	}
	return out
}

// KD returns the wavenumber times the element spacing.
func (s Scenario) KD() float64 { return s.Wavenumber * s.Spacing }

// DOAs returns the true directions of arrival in source order.
func (s Scenario) DOAs() []float64 {
	out := make([]float64, len(s.Sources))
	for i, src := range s.Sources {
		out[i] = src.DOA
	}
	return out
}

// Validate reports whether the scenario can be generated.
func (s Scenario) Validate() error {
	switch {
	case s.Sensors < 1:
		return fmt.Errorf("%w: sensors=%d", ErrInvalidScenario, s.Sensors)
	case s.Snapshots < 1:
		return fmt.Errorf("%w: snapshots=%d", ErrInvalidScenario, s.Snapshots)
	case len(s.Sources) == 0:
		return fmt.Errorf("%w: no sources", ErrInvalidScenario)
	case s.NoiseVariance < 0 || math.IsNaN(s.NoiseVariance):
		return fmt.Errorf("%w: noise variance %v", ErrInvalidScenario, s.NoiseVariance)
	}
	return nil
}

// amplitude returns √(2·10^(SNR/10)), the source amplitude matching a
// complex noise power of 2 at 0 dB.
func amplitude(snrDB float64) float64 {
	return math.Sqrt2 * math.Pow(10, snrDB/20)
}

// Generate returns the M×N sensor data X = A·S + noise.
func (s Scenario) Generate() ([][]complex128, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	m, n := s.Sensors, s.Snapshots
	rng := rand.New(rand.NewSource(s.Seed))
	sigma := math.Sqrt(s.NoiseVariance)

	x := make([][]complex128, m)
	for i := range x {
		x[i] = make([]complex128, n)
		for t := range x[i] {
			x[i][t] = complex(sigma*rng.NormFloat64(), sigma*rng.NormFloat64())
		}
	}

	phases := make([][]float64, len(s.Sources))
	for k := range phases {
		phases[k] = make([]float64, n)
		for t := range phases[k] {
			phases[k][t] = 2 * math.Pi * rng.Float64()
		}
	}
	if s.Coherent {
		for k := 1; k < len(phases); k++ {
			phases[k] = phases[0]
		}
	}

	kd := s.KD()
	for k, src := range s.Sources {
		a := array.Steering(src.DOA, kd, m)
		amp := amplitude(src.SNR)
		offset := src.Phase * math.Pi / 180
		for t := 0; t < n; t++ {
			arg := phases[k][t] + offset + src.Omega*s.Interval*float64(t)
			sig := complex(amp, 0) * cmplx.Exp(complex(0, arg))
			for i := 0; i < m; i++ {
				x[i][t] += a[i] * sig
			}
		}
	}
	return x, nil
}

// Expected returns the ensemble correlation matrix of the scenario.
// Incoherent sources contribute Σ p_k·a_k·a_kᴴ. Coherent sources are summed
// into a single wavefront v = Σ amp_k·e^{jγ_k}·a_k contributing v·vᴴ; this
// assumes every source shares the same pulsation.
func (s Scenario) Expected() (*linalg.Matrix, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	noise := 2 * s.NoiseVariance
	kd := s.KD()
	if !s.Coherent {
		angles := s.DOAs()
		powers := make([]float64, len(s.Sources))
		for i, src := range s.Sources {
			amp := amplitude(src.SNR)
			powers[i] = amp * amp
		}
		return ModelCovariance(angles, powers, noise, kd, s.Sensors)
	}

	v := make([]complex128, s.Sensors)
	for _, src := range s.Sources {
		a := array.Steering(src.DOA, kd, s.Sensors)
		w := complex(amplitude(src.SNR), 0) * cmplx.Exp(complex(0, src.Phase*math.Pi/180))
		for i := range v {
			v[i] += w * a[i]
		}
	}
	return linalg.Outer(v, v).AddDiagonal(complex(noise, 0))
}

// ModelCovariance returns A·P·Aᴴ + σ²·I for uncorrelated sources at angles
// (degrees) with the given powers, noise power σ² and an m-element ULA.
func ModelCovariance(angles, powers []float64, noise, kd float64, m int) (*linalg.Matrix, error) {
	if len(angles) != len(powers) {
		return nil, fmt.Errorf("%w: %d angles, %d powers", ErrInvalidScenario, len(angles), len(powers))
	}
	r, err := linalg.New(m, m)
	if err != nil {
		return nil, err
	}
	for k, theta := range angles {
		a := array.Steering(theta, kd, m)
		if r, err = linalg.Add(r, linalg.Outer(a, a).Scale(complex(powers[k], 0))); err != nil {
			return nil, err
		}
	}
	return r.AddDiagonal(complex(noise, 0))
}
