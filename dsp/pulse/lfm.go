package pulse

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// ErrInvalidPulse is returned for pulse parameters that yield no samples.
var ErrInvalidPulse = errors.New("pulse: invalid pulse parameters")

// LFM describes a linear frequency modulated chirp. A positive Bandwidth
// sweeps up from CenterFrequency-B/2, a negative one sweeps down.
type LFM struct {
	Bandwidth       float64 `yaml:"bandwidth"`
	CenterFrequency float64 `yaml:"center_frequency"`
	Duration        float64 `yaml:"duration"`
	SampleRate      float64 `yaml:"sample_rate"`
}

// Validate checks that the pulse has a positive duration and sample rate
// and at least one sample.
func (p LFM) Validate() error {
	for name, v := range map[string]float64{
		"bandwidth":        p.Bandwidth,
		"center frequency": p.CenterFrequency,
		"duration":         p.Duration,
		"sample rate":      p.SampleRate,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidPulse, name, v)
		}
	}
	if p.Duration <= 0 {
		return fmt.Errorf("%w: duration %g must be > 0", ErrInvalidPulse, p.Duration)
	}
	if p.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %g must be > 0", ErrInvalidPulse, p.SampleRate)
	}
	if p.Len() < 1 {
		return fmt.Errorf("%w: %g s at %g Hz gives no samples", ErrInvalidPulse, p.Duration, p.SampleRate)
	}
	return nil
}

// Len returns the number of samples, ⌊Duration·SampleRate⌋.
func (p LFM) Len() int {
	return int(math.Floor(p.Duration*p.SampleRate + 1e-9))
}

// ChirpRate returns B/T in Hz/s.
func (p LFM) ChirpRate() float64 {
	return p.Bandwidth / p.Duration
}

// Wavelength returns the carrier wavelength for the given sound speed.
func (p LFM) Wavelength(soundSpeed float64) float64 {
	return soundSpeed / p.CenterFrequency
}

// Flipped returns the same pulse sweeping in the opposite direction.
func (p LFM) Flipped() LFM {
	p.Bandwidth = -p.Bandwidth
	return p
}

// At evaluates the analytic chirp at time t seconds after the pulse start.
// It is zero outside [0, Duration).
func (p LFM) At(t float64) complex128 {
	if t < 0 || t >= p.Duration {
		return 0
	}
	phase := 2 * math.Pi * ((p.CenterFrequency-p.Bandwidth/2)*t + p.ChirpRate()/2*t*t)
	return cmplx.Exp(complex(0, phase))
}

// Samples returns Len() samples of the chirp taken at t = n/SampleRate.
func (p LFM) Samples() ([]complex128, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make([]complex128, p.Len())
	for n := range out {
		out[n] = p.At(float64(n) / p.SampleRate)
	}
	return out, nil
}

// CentreDelay returns the time from the pulse start to the sample at
// ZeroLagIndex, the reference point for echo timing.
func (p LFM) CentreDelay() float64 {
	return float64(ZeroLagIndex(p.Len())) / p.SampleRate
}
