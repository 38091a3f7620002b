package imaging

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-sonar/dsp/pulse"
)

// ErrInvalidSimulation is returned for simulation parameters that cannot
// produce recordings.
var ErrInvalidSimulation = errors.New("imaging: invalid simulation")

// Scatterer is an ideal point reflector.
type Scatterer struct {
	Position     Point   `yaml:"position"`
	Reflectivity float64 `yaml:"reflectivity"`
}

// SimulationConfig describes the synthetic recordings.
type SimulationConfig struct {
	SoundSpeed float64 `yaml:"sound_speed"`
	SampleRate float64 `yaml:"sample_rate"`
	// Samples is the recording length per channel.
	Samples int `yaml:"samples"`
	// NoisePower is the variance of the additive complex white noise.
	NoisePower float64 `yaml:"noise_power"`
	Seed       int64   `yaml:"seed"`
}

func (c SimulationConfig) validate() error {
	if err := (Config{SoundSpeed: c.SoundSpeed, SampleRate: c.SampleRate}).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSimulation, err)
	}
	if c.Samples < 1 {
		return fmt.Errorf("%w: %d samples", ErrInvalidSimulation, c.Samples)
	}
	if c.NoisePower < 0 {
		return fmt.Errorf("%w: noise power %g", ErrInvalidSimulation, c.NoisePower)
	}
	return nil
}

// SimulateEchoes returns TDMA recordings indexed [rx][tx][sample]: one
// transmission of p per transmitter, reflected by every scatterer. The
// pulse centre of an echo with two-way delay τ lands at sample τ·fs, which
// is where the compressed echo peaks.
func SimulateEchoes(cfg SimulationConfig, tx, rx []Point, scatterers []Scatterer, p pulse.LFM) ([][][]complex128, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(tx) == 0 || len(rx) == 0 {
		return nil, fmt.Errorf("%w: %d transmitters, %d receivers", ErrInvalidSimulation, len(tx), len(rx))
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	out := make([][][]complex128, len(rx))
	for r := range rx {
		out[r] = make([][]complex128, len(tx))
		for t := range tx {
			sig := make([]complex128, cfg.Samples)
			addEchoes(sig, cfg, tx[t], rx[r], scatterers, p)
			addNoise(sig, cfg.NoisePower, rng)
			out[r][t] = sig
		}
	}
	return out, nil
}

// SimulateCDMA returns recordings indexed [rx][sample] in which every
// transmitter fires its own pulse simultaneously. pulses[i] belongs to
// tx[i].
func SimulateCDMA(cfg SimulationConfig, tx, rx []Point, scatterers []Scatterer, pulses []pulse.LFM) ([][]complex128, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(tx) == 0 || len(rx) == 0 {
		return nil, fmt.Errorf("%w: %d transmitters, %d receivers", ErrInvalidSimulation, len(tx), len(rx))
	}
	if len(pulses) != len(tx) {
		return nil, fmt.Errorf("%w: %d pulses for %d transmitters", ErrInvalidSimulation, len(pulses), len(tx))
	}
	for _, p := range pulses {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	out := make([][]complex128, len(rx))
	for r := range rx {
		sig := make([]complex128, cfg.Samples)
		for t := range tx {
			addEchoes(sig, cfg, tx[t], rx[r], scatterers, pulses[t])
		}
		addNoise(sig, cfg.NoisePower, rng)
		out[r] = sig
	}
	return out, nil
}

func addEchoes(sig []complex128, cfg SimulationConfig, tx, rx Point, scatterers []Scatterer, p pulse.LFM) {
	centre := p.CentreDelay()
	for _, s := range scatterers {
		tau := (tx.Distance(s.Position) + s.Position.Distance(rx)) / cfg.SoundSpeed
		amp := complex(s.Reflectivity, 0)

		// Only samples inside the pulse are non-zero.
		first := max(0, int(math.Floor((tau-centre)*cfg.SampleRate)))
		last := min(len(sig), int(math.Ceil((tau-centre+p.Duration)*cfg.SampleRate))+1)
		for n := first; n < last; n++ {
			sig[n] += amp * p.At(float64(n)/cfg.SampleRate-tau+centre)
		}
	}
}

func addNoise(sig []complex128, power float64, rng *rand.Rand) {
	if power <= 0 {
		return
	}
	sigma := math.Sqrt(power / 2)
	for i := range sig {
		sig[i] += complex(sigma*rng.NormFloat64(), sigma*rng.NormFloat64())
	}
}
