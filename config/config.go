// Package config loads the YAML description of a DOA study and an imaging
// run, and adapts it to the component configurations of the other packages.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-sonar/array"
	"github.com/cwbudde/algo-sonar/array/covariance"
	"github.com/cwbudde/algo-sonar/array/synth"
	"github.com/cwbudde/algo-sonar/doa"
	"github.com/cwbudde/algo-sonar/dsp/pulse"
	"github.com/cwbudde/algo-sonar/dsp/window"
	"github.com/cwbudde/algo-sonar/imaging"
	"github.com/cwbudde/algo-sonar/linalg"
)

// ErrInvalidConfig is returned by Validate and by the loaders.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Correlation matrix conditioning names accepted in DOAConfig.Covariance.
const (
	CovarianceStandard        = "standard"
	CovarianceSmoothing       = "smoothing"
	CovarianceForwardBackward = "forward_backward"
	CovarianceSmoothingFB     = "smoothing_fb"
	CovarianceFBSmoothing     = "fb_smoothing"
	CovarianceRotary          = "rotary"
)

// ScanConfig is the angle grid, in degrees, the spectra are evaluated on.
type ScanConfig struct {
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Step  float64 `yaml:"step"`
}

// DOAConfig describes a direction-of-arrival study on synthetic data.
type DOAConfig struct {
	Scenario synth.Scenario `yaml:"scenario"`
	// Methods are estimator names as accepted by doa.ParseMethod.
	Methods []string `yaml:"methods"`
	// Sources is the assumed source count Ns used by the subspace methods
	// and the peak search.
	Sources    int    `yaml:"sources"`
	Covariance string `yaml:"covariance"`
	// Subarray is the smoothing size L. It is ignored by conditioning
	// without smoothing.
	Subarray int `yaml:"subarray"`
	// Loading is the diagonal loading δ applied after conditioning; the
	// matrix becomes R − δ·I. Zero disables loading.
	Loading       float64    `yaml:"loading"`
	Scan          ScanConfig `yaml:"scan"`
	MinSeparation float64    `yaml:"min_separation"`
}

// ImagingConfig describes a delay-and-sum imaging run.
type ImagingConfig struct {
	SoundSpeed   float64             `yaml:"sound_speed"`
	Pulse        pulse.LFM           `yaml:"pulse"`
	Grid         imaging.GridConfig  `yaml:"grid"`
	Transmitters []imaging.Point     `yaml:"transmitters"`
	Receivers    []imaging.Point     `yaml:"receivers"`
	Scatterers   []imaging.Scatterer `yaml:"scatterers"`
	Samples      int                 `yaml:"samples"`
	NoisePower   float64             `yaml:"noise_power"`
	Seed         int64               `yaml:"seed"`
	Workers      int                 `yaml:"workers"`
	PulseWindow  string              `yaml:"pulse_window"`
	DataWindow   string              `yaml:"data_window"`
}

// Config is the top-level structure of a YAML configuration file.
type Config struct {
	DOA     DOAConfig     `yaml:"doa"`
	Imaging ImagingConfig `yaml:"imaging"`
}

// Default returns the incoherent two-source study and a 32-element receive
// array imaging a single scatterer.
func Default() Config {
	return Config{
		DOA: DOAConfig{
			Scenario:   synth.IncoherentScenario(),
			Methods:    []string{"das", "capon", "music", "eigenvector"},
			Sources:    2,
			Covariance: CovarianceStandard,
			Scan: ScanConfig{
				Start: array.DefaultStartDeg,
				Stop:  array.DefaultStopDeg,
				Step:  array.DefaultStepDeg,
			},
		},
		Imaging: ImagingConfig{
			SoundSpeed: 340,
			Pulse: pulse.LFM{
				Bandwidth:       10e3,
				CenterFrequency: 15e3,
				Duration:        1e-3,
				SampleRate:      100e3,
			},
			Grid: imaging.GridConfig{
				XMin: -0.2, XMax: 0.6, XStep: 0.01,
				YMin: 1.8, YMax: 2.2, YStep: 0.01,
			},
			Transmitters: []imaging.Point{{X: 0, Y: 0}},
			Receivers:    uniformLine(32, 0.0113),
			Scatterers: []imaging.Scatterer{
				{Position: imaging.Point{X: 0.2, Y: 2.0}, Reflectivity: 1},
			},
			Samples: 1400,
		},
	}
}

// Incoherent is Default.
func Incoherent() Config { return Default() }

// Coherent returns the coherent two-source study, conditioned by spatial
// smoothing over 5-element subarrays and a diagonal loading of −15.
func Coherent() Config {
	cfg := Default()
	cfg.DOA.Scenario = synth.CoherentScenario()
	cfg.DOA.Covariance = CovarianceSmoothing
	cfg.DOA.Subarray = 5
	cfg.DOA.Loading = -15
	return cfg
}

// uniformLine returns n points on the x axis, spacing apart and centred on
// the origin.
func uniformLine(n int, spacing float64) []imaging.Point {
	out := make([]imaging.Point, n)
	centre := float64(n-1) / 2
	for i := range out {
		out[i] = imaging.Point{X: (float64(i) - centre) * spacing}
	}
	return out
}

// Load reads, parses and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default, so a document only needs the keys
// it changes, and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal encodes cfg as YAML.
func (c Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return out, nil
}

// Validate checks every section and reports the first problem.
func (c Config) Validate() error {
	if err := c.DOA.Validate(); err != nil {
		return err
	}
	return c.Imaging.Validate()
}

// Validate checks the DOA section.
func (d DOAConfig) Validate() error {
	if err := d.Scenario.Validate(); err != nil {
		return fmt.Errorf("%w: doa: %w", ErrInvalidConfig, err)
	}
	if _, err := d.ParsedMethods(); err != nil {
		return fmt.Errorf("%w: doa: %w", ErrInvalidConfig, err)
	}
	if _, err := d.Angles(); err != nil {
		return fmt.Errorf("%w: doa: %w", ErrInvalidConfig, err)
	}

	dim := d.Scenario.Sensors
	switch strings.ToLower(d.Covariance) {
	case "", CovarianceStandard, CovarianceForwardBackward, CovarianceRotary:
	case CovarianceSmoothing, CovarianceSmoothingFB, CovarianceFBSmoothing:
		if d.Subarray < 1 || d.Subarray > d.Scenario.Sensors {
			return fmt.Errorf("%w: doa: subarray %d outside [1, %d]", ErrInvalidConfig, d.Subarray, d.Scenario.Sensors)
		}
		dim = d.Subarray
	default:
		return fmt.Errorf("%w: doa: unknown covariance %q", ErrInvalidConfig, d.Covariance)
	}

	if d.Sources < 1 || d.Sources >= dim {
		return fmt.Errorf("%w: doa: sources %d outside [1, %d)", ErrInvalidConfig, d.Sources, dim)
	}
	if d.MinSeparation < 0 || math.IsNaN(d.Loading) {
		return fmt.Errorf("%w: doa: min_separation=%v loading=%v", ErrInvalidConfig, d.MinSeparation, d.Loading)
	}
	return nil
}

// Validate checks the imaging section.
func (m ImagingConfig) Validate() error {
	if _, err := m.ImagerConfig(); err != nil {
		return err
	}
	if err := m.Pulse.Validate(); err != nil {
		return fmt.Errorf("%w: imaging: %w", ErrInvalidConfig, err)
	}
	if _, err := imaging.NewGrid(m.Grid); err != nil {
		return fmt.Errorf("%w: imaging: %w", ErrInvalidConfig, err)
	}
	if len(m.Transmitters) == 0 || len(m.Receivers) == 0 {
		return fmt.Errorf("%w: imaging: %d transmitters, %d receivers", ErrInvalidConfig, len(m.Transmitters), len(m.Receivers))
	}
	if m.Samples < 1 || m.NoisePower < 0 || m.Workers < 0 {
		return fmt.Errorf("%w: imaging: samples=%d noise_power=%v workers=%d", ErrInvalidConfig, m.Samples, m.NoisePower, m.Workers)
	}
	if _, err := m.ImagerOptions(); err != nil {
		return err
	}
	return nil
}

// KD returns the scenario's wavenumber times element spacing.
func (c Config) KD() float64 { return c.DOA.Scenario.KD() }

// Angles returns the DOA scan grid.
func (c Config) Angles() ([]float64, error) { return c.DOA.Angles() }

// Angles returns the scan grid in degrees.
func (d DOAConfig) Angles() ([]float64, error) {
	return array.AngleGrid(d.Scan.Start, d.Scan.Stop, d.Scan.Step)
}

// ParsedMethods resolves the configured estimator names.
func (d DOAConfig) ParsedMethods() ([]doa.Method, error) {
	if len(d.Methods) == 0 {
		return nil, fmt.Errorf("%w: no methods", doa.ErrUnknownMethod)
	}
	out := make([]doa.Method, len(d.Methods))
	for i, name := range d.Methods {
		m, err := doa.ParseMethod(name)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// CorrelationMatrix estimates the correlation matrix of y with the configured
// conditioning and diagonal loading.
func (d DOAConfig) CorrelationMatrix(y [][]complex128) (*linalg.Matrix, error) {
	var (
		r   *linalg.Matrix
		err error
	)
	switch strings.ToLower(d.Covariance) {
	case "", CovarianceStandard:
		r, err = covariance.Standard(y)
	case CovarianceSmoothing:
		r, err = covariance.SpatialSmoothing(y, d.Subarray)
	case CovarianceForwardBackward:
		if r, err = covariance.Standard(y); err == nil {
			r, err = covariance.ForwardBackward(r)
		}
	case CovarianceSmoothingFB:
		r, err = covariance.SmoothThenForwardBackward(y, d.Subarray)
	case CovarianceFBSmoothing:
		r, err = covariance.ForwardBackwardThenSmooth(y, d.Subarray)
	case CovarianceRotary:
		r, err = covariance.RotaryAveraging(y)
	default:
		return nil, fmt.Errorf("%w: unknown covariance %q", ErrInvalidConfig, d.Covariance)
	}
	if err != nil {
		return nil, err
	}
	if d.Loading == 0 {
		return r, nil
	}
	return covariance.DiagonalLoading(r, d.Loading)
}

// LFM returns the imaging pulse.
func (c Config) LFM() pulse.LFM { return c.Imaging.Pulse }

// GridConfig returns the imaging grid bounds.
func (c Config) GridConfig() imaging.GridConfig { return c.Imaging.Grid }

// Transmitters returns a copy of the transmitter positions.
func (c Config) Transmitters() []imaging.Point {
	return append([]imaging.Point(nil), c.Imaging.Transmitters...)
}

// Receivers returns a copy of the receiver positions.
func (c Config) Receivers() []imaging.Point {
	return append([]imaging.Point(nil), c.Imaging.Receivers...)
}

// ImagerConfig returns the imaging medium.
func (c Config) ImagerConfig() (imaging.Config, error) { return c.Imaging.ImagerConfig() }

// ImagerConfig returns the medium with the pulse sample rate.
func (m ImagingConfig) ImagerConfig() (imaging.Config, error) {
	cfg := imaging.Config{SoundSpeed: m.SoundSpeed, SampleRate: m.Pulse.SampleRate}
	if err := cfg.Validate(); err != nil {
		return imaging.Config{}, fmt.Errorf("%w: imaging: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// ImagerOptions returns the worker count and window options.
func (c Config) ImagerOptions() ([]imaging.Option, error) { return c.Imaging.ImagerOptions() }

// ImagerOptions converts the worker count and window names.
func (m ImagingConfig) ImagerOptions() ([]imaging.Option, error) {
	pw, err := window.ParseType(m.PulseWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: imaging: pulse_window: %w", ErrInvalidConfig, err)
	}
	dw, err := window.ParseType(m.DataWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: imaging: data_window: %w", ErrInvalidConfig, err)
	}
	return []imaging.Option{
		imaging.WithWorkers(m.Workers),
		imaging.WithPulseWindow(pw),
		imaging.WithDataWindow(dw),
	}, nil
}

// SimulationConfig returns the settings for imaging.SimulateEchoes.
func (c Config) SimulationConfig() imaging.SimulationConfig {
	return imaging.SimulationConfig{
		SoundSpeed: c.Imaging.SoundSpeed,
		SampleRate: c.Imaging.Pulse.SampleRate,
		Samples:    c.Imaging.Samples,
		NoisePower: c.Imaging.NoisePower,
		Seed:       c.Imaging.Seed,
	}
}
