package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-sonar/array/covariance"
	"github.com/cwbudde/algo-sonar/doa"
	"github.com/cwbudde/algo-sonar/imaging"
	"github.com/cwbudde/algo-sonar/linalg"
)

func TestPresetsValidate(t *testing.T) {
	for name, cfg := range map[string]Config{
		"default":    Default(),
		"incoherent": Incoherent(),
		"coherent":   Coherent(),
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, cfg.Validate())
		})
	}
}

func TestPresetRoundTrip(t *testing.T) {
	for _, cfg := range []Config{Default(), Coherent()} {
		data, err := cfg.Marshal()
		require.NoError(t, err)

		back, err := Parse(data)
		require.NoError(t, err)
		assert.Equal(t, cfg, *back)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
doa:
  methods: [mv, ev]
  covariance: fb_smoothing
  subarray: 6
imaging:
  workers: 3
  pulse_window: hamming
  transmitters:
    - {x: -0.02, y: 0}
    - {x: 0.02, y: 0}
`))
	require.NoError(t, err)

	methods, err := cfg.DOA.ParsedMethods()
	require.NoError(t, err)
	assert.Equal(t, []doa.Method{doa.MethodCapon, doa.MethodEigenvector}, methods)
	assert.Equal(t, 6, cfg.DOA.Subarray)
	assert.Len(t, cfg.Transmitters(), 2)

	// Untouched keys keep their defaults.
	def := Default()
	assert.Equal(t, def.Imaging.Pulse, cfg.LFM())
	assert.Equal(t, def.Imaging.Grid, cfg.GridConfig())
	assert.Len(t, cfg.Receivers(), 32)
	assert.InDelta(t, def.KD(), cfg.KD(), 0)

	opts, err := cfg.ImagerOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 3)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"syntax", "doa: [unterminated"},
		{"method", "doa: {methods: [fft]}"},
		{"covariance", "doa: {covariance: magic}"},
		{"subarray", "doa: {covariance: smoothing, subarray: 11}"},
		{"sources", "doa: {sources: 10}"},
		{"sources after smoothing", "doa: {covariance: smoothing, subarray: 2, sources: 2}"},
		{"scan", "doa: {scan: {start: 10, stop: 0, step: 1}}"},
		{"sound speed", "imaging: {sound_speed: 0}"},
		{"pulse", "imaging: {pulse: {duration: 0}}"},
		{"grid", "imaging: {grid: {x_step: -1}}"},
		{"receivers", "imaging: {receivers: []}"},
		{"window", "imaging: {data_window: triangle}"},
		{"workers", "imaging: {workers: -1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			if tt.name != "syntax" {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coherent.yaml")
	data, err := Coherent().Marshal()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, CovarianceSmoothing, cfg.DOA.Covariance)
	assert.True(t, cfg.DOA.Scenario.Coherent)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCovarianceConditioning(t *testing.T) {
	cfg := Coherent()
	y, err := cfg.DOA.Scenario.Generate()
	require.NoError(t, err)

	r, err := cfg.DOA.CorrelationMatrix(y)
	require.NoError(t, err)
	assert.Equal(t, 5, r.Rows())

	// Smoothing followed by R − δ·I.
	smoothed, err := covariance.SpatialSmoothing(y, 5)
	require.NoError(t, err)
	want, err := smoothed.AddDiagonal(15)
	require.NoError(t, err)
	diff, err := linalg.MaxAbsDiff(r, want)
	require.NoError(t, err)
	assert.Less(t, diff, 1e-12)

	for _, name := range []string{
		CovarianceStandard, CovarianceForwardBackward, CovarianceRotary,
		CovarianceSmoothingFB, CovarianceFBSmoothing,
	} {
		d := cfg.DOA
		d.Covariance = name
		d.Loading = 0
		r, err := d.CorrelationMatrix(y)
		require.NoError(t, err, name)
		assert.Positive(t, r.Rows(), name)
	}

	d := cfg.DOA
	d.Covariance = "magic"
	_, err = d.CorrelationMatrix(y)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestImagingAdapters(t *testing.T) {
	cfg := Default()

	ic, err := cfg.ImagerConfig()
	require.NoError(t, err)
	assert.Equal(t, imaging.Config{SoundSpeed: 340, SampleRate: 100e3}, ic)

	sim := cfg.SimulationConfig()
	assert.Equal(t, 1400, sim.Samples)
	assert.Equal(t, ic.SampleRate, sim.SampleRate)

	angles, err := cfg.Angles()
	require.NoError(t, err)
	assert.Len(t, angles, 10000)

	rx := cfg.Receivers()
	rx[0].X = 99
	assert.NotEqual(t, 99.0, cfg.Imaging.Receivers[0].X)
	assert.InDelta(t, -rx[31].X, cfg.Imaging.Receivers[0].X, 1e-12)
}
