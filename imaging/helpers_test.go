package imaging

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-sonar/dsp/pulse"
)

const (
	testSoundSpeed = 340.0
	testSampleRate = 100e3
	testSamples    = 1400
)

var testScatterer = Point{X: 0.2, Y: 2.0}

func testPulse() pulse.LFM {
	return pulse.LFM{Bandwidth: 10e3, CenterFrequency: 15e3, Duration: 1e-3, SampleRate: testSampleRate}
}

func testSimulation() SimulationConfig {
	return SimulationConfig{SoundSpeed: testSoundSpeed, SampleRate: testSampleRate, Samples: testSamples}
}

func testConfig() Config {
	return Config{SoundSpeed: testSoundSpeed, SampleRate: testSampleRate}
}

// uniformLine returns n points on the x axis spaced d apart and centred on 0.
func uniformLine(n int, d float64) []Point {
	out := make([]Point, n)
	for k := range out {
		out[k] = Point{X: (float64(k) - float64(n-1)/2) * d}
	}
	return out
}

func fineGrid(t testing.TB) Grid {
	t.Helper()
	g, err := NewGrid(GridConfig{XMin: -0.2, XMax: 0.6, XStep: 0.01, YMin: 1.8, YMax: 2.2, YStep: 0.01})
	require.NoError(t, err)
	return g
}

func tdmaScenario(t testing.TB, tx, rx []Point) [][][]complex128 {
	t.Helper()
	data, err := SimulateEchoes(testSimulation(), tx, rx, []Scatterer{{Position: testScatterer, Reflectivity: 1}}, testPulse())
	require.NoError(t, err)
	return data
}

func reference(t testing.TB, p pulse.LFM) []complex128 {
	t.Helper()
	s, err := p.Samples()
	require.NoError(t, err)
	return s
}

// requireLocalised checks that the image peak is within one grid step of
// the scatterer along both axes.
func requireLocalised(t *testing.T, img *Image, step float64) {
	t.Helper()
	ix, iy, _ := img.Peak()
	require.GreaterOrEqual(t, ix, 0)
	require.InDelta(t, testScatterer.X, img.X[ix], step+1e-9, "x peak")
	require.InDelta(t, testScatterer.Y, img.Y[iy], step+1e-9, "y peak")
}
