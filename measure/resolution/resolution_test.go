package resolution

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-sonar/dsp/core"
	"github.com/cwbudde/algo-sonar/dsp/interp"
	"github.com/cwbudde/algo-sonar/dsp/pulse"
	"github.com/cwbudde/algo-sonar/imaging"
)

// gaussianHalfWidth is the distance from the centre at which a Gaussian
// amplitude exp(-x²/2σ²) falls by 3 dB, in units of σ.
var gaussianHalfWidth = math.Sqrt(0.3 * math.Ln10)

func gaussianDB(values []float64, centre, sigma float64) []float64 {
	out := make([]float64, len(values))
	for i, x := range values {
		d := (x - centre) / sigma
		out[i] = 20 * math.Log10(math.Exp(-d*d/2))
	}
	return out
}

func TestFWHMGaussian(t *testing.T) {
	values := interp.Linspace(-5, 5, 10001)
	w, err := FWHM(values, gaussianDB(values, 0, 1))
	require.NoError(t, err)

	assert.True(t, w.Bounded)
	assert.InDelta(t, 2*gaussianHalfWidth, w.Value, 0.002)
	assert.InDelta(t, -gaussianHalfWidth, w.Left, 0.001)
	assert.InDelta(t, gaussianHalfWidth, w.Right, 0.001)
	assert.InDelta(t, w.Value/0.5, w.InWavelengths(0.5), 1e-12)
}

func TestFWHMClampsWhenCurveNeverDrops(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4}

	flat, err := FWHM(values, []float64{0, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.False(t, flat.Bounded)
	assert.Equal(t, 4.0, flat.Value)

	// Falls on the right only.
	half, err := FWHM(values, []float64{-1, 0, -1, -4, -9})
	require.NoError(t, err)
	assert.False(t, half.Bounded)
	assert.Equal(t, 0.0, half.Left)
	assert.Equal(t, 3.0, half.Right)
	assert.Equal(t, 3.0, half.Value)
}

func TestFWHMErrors(t *testing.T) {
	_, err := FWHM(nil, nil)
	assert.ErrorIs(t, err, core.ErrEmptyInput)

	_, err = FWHM([]float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestEvaluateSeparableGaussian(t *testing.T) {
	grid, err := imaging.NewGrid(imaging.GridConfig{
		XMin: -0.5, XMax: 0.5, XStep: 0.01,
		YMin: 1.5, YMax: 2.5, YStep: 0.01,
	})
	require.NoError(t, err)

	const (
		x0, sx = 0.1, 0.05
		y0, sy = 2.0, 0.02
	)
	img := imaging.NewImage(grid)
	for iy, y := range grid.Y {
		for ix, x := range grid.X {
			dx, dy := (x-x0)/sx, (y-y0)/sy
			g := math.Exp(-(dx*dx + dy*dy) / 2)
			img.Data[iy][ix] = complex(0, g)
		}
	}

	res, err := Evaluate(img)
	require.NoError(t, err)

	assert.InDelta(t, x0, res.PeakX, 1e-9)
	assert.InDelta(t, y0, res.PeakY, 1e-9)
	assert.True(t, res.X.Bounded)
	assert.True(t, res.Y.Bounded)
	assert.InDelta(t, 2*gaussianHalfWidth*sx, res.X.Value, 5e-4)
	assert.InDelta(t, 2*gaussianHalfWidth*sy, res.Y.Value, 5e-4)

	coarse, err := Evaluate(img, WithResampleLength(500), WithInterpolation(interp.ModeLinear))
	require.NoError(t, err)
	assert.InDelta(t, res.X.Value, coarse.X.Value, 0.01)
}

func TestEvaluateFormedImage(t *testing.T) {
	p := pulse.LFM{Bandwidth: 10e3, CenterFrequency: 15e3, Duration: 1e-3, SampleRate: 100e3}
	ref, err := p.Samples()
	require.NoError(t, err)

	tx := []imaging.Point{{}}
	rx := make([]imaging.Point, 32)
	for k := range rx {
		rx[k] = imaging.Point{X: (float64(k) - 15.5) * 0.0113}
	}
	sim := imaging.SimulationConfig{SoundSpeed: 340, SampleRate: p.SampleRate, Samples: 1400}
	data, err := imaging.SimulateEchoes(sim, tx, rx,
		[]imaging.Scatterer{{Position: imaging.Point{X: 0.2, Y: 2.0}, Reflectivity: 1}}, p)
	require.NoError(t, err)
	ch, err := imaging.TDMAChannels(data, tx, rx, ref)
	require.NoError(t, err)

	grid, err := imaging.NewGrid(imaging.GridConfig{XMin: -0.2, XMax: 0.6, XStep: 0.01, YMin: 1.8, YMax: 2.2, YStep: 0.01})
	require.NoError(t, err)
	im, err := imaging.NewImager(imaging.Config{SoundSpeed: 340, SampleRate: p.SampleRate}, grid)
	require.NoError(t, err)
	img, err := im.Form(context.Background(), ch)
	require.NoError(t, err)

	res, err := Evaluate(img)
	require.NoError(t, err)
	assert.True(t, res.X.Bounded)
	assert.True(t, res.Y.Bounded)

	// Range resolution is set by the bandwidth, cross-range by the aperture.
	assert.Greater(t, res.X.Value, res.Y.Value)
	assert.Greater(t, res.Y.Value, 0.005)
	assert.Less(t, res.Y.Value, 0.05)
	assert.Greater(t, res.X.Value, 0.05)
	assert.Less(t, res.X.Value, 0.25)
}

func TestEvaluateEmpty(t *testing.T) {
	_, err := Evaluate(nil)
	assert.True(t, errors.Is(err, ErrEmptyImage))

	_, err = Evaluate(imaging.NewImage(imaging.Grid{X: []float64{0}, Y: []float64{0}}))
	assert.ErrorIs(t, err, ErrEmptyImage)
}
