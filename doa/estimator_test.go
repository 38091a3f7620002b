package doa

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-sonar/array"
	"github.com/cwbudde/algo-sonar/array/covariance"
	"github.com/cwbudde/algo-sonar/array/synth"
	"github.com/cwbudde/algo-sonar/linalg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCovariance(t *testing.T) *linalg.Matrix {
	t.Helper()
	y, err := synth.IncoherentScenario().Generate()
	require.NoError(t, err)
	r, err := covariance.Standard(y)
	require.NoError(t, err)
	return r
}

func TestDASMatchesDefinition(t *testing.T) {
	r := sampleCovariance(t)
	das, err := NewDAS(r)
	require.NoError(t, err)

	a := array.Steering(7, math.Pi, 10)
	q, err := r.QuadraticForm(a)
	require.NoError(t, err)

	p, err := das.Power(a)
	require.NoError(t, err)
	assert.InDelta(t, real(q)/10, p, 1e-12)
}

func TestDASWhiteNoiseIsFlat(t *testing.T) {
	das, err := NewDAS(linalg.Identity(8).Scale(3))
	require.NoError(t, err)
	for _, theta := range []float64{-40, -3, 0, 25} {
		p, err := das.Power(array.Steering(theta, math.Pi, 8))
		require.NoError(t, err)
		assert.InDelta(t, 3, p, 1e-12)
	}
}

func TestSteeringVectorAdaptation(t *testing.T) {
	r := sampleCovariance(t)
	smoothed, err := covariance.Smooth(r, 6)
	require.NoError(t, err)

	for _, method := range Methods {
		est, err := New(method, smoothed, 2)
		require.NoError(t, err, method.String())
		assert.Equal(t, 6, est.Dim())

		full, err := est.Power(array.Steering(5, math.Pi, 10))
		require.NoError(t, err)
		trimmed, err := est.Power(array.Steering(5, math.Pi, 6))
		require.NoError(t, err)
		assert.Equal(t, trimmed, full, method.String())

		_, err = est.Power(array.Steering(5, math.Pi, 4))
		assert.ErrorIs(t, err, array.ErrDimensionMismatch, method.String())
	}
}

func TestCaponSingular(t *testing.T) {
	ones := []complex128{1, 1, 1, 1, 1}
	r := linalg.Outer(ones, ones)

	_, err := NewCapon(r)
	require.ErrorIs(t, err, linalg.ErrSingularMatrix)

	loaded, err := covariance.DiagonalLoading(r, -15)
	require.NoError(t, err)
	capon, err := NewCapon(loaded)
	require.NoError(t, err)
	p, err := capon.Power(array.Steering(0, math.Pi, 5))
	require.NoError(t, err)
	// a = ones is the eigenvector of λ = 5 + 15.
	assert.InDelta(t, 20.0/5, p, 1e-9)
}

func TestEigenvectorSingular(t *testing.T) {
	ones := []complex128{1, 1, 1, 1}
	_, err := NewEigenvector(linalg.Outer(ones, ones), 1)
	assert.ErrorIs(t, err, linalg.ErrSingularMatrix)
}

func TestEigenvectorWithoutSourcesEqualsCapon(t *testing.T) {
	r := sampleCovariance(t)
	capon, err := NewCapon(r)
	require.NoError(t, err)
	ev, err := NewEigenvector(r, 0)
	require.NoError(t, err)

	for theta := -50.0; theta <= 50; theta += 2.5 {
		a := array.Steering(theta, math.Pi, 10)
		want, err := capon.Power(a)
		require.NoError(t, err)
		got, err := ev.Power(a)
		require.NoError(t, err)
		assert.InEpsilon(t, want, got, 1e-8, "theta=%v", theta)
	}
}

func TestMUSICWithoutSourcesIsFlat(t *testing.T) {
	music, err := NewMUSIC(sampleCovariance(t), 0)
	require.NoError(t, err)
	for theta := -50.0; theta <= 50; theta += 5 {
		p, err := music.Power(array.Steering(theta, math.Pi, 10))
		require.NoError(t, err)
		assert.InDelta(t, 0.1, p, 1e-9)
	}
}

func TestInvalidSourceCount(t *testing.T) {
	r := sampleCovariance(t)
	for _, ns := range []int{-1, 10, 11} {
		_, err := NewMUSIC(r, ns)
		assert.ErrorIs(t, err, ErrInvalidSourceCount, "ns=%d", ns)
		_, err = NewEigenvector(r, ns)
		assert.ErrorIs(t, err, ErrInvalidSourceCount, "ns=%d", ns)
	}
}

func TestNonSquare(t *testing.T) {
	r := linalg.Outer([]complex128{1, 2, 3}, []complex128{1, 2})
	for _, method := range Methods {
		_, err := New(method, r, 1)
		assert.ErrorIs(t, err, linalg.ErrNonSquare, method.String())
	}
	_, err := NewDAS(nil)
	assert.ErrorIs(t, err, linalg.ErrBadShape)
}

func TestMUSICNullAtSource(t *testing.T) {
	r, err := synth.ModelCovariance([]float64{-20}, []float64{4}, 1, math.Pi, 8)
	require.NoError(t, err)
	music, err := NewMUSIC(r, 1)
	require.NoError(t, err)

	on, err := music.Power(array.Steering(-20, math.Pi, 8))
	require.NoError(t, err)
	off, err := music.Power(array.Steering(15, math.Pi, 8))
	require.NoError(t, err)
	assert.Greater(t, on, 1e6*off)
}
