package imaging

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageDerivedViews(t *testing.T) {
	img := NewImage(Grid{X: []float64{0, 1, 2}, Y: []float64{0, 1}})
	img.Data[0][1] = 3 + 4i
	img.Data[1][2] = -0.5

	mag := img.Magnitude()
	assert.InDelta(t, 5, mag[0][1], 1e-12)
	assert.InDelta(t, 0.5, mag[1][2], 1e-12)

	db := img.MagnitudeDB(1e-5)
	assert.InDelta(t, 0, db[0][1], 1e-3)
	assert.InDelta(t, 20*math.Log10(0.1+1e-5), db[1][2], 1e-9)
	assert.InDelta(t, -100, db[0][0], 1e-9)

	ph := img.Phase()
	assert.InDelta(t, math.Pi, ph[1][2], 1e-12)

	ix, iy, v := img.Peak()
	assert.Equal(t, 1, ix)
	assert.Equal(t, 0, iy)
	assert.Equal(t, 3+4i, v)

	// Derived views never touch the pixels.
	assert.Equal(t, 3+4i, img.Data[0][1])
}

func TestImageAdd(t *testing.T) {
	g := Grid{X: []float64{0, 1}, Y: []float64{0}}
	a := NewImage(g)
	b := NewImage(g)
	a.Data[0][0] = 1
	b.Data[0][0] = 1i
	b.Data[0][1] = 2

	require.NoError(t, a.Add(b))
	assert.Equal(t, []complex128{1 + 1i, 2}, a.Data[0])

	other := NewImage(Grid{X: []float64{0}, Y: []float64{0}})
	assert.Error(t, a.Add(other))
}

func TestEmptyImagePeak(t *testing.T) {
	img := &Image{}
	ix, iy, _ := img.Peak()
	assert.Equal(t, -1, ix)
	assert.Equal(t, -1, iy)
}
