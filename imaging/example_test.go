package imaging_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-sonar/dsp/pulse"
	"github.com/cwbudde/algo-sonar/imaging"
)

func ExampleImager_Form() {
	p := pulse.LFM{Bandwidth: 10e3, CenterFrequency: 15e3, Duration: 1e-3, SampleRate: 100e3}
	ref, _ := p.Samples()

	tx := []imaging.Point{{X: 0}}
	rx := make([]imaging.Point, 32)
	for k := range rx {
		rx[k] = imaging.Point{X: (float64(k) - 15.5) * 0.0113}
	}

	sim := imaging.SimulationConfig{SoundSpeed: 340, SampleRate: 100e3, Samples: 1400}
	target := imaging.Scatterer{Position: imaging.Point{X: 0.2, Y: 2.0}, Reflectivity: 1}
	data, _ := imaging.SimulateEchoes(sim, tx, rx, []imaging.Scatterer{target}, p)
	channels, _ := imaging.TDMAChannels(data, tx, rx, ref)

	grid, _ := imaging.NewGrid(imaging.GridConfig{
		XMin: -0.2, XMax: 0.6, XStep: 0.01,
		YMin: 1.8, YMax: 2.2, YStep: 0.01,
	})
	im, _ := imaging.NewImager(imaging.Config{SoundSpeed: 340, SampleRate: 100e3}, grid)
	img, _ := im.Form(context.Background(), channels)

	ix, iy, _ := img.Peak()
	fmt.Printf("peak at (%.2f, %.2f) m\n", img.X[ix], img.Y[iy])
	// Output:
	// peak at (0.20, 2.00) m
}
