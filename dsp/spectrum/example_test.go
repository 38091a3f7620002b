package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-sonar/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExampleFrequencies() {
	fmt.Println(spectrum.Frequencies(4, 100))
	// Output:
	// [-50 -25 0 25]
}
