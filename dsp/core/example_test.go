package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-sonar/dsp/core"
)

func ExampleNormalizePowerDB() {
	db, err := core.NormalizePowerDB([]float64{1, 100, 10})
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.1f %.1f %.1f\n", db[0], db[1], db[2])

	// Output:
	// -20.0 0.0 -10.0
}

func ExampleMaxIndex() {
	idx, v := core.MaxIndex([]float64{0.2, 0.9, 0.4})
	fmt.Println(idx, v)

	// Output:
	// 1 0.9
}
