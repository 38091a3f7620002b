package interp

import (
	"errors"
	"math"
	"testing"
)

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestLinear2(t *testing.T) {
	if got := Linear2(0.25, 2, 4); got != 2.5 {
		t.Fatalf("got %v want 2.5", got)
	}
}

func TestResampleKeepsEndpointsAndNodes(t *testing.T) {
	data := []float64{0, 1, 4, 9, 16}

	for _, mode := range []Mode{ModeHermite, ModeLinear} {
		t.Run(mode.String(), func(t *testing.T) {
			// 4 intervals → 9 points puts every other output on an input node.
			out, err := Resample(data, 9, mode)
			if err != nil {
				t.Fatal(err)
			}
			for i, v := range data {
				if math.Abs(out[2*i]-v) > 1e-12 {
					t.Fatalf("out[%d]=%v, want %v", 2*i, out[2*i], v)
				}
			}
		})
	}
}

func TestResampleHermiteInterior(t *testing.T) {
	// Catmull-Rom reproduces a quadratic exactly away from the edges.
	data := make([]float64, 11)
	for i := range data {
		data[i] = float64(i * i)
	}
	out, err := Resample(data, 101, ModeHermite)
	if err != nil {
		t.Fatal(err)
	}
	for k := 11; k <= 89; k++ {
		x := float64(k) / 10
		if math.Abs(out[k]-x*x) > 1e-9 {
			t.Fatalf("out[%d]=%v, want %v", k, out[k], x*x)
		}
	}
}

func TestResampleErrors(t *testing.T) {
	if _, err := Resample([]float64{1}, 10, ModeHermite); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
	if _, err := Resample([]float64{1, 2}, 1, ModeHermite); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(-1, 1, 5)
	want := []float64{-1, -0.5, 0, 0.5, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-15 {
			t.Fatalf("got %v want %v", got, want)
		}
	}
	if Linspace(0, 1, 0) != nil {
		t.Fatal("expected nil for n=0")
	}
	if got := Linspace(3, 4, 1); len(got) != 1 || got[0] != 3 {
		t.Fatalf("n=1 got %v", got)
	}
}
