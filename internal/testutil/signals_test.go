package testutil

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestComplexToneUnitModulus(t *testing.T) {
	s := ComplexTone(1000, 8000, 2, 16)
	for i, v := range s {
		if math.Abs(cmplx.Abs(v)-2) > 1e-12 {
			t.Fatalf("|s[%d]| = %v, want 2", i, cmplx.Abs(v))
		}
	}
	// f = fs/8 rotates a quarter turn every two samples.
	if cmplx.Abs(s[2]-2i) > 1e-12 {
		t.Fatalf("s[2] = %v, want 2i", s[2])
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
}

func TestDeterministicComplexNoisePower(t *testing.T) {
	n := DeterministicComplexNoise(7, 4, 20000)
	var p float64
	for _, v := range n {
		p += real(v)*real(v) + imag(v)*imag(v)
	}
	p /= float64(len(n))
	if math.Abs(p-4) > 0.2 {
		t.Fatalf("mean power = %v, want ≈4", p)
	}

	again := DeterministicComplexNoise(7, 4, 20000)
	for i := range n {
		if n[i] != again[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	for i, v := range imp {
		want := 0.0
		if i == 3 {
			want = 1
		}
		if v != want {
			t.Fatalf("imp[%d] = %v, want %v", i, v, want)
		}
	}
	for i, v := range Impulse(4, 10) {
		if v != 0 {
			t.Fatalf("imp[%d] = %v, want all zeros for out-of-bounds pos", i, v)
		}
	}
}
