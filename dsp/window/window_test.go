package window

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateAllTypes(t *testing.T) {
	types := []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman, TypeKaiser, TypeTukey}

	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
				if v < -1e-12 || v > 1+1e-12 {
					t.Fatalf("coefficient[%d]=%v outside [0,1]", i, v)
				}
				if d := math.Abs(v - w[len(w)-1-i]); d > 1e-12 {
					t.Fatalf("not symmetric at %d: diff %g", i, d)
				}
			}
		})
	}
}

func TestGenerateNonPositiveLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("expected nil, got %v", w)
	}
}

func TestKaiserMatchesReference(t *testing.T) {
	// Symmetric Kaiser, N=5, beta=4.
	want := []float64{0.08848052, 0.56591584, 1, 0.56591584, 0.08848052}

	got, err := Kaiser(5, 4)
	if err != nil {
		t.Fatalf("Kaiser: %v", err)
	}

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Fatalf("w[%d]=%.8f, want %.8f", i, got[i], want[i])
		}
	}

	def := Generate(TypeKaiser, 5)
	for i := range def {
		if def[i] != got[i] {
			t.Fatalf("default beta differs at %d", i)
		}
	}
}

func TestPeriodicHann(t *testing.T) {
	w := Generate(TypeHann, 4, WithPeriodic())
	want := []float64{0, 0.5, 1, 0.5}

	for i := range want {
		if math.Abs(w[i]-want[i]) > 1e-12 {
			t.Fatalf("w[%d]=%v, want %v", i, w[i], want[i])
		}
	}
}

func TestTukeyLimits(t *testing.T) {
	rect, err := Tukey(16, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range rect {
		if v != 1 {
			t.Fatalf("alpha=0 w[%d]=%v, want 1", i, v)
		}
	}

	hann, err := Tukey(16, 1)
	if err != nil {
		t.Fatal(err)
	}
	ref := Generate(TypeHann, 16)
	for i := range ref {
		if math.Abs(hann[i]-ref[i]) > 1e-12 {
			t.Fatalf("alpha=1 w[%d]=%v, want %v", i, hann[i], ref[i])
		}
	}

	if _, err := Tukey(16, 1.5); err == nil {
		t.Fatal("expected error for alpha > 1")
	}
	if _, err := Kaiser(0, 4); err == nil {
		t.Fatal("expected error for zero size")
	}
}

func TestApplyComplex(t *testing.T) {
	buf := []complex128{1 + 1i, 2i, 3, -1}
	ApplyComplex(TypeHann, buf)

	w := Generate(TypeHann, 4)
	want := []complex128{(1 + 1i) * complex(w[0], 0), 2i * complex(w[1], 0), 3 * complex(w[2], 0), -1 * complex(w[3], 0)}

	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf[%d]=%v, want %v", i, buf[i], want[i])
		}
	}
}

func TestApplyCoefficients(t *testing.T) {
	out, err := ApplyCoefficients([]float64{1, 2, 3}, []float64{0.5, 0.5, 2})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.5, 1, 6}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d]=%v, want %v", i, out[i], want[i])
		}
	}

	if _, err := ApplyCoefficients([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestGains(t *testing.T) {
	rect := Generate(TypeRectangular, 32)

	u, err := EnergyGain(rect)
	if err != nil || u != 1 {
		t.Fatalf("rect energy gain=%v err=%v", u, err)
	}

	enbw, err := EquivalentNoiseBandwidth(Generate(TypeHann, 4096, WithPeriodic()))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(enbw-1.5) > 1e-3 {
		t.Fatalf("hann ENBW=%v, want 1.5", enbw)
	}

	if _, err := EnergyGain(nil); err == nil {
		t.Fatal("expected error for empty coefficients")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"", TypeRectangular},
		{"boxcar", TypeRectangular},
		{"Hann", TypeHann},
		{"hanning", TypeHann},
		{" KAISER ", TypeKaiser},
		{"tukey", TypeTukey},
	}

	for _, tc := range tests {
		got, err := ParseType(tc.in)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseType(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseType("flattop-ish"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if s := Type(99).String(); s != "Type(99)" {
		t.Fatalf("String()=%q", s)
	}
}

func BenchmarkGenerateKaiser(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Generate(TypeKaiser, 4096)
	}
}
