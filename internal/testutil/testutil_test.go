package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	sig := Sine(1000, 8000, 1, 8)

	// One cycle per eight samples; sample 2 sits on the positive peak.
	RequireNearlyEqual(t, sig[0], 0, 1e-12)
	RequireNearlyEqual(t, sig[2], 1, 1e-12)
	RequireNearlyEqual(t, sig[6], -1, 1e-12)
}

func TestNoiseDeterministic(t *testing.T) {
	a := Noise(42, 0.5, 256)
	b := Noise(42, 0.5, 256)

	RequireSliceNearlyEqual(t, a, b, 0)
	RequireFinite(t, a)

	for i, v := range a {
		if math.Abs(v) > 0.5 {
			t.Fatalf("sample %d: |%v| exceeds amplitude", i, v)
		}
	}
}

func TestMix(t *testing.T) {
	got := Mix([]float64{1, 2, 3}, []float64{0.5, -2, 1})
	RequireSliceNearlyEqual(t, got, []float64{1.5, 0, 4}, 0)
}

func TestSilence(t *testing.T) {
	RequireSliceNearlyEqual(t, Silence(4), []float64{0, 0, 0, 0}, 0)
}
