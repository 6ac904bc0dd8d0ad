package testutil

import (
	"math"
	"testing"
)

// RequireNearlyEqual fails t if got and want differ by more than eps.
func RequireNearlyEqual(t *testing.T, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Fatalf("got %v, want %v (diff %v > eps %v)", got, want, math.Abs(got-want), eps)
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireInRange fails t if v lies outside [lo, hi].
func RequireInRange(t *testing.T, v, lo, hi float64) {
	t.Helper()
	if v < lo || v > hi {
		t.Fatalf("value %v outside [%v, %v]", v, lo, hi)
	}
}
