package bands

import (
	"math"
	"testing"
)

func TestNewBinSmootherValidation(t *testing.T) {
	tests := []struct {
		name     string
		binCount int
		constant float64
		wantErr  bool
	}{
		{"valid", 128, 0.6, false},
		{"zero constant", 128, 0, false},
		{"near one", 128, 0.999, false},
		{"one", 128, 1, true},
		{"negative constant", 128, -0.1, true},
		{"zero bins", 0, 0.5, true},
		{"negative bins", -1, 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBinSmoother(tt.binCount, tt.constant)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewBinSmoother(%d, %v) error = %v, wantErr %v",
					tt.binCount, tt.constant, err, tt.wantErr)
			}
		})
	}
}

// TestBinSmootherRecurrence checks acc = acc*c + raw*(1-c) against
// hand-computed values with c = 0.5.
func TestBinSmootherRecurrence(t *testing.T) {
	s, err := NewBinSmoother(2, 0.5)
	if err != nil {
		t.Fatalf("NewBinSmoother: %v", err)
	}

	out := make([]float64, 2)

	if err := s.Apply(out, []float64{1, 0.5}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if out[0] != 0.5 || out[1] != 0.25 {
		t.Fatalf("frame 1 = %v, want [0.5 0.25]", out)
	}

	if err := s.Apply(out, []float64{1, 0.5}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if out[0] != 0.75 || out[1] != 0.375 {
		t.Fatalf("frame 2 = %v, want [0.75 0.375]", out)
	}
}

// TestBinSmootherZeroConstant verifies c = 0 is an identity per frame.
func TestBinSmootherZeroConstant(t *testing.T) {
	s, err := NewBinSmoother(3, 0)
	if err != nil {
		t.Fatalf("NewBinSmoother: %v", err)
	}

	in := []float64{0.1, 0.9, 0.5}
	out := make([]float64, 3)

	if err := s.Apply(out, in); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for i := range in {
		if out[i] != in[i] {
			t.Errorf("bin %d = %v, want %v", i, out[i], in[i])
		}
	}
}

// TestBinSmootherConvergence verifies the accumulator converges to a held
// input from its zero start.
func TestBinSmootherConvergence(t *testing.T) {
	s, err := NewBinSmoother(1, 0.8)
	if err != nil {
		t.Fatalf("NewBinSmoother: %v", err)
	}

	out := make([]float64, 1)
	for i := 0; i < 200; i++ {
		if err := s.Apply(out, []float64{0.7}); err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}

	if math.Abs(out[0]-0.7) > 1e-9 {
		t.Errorf("converged value = %v, want 0.7", out[0])
	}
}

func TestBinSmootherAliasedBuffers(t *testing.T) {
	s, err := NewBinSmoother(2, 0.5)
	if err != nil {
		t.Fatalf("NewBinSmoother: %v", err)
	}

	buf := []float64{1, 1}
	if err := s.Apply(buf, buf); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if buf[0] != 0.5 || buf[1] != 0.5 {
		t.Errorf("in-place apply = %v, want [0.5 0.5]", buf)
	}
}

func TestBinSmootherReset(t *testing.T) {
	s, err := NewBinSmoother(1, 0.5)
	if err != nil {
		t.Fatalf("NewBinSmoother: %v", err)
	}

	out := make([]float64, 1)
	_ = s.Apply(out, []float64{1})

	s.Reset()

	_ = s.Apply(out, []float64{1})
	if out[0] != 0.5 {
		t.Errorf("post-reset frame = %v, want 0.5 (fresh accumulator)", out[0])
	}
}

func TestBinSmootherLengthChecks(t *testing.T) {
	s, err := NewBinSmoother(4, 0.5)
	if err != nil {
		t.Fatalf("NewBinSmoother: %v", err)
	}

	if err := s.Apply(make([]float64, 4), make([]float64, 3)); err == nil {
		t.Error("Apply accepted wrong raw length")
	}

	if err := s.Apply(make([]float64, 3), make([]float64, 4)); err == nil {
		t.Error("Apply accepted wrong dst length")
	}
}
