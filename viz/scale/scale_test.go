package scale

import (
	"math"
	"testing"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Method
		wantErr bool
	}{
		{"linear", "linear", MethodLinear, false},
		{"decibel", "decibel", MethodDecibel, false},
		{"mixed case", "Decibel", MethodDecibel, false},
		{"padded", "  linear ", MethodLinear, false},
		{"empty", "", 0, true},
		{"unknown", "logarithmic", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMethod(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMethod(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}

			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLinearValidation(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		multiplier float64
		wantErr    bool
	}{
		{"valid", 256, 8, false},
		{"zero multiplier", 256, 0, false},
		{"zero size", 0, 8, true},
		{"negative size", -1, 8, true},
		{"negative multiplier", 256, -1, true},
		{"NaN multiplier", 256, math.NaN(), true},
		{"Inf multiplier", 256, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLinear(tt.size, tt.multiplier)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewLinear(%d, %v) error = %v, wantErr %v", tt.size, tt.multiplier, err, tt.wantErr)
			}
		})
	}
}

func TestNewDecibelValidation(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		minDB   float64
		maxDB   float64
		wantErr bool
	}{
		{"valid", 256, -100, -30, false},
		{"zero size", 0, -100, -30, true},
		{"inverted range", 256, -30, -100, true},
		{"equal bounds", 256, -60, -60, true},
		{"NaN min", 256, math.NaN(), -30, true},
		{"Inf max", 256, -100, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecibel(tt.size, tt.minDB, tt.maxDB)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewDecibel(%d, %v, %v) error = %v, wantErr %v", tt.size, tt.minDB, tt.maxDB, err, tt.wantErr)
			}
		})
	}
}

func TestScaleLengthChecks(t *testing.T) {
	s, err := NewLinear(256, 8)
	if err != nil {
		t.Fatalf("NewLinear: %v", err)
	}

	if err := s.Scale(make([]float64, 4), make([]complex128, 8)); err == nil {
		t.Error("Scale accepted mismatched dst/bins lengths")
	}

	if err := s.Scale(make([]float64, 256), make([]complex128, 256)); err == nil {
		t.Error("Scale accepted more bins than transform capacity")
	}

	if err := s.Scale(nil, nil); err != nil {
		t.Errorf("Scale rejected empty input: %v", err)
	}
}

// TestLinearKnownValues checks the linear formula against hand-computed
// points: out = clamp(|X|/size * multiplier, 0, 1).
func TestLinearKnownValues(t *testing.T) {
	s, err := NewLinear(256, 8)
	if err != nil {
		t.Fatalf("NewLinear: %v", err)
	}

	bins := []complex128{0, complex(16, 0), complex(0, 16), complex(32, 0), complex(256, 0)}
	dst := make([]float64, len(bins))

	if err := s.Scale(dst, bins); err != nil {
		t.Fatalf("Scale: %v", err)
	}

	want := []float64{0, 0.5, 0.5, 1, 1}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("bin %d = %v, want %v", i, dst[i], want[i])
		}
	}
}

// TestDecibelKnownValues checks the decibel mapping at full scale, half
// scale, and silence.
func TestDecibelKnownValues(t *testing.T) {
	s, err := NewDecibel(256, -100, -30)
	if err != nil {
		t.Fatalf("NewDecibel: %v", err)
	}

	bins := []complex128{0, complex(128, 0), complex(256, 0)}
	dst := make([]float64, len(bins))

	if err := s.Scale(dst, bins); err != nil {
		t.Fatalf("Scale: %v", err)
	}

	// Silence hits the epsilon floor: 20*log10(1e-10) = -200 dB, below minDB.
	if dst[0] != 0 {
		t.Errorf("silent bin = %v, want 0", dst[0])
	}

	// Half scale: 20*log10(0.5) ~= -6.02 dB, normalized above the -30 dB top.
	if dst[1] != 1 {
		t.Errorf("half-scale bin = %v, want 1 (saturated)", dst[1])
	}

	if dst[2] != 1 {
		t.Errorf("full-scale bin = %v, want 1 (saturated)", dst[2])
	}

	// A bin inside the window: |X| = 256*10^(-60/20) puts it at -60 dB,
	// normalized (−60+100)/70.
	inside := []complex128{complex(256*math.Pow(10, -3), 0)}
	one := make([]float64, 1)

	if err := s.Scale(one, inside); err != nil {
		t.Fatalf("Scale: %v", err)
	}

	want := 40.0 / 70.0
	if math.Abs(one[0]-want) > 1e-9 {
		t.Errorf("-60 dB bin = %v, want %v", one[0], want)
	}
}

// TestScalingMonotonicity verifies both strategies are non-decreasing in
// input magnitude and saturate at 1.
func TestScalingMonotonicity(t *testing.T) {
	linear, err := NewLinear(256, 8)
	if err != nil {
		t.Fatalf("NewLinear: %v", err)
	}

	decibel, err := NewDecibel(256, -100, -30)
	if err != nil {
		t.Fatalf("NewDecibel: %v", err)
	}

	for _, tc := range []struct {
		name string
		s    *Scaler
	}{
		{"linear", linear},
		{"decibel", decibel},
	} {
		t.Run(tc.name, func(t *testing.T) {
			prev := -1.0
			for mag := 0.0; mag <= 512; mag += 0.5 {
				out := make([]float64, 1)
				if err := tc.s.Scale(out, []complex128{complex(mag, 0)}); err != nil {
					t.Fatalf("Scale: %v", err)
				}

				if out[0] < prev {
					t.Fatalf("output decreased at magnitude %v: %v < %v", mag, out[0], prev)
				}

				if out[0] < 0 || out[0] > 1 {
					t.Fatalf("output out of range at magnitude %v: %v", mag, out[0])
				}

				prev = out[0]
			}

			if prev != 1 {
				t.Errorf("output did not saturate at 1: %v", prev)
			}
		})
	}
}

func TestScaleMagnitudes(t *testing.T) {
	s, err := NewLinear(256, 8)
	if err != nil {
		t.Fatalf("NewLinear: %v", err)
	}

	mags := []float64{0, 16, 256}
	s.ScaleMagnitudes(mags)

	want := []float64{0, 0.5, 1}
	for i := range want {
		if mags[i] != want[i] {
			t.Errorf("mag %d = %v, want %v", i, mags[i], want[i])
		}
	}
}

func TestBinCount(t *testing.T) {
	s, err := NewDecibel(256, -100, -30)
	if err != nil {
		t.Fatalf("NewDecibel: %v", err)
	}

	if got := s.BinCount(); got != 128 {
		t.Errorf("BinCount() = %d, want 128", got)
	}

	if got := s.TransformSize(); got != 256 {
		t.Errorf("TransformSize() = %d, want 256", got)
	}

	if got := s.Method(); got != MethodDecibel {
		t.Errorf("Method() = %v, want decibel", got)
	}
}
