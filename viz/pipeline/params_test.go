package pipeline

import (
	"testing"

	"github.com/cwbudde/algo-viz/viz/bands"
	"github.com/cwbudde/algo-viz/viz/profile"
)

func mapperConfig(t *testing.T) profile.Effective {
	t.Helper()

	cfg, err := profile.Resolve(profile.DefaultProfile, profile.Params{
		"scaleMin":             1.0,
		"scaleRange":           0.5,
		"rotationSpeed":        2.0,
		"distortionThreshold":  0.5,
		"distortionMultiplier": 2.0,
		"trailDecay":           0.875,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	return cfg
}

func TestMapParameters(t *testing.T) {
	cfg := mapperConfig(t)

	tests := []struct {
		name           string
		features       bands.Features
		wantScale      float64
		wantRotation   float64
		wantDistortion float64
	}{
		{"silence", bands.Features{}, 1.0, 0, 0},
		{"full bass", bands.Features{Bass: 1}, 1.5, 0, 0},
		{"half bass", bands.Features{Bass: 0.5}, 1.25, 0, 0},
		{"full high", bands.Features{High: 1}, 1.0, 2.0, 0},
		{"mid at threshold", bands.Features{Mid: 0.5}, 1.0, 0, 0},
		{"mid halfway over", bands.Features{Mid: 0.75}, 1.0, 0, 1.0},
		{"mid saturated", bands.Features{Mid: 1}, 1.0, 0, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapParameters(tt.features, false, cfg)

			if got.Scale != tt.wantScale {
				t.Errorf("Scale = %v, want %v", got.Scale, tt.wantScale)
			}

			if got.RotationDelta != tt.wantRotation {
				t.Errorf("RotationDelta = %v, want %v", got.RotationDelta, tt.wantRotation)
			}

			if got.DistortionAmount != tt.wantDistortion {
				t.Errorf("DistortionAmount = %v, want %v", got.DistortionAmount, tt.wantDistortion)
			}
		})
	}
}

func TestMapParametersPassThrough(t *testing.T) {
	cfg := mapperConfig(t)

	got := MapParameters(bands.Features{}, true, cfg)

	if !got.Invert {
		t.Error("Invert = false, want true")
	}

	if got.DistortionThreshold != 0.5 {
		t.Errorf("DistortionThreshold = %v, want 0.5", got.DistortionThreshold)
	}

	if got.TrailDecay != 0.875 {
		t.Errorf("TrailDecay = %v, want 0.875", got.TrailDecay)
	}
}

// TestMapParametersThresholdOne verifies the division guard: a threshold of
// exactly 1 yields zero distortion for any mid level.
func TestMapParametersThresholdOne(t *testing.T) {
	cfg := mapperConfig(t)
	cfg.DistortionThreshold = 1.0

	got := MapParameters(bands.Features{Mid: 1}, false, cfg)
	if got.DistortionAmount != 0 {
		t.Errorf("DistortionAmount = %v, want 0 at threshold 1", got.DistortionAmount)
	}
}

// TestMapParametersBounds verifies every output lands in its documented
// domain even for out-of-range features.
func TestMapParametersBounds(t *testing.T) {
	cfg := mapperConfig(t)

	extremes := []bands.Features{
		{Bass: 2, Mid: 2, High: 2},
		{Bass: -1, Mid: -1, High: -1},
	}

	for _, f := range extremes {
		got := MapParameters(f, false, cfg)

		if got.Scale < cfg.ScaleMin || got.Scale > cfg.ScaleMin+cfg.ScaleRange {
			t.Errorf("Scale = %v out of [%v, %v]", got.Scale, cfg.ScaleMin, cfg.ScaleMin+cfg.ScaleRange)
		}

		if got.RotationDelta < 0 || got.RotationDelta > cfg.RotationSpeed {
			t.Errorf("RotationDelta = %v out of [0, %v]", got.RotationDelta, cfg.RotationSpeed)
		}

		if got.DistortionAmount < 0 || got.DistortionAmount > cfg.DistortionMultiplier {
			t.Errorf("DistortionAmount = %v out of [0, %v]", got.DistortionAmount, cfg.DistortionMultiplier)
		}
	}
}
