package pipeline

import (
	"github.com/cwbudde/algo-viz/viz/bands"
	"github.com/cwbudde/algo-viz/viz/core"
	"github.com/cwbudde/algo-viz/viz/profile"
)

// intensityEpsilon guards the distortion normalization against a threshold
// of exactly 1, which would otherwise divide by zero. True silence and
// threshold-edge inputs are expected boundary cases, not faults.
const intensityEpsilon = 1e-9

// RenderParameters is the per-frame output contract consumed by the
// rendering stage. Every field is clamped into its documented domain before
// return; a RenderParameters value is never partially valid.
type RenderParameters struct {
	// Scale in [scaleMin, scaleMin+scaleRange], driven by smoothed bass.
	Scale float64 `json:"scale"`

	// RotationDelta in [0, rotationSpeed] is the per-frame angle increment;
	// the caller integrates it into a running rotation.
	RotationDelta float64 `json:"rotationDelta"`

	// DistortionAmount in [0, distortionMultiplier], driven by smoothed mid
	// energy above the threshold.
	DistortionAmount float64 `json:"distortionAmount"`

	// DistortionThreshold is the configured threshold, passed through so
	// the renderer sees a complete parameter set.
	DistortionThreshold float64 `json:"distortionThreshold"`

	// TrailDecay in [0, 1) is static configuration pass-through, not
	// audio-reactive.
	TrailDecay float64 `json:"trailDecay"`

	// Invert is the debounced bass-triggered inversion flag.
	Invert bool `json:"invert"`
}

// MapParameters maps smoothed band features onto render parameters. It is a
// pure function of its inputs: all run state (smoothing, inversion) is
// advanced by the caller beforehand.
func MapParameters(f bands.Features, invert bool, cfg profile.Effective) RenderParameters {
	return RenderParameters{
		Scale: core.Clamp(cfg.ScaleMin+f.Bass*cfg.ScaleRange,
			cfg.ScaleMin, cfg.ScaleMin+cfg.ScaleRange),
		RotationDelta:       core.Clamp(f.High*cfg.RotationSpeed, 0, cfg.RotationSpeed),
		DistortionAmount:    distortionAmount(f.Mid, cfg),
		DistortionThreshold: cfg.DistortionThreshold,
		TrailDecay:          cfg.TrailDecay,
		Invert:              invert,
	}
}

// distortionAmount rescales the over-threshold part of the mid feature to
// [0, 1] and applies the multiplier. A threshold of exactly 1 defines the
// intensity as 0 rather than dividing by zero.
func distortionAmount(mid float64, cfg profile.Effective) float64 {
	th := cfg.DistortionThreshold
	if th >= 1 {
		return 0
	}

	over := mid - th
	if over <= 0 {
		return 0
	}

	intensity := core.Clamp01(over / max(intensityEpsilon, 1-th))

	return intensity * cfg.DistortionMultiplier
}
