package profile

import (
	"github.com/cwbudde/algo-viz/viz/bands"
	"github.com/cwbudde/algo-viz/viz/motion"
	"github.com/cwbudde/algo-viz/viz/scale"
)

// Effective is the fully-populated configuration of one pipeline run.
//
// Every field is validated during resolution; downstream code never checks
// ranges again. An Effective is a plain value: pass it by value and it
// cannot be mutated under a running pipeline.
type Effective struct {
	// Spectrum scaling.
	FFTScaling    scale.Method
	FFTMultiplier float64
	FFTMinDB      float64
	FFTMaxDB      float64

	// Band geometry and shaping.
	BinCount     int
	BassCutoff   int
	MidCutoff    int
	BandReduce   bands.Reduce
	BassExponent float64
	MidExponent  float64
	HighExponent float64

	// Per-bin temporal smoothing.
	TemporalSmoothing         bool
	TemporalSmoothingConstant float64

	// Motion smoothing.
	FrameRate              int
	MotionSystem           motion.System
	BassHalfLife           float64
	MidHalfLife            float64
	HighHalfLife           float64
	BassSmoothing          float64
	MidSmoothing           float64
	HighSmoothing          float64
	SpringStiffness        float64
	SpringDamping          float64
	RequireRateIndependent bool

	// Parameter mapping.
	RotationSpeed        float64
	DistortionThreshold  float64
	DistortionMultiplier float64
	ScaleMin             float64
	ScaleRange           float64
	TrailDecay           float64

	// Bass-triggered inversion.
	InversionBassThreshold  float64
	InversionDurationFrames int
	InversionCooldownFrames int

	// Static renderer pass-through (not audio-reactive).
	DistortionType  int
	TrailHue        float64
	TrailSaturation float64
	TrailLightness  float64
}

// TransformSize returns the transform length implied by the bin count.
func (e Effective) TransformSize() int {
	return e.BinCount * 2
}

// BandLayout returns the band partition implied by the cutoffs.
func (e Effective) BandLayout() bands.Layout {
	return bands.Layout{
		BassEnd:  e.BassCutoff,
		MidEnd:   e.MidCutoff,
		BinCount: e.BinCount,
	}
}

// FrameDelta returns the nominal fixed step 1/frameRate used by batch
// drivers.
func (e Effective) FrameDelta() float64 {
	return 1 / float64(e.FrameRate)
}
