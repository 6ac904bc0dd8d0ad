package profile

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-viz/viz/bands"
	"github.com/cwbudde/algo-viz/viz/core"
	"github.com/cwbudde/algo-viz/viz/motion"
	"github.com/cwbudde/algo-viz/viz/scale"
)

// Configuration errors. All are fatal and surface before any frame is
// processed; callers match with errors.Is.
var (
	ErrUnknownParam   = errors.New("unknown parameter")
	ErrUnknownProfile = errors.New("unknown profile")
	ErrInvalidValue   = errors.New("invalid parameter value")
	ErrOutOfRange     = errors.New("parameter out of range")
	ErrIncompatible   = errors.New("incompatible configuration")
)

// Params is a partial parameter map keyed by recognized parameter names.
// Numeric values may be float64 or int; booleans and strings are typed.
type Params map[string]any

// applier converts and range-checks one parameter value into its Effective
// field.
type applier func(cfg *Effective, v any) error

// recognized is the closed set of parameter keys. A key outside this table
// is a hard resolution failure, never silently dropped.
var recognized = map[string]applier{
	"fftScaling": func(cfg *Effective, v any) error {
		s, err := strValue(v)
		if err != nil {
			return err
		}

		m, err := scale.ParseMethod(s)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrOutOfRange, err)
		}

		cfg.FFTScaling = m

		return nil
	},
	"fftMultiplier": func(cfg *Effective, v any) error {
		return setNum(&cfg.FFTMultiplier, v, atLeast(0))
	},
	"fftMinDb": func(cfg *Effective, v any) error {
		return setNum(&cfg.FFTMinDB, v, finite())
	},
	"fftMaxDb": func(cfg *Effective, v any) error {
		return setNum(&cfg.FFTMaxDB, v, finite())
	},
	"binCount": func(cfg *Effective, v any) error {
		return setInt(&cfg.BinCount, v, 1, math.MaxInt32)
	},
	"bassCutoff": func(cfg *Effective, v any) error {
		return setInt(&cfg.BassCutoff, v, 1, math.MaxInt32)
	},
	"midCutoff": func(cfg *Effective, v any) error {
		return setInt(&cfg.MidCutoff, v, 1, math.MaxInt32)
	},
	"bandReduce": func(cfg *Effective, v any) error {
		s, err := strValue(v)
		if err != nil {
			return err
		}

		r, err := bands.ParseReduce(s)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrOutOfRange, err)
		}

		cfg.BandReduce = r

		return nil
	},
	"bassExponent": func(cfg *Effective, v any) error {
		return setNum(&cfg.BassExponent, v, greaterThan(0))
	},
	"midExponent": func(cfg *Effective, v any) error {
		return setNum(&cfg.MidExponent, v, greaterThan(0))
	},
	"highExponent": func(cfg *Effective, v any) error {
		return setNum(&cfg.HighExponent, v, greaterThan(0))
	},
	"temporalSmoothing": func(cfg *Effective, v any) error {
		return setBool(&cfg.TemporalSmoothing, v)
	},
	"temporalSmoothingConstant": func(cfg *Effective, v any) error {
		return setNum(&cfg.TemporalSmoothingConstant, v, halfOpenUnit())
	},
	"frameRate": func(cfg *Effective, v any) error {
		return setInt(&cfg.FrameRate, v, 1, math.MaxInt32)
	},
	"motionSystem": func(cfg *Effective, v any) error {
		s, err := strValue(v)
		if err != nil {
			return err
		}

		m, err := motion.ParseSystem(s)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrOutOfRange, err)
		}

		cfg.MotionSystem = m

		return nil
	},
	"bassHalfLife": func(cfg *Effective, v any) error {
		return setNum(&cfg.BassHalfLife, v, greaterThan(0))
	},
	"midHalfLife": func(cfg *Effective, v any) error {
		return setNum(&cfg.MidHalfLife, v, greaterThan(0))
	},
	"highHalfLife": func(cfg *Effective, v any) error {
		return setNum(&cfg.HighHalfLife, v, greaterThan(0))
	},
	"bassSmoothing": func(cfg *Effective, v any) error {
		return setNum(&cfg.BassSmoothing, v, halfOpenUnit())
	},
	"midSmoothing": func(cfg *Effective, v any) error {
		return setNum(&cfg.MidSmoothing, v, halfOpenUnit())
	},
	"highSmoothing": func(cfg *Effective, v any) error {
		return setNum(&cfg.HighSmoothing, v, halfOpenUnit())
	},
	"springStiffness": func(cfg *Effective, v any) error {
		return setNum(&cfg.SpringStiffness, v, within(math.Nextafter(0, 1), 1))
	},
	"springDamping": func(cfg *Effective, v any) error {
		return setNum(&cfg.SpringDamping, v, within(0, 1))
	},
	"requireRateIndependent": func(cfg *Effective, v any) error {
		return setBool(&cfg.RequireRateIndependent, v)
	},
	"rotationSpeed": func(cfg *Effective, v any) error {
		return setNum(&cfg.RotationSpeed, v, atLeast(0))
	},
	"distortionThreshold": func(cfg *Effective, v any) error {
		return setNum(&cfg.DistortionThreshold, v, within(0, 1))
	},
	"distortionMultiplier": func(cfg *Effective, v any) error {
		return setNum(&cfg.DistortionMultiplier, v, atLeast(0))
	},
	"scaleMin": func(cfg *Effective, v any) error {
		return setNum(&cfg.ScaleMin, v, atLeast(0))
	},
	"scaleRange": func(cfg *Effective, v any) error {
		return setNum(&cfg.ScaleRange, v, atLeast(0))
	},
	"trailDecay": func(cfg *Effective, v any) error {
		return setNum(&cfg.TrailDecay, v, halfOpenUnit())
	},
	"inversionBassThreshold": func(cfg *Effective, v any) error {
		return setNum(&cfg.InversionBassThreshold, v, within(0, 1))
	},
	"inversionDurationFrames": func(cfg *Effective, v any) error {
		return setInt(&cfg.InversionDurationFrames, v, 0, math.MaxInt32)
	},
	"inversionCooldownFrames": func(cfg *Effective, v any) error {
		return setInt(&cfg.InversionCooldownFrames, v, 0, math.MaxInt32)
	},
	"distortionType": func(cfg *Effective, v any) error {
		return setInt(&cfg.DistortionType, v, 0, math.MaxInt32)
	},
	"trailHue": func(cfg *Effective, v any) error {
		return setNum(&cfg.TrailHue, v, halfOpen(0, 360))
	},
	"trailSaturation": func(cfg *Effective, v any) error {
		return setNum(&cfg.TrailSaturation, v, within(0, 100))
	},
	"trailLightness": func(cfg *Effective, v any) error {
		return setNum(&cfg.TrailLightness, v, within(0, 100))
	},
}

// defaults is the base layer: every recognized key has a default, so a
// resolved Effective never has unset fields.
var defaults = Params{
	"fftScaling":                "decibel",
	"fftMultiplier":             scale.DefaultMultiplier,
	"fftMinDb":                  scale.DefaultMinDB,
	"fftMaxDb":                  scale.DefaultMaxDB,
	"binCount":                  bands.DefaultBinCount,
	"bassCutoff":                bands.DefaultBassCutoff,
	"midCutoff":                 bands.DefaultMidCutoff,
	"bandReduce":                "max",
	"bassExponent":              bands.DefaultBassExponent,
	"midExponent":               bands.DefaultMidExponent,
	"highExponent":              bands.DefaultHighExponent,
	"temporalSmoothing":         true,
	"temporalSmoothingConstant": 0.6,
	"frameRate":                 60,
	"motionSystem":              "exponential",
	"bassHalfLife":              0.1,
	"midHalfLife":               0.15,
	"highHalfLife":              0.2,
	"bassSmoothing":             0.8,
	"midSmoothing":              0.7,
	"highSmoothing":             0.6,
	"springStiffness":           0.5,
	"springDamping":             0.3,
	"requireRateIndependent":    false,
	"rotationSpeed":             0.6,
	"distortionThreshold":       0.35,
	"distortionMultiplier":      1.5,
	"scaleMin":                  0.8,
	"scaleRange":                0.5,
	"trailDecay":                0.92,
	"inversionBassThreshold":    0.85,
	"inversionDurationFrames":   18,
	"inversionCooldownFrames":   45,
	"distortionType":            0,
	"trailHue":                  330,
	"trailSaturation":           100,
	"trailLightness":            65,
}

// Resolve merges defaults, the named profile, and overrides into a validated
// Effective. The overrides map may be nil.
func Resolve(profileName string, overrides Params) (Effective, error) {
	prof, ok := registry[profileName]
	if !ok {
		return Effective{}, fmt.Errorf("%w: %q", ErrUnknownProfile, profileName)
	}

	if err := checkKeys(overrides); err != nil {
		return Effective{}, err
	}

	// Built-in profiles are validated at package load; this guards any
	// future registration path the same way overrides are guarded.
	if err := checkKeys(prof); err != nil {
		return Effective{}, err
	}

	var cfg Effective

	for _, key := range recognizedKeys() {
		v, ok := overrides[key]
		if !ok {
			if v, ok = prof[key]; !ok {
				v = defaults[key]
			}
		}

		if err := recognized[key](&cfg, v); err != nil {
			return Effective{}, fmt.Errorf("%s: %w", key, err)
		}
	}

	if err := validateCombined(cfg); err != nil {
		return Effective{}, err
	}

	return cfg, nil
}

// ResolveDefault resolves the default profile with no overrides.
func ResolveDefault() (Effective, error) {
	return Resolve(DefaultProfile, nil)
}

// validateCombined checks constraints spanning multiple fields.
func validateCombined(cfg Effective) error {
	if cfg.FFTMinDB >= cfg.FFTMaxDB {
		return fmt.Errorf("%w: fftMinDb %f must be below fftMaxDb %f",
			ErrOutOfRange, cfg.FFTMinDB, cfg.FFTMaxDB)
	}

	if err := cfg.BandLayout().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}

	if cfg.RequireRateIndependent && cfg.MotionSystem == motion.SystemLegacy {
		return fmt.Errorf("%w: requireRateIndependent with motionSystem=legacy", ErrIncompatible)
	}

	return nil
}

// checkKeys rejects any key outside the recognized set.
func checkKeys(p Params) error {
	for key := range p {
		if _, ok := recognized[key]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownParam, key)
		}
	}

	return nil
}

// recognizedKeys returns the recognized key names in deterministic order.
func recognizedKeys() []string {
	keys := make([]string, 0, len(recognized))
	for key := range recognized {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Keys returns the recognized parameter names, sorted. Useful for tooling
// that wants to present or validate the configuration surface.
func Keys() []string {
	return recognizedKeys()
}

// Value coercion. Numeric parameters accept float64 or int so both Go
// literals and decoded JSON drive the same table.

func numValue(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", ErrInvalidValue, v)
	}
}

func strValue(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %T", ErrInvalidValue, v)
	}

	return s, nil
}

func setBool(dst *bool, v any) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("%w: expected bool, got %T", ErrInvalidValue, v)
	}

	*dst = b

	return nil
}

func setNum(dst *float64, v any, check func(float64) error) error {
	n, err := numValue(v)
	if err != nil {
		return err
	}

	if err := check(n); err != nil {
		return err
	}

	*dst = n

	return nil
}

func setInt(dst *int, v any, min, max int) error {
	n, err := numValue(v)
	if err != nil {
		return err
	}

	if n != math.Trunc(n) {
		return fmt.Errorf("%w: expected integer, got %v", ErrInvalidValue, n)
	}

	i := int(n)
	if i < min || i > max {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, i, min, max)
	}

	*dst = i

	return nil
}

// Range predicates for setNum.

func finite() func(float64) error {
	return func(n float64) error {
		if !core.IsFinite(n) {
			return fmt.Errorf("%w: %f is not finite", ErrOutOfRange, n)
		}

		return nil
	}
}

func atLeast(min float64) func(float64) error {
	return func(n float64) error {
		if n < min || !core.IsFinite(n) {
			return fmt.Errorf("%w: %f must be >= %f", ErrOutOfRange, n, min)
		}

		return nil
	}
}

func greaterThan(min float64) func(float64) error {
	return func(n float64) error {
		if n <= min || !core.IsFinite(n) {
			return fmt.Errorf("%w: %f must be > %f", ErrOutOfRange, n, min)
		}

		return nil
	}
}

func within(min, max float64) func(float64) error {
	return func(n float64) error {
		if n < min || n > max || !core.IsFinite(n) {
			return fmt.Errorf("%w: %f not in [%f, %f]", ErrOutOfRange, n, min, max)
		}

		return nil
	}
}

func halfOpen(min, max float64) func(float64) error {
	return func(n float64) error {
		if n < min || n >= max || !core.IsFinite(n) {
			return fmt.Errorf("%w: %f not in [%f, %f)", ErrOutOfRange, n, min, max)
		}

		return nil
	}
}

func halfOpenUnit() func(float64) error {
	return halfOpen(0, 1)
}
