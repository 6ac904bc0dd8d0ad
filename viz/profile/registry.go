package profile

import "sort"

// Built-in profile names. The registry is closed: profiles are part of the
// library, not runtime-registered, so a typo in a profile name is always a
// resolution error rather than a silent fallback.
const (
	// DefaultProfile is the calibrated decibel/exponential configuration.
	DefaultProfile = "default"

	// LegacyServerProfile reproduces the historical server renderer:
	// linear scaling with the empirical multiplier, fixed-constant
	// smoothing, and the compensation constants that were tuned against
	// the scaling defect. Frame-rate dependent by design.
	LegacyServerProfile = "legacy-server"

	// ClubProfile emphasizes bass-driven motion for percussive material.
	ClubProfile = "club"

	// OrganicProfile uses spring smoothing for non-monotonic motion.
	OrganicProfile = "organic"
)

var registry = map[string]Params{
	DefaultProfile: {},

	LegacyServerProfile: {
		"fftScaling":              "linear",
		"fftMultiplier":           8.0,
		"motionSystem":            "legacy",
		"temporalSmoothing":       false,
		"bandReduce":              "max",
		"bassExponent":            3.0,
		"midExponent":             1.0,
		"highExponent":            1.0,
		"bassSmoothing":           0.75,
		"midSmoothing":            0.5,
		"highSmoothing":           0.5,
		"rotationSpeed":           2.0,
		"distortionThreshold":     0.5,
		"distortionMultiplier":    2.0,
		"scaleMin":                1.0,
		"scaleRange":              0.5,
		"trailDecay":              0.875,
		"inversionBassThreshold":  0.75,
		"inversionDurationFrames": 2,
		"inversionCooldownFrames": 2,
	},

	ClubProfile: {
		"bassExponent":           2.5,
		"scaleRange":             0.7,
		"rotationSpeed":          0.9,
		"distortionThreshold":    0.3,
		"inversionBassThreshold": 0.8,
	},

	OrganicProfile: {
		"motionSystem":    "spring",
		"springStiffness": 0.8,
		"springDamping":   0.25,
		"rotationSpeed":   0.75,
	},
}

// Names returns the registered profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Lookup returns the partial parameter map of a registered profile and
// whether the name is registered. The returned map must be treated as
// read-only; profiles are immutable once registered.
func Lookup(name string) (Params, bool) {
	p, ok := registry[name]
	return p, ok
}

func init() {
	// Built-in profiles must resolve; a broken registry is a programming
	// error, caught at package load rather than first use.
	for name := range registry {
		if _, err := Resolve(name, nil); err != nil {
			panic("profile registry: " + name + ": " + err.Error())
		}
	}
}
