package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// Clamp01 limits value to the unit interval.
func Clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}

	if value > 1 {
		return 1
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// Lerp linearly interpolates between a and b by t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
