package testutil

import (
	"math"
	"math/rand"
)

// Sine generates a deterministic sine wave.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Noise generates white noise with a fixed seed for reproducibility.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Mix sums the given signals sample-wise; all must share one length.
func Mix(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return nil
	}
	out := make([]float64, len(signals[0]))
	for _, s := range signals {
		for i := range out {
			out[i] += s[i]
		}
	}
	return out
}

// Silence generates an all-zero signal.
func Silence(length int) []float64 {
	return make([]float64, length)
}
