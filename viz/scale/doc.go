// Package scale converts complex transform-domain spectra into bounded
// per-bin magnitudes in [0, 1].
//
// The package intentionally does not implement a frequency transform. It
// operates on complex bins produced by external FFT backends and offers two
// normalization strategies: a historical linear gain and a calibrated
// decibel mapping. The decibel strategy is the one to use when two pipeline
// instances with different timing characteristics must produce matching
// output; the linear multiplier is an empirical constant preserved for
// backward compatibility.
package scale
