package scale

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-viz/viz/core"
)

const (
	// DefaultMultiplier is the historical uncalibrated linear gain. It was
	// tuned empirically against one particular renderer and is not
	// physically derived; it exists so the linear strategy can reproduce
	// legacy output.
	DefaultMultiplier = 8.0

	// DefaultMinDB and DefaultMaxDB frame the decibel strategy's dynamic
	// range. Empirical starting points, expected to be re-tuned per source
	// material.
	DefaultMinDB = -100.0
	DefaultMaxDB = -30.0

	// silenceFloor keeps log10 away from -Inf when a bin is exactly zero.
	silenceFloor = 1e-10
)

// Method selects the magnitude normalization strategy.
type Method int

const (
	// MethodLinear divides magnitudes by the transform size and applies the
	// historical multiplier.
	MethodLinear Method = iota

	// MethodDecibel maps magnitudes onto a [minDB, maxDB] decibel window.
	MethodDecibel
)

// String returns the method name used in configuration.
func (m Method) String() string {
	switch m {
	case MethodLinear:
		return "linear"
	case MethodDecibel:
		return "decibel"
	default:
		return "unknown"
	}
}

// ParseMethod converts a configuration string into a Method.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return MethodLinear, nil
	case "decibel":
		return MethodDecibel, nil
	default:
		return 0, fmt.Errorf("unsupported scaling method: %q", name)
	}
}

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Scaler normalizes raw transform magnitudes into [0, 1].
//
// A Scaler is stateless apart from pooled scratch memory and is safe to
// share across runs; it never allocates per call in steady state.
type Scaler struct {
	method        Method
	transformSize int
	multiplier    float64
	minDB         float64
	invRangeDB    float64
}

// NewLinear creates a linear scaler for the given transform size.
//
// The multiplier is applied after dividing by the transform size; values at
// or above 1/multiplier of full scale saturate at 1.
func NewLinear(transformSize int, multiplier float64) (*Scaler, error) {
	if transformSize <= 0 {
		return nil, fmt.Errorf("scale transform size must be > 0: %d", transformSize)
	}

	if multiplier < 0 || !core.IsFinite(multiplier) {
		return nil, fmt.Errorf("scale multiplier must be >= 0 and finite: %f", multiplier)
	}

	return &Scaler{
		method:        MethodLinear,
		transformSize: transformSize,
		multiplier:    multiplier,
	}, nil
}

// NewDecibel creates a decibel scaler for the given transform size.
//
// Magnitudes are normalized by the transform size, converted to dBFS with a
// small epsilon floor, then mapped linearly from [minDB, maxDB] onto [0, 1].
func NewDecibel(transformSize int, minDB, maxDB float64) (*Scaler, error) {
	if transformSize <= 0 {
		return nil, fmt.Errorf("scale transform size must be > 0: %d", transformSize)
	}

	if !core.IsFinite(minDB) || !core.IsFinite(maxDB) {
		return nil, fmt.Errorf("scale dB bounds must be finite: [%f, %f]", minDB, maxDB)
	}

	if minDB >= maxDB {
		return nil, fmt.Errorf("scale dB range must satisfy min < max: [%f, %f]", minDB, maxDB)
	}

	return &Scaler{
		method:        MethodDecibel,
		transformSize: transformSize,
		minDB:         minDB,
		invRangeDB:    1 / (maxDB - minDB),
	}, nil
}

// Method returns the active normalization strategy.
func (s *Scaler) Method() Method { return s.method }

// TransformSize returns the transform size the scaler was built for.
func (s *Scaler) TransformSize() int { return s.transformSize }

// BinCount returns the number of usable spectrum bins (transformSize/2).
func (s *Scaler) BinCount() int { return s.transformSize / 2 }

// Scale writes normalized magnitudes for the complex bins into dst.
//
// Magnitude extraction uses SIMD-optimized vecmath with pooled scratch, so
// in steady state this performs no allocation. dst and bins must have equal
// length not exceeding the scaler's bin count.
func (s *Scaler) Scale(dst []float64, bins []complex128) error {
	if len(dst) != len(bins) {
		return fmt.Errorf("scale dst/bins length mismatch: %d != %d", len(dst), len(bins))
	}

	if len(bins) > s.BinCount() {
		return fmt.Errorf("scale bin count %d exceeds transform capacity %d", len(bins), s.BinCount())
	}

	if len(bins) == 0 {
		return nil
	}

	re, im, buf := getScratch(len(bins))
	for i, c := range bins {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(dst, re, im)
	putScratch(buf)

	s.normalize(dst)

	return nil
}

// ScaleMagnitudes normalizes raw |X[k]| magnitudes in place.
//
// This is the path for callers whose transform backend already produced
// real magnitudes.
func (s *Scaler) ScaleMagnitudes(mags []float64) {
	s.normalize(mags)
}

func (s *Scaler) normalize(mags []float64) {
	invSize := 1 / float64(s.transformSize)

	switch s.method {
	case MethodDecibel:
		for i, m := range mags {
			db := 20 * math.Log10(m*invSize+silenceFloor)
			mags[i] = core.Clamp01((db - s.minDB) * s.invRangeDB)
		}
	default:
		for i, m := range mags {
			mags[i] = core.Clamp01(m * invSize * s.multiplier)
		}
	}
}
