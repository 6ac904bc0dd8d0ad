package bands

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-viz/viz/core"
)

// Default band geometry for a 256-sample transform (128 usable bins).
const (
	DefaultBassCutoff = 9
	DefaultMidCutoff  = 41
	DefaultBinCount   = 128
)

// Default shaping exponents. Cubing the bass suppresses its noise floor and
// makes kicks read as discrete events; highs pass through unshaped.
const (
	DefaultBassExponent = 3.0
	DefaultMidExponent  = 1.5
	DefaultHighExponent = 1.0
)

// Reduce selects how the bins of one band collapse to a scalar.
type Reduce int

const (
	// ReduceMax takes the loudest bin of the band. A single hot bin fully
	// drives the band, which matches how isolated tones should read.
	ReduceMax Reduce = iota

	// ReduceMean averages the band's bins.
	ReduceMean
)

// String returns the reduction name used in configuration.
func (r Reduce) String() string {
	switch r {
	case ReduceMax:
		return "max"
	case ReduceMean:
		return "mean"
	default:
		return "unknown"
	}
}

// ParseReduce converts a configuration string into a Reduce mode.
func ParseReduce(name string) (Reduce, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "max":
		return ReduceMax, nil
	case "mean":
		return ReduceMean, nil
	default:
		return 0, fmt.Errorf("unsupported band reduction: %q", name)
	}
}

// Layout partitions the spectrum into three contiguous bands:
// bass [0, BassEnd), mid [BassEnd, MidEnd), high [MidEnd, BinCount).
type Layout struct {
	BassEnd  int
	MidEnd   int
	BinCount int
}

// DefaultLayout returns the 128-bin layout used by the default profile.
func DefaultLayout() Layout {
	return Layout{
		BassEnd:  DefaultBassCutoff,
		MidEnd:   DefaultMidCutoff,
		BinCount: DefaultBinCount,
	}
}

// Validate checks that the cutoffs carve three non-empty ranges.
func (l Layout) Validate() error {
	if l.BassEnd <= 0 || l.MidEnd <= l.BassEnd || l.BinCount <= l.MidEnd {
		return fmt.Errorf("band layout must satisfy 0 < bassEnd < midEnd < binCount: %d, %d, %d",
			l.BassEnd, l.MidEnd, l.BinCount)
	}

	return nil
}

// Features holds the per-frame band scalars, each in [0, 1].
type Features struct {
	Bass float64
	Mid  float64
	High float64
}

// Aggregator reduces spectrum magnitudes to Features. It is stateless and
// safe for concurrent use across runs.
type Aggregator struct {
	layout  Layout
	reduce  Reduce
	bassExp float64
	midExp  float64
	highExp float64
}

// NewAggregator creates an aggregator for the given layout, reduction, and
// per-band shaping exponents (all must be > 0).
func NewAggregator(layout Layout, reduce Reduce, bassExp, midExp, highExp float64) (*Aggregator, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	for _, exp := range []float64{bassExp, midExp, highExp} {
		if exp <= 0 || !core.IsFinite(exp) {
			return nil, fmt.Errorf("band exponent must be > 0 and finite: %f", exp)
		}
	}

	return &Aggregator{
		layout:  layout,
		reduce:  reduce,
		bassExp: bassExp,
		midExp:  midExp,
		highExp: highExp,
	}, nil
}

// Layout returns the aggregator's band layout.
func (a *Aggregator) Layout() Layout { return a.layout }

// Aggregate reduces the magnitudes (expected in [0, 1]) to band features.
func (a *Aggregator) Aggregate(mags []float64) (Features, error) {
	if len(mags) != a.layout.BinCount {
		return Features{}, fmt.Errorf("aggregate input length %d, want %d", len(mags), a.layout.BinCount)
	}

	return Features{
		Bass: shape(a.reduceRange(mags[:a.layout.BassEnd]), a.bassExp),
		Mid:  shape(a.reduceRange(mags[a.layout.BassEnd:a.layout.MidEnd]), a.midExp),
		High: shape(a.reduceRange(mags[a.layout.MidEnd:]), a.highExp),
	}, nil
}

func (a *Aggregator) reduceRange(bins []float64) float64 {
	if len(bins) == 0 {
		return 0
	}

	if a.reduce == ReduceMean {
		sum := 0.0
		for _, v := range bins {
			sum += v
		}

		return sum / float64(len(bins))
	}

	max := bins[0]
	for _, v := range bins[1:] {
		if v > max {
			max = v
		}
	}

	return max
}

// shape applies the band exponent and clamps the result to [0, 1].
// An exponent of exactly 1 avoids math.Pow so dyadic inputs stay exact.
func shape(v, exp float64) float64 {
	v = core.Clamp01(v)
	switch exp {
	case 1:
		return v
	case 2:
		return v * v
	case 3:
		return v * v * v
	default:
		return core.Clamp01(math.Pow(v, exp))
	}
}
