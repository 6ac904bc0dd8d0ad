package bands

import "fmt"

// BinSmoother applies first-order temporal smoothing to each spectrum bin
// independently: acc[i] = acc[i]*c + raw[i]*(1-c).
//
// Accumulators start at zero at the beginning of a run, so the first few
// frames ramp up from silence rather than jumping. One BinSmoother belongs
// to exactly one run.
type BinSmoother struct {
	constant float64
	acc      []float64
}

// NewBinSmoother creates a per-bin smoother for binCount bins.
//
// The smoothing constant must be in [0, 1); 0 disables smoothing in effect
// (output tracks input exactly) while values near 1 respond very slowly.
func NewBinSmoother(binCount int, constant float64) (*BinSmoother, error) {
	if binCount <= 0 {
		return nil, fmt.Errorf("bin smoother bin count must be > 0: %d", binCount)
	}

	if constant < 0 || constant >= 1 {
		return nil, fmt.Errorf("bin smoother constant must be in [0, 1): %f", constant)
	}

	return &BinSmoother{
		constant: constant,
		acc:      make([]float64, binCount),
	}, nil
}

// Constant returns the smoothing constant.
func (b *BinSmoother) Constant() float64 { return b.constant }

// BinCount returns the number of tracked bins.
func (b *BinSmoother) BinCount() int { return len(b.acc) }

// Apply advances the accumulators with raw and writes the smoothed
// magnitudes into dst. dst may alias raw.
func (b *BinSmoother) Apply(dst, raw []float64) error {
	if len(raw) != len(b.acc) {
		return fmt.Errorf("bin smoother input length %d, want %d", len(raw), len(b.acc))
	}

	if len(dst) != len(raw) {
		return fmt.Errorf("bin smoother dst length %d, want %d", len(dst), len(raw))
	}

	c := b.constant
	for i, v := range raw {
		b.acc[i] = b.acc[i]*c + v*(1-c)
		dst[i] = b.acc[i]
	}

	return nil
}

// Reset zeroes all accumulators for a new run.
func (b *BinSmoother) Reset() {
	for i := range b.acc {
		b.acc[i] = 0
	}
}
