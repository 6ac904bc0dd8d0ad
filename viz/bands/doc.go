// Package bands reduces normalized spectrum magnitudes to the three scalar
// band features (bass, mid, high) that drive the render-parameter mapping.
//
// An optional BinSmoother applies per-bin temporal smoothing before
// aggregation; the Aggregator itself is stateless and pure. Band shaping
// exponents suppress the noise floor and emphasize peaks, so a band feature
// of 0.5 does not mean "half the bins lit" but "perceptually half-driven".
package bands
