// Package motion provides per-quantity temporal smoothing for animation
// control values.
//
// Three strategies are available:
//
//   - Exponential: half-life parameterized decay. The time to close half the
//     distance to the target is the configured half-life regardless of the
//     step size, which is what lets an event-paced interactive driver and a
//     fixed-step batch driver produce the same motion.
//   - Spring: second-order stiffness/damping integration with overshoot,
//     for organic, non-monotonic motion.
//   - Legacy: fixed-constant exponential moving average. Frame-rate
//     dependent by construction; retained only to reproduce historical
//     output, never for cross-environment parity.
//
// Each tracked quantity (bass, mid, high, ...) gets its own Smoother
// instance; instances are never shared between quantities or runs.
package motion
