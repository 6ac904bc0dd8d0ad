package motion

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-viz/viz/core"
)

// System selects a smoothing strategy.
type System int

const (
	// SystemLegacy is the fixed-constant EMA (frame-rate dependent).
	SystemLegacy System = iota

	// SystemExponential is half-life parameterized decay.
	SystemExponential

	// SystemSpring is stiffness/damping second-order smoothing.
	SystemSpring
)

// String returns the system name used in configuration.
func (s System) String() string {
	switch s {
	case SystemLegacy:
		return "legacy"
	case SystemExponential:
		return "exponential"
	case SystemSpring:
		return "spring"
	default:
		return "unknown"
	}
}

// ParseSystem converts a configuration string into a System.
func ParseSystem(name string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "legacy":
		return SystemLegacy, nil
	case "exponential":
		return SystemExponential, nil
	case "spring":
		return SystemSpring, nil
	default:
		return 0, fmt.Errorf("unsupported motion system: %q", name)
	}
}

// Smoother turns one raw target value per frame into a smoothed value.
//
// Implementations are single-run state machines: Step must be called exactly
// once per frame in order, and one Smoother tracks exactly one quantity.
type Smoother interface {
	// Step advances the smoother by dt seconds toward target and returns
	// the new smoothed value.
	Step(target, dt float64) float64

	// Value returns the current smoothed value without advancing.
	Value() float64

	// Reset returns the smoother to its initial (zero) state.
	Reset()
}

// Exponential smooths with a configured half-life: after H seconds of a held
// target, half the remaining distance is closed, independent of step size.
type Exponential struct {
	halfLife float64
	value    float64
}

// NewExponential creates a half-life smoother. halfLife is in seconds and
// must be positive and finite.
func NewExponential(halfLife float64) (*Exponential, error) {
	if halfLife <= 0 || !core.IsFinite(halfLife) {
		return nil, fmt.Errorf("motion half-life must be > 0 and finite: %f", halfLife)
	}

	return &Exponential{halfLife: halfLife}, nil
}

// HalfLife returns the configured half-life in seconds.
func (e *Exponential) HalfLife() float64 { return e.halfLife }

// Step advances by dt seconds: decay = 0.5^(dt/halfLife).
func (e *Exponential) Step(target, dt float64) float64 {
	d := math.Pow(0.5, dt/e.halfLife)
	e.value = e.value*d + target*(1-d)

	return e.value
}

// Value returns the current smoothed value.
func (e *Exponential) Value() float64 { return e.value }

// Reset clears the smoothed value.
func (e *Exponential) Reset() { e.value = 0 }

// Spring smooths with a damped second-order integrator. Unlike the
// exponential smoother it can overshoot and oscillate around the target.
type Spring struct {
	stiffness float64
	damping   float64
	position  float64
	velocity  float64
}

// NewSpring creates a spring smoother. stiffness must be in (0, 1] and
// damping in [0, 1].
func NewSpring(stiffness, damping float64) (*Spring, error) {
	if stiffness <= 0 || stiffness > 1 || !core.IsFinite(stiffness) {
		return nil, fmt.Errorf("spring stiffness must be in (0, 1]: %f", stiffness)
	}

	if damping < 0 || damping > 1 || !core.IsFinite(damping) {
		return nil, fmt.Errorf("spring damping must be in [0, 1]: %f", damping)
	}

	return &Spring{stiffness: stiffness, damping: damping}, nil
}

// Stiffness returns the configured stiffness.
func (s *Spring) Stiffness() float64 { return s.stiffness }

// Damping returns the configured damping.
func (s *Spring) Damping() float64 { return s.damping }

// Step advances the integrator by dt seconds using semi-implicit Euler.
func (s *Spring) Step(target, dt float64) float64 {
	accel := -s.stiffness*(s.position-target) - s.damping*s.velocity
	s.velocity += accel * dt
	s.position += s.velocity * dt

	return s.position
}

// Value returns the current position.
func (s *Spring) Value() float64 { return s.position }

// Reset clears position and velocity.
func (s *Spring) Reset() {
	s.position = 0
	s.velocity = 0
}

// Velocity returns the current velocity, exposed for instrumentation.
func (s *Spring) Velocity() float64 { return s.velocity }

// Legacy is the historical fixed-constant EMA: value = value*k + target*(1-k)
// with k independent of dt. Its time-to-target varies with the effective
// frame rate, which is the defect the exponential smoother fixes.
type Legacy struct {
	constant float64
	value    float64
}

// NewLegacy creates a fixed-constant smoother. The constant must be in [0, 1).
func NewLegacy(constant float64) (*Legacy, error) {
	if constant < 0 || constant >= 1 || !core.IsFinite(constant) {
		return nil, fmt.Errorf("legacy smoothing constant must be in [0, 1): %f", constant)
	}

	return &Legacy{constant: constant}, nil
}

// Constant returns the configured smoothing constant.
func (l *Legacy) Constant() float64 { return l.constant }

// Step advances one frame. dt is accepted for interface compatibility and
// deliberately ignored.
func (l *Legacy) Step(target, _ float64) float64 {
	l.value = l.value*l.constant + target*(1-l.constant)

	return l.value
}

// Value returns the current smoothed value.
func (l *Legacy) Value() float64 { return l.value }

// Reset clears the smoothed value.
func (l *Legacy) Reset() { l.value = 0 }
