package pipeline

import "fmt"

type inversionPhase int

const (
	phaseIdle inversionPhase = iota
	phaseActive
	phaseCooldown
)

// Inverter is the debounced bass-triggered inversion state machine:
// Idle -> Active(durationFrames) -> Cooldown(cooldownFrames) -> Idle.
//
// While Active it emits true; in every other phase false. It cannot
// re-trigger while Active or Cooldown, and after a full episode it re-arms
// only once the bass level falls back below the threshold — both guards
// exist to stop flicker when bass oscillates near the threshold. Only the
// boolean output is exposed; phase and counters stay private.
type Inverter struct {
	threshold float64
	duration  int
	cooldown  int

	phase     inversionPhase
	remaining int
	armed     bool
}

// NewInverter creates an inversion machine. The threshold must be in [0, 1]
// and both frame counts must be >= 0; a zero duration yields a machine that
// debounces without ever emitting true.
func NewInverter(threshold float64, durationFrames, cooldownFrames int) (*Inverter, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("inversion threshold must be in [0, 1]: %f", threshold)
	}

	if durationFrames < 0 || cooldownFrames < 0 {
		return nil, fmt.Errorf("inversion frame counts must be >= 0: %d, %d",
			durationFrames, cooldownFrames)
	}

	return &Inverter{
		threshold: threshold,
		duration:  durationFrames,
		cooldown:  cooldownFrames,
		phase:     phaseIdle,
		armed:     true,
	}, nil
}

// Step evaluates one frame against the smoothed bass level and returns
// whether inversion is active for this frame. Must be called exactly once
// per frame.
func (v *Inverter) Step(smoothedBass float64) bool {
	switch v.phase {
	case phaseActive:
		v.remaining--
		if v.remaining <= 0 {
			v.enterCooldown()
		}

		return true

	case phaseCooldown:
		v.remaining--
		if v.remaining <= 0 {
			v.phase = phaseIdle
		}

		return false

	default:
		if smoothedBass < v.threshold {
			v.armed = true
			return false
		}

		if !v.armed {
			return false
		}

		v.armed = false

		if v.duration == 0 {
			v.enterCooldown()
			return false
		}

		v.phase = phaseActive
		v.remaining = v.duration - 1

		if v.remaining <= 0 {
			v.enterCooldown()
		}

		return true
	}
}

func (v *Inverter) enterCooldown() {
	if v.cooldown == 0 {
		v.phase = phaseIdle
		v.remaining = 0

		return
	}

	v.phase = phaseCooldown
	v.remaining = v.cooldown
}

// Active reports whether the machine is currently in its Active phase.
func (v *Inverter) Active() bool {
	return v.phase == phaseActive
}

// Reset returns the machine to armed Idle.
func (v *Inverter) Reset() {
	v.phase = phaseIdle
	v.remaining = 0
	v.armed = true
}
