package pipeline

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-viz/viz/bands"
	"github.com/cwbudde/algo-viz/viz/motion"
	"github.com/cwbudde/algo-viz/viz/profile"
	"github.com/cwbudde/algo-viz/viz/scale"
)

// State-consistency errors. A driver that supplies an out-of-order frame or
// a negative delta is defective; the pipeline refuses to advance rather than
// silently fixing the sequence, because silent correction would desync
// visuals from audio.
var (
	ErrFrameOrder    = errors.New("frame index not strictly increasing")
	ErrNegativeDelta = errors.New("negative frame delta")
	ErrBinCount      = errors.New("unexpected spectrum bin count")
)

// Frame is one spectrum frame: complex transform bins, the frame's position
// in the run, and the time elapsed since the previous frame.
type Frame struct {
	Index uint64
	Bins  []complex128
	DT    float64
}

// State is a read-only snapshot of the per-run accumulators, exposed for
// tests and instrumentation.
type State struct {
	Bass       float64
	Mid        float64
	High       float64
	Rotation   float64
	FrameIndex uint64
	Inverting  bool
}

// Pipeline converts spectrum frames into render parameters for exactly one
// run. It owns all mutable state of that run and must be stepped from a
// single goroutine, exactly once per frame, in order.
type Pipeline struct {
	cfg profile.Effective

	scaler      *scale.Scaler
	binSmoother *bands.BinSmoother
	aggregator  *bands.Aggregator

	bass motion.Smoother
	mid  motion.Smoother
	high motion.Smoother

	inverter *Inverter

	mags     []float64
	rotation float64
	next     uint64
}

// New builds a pipeline from a resolved configuration. The configuration is
// assumed validated (profile.Resolve guarantees it); constructor errors here
// indicate a hand-built Effective.
func New(cfg profile.Effective) (*Pipeline, error) {
	var (
		scaler *scale.Scaler
		err    error
	)

	switch cfg.FFTScaling {
	case scale.MethodLinear:
		scaler, err = scale.NewLinear(cfg.TransformSize(), cfg.FFTMultiplier)
	default:
		scaler, err = scale.NewDecibel(cfg.TransformSize(), cfg.FFTMinDB, cfg.FFTMaxDB)
	}

	if err != nil {
		return nil, fmt.Errorf("pipeline scaler: %w", err)
	}

	var binSmoother *bands.BinSmoother
	if cfg.TemporalSmoothing {
		binSmoother, err = bands.NewBinSmoother(cfg.BinCount, cfg.TemporalSmoothingConstant)
		if err != nil {
			return nil, fmt.Errorf("pipeline bin smoother: %w", err)
		}
	}

	aggregator, err := bands.NewAggregator(cfg.BandLayout(), cfg.BandReduce,
		cfg.BassExponent, cfg.MidExponent, cfg.HighExponent)
	if err != nil {
		return nil, fmt.Errorf("pipeline aggregator: %w", err)
	}

	bass, mid, high, err := newSmoothers(cfg)
	if err != nil {
		return nil, fmt.Errorf("pipeline motion: %w", err)
	}

	inverter, err := NewInverter(cfg.InversionBassThreshold,
		cfg.InversionDurationFrames, cfg.InversionCooldownFrames)
	if err != nil {
		return nil, fmt.Errorf("pipeline inverter: %w", err)
	}

	return &Pipeline{
		cfg:         cfg,
		scaler:      scaler,
		binSmoother: binSmoother,
		aggregator:  aggregator,
		bass:        bass,
		mid:         mid,
		high:        high,
		inverter:    inverter,
		mags:        make([]float64, cfg.BinCount),
	}, nil
}

// newSmoothers builds one independent smoother per tracked band. Smoothers
// are never shared between quantities; each carries its own accumulator.
func newSmoothers(cfg profile.Effective) (bass, mid, high motion.Smoother, err error) {
	switch cfg.MotionSystem {
	case motion.SystemLegacy:
		if bass, err = motion.NewLegacy(cfg.BassSmoothing); err != nil {
			return nil, nil, nil, err
		}
		if mid, err = motion.NewLegacy(cfg.MidSmoothing); err != nil {
			return nil, nil, nil, err
		}
		if high, err = motion.NewLegacy(cfg.HighSmoothing); err != nil {
			return nil, nil, nil, err
		}

	case motion.SystemSpring:
		if bass, err = motion.NewSpring(cfg.SpringStiffness, cfg.SpringDamping); err != nil {
			return nil, nil, nil, err
		}
		if mid, err = motion.NewSpring(cfg.SpringStiffness, cfg.SpringDamping); err != nil {
			return nil, nil, nil, err
		}
		if high, err = motion.NewSpring(cfg.SpringStiffness, cfg.SpringDamping); err != nil {
			return nil, nil, nil, err
		}

	default:
		if bass, err = motion.NewExponential(cfg.BassHalfLife); err != nil {
			return nil, nil, nil, err
		}
		if mid, err = motion.NewExponential(cfg.MidHalfLife); err != nil {
			return nil, nil, nil, err
		}
		if high, err = motion.NewExponential(cfg.HighHalfLife); err != nil {
			return nil, nil, nil, err
		}
	}

	return bass, mid, high, nil
}

// Config returns the run's effective configuration.
func (p *Pipeline) Config() profile.Effective { return p.cfg }

// FrameIndex returns the index the next frame is expected to carry.
func (p *Pipeline) FrameIndex() uint64 { return p.next }

// Rotation returns the accumulated rotation angle (the integral of all
// emitted RotationDelta values).
func (p *Pipeline) Rotation() float64 { return p.rotation }

// State returns a snapshot of the run's smoothed accumulators.
func (p *Pipeline) State() State {
	return State{
		Bass:       p.bass.Value(),
		Mid:        p.mid.Value(),
		High:       p.high.Value(),
		Rotation:   p.rotation,
		FrameIndex: p.next,
		Inverting:  p.inverter.Active(),
	}
}

// Step advances the run by one frame of complex transform bins with the
// given delta time in seconds, assigning frame indices automatically.
func (p *Pipeline) Step(bins []complex128, dt float64) (RenderParameters, error) {
	return p.StepFrame(Frame{Index: p.next, Bins: bins, DT: dt})
}

// StepFrame advances the run by one explicitly-indexed frame. The index
// must be exactly the value of FrameIndex (strictly increasing by one from
// zero) and DT must be non-negative; otherwise the pipeline refuses to
// advance and the run state is left untouched.
func (p *Pipeline) StepFrame(f Frame) (RenderParameters, error) {
	if f.Index != p.next {
		return RenderParameters{}, fmt.Errorf("%w: got %d, want %d", ErrFrameOrder, f.Index, p.next)
	}

	if f.DT < 0 {
		return RenderParameters{}, fmt.Errorf("%w: %f", ErrNegativeDelta, f.DT)
	}

	if len(f.Bins) != p.cfg.BinCount {
		return RenderParameters{}, fmt.Errorf("%w: got %d, want %d",
			ErrBinCount, len(f.Bins), p.cfg.BinCount)
	}

	if err := p.scaler.Scale(p.mags, f.Bins); err != nil {
		return RenderParameters{}, err
	}

	return p.advance(p.mags, f.DT)
}

// StepMagnitudes advances the run by one frame of pre-scaled magnitudes
// (already in [0, 1]), bypassing the spectrum scaler. Frame indices are
// assigned automatically.
func (p *Pipeline) StepMagnitudes(mags []float64, dt float64) (RenderParameters, error) {
	if dt < 0 {
		return RenderParameters{}, fmt.Errorf("%w: %f", ErrNegativeDelta, dt)
	}

	if len(mags) != p.cfg.BinCount {
		return RenderParameters{}, fmt.Errorf("%w: got %d, want %d",
			ErrBinCount, len(mags), p.cfg.BinCount)
	}

	if p.binSmoother == nil {
		// No per-bin smoothing: aggregate the caller's buffer directly.
		return p.advance(mags, dt)
	}

	copy(p.mags, mags)

	return p.advance(p.mags, dt)
}

// advance commits one frame: per-bin smoothing, band aggregation, motion
// smoothing, inversion, and mapping. By the time advance runs, all frame
// validation has passed, so every mutation below commits atomically from
// the caller's perspective (there is no partial-frame state on return).
func (p *Pipeline) advance(mags []float64, dt float64) (RenderParameters, error) {
	if p.binSmoother != nil {
		if err := p.binSmoother.Apply(mags, mags); err != nil {
			return RenderParameters{}, err
		}
	}

	raw, err := p.aggregator.Aggregate(mags)
	if err != nil {
		return RenderParameters{}, err
	}

	smoothed := bands.Features{
		Bass: p.bass.Step(raw.Bass, dt),
		Mid:  p.mid.Step(raw.Mid, dt),
		High: p.high.Step(raw.High, dt),
	}

	invert := p.inverter.Step(smoothed.Bass)

	params := MapParameters(smoothed, invert, p.cfg)

	p.rotation += params.RotationDelta
	p.next++

	return params, nil
}

// Reset returns the pipeline to its run-start state: zeroed accumulators,
// armed inverter, frame index zero. Equivalent to building a fresh pipeline
// with the same configuration.
func (p *Pipeline) Reset() {
	if p.binSmoother != nil {
		p.binSmoother.Reset()
	}

	p.bass.Reset()
	p.mid.Reset()
	p.high.Reset()
	p.inverter.Reset()

	p.rotation = 0
	p.next = 0
}
