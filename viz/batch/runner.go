package batch

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-viz/viz/core"
	"github.com/cwbudde/algo-viz/viz/pipeline"
	"github.com/cwbudde/algo-viz/viz/profile"
)

// Runner folds a sample stream into render parameters at a fixed frame
// cadence. It owns one pipeline run; like the pipeline itself it is
// single-goroutine by contract.
type Runner struct {
	cfg        profile.Effective
	sampleRate float64
	hop        int

	window []float64
	plan   *algofft.Plan[complex128]
	input  []complex128
	output []complex128

	pipe *pipeline.Pipeline
}

// Option adjusts Runner construction.
type Option func(*Runner) error

// WithHopSize overrides the frame hop in samples. The default hop of
// round(sampleRate/frameRate) keeps analysis frames on the render cadence;
// override it only to trade analysis density against throughput.
func WithHopSize(samples int) Option {
	return func(r *Runner) error {
		if samples < 1 {
			return fmt.Errorf("batch hop size must be >= 1: %d", samples)
		}

		r.hop = samples

		return nil
	}
}

// WithRectangularWindow disables the analysis window. Spectral leakage
// increases; useful when the input is already frame-aligned test material.
func WithRectangularWindow() Option {
	return func(r *Runner) error {
		r.window = nil
		return nil
	}
}

// NewRunner creates a batch runner for the given configuration and input
// sample rate.
func NewRunner(cfg profile.Effective, sampleRate float64, opts ...Option) (*Runner, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("batch sample rate must be > 0 and finite: %f", sampleRate)
	}

	size := cfg.TransformSize()

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("batch fft plan: %w", err)
	}

	pipe, err := pipeline.New(cfg)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:        cfg,
		sampleRate: sampleRate,
		hop:        defaultHop(sampleRate, cfg.FrameRate),
		window:     hannWindow(size),
		plan:       plan,
		input:      make([]complex128, size),
		output:     make([]complex128, size),
		pipe:       pipe,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func defaultHop(sampleRate float64, frameRate int) int {
	hop := int(math.Round(sampleRate / float64(frameRate)))
	if hop < 1 {
		hop = 1
	}

	return hop
}

// hannWindow returns a periodic Hann window of length n.
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}

	return w
}

// HopSize returns the frame hop in samples.
func (r *Runner) HopSize() int { return r.hop }

// FrameIndex returns the index the next frame will receive.
func (r *Runner) FrameIndex() uint64 { return r.pipe.FrameIndex() }

// Frames returns how many frames Process emits for n input samples.
func (r *Runner) Frames(n int) int {
	size := r.cfg.TransformSize()
	if n < size {
		return 0
	}

	return (n-size)/r.hop + 1
}

// Process renders the samples into one parameter value per frame.
// Consecutive calls continue the same run; trailing samples shorter than
// one analysis window are discarded, not buffered.
func (r *Runner) Process(samples []float64) ([]pipeline.RenderParameters, error) {
	out := make([]pipeline.RenderParameters, 0, r.Frames(len(samples)))

	err := r.ProcessFunc(samples, func(_ uint64, params pipeline.RenderParameters) error {
		out = append(out, params)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ProcessFunc renders the samples, invoking fn once per frame with the
// frame's index and parameters. A non-nil error from fn stops processing
// and is returned unwrapped; frames already committed stay committed.
func (r *Runner) ProcessFunc(samples []float64, fn func(frame uint64, params pipeline.RenderParameters) error) error {
	size := r.cfg.TransformSize()
	dt := r.cfg.FrameDelta()

	for start := 0; start+size <= len(samples); start += r.hop {
		frame := samples[start : start+size]

		if r.window != nil {
			for i, s := range frame {
				r.input[i] = complex(s*r.window[i], 0)
			}
		} else {
			for i, s := range frame {
				r.input[i] = complex(s, 0)
			}
		}

		if err := r.plan.Forward(r.output, r.input); err != nil {
			return fmt.Errorf("batch transform: %w", err)
		}

		index := r.pipe.FrameIndex()

		params, err := r.pipe.Step(r.output[:r.cfg.BinCount], dt)
		if err != nil {
			return err
		}

		if err := fn(index, params); err != nil {
			return err
		}
	}

	return nil
}

// Reset starts a new run with the same configuration.
func (r *Runner) Reset() {
	r.pipe.Reset()
}
