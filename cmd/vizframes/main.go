// Command vizframes renders audio into a stream of per-frame visual
// parameters, one JSON object per line.
//
// Usage:
//
//	vizframes [flags]
//
// Without -input it synthesizes a test tone, which makes profile tuning
// possible without source material.
//
// Examples:
//
//	vizframes -profile club -duration 2
//	vizframes -input track.pcm -rate 44100
//	vizframes -set rotationSpeed=1.2 -set temporalSmoothing=false
//	vizframes -list
package main

import (
	"encoding/binary"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-viz/viz/batch"
	"github.com/cwbudde/algo-viz/viz/pipeline"
	"github.com/cwbudde/algo-viz/viz/profile"
)

// overrideFlags collects repeatable -set key=value flags into profile
// overrides. Values parse as number, then bool, then string, matching the
// value kinds the resolver accepts.
type overrideFlags struct {
	params profile.Params
}

func (o *overrideFlags) String() string {
	if len(o.params) == 0 {
		return ""
	}

	parts := make([]string, 0, len(o.params))
	for k, v := range o.params {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}

	return strings.Join(parts, ",")
}

func (o *overrideFlags) Set(arg string) error {
	key, raw, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("expected key=value, got %q", arg)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("empty parameter name in %q", arg)
	}

	if o.params == nil {
		o.params = profile.Params{}
	}

	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		o.params[key] = n
	} else if b, err := strconv.ParseBool(raw); err == nil {
		o.params[key] = b
	} else {
		o.params[key] = raw
	}

	return nil
}

// frameRecord is one output line: the frame index plus its parameters.
type frameRecord struct {
	Frame uint64 `json:"frame"`
	pipeline.RenderParameters
}

func main() {
	var overrides overrideFlags

	profileName := flag.String("profile", profile.DefaultProfile, "configuration profile name")
	list := flag.Bool("list", false, "list available profiles")
	input := flag.String("input", "", "raw 16-bit signed little-endian PCM file, or - for stdin")
	rate := flag.Float64("rate", 48000, "input sample rate in Hz")
	tone := flag.Float64("tone", 750, "synthesized tone frequency in Hz (without -input)")
	duration := flag.Float64("duration", 1, "synthesized tone duration in seconds (without -input)")
	flag.Var(&overrides, "set", "override one parameter as key=value (repeatable)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vizframes [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders audio into per-frame visual parameters as JSON lines.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  vizframes -profile club -duration 2\n")
		fmt.Fprintf(os.Stderr, "  vizframes -input track.pcm -rate 44100\n")
		fmt.Fprintf(os.Stderr, "  vizframes -set rotationSpeed=1.2 -set temporalSmoothing=false\n")
	}
	flag.Parse()

	if *list {
		for _, name := range profile.Names() {
			fmt.Println(name)
		}

		return
	}

	if err := run(*profileName, overrides.params, *input, *rate, *tone, *duration); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(profileName string, overrides profile.Params, input string, rate, tone, duration float64) error {
	cfg, err := profile.Resolve(profileName, overrides)
	if err != nil {
		return err
	}

	samples, err := loadSamples(input, rate, tone, duration)
	if err != nil {
		return err
	}

	runner, err := batch.NewRunner(cfg, rate)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)

	return runner.ProcessFunc(samples, func(frame uint64, params pipeline.RenderParameters) error {
		return enc.Encode(frameRecord{Frame: frame, RenderParameters: params})
	})
}

func loadSamples(input string, rate, tone, duration float64) ([]float64, error) {
	if input == "" {
		return synthesize(tone, rate, duration)
	}

	var raw []byte

	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		raw = data
	} else {
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, err
		}

		raw = data
	}

	return decodePCM16(raw), nil
}

// decodePCM16 converts raw 16-bit signed little-endian PCM into [-1, 1)
// samples. A trailing odd byte is ignored.
func decodePCM16(raw []byte) []float64 {
	out := make([]float64, len(raw)/2)
	for i := range out {
		s := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		out[i] = float64(s) / 32768
	}

	return out
}

func synthesize(freqHz, rate, duration float64) ([]float64, error) {
	if duration <= 0 || math.IsNaN(duration) {
		return nil, fmt.Errorf("duration must be > 0 seconds: %f", duration)
	}

	if freqHz <= 0 || freqHz >= rate/2 {
		return nil, fmt.Errorf("tone frequency must be in (0, %f) Hz: %f", rate/2, freqHz)
	}

	n := int(rate * duration)
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / rate

	for i := range out {
		out[i] = math.Sin(step * float64(i))
	}

	return out, nil
}
