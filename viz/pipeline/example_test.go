package pipeline_test

import (
	"fmt"
	"log"

	"github.com/cwbudde/algo-viz/viz/pipeline"
	"github.com/cwbudde/algo-viz/viz/profile"
)

func ExamplePipeline_StepMagnitudes() {
	cfg, err := profile.Resolve(profile.LegacyServerProfile, nil)
	if err != nil {
		log.Fatal(err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// A single saturated bass bin.
	mags := make([]float64, cfg.BinCount)
	mags[4] = 1

	params, err := p.StepMagnitudes(mags, cfg.FrameDelta())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("scale=%.3f rotation=%.3f invert=%v\n",
		params.Scale, params.RotationDelta, params.Invert)
	// Output:
	// scale=1.125 rotation=0.000 invert=false
}
