// Package batch renders complete recordings into parameter streams.
//
// A Runner drives one pipeline run at a fixed frame cadence: it slides an
// analysis window over the samples at a hop of sampleRate/frameRate,
// transforms each window, and steps the pipeline with dt = 1/frameRate.
// Because the step is fixed, the output depends only on the samples and the
// configuration, never on wall-clock time.
package batch
