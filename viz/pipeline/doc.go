// Package pipeline folds per-frame spectrum input into bounded render
// parameters.
//
// A Pipeline is the per-run owner of all mutable state: band smoothers,
// motion smoothers, the inversion state machine, and the frame counter.
// Within one run frames are a strictly sequential fold — frame i needs the
// committed state of frame i-1 — so a Pipeline is single-goroutine by
// contract. Independent runs use independent Pipeline instances and share
// nothing; no locking is needed or present.
//
// The same Step entry point serves both an event-paced interactive driver
// (measured wall-clock dt) and a fixed-step batch driver (dt = 1/frameRate).
// The pipeline never branches on which driver is calling; cross-driver
// agreement comes entirely from the half-life smoothing contract in
// viz/motion.
package pipeline
