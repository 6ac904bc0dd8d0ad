// Package profile resolves layered configuration into the immutable,
// validated EffectiveConfig a pipeline run is built from.
//
// Resolution merges three layers per recognized parameter key:
//
//	value = overrides[key] ?? profile[key] ?? defaults[key]
//
// Profiles live in a closed, built-in registry. Every configuration error —
// unknown key, unknown profile, out-of-range value, contradictory
// combination — surfaces at resolution time, before any frame is processed;
// nothing is silently corrected or dropped.
package profile
