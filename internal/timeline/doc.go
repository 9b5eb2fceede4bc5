// Package timeline places synthesized audio clips on an absolute,
// non-overlapping timeline.
//
// The builder makes a single cursor pass over the ordered clip list, adding
// a scene lead-in before segments flagged as scene starts (never before the
// first segment) and, depending on configuration, either a uniform
// frame-denominated gap or a content-driven gap between clips. A second
// entry point builds a cue-level timeline from pre-computed duration
// allocations with identical lead-in semantics. Scene markers are supplied
// by the caller; the builder does no detection of its own beyond the
// subtitle-gap helper.
package timeline
