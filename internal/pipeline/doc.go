// Package pipeline orchestrates a full alignment run: it parses the
// narration script, resolves synthesized audio clips, builds the placement
// timeline, aligns source subtitles onto it, writes the output artifacts,
// and validates the result against the source.
//
// A run is guarded by a per-project file lock and identified by a UUID that
// flows through logging and the run history database. Every failure path
// wraps one of the package sentinel errors so callers can classify what
// went wrong without string matching.
package pipeline
