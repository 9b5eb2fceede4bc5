// Package subtitle models timed text cues and parses the blank-line-delimited
// SubRip format the pipeline consumes and emits.
//
// Parsing is strict about the parts that cannot be recovered from: a
// malformed ordinal or timecode line fails the whole parse naming the block,
// while blocks with fewer than three lines are silently skipped. Structural
// sequence problems (ordering, overlap) are reported as a defect list rather
// than errors so callers can decide their severity.
package subtitle
