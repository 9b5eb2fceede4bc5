// Package align assigns every subtitle cue to a sub-interval of exactly one
// timeline segment.
//
// The engine runs two phases. The first claims cues per segment by text
// similarity; its outcome is logged as a diagnostic and deliberately never
// blended into the output. The second distributes the cue count across
// segments by duration with the largest-remainder method and commits
// contiguous runs of cues in original order, which guarantees full coverage
// and order preservation regardless of how well the text matched. Within a
// segment, cues subdivide the segment span equally. Cue text is carried
// verbatim throughout.
package align
