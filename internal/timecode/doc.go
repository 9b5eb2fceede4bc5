// Package timecode converts between seconds, frame counts, and the two
// textual timecode encodings used by the pipeline outputs.
//
// Frame timecodes ("HH:MM:SS:FF") carry frame-accurate sub-second timing at
// an arbitrary, possibly fractional rate such as 30000/1001, while the
// display split uses the rounded integer rate as its modulus. Millisecond
// timecodes ("HH:MM:SS,mmm") use a plain truncating split. All conversions
// are pure functions; round-tripping can lose up to one frame or one
// millisecond.
package timecode
