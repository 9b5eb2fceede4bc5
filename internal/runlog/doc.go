// Package runlog records pipeline run history in a small SQLite database.
//
// Each completed run stores its identifier, segment and cue counts, sequence
// duration, final status, and the consistency error and warning totals, so
// the CLI can show what recent runs produced without re-reading output files.
package runlog
