package timeline

import "cueline/internal/subtitle"

// DetectSceneMarkers finds cue positions whose silence gap from the
// preceding cue is at least threshold seconds. Returned values are 0-based
// positions into the cue slice; position 0 is never a marker.
func DetectSceneMarkers(cues []subtitle.Cue, threshold float64) []int {
	var markers []int
	for i := 1; i < len(cues); i++ {
		gap := float64(cues[i].StartMS-cues[i-1].EndMS) / 1000
		if gap >= threshold {
			markers = append(markers, i)
		}
	}
	return markers
}

// MarkerSet converts a marker list to the set form the builder consumes.
func MarkerSet(markers []int) map[int]bool {
	set := make(map[int]bool, len(markers))
	for _, m := range markers {
		set[m] = true
	}
	return set
}
