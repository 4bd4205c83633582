package srt

import (
	"time"
)

// Locate returns the index of the cue whose [Start, End] interval contains
// the given playback time, or false when the time falls in a gap between
// cues or outside the list entirely. Both interval ends are inclusive.
//
// Cues must be sorted ascending by Start with non-overlapping intervals;
// that is a caller contract (validated on ingest, not here) so the lookup
// stays logarithmic.
func Locate(cues []Cue, at time.Duration) (int, bool) {
	left := 0
	right := len(cues) - 1

	for left <= right {
		mid := (left + right) / 2
		cue := cues[mid]

		switch {
		case at >= cue.Start && at <= cue.End:
			return mid, true
		case at < cue.Start:
			right = mid - 1
		default:
			left = mid + 1
		}
	}

	return -1, false
}
