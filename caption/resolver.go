// Package caption holds the pure core of the captioning pipeline: resolving
// the segment visible at a playback position and normalizing raw transcription
// output into the persisted segment format.
package caption

import (
	"fmt"
	"sort"

	"clipcaption/types"
)

// Resolve returns the caption segment active at time t, or nil when t falls in
// a gap, before the first segment, or after the last one. Segments must be
// ordered by start time. When more than one segment contains t (touching
// boundaries, or overlaps in malformed input, including nested ones), the
// earliest segment in sequence order wins. It is called on every playback
// clock tick, so it does no allocation and no side effects.
func Resolve(segments []types.CaptionSegment, t float64) *types.CaptionSegment {
	if len(segments) == 0 || t < 0 {
		return nil
	}

	// First segment starting strictly after t; only earlier segments can contain t.
	i := sort.Search(len(segments), func(i int) bool {
		return segments[i].Start > t
	})
	if i == 0 {
		return nil
	}

	// Walk back over every candidate, keeping the earliest one containing t.
	// A segment ending before t does not bound the walk: an even earlier,
	// longer segment can still contain t when segments nest.
	match := -1
	for j := i - 1; j >= 0; j-- {
		if segments[j].Contains(t) {
			match = j
		}
	}
	if match < 0 {
		return nil
	}
	return &segments[match]
}

// Validate checks the sequence invariants: each segment well-formed, starts
// non-decreasing, and consecutive segments disjoint or touching.
func Validate(segments []types.CaptionSegment) error {
	for i, s := range segments {
		if s.Start < 0 {
			return fmt.Errorf("segment %d: negative start %v", i, s.Start)
		}
		if s.End < s.Start {
			return fmt.Errorf("segment %d: end %v before start %v", i, s.End, s.Start)
		}
		if i > 0 && s.Start < segments[i-1].End {
			return fmt.Errorf("segment %d: overlaps previous (start %v < end %v)", i, s.Start, segments[i-1].End)
		}
	}
	return nil
}
