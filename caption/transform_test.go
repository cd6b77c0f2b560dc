package caption

import (
	"testing"

	"clipcaption/types"
)

func f(v float64) *float64 { return &v }

// TestNormalizeDropsAudioEvents verifies non-speech markers never reach the
// resolver and that a missing end timestamp gets the default padding.
func TestNormalizeDropsAudioEvents(t *testing.T) {
	raw := []RawSegment{
		{Text: "(laughter)", Start: f(0), End: f(1.2), Kind: types.SegmentAudioEvent},
		{Text: "Hello", Start: f(1.5), Kind: types.SegmentWord, SpeakerID: "speaker_2"},
	}

	got := Normalize(raw)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	w := got[0]
	if w.Text != "Hello" || w.Start != 1.5 {
		t.Fatalf("unexpected word: %+v", w)
	}
	if w.End != 1.6 {
		t.Fatalf("End = %v, want start+0.1 = 1.6", w.End)
	}
	if w.SpeakerID != "speaker_2" {
		t.Fatalf("SpeakerID = %q, want speaker_2", w.SpeakerID)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	raw := []RawSegment{
		{Text: "word", Kind: types.SegmentWord},
	}

	got := Normalize(raw)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	w := got[0]
	if w.Start != 0 || w.End != 0.1 {
		t.Fatalf("timing = [%v, %v], want [0, 0.1]", w.Start, w.End)
	}
	if w.SpeakerID != "speaker_1" {
		t.Fatalf("SpeakerID = %q, want sentinel speaker_1", w.SpeakerID)
	}
}

func TestNormalizeKeepsSpacing(t *testing.T) {
	raw := []RawSegment{
		{Text: "Hi", Start: f(0), End: f(0.5), Kind: types.SegmentWord, SpeakerID: "speaker_1"},
		{Text: " ", Start: f(0.5), End: f(0.6), Kind: types.SegmentSpacing, SpeakerID: "speaker_1"},
		{Text: "there", Start: f(0.6), End: f(1.0), Kind: types.SegmentWord, SpeakerID: "speaker_1"},
	}

	got := Normalize(raw)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 (spacing kept)", len(got))
	}
	if got[1].Kind != types.SegmentSpacing {
		t.Fatalf("middle kind = %q, want spacing", got[1].Kind)
	}
}
