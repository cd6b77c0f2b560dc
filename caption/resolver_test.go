package caption

import (
	"fmt"
	"testing"

	"clipcaption/types"
)

func seg(text string, start, end float64) types.CaptionSegment {
	return types.CaptionSegment{Text: text, Start: start, End: end, Kind: types.SegmentWord, SpeakerID: "speaker_1"}
}

// TestResolveScenario covers the documented two-segment example: a hit inside
// the first segment, a gap between segments, and a time past the last end.
func TestResolveScenario(t *testing.T) {
	segments := []types.CaptionSegment{
		seg("Hi", 0, 0.5),
		seg("there", 0.6, 1.0),
	}

	if got := Resolve(segments, 0.3); got == nil || got.Text != "Hi" {
		t.Fatalf("Resolve(0.3) = %v, want Hi", got)
	}
	if got := Resolve(segments, 0.55); got != nil {
		t.Fatalf("Resolve(0.55) = %v, want nil (gap)", got)
	}
	if got := Resolve(segments, 5.0); got != nil {
		t.Fatalf("Resolve(5.0) = %v, want nil (past end)", got)
	}
}

func TestResolveEdges(t *testing.T) {
	segments := []types.CaptionSegment{
		seg("a", 0, 0.5),
		seg("b", 0.5, 1.0),
		seg("c", 1.2, 2.0),
	}

	tests := []struct {
		t    float64
		want string // "" means nil
	}{
		{-0.1, ""},
		{0, "a"},
		{0.5, "a"}, // touching boundary resolves to the earlier segment
		{0.7, "b"},
		{1.0, "b"},
		{1.1, ""},
		{1.2, "c"},
		{2.0, "c"},
		{2.01, ""},
	}
	for _, tc := range tests {
		got := Resolve(segments, tc.t)
		switch {
		case tc.want == "" && got != nil:
			t.Errorf("Resolve(%v) = %q, want nil", tc.t, got.Text)
		case tc.want != "" && (got == nil || got.Text != tc.want):
			t.Errorf("Resolve(%v) = %v, want %q", tc.t, got, tc.want)
		}
	}
}

func TestResolveEmpty(t *testing.T) {
	if got := Resolve(nil, 1.0); got != nil {
		t.Fatalf("Resolve(nil, 1.0) = %v, want nil", got)
	}
}

// TestResolveOverlap verifies overlapping input does not crash and resolves to
// the earliest candidate.
func TestResolveOverlap(t *testing.T) {
	segments := []types.CaptionSegment{
		seg("first", 0, 1.0),
		seg("second", 0.5, 1.5),
	}
	if got := Resolve(segments, 0.7); got == nil || got.Text != "first" {
		t.Fatalf("Resolve(0.7) = %v, want first", got)
	}
}

// TestResolveNestedOverlap covers a long segment fully enclosing a later short
// one: at a time inside the long segment but past the short one's end, the
// long segment must still resolve.
func TestResolveNestedOverlap(t *testing.T) {
	segments := []types.CaptionSegment{
		seg("long", 0, 10),
		seg("short", 2, 3),
	}

	if got := Resolve(segments, 5.0); got == nil || got.Text != "long" {
		t.Fatalf("Resolve(5.0) = %v, want long", got)
	}
	// Inside the nested segment both contain t; the earlier wins.
	if got := Resolve(segments, 2.5); got == nil || got.Text != "long" {
		t.Fatalf("Resolve(2.5) = %v, want long", got)
	}
	// Past the outer segment nothing matches.
	if got := Resolve(segments, 10.5); got != nil {
		t.Fatalf("Resolve(10.5) = %v, want nil", got)
	}
}

func TestResolveLongSequence(t *testing.T) {
	segments := make([]types.CaptionSegment, 0, 5000)
	for i := 0; i < 5000; i++ {
		start := float64(i) * 0.4
		segments = append(segments, seg(fmt.Sprintf("w%d", i), start, start+0.3))
	}

	if got := Resolve(segments, 1999.7); got == nil || got.Text != "w4999" {
		t.Fatalf("Resolve(last) = %v, want w4999", got)
	}
	if got := Resolve(segments, 0.35); got != nil {
		t.Fatalf("Resolve(gap) = %v, want nil", got)
	}
}

func TestValidate(t *testing.T) {
	good := []types.CaptionSegment{seg("a", 0, 0.5), seg("b", 0.5, 1.0)}
	if err := Validate(good); err != nil {
		t.Fatalf("Validate(good) = %v", err)
	}

	overlapping := []types.CaptionSegment{seg("a", 0, 0.6), seg("b", 0.5, 1.0)}
	if err := Validate(overlapping); err == nil {
		t.Fatal("Validate(overlapping) = nil, want error")
	}

	inverted := []types.CaptionSegment{seg("a", 0.5, 0.2)}
	if err := Validate(inverted); err == nil {
		t.Fatal("Validate(inverted) = nil, want error")
	}
}

func BenchmarkResolve(b *testing.B) {
	segments := make([]types.CaptionSegment, 0, 5000)
	for i := 0; i < 5000; i++ {
		start := float64(i) * 0.4
		segments = append(segments, seg("w", start, start+0.3))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Resolve(segments, 998.1)
	}
}
