package types

// SegmentKind classifies a transcribed segment.
type SegmentKind string

const (
	SegmentWord    SegmentKind = "word"
	SegmentSpacing SegmentKind = "spacing"

	// SegmentAudioEvent marks non-speech noise in raw transcription output.
	// These never reach the caption resolver; normalization drops them.
	SegmentAudioEvent SegmentKind = "audio_event"
)

// CaptionSegment is a single timed unit of transcribed text. A project's
// captions are an ordered sequence of these, replaced wholesale on every
// transcription run. JSON field names follow the transcription wire format.
type CaptionSegment struct {
	Text      string      `json:"text"`
	Start     float64     `json:"start"`
	End       float64     `json:"end"`
	Kind      SegmentKind `json:"type"`
	SpeakerID string      `json:"speaker_id"`
}

// Duration returns the segment length in seconds.
func (s CaptionSegment) Duration() float64 {
	return s.End - s.Start
}

// Contains reports whether t falls inside the segment, boundaries included.
func (s CaptionSegment) Contains(t float64) bool {
	return t >= s.Start && t <= s.End
}
