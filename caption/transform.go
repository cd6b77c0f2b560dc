package caption

import (
	"clipcaption/config"
	"clipcaption/types"
)

// RawSegment is one entry of the transcription service response before
// normalization. Start, end and speaker may be absent in the wire format.
type RawSegment struct {
	Text      string            `json:"text"`
	Start     *float64          `json:"start,omitempty"`
	End       *float64          `json:"end,omitempty"`
	Kind      types.SegmentKind `json:"type"`
	SpeakerID string            `json:"speaker_id,omitempty"`
}

// Normalize converts raw transcription output into persisted caption segments:
// audio-event markers are dropped, a missing start defaults to 0, a missing
// end defaults to start plus a small padding, and a missing speaker gets the
// sentinel speaker ID.
func Normalize(raw []RawSegment) []types.CaptionSegment {
	segments := make([]types.CaptionSegment, 0, len(raw))
	for _, r := range raw {
		if r.Kind == types.SegmentAudioEvent {
			continue
		}

		start := 0.0
		if r.Start != nil {
			start = *r.Start
		}
		end := start + config.MissingEndPadding
		if r.End != nil {
			end = *r.End
		}
		speaker := r.SpeakerID
		if speaker == "" {
			speaker = config.DefaultSpeakerID
		}

		segments = append(segments, types.CaptionSegment{
			Text:      r.Text,
			Start:     start,
			End:       end,
			Kind:      r.Kind,
			SpeakerID: speaker,
		})
	}
	return segments
}
