package config

import "time"

// Caption Settings Constants
const (
	// MinFontSize is the smallest accepted caption font size
	MinFontSize = 16

	// MaxFontSize is the largest accepted caption font size
	MaxFontSize = 48

	// RenderFontScale translates preview-resolution font sizes to
	// output-resolution sizes in the render request
	RenderFontScale = 0.75
)

// Transcription Constants
const (
	// TranscribeModelID is the speech-to-text model requested from the service
	TranscribeModelID = "scribe_v1"

	// MissingEndPadding is the duration assigned to a word whose end
	// timestamp is absent in the raw transcription result
	MissingEndPadding = 0.1

	// DefaultSpeakerID is assigned to words without speaker attribution
	DefaultSpeakerID = "speaker_1"
)

// Playback Constants
const (
	// ClockInterval is how often the playback clock samples the primary
	// track position to drive the caption overlay
	ClockInterval = 10 * time.Millisecond
)

// Render Constants
const (
	// OutputFormat is the container format requested from the render service
	OutputFormat = "mp4"

	// RenderTimeout bounds the synchronous render round trip
	RenderTimeout = 5 * time.Minute
)

// Kafka Topics
const (
	// TopicProjectStatus carries project lifecycle events
	TopicProjectStatus = "project.status"

	// TopicRenderRequests carries queued render jobs for the worker
	TopicRenderRequests = "render.requests"
)
