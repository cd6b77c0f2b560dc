package types

// ProjectStatus tracks the transcription lifecycle of a project.
type ProjectStatus string

const (
	StatusProcessing ProjectStatus = "processing"
	StatusReady      ProjectStatus = "ready"
	StatusFailed     ProjectStatus = "failed"
)

// Project is the persisted document for one captioning project. It exclusively
// owns its caption sequence and settings; binary assets live in blob storage
// and are referenced by file ID.
type Project struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	LastUpdate int64  `json:"last_update"` // unix milliseconds, bumped on every write
	VideoSize  int64  `json:"video_size"`  // bytes, captured at create time

	// VideoFileID references the uploaded source video in blob storage.
	VideoFileID string `json:"video_file_id"`

	// Transcription result. Captions is absent until the first successful run
	// and replaced wholesale by every later run.
	Language string           `json:"language,omitempty"`
	Captions []CaptionSegment `json:"captions,omitempty"`

	Settings *CaptionSettings `json:"caption_settings,omitempty"`

	// Voice-over: user-provided script and the generated audio asset.
	Script      string `json:"script,omitempty"`
	AudioFileID string `json:"audio_file_id,omitempty"`

	// GeneratedVideoFileID references the rendered output with burned-in captions.
	GeneratedVideoFileID string `json:"generated_video_file_id,omitempty"`

	Status ProjectStatus `json:"status"`
	Error  string        `json:"error,omitempty"`
}

// PlaybackState is the ephemeral position of one media track. It is owned by a
// UI session and never persisted.
type PlaybackState struct {
	CurrentTime float64 `json:"current_time"`
	IsPlaying   bool    `json:"is_playing"`
}
