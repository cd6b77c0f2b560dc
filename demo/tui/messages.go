package tui

import (
	"time"

	"clipcaption/types"
)

// Messages for the tea program (polling-based)

// ProjectsMsg carries the result of a project list poll.
type ProjectsMsg struct {
	Projects []*types.Project
	Err      error
}

// TickMsg is sent periodically to trigger polling.
type TickMsg struct {
	Time time.Time
}

// FrameMsg repaints the caption preview while it is playing.
type FrameMsg struct {
	Time time.Time
}

// ActionMsg reports the outcome of a triggered workflow (captions, speech,
// export).
type ActionMsg struct {
	Action    string
	ProjectID string
	Detail    string
	Err       error
}
