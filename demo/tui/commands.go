package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"clipcaption/demo/client"
	"clipcaption/settings"
	"clipcaption/types"
)

// fetchProjects polls the project list.
func fetchProjects(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		projects, err := c.ListProjects()
		return ProjectsMsg{Projects: projects, Err: err}
	}
}

// triggerCaptions starts transcription for a project.
func triggerCaptions(c *client.Client, projectID string) tea.Cmd {
	return func() tea.Msg {
		err := c.GenerateCaptions(projectID)
		return ActionMsg{Action: "captions", ProjectID: projectID, Err: err}
	}
}

// triggerSpeech runs voice-over generation for a project.
func triggerSpeech(c *client.Client, projectID string) tea.Cmd {
	return func() tea.Msg {
		url, err := c.GenerateSpeech(projectID, "")
		return ActionMsg{Action: "speech", ProjectID: projectID, Detail: url, Err: err}
	}
}

// triggerExport renders a project and reports the output URL.
func triggerExport(c *client.Client, projectID string) tea.Cmd {
	return func() tea.Msg {
		url, err := c.Export(projectID)
		return ActionMsg{Action: "export", ProjectID: projectID, Err: err, Detail: url}
	}
}

// applySettings pushes a full settings object through the optimistic
// synchronizer: the new value is visible in the preview immediately and rolls
// back if the server rejects it. A second edit while one is persisting
// reports busy instead of queueing.
func applySettings(sync *settings.Synchronizer[types.CaptionSettings], c *client.Client, projectID string, next types.CaptionSettings) tea.Cmd {
	return func() tea.Msg {
		err := sync.Apply(context.Background(), next, func(ctx context.Context, value types.CaptionSettings) error {
			return c.UpdateSettings(projectID, value)
		})
		return ActionMsg{Action: "settings", ProjectID: projectID, Err: err}
	}
}

// tickCmd schedules the next poll.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// frameCmd schedules the next preview repaint while playback is running.
func frameCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return FrameMsg{Time: t}
	})
}
