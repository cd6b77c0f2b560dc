package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"clipcaption/demo/client"
	"clipcaption/settings"
	"clipcaption/types"
)

// LogEntry is a single activity line with timestamp.
type LogEntry struct {
	Timestamp time.Time
	Message   string
}

const maxLogs = 8

// Model is the TUI state: a thin client over the API server, plus a local
// caption preview and an optimistic settings editor for the selected project.
type Model struct {
	Client *client.Client

	Projects []*types.Project
	Cursor   int

	// Preview and Settings follow the selected project; previewFor tracks
	// which project they were built for.
	Preview    *Preview
	Settings   *settings.Synchronizer[types.CaptionSettings]
	previewFor string

	Logs      []LogEntry
	Connected bool
	Err       error
}

// NewModel creates a TUI model polling the given API base URL.
func NewModel(baseURL string) Model {
	return Model{
		Client:   client.NewClient(baseURL),
		Settings: settings.NewSynchronizer(types.DefaultCaptionSettings()),
		Logs:     make([]LogEntry, 0, maxLogs),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchProjects(m.Client),
		tickCmd(),
	)
}

// AddLog appends an activity line, keeping the most recent entries.
func (m Model) AddLog(format string, args ...any) Model {
	m.Logs = append(m.Logs, LogEntry{
		Timestamp: time.Now(),
		Message:   fmt.Sprintf(format, args...),
	})
	if len(m.Logs) > maxLogs {
		m.Logs = m.Logs[len(m.Logs)-maxLogs:]
	}
	return m
}

// selected returns the project under the cursor, or nil.
func (m Model) selected() *types.Project {
	if m.Cursor < 0 || m.Cursor >= len(m.Projects) {
		return nil
	}
	return m.Projects[m.Cursor]
}

// syncSelection rebuilds the preview and reseeds the settings editor when the
// cursor lands on a different project. An in-flight settings update keeps its
// optimistic value; only a selection change resets it.
func (m Model) syncSelection() Model {
	p := m.selected()
	if p == nil {
		if m.Preview != nil {
			m.Preview.Close()
			m.Preview = nil
		}
		m.previewFor = ""
		return m
	}
	if p.ID == m.previewFor {
		return m
	}

	if m.Preview != nil {
		m.Preview.Close()
	}
	m.Preview = NewPreview(p.Captions)
	m.previewFor = p.ID

	s := types.DefaultCaptionSettings()
	if p.Settings != nil {
		s = *p.Settings
	}
	m.Settings.Replace(s)
	return m
}
