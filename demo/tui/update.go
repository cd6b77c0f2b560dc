package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"clipcaption/settings"
	"clipcaption/types"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TickMsg:
		return m, tea.Batch(fetchProjects(m.Client), tickCmd())
	case FrameMsg:
		if m.Preview != nil && m.Preview.Playing() {
			return m, frameCmd()
		}
		return m, nil
	case ProjectsMsg:
		return m.handleProjects(msg)
	case ActionMsg:
		return m.handleAction(msg)
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.Preview != nil {
			m.Preview.Close()
		}
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m.syncSelection(), nil
	case "down", "j":
		if m.Cursor < len(m.Projects)-1 {
			m.Cursor++
		}
		return m.syncSelection(), nil
	case " ":
		if m.Preview != nil {
			if m.Preview.Toggle() {
				return m, frameCmd()
			}
		}
	case "+", "=":
		return m.adjustSettings(func(s *types.CaptionSettings) { s.FontSize += 2 })
	case "-":
		return m.adjustSettings(func(s *types.CaptionSettings) { s.FontSize -= 2 })
	case "p", "P":
		return m.adjustSettings(func(s *types.CaptionSettings) { s.Position = nextPosition(s.Position) })
	case "c", "C":
		if p := m.selected(); p != nil {
			m = m.AddLog("Generating captions for %q...", p.Name)
			return m, triggerCaptions(m.Client, p.ID)
		}
	case "v", "V":
		if p := m.selected(); p != nil {
			m = m.AddLog("Generating voice-over for %q...", p.Name)
			return m, triggerSpeech(m.Client, p.ID)
		}
	case "e", "E":
		if p := m.selected(); p != nil {
			m = m.AddLog("Exporting %q...", p.Name)
			return m, triggerExport(m.Client, p.ID)
		}
	case "r", "R":
		return m, fetchProjects(m.Client)
	}
	return m, nil
}

// adjustSettings mutates a copy of the current settings and routes it through
// the optimistic synchronizer. Invalid results never leave the client.
func (m Model) adjustSettings(mutate func(*types.CaptionSettings)) (tea.Model, tea.Cmd) {
	p := m.selected()
	if p == nil {
		return m, nil
	}

	next := m.Settings.Current()
	mutate(&next)
	if err := settings.Validate(next); err != nil {
		m = m.AddLog("Settings rejected: %v", err)
		return m, nil
	}
	return m, applySettings(m.Settings, m.Client, p.ID, next)
}

func nextPosition(p types.CaptionPosition) types.CaptionPosition {
	switch p {
	case types.PositionBottom:
		return types.PositionMiddle
	case types.PositionMiddle:
		return types.PositionTop
	default:
		return types.PositionBottom
	}
}

func (m Model) handleProjects(msg ProjectsMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if m.Connected {
			m = m.AddLog("Lost connection: %v", msg.Err)
		}
		m.Connected = false
		m.Err = msg.Err
		return m, nil
	}

	if !m.Connected {
		m = m.AddLog("Connected to API server")
	}
	m.Connected = true
	m.Err = nil
	m.Projects = msg.Projects
	if m.Cursor >= len(m.Projects) {
		m.Cursor = len(m.Projects) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	return m.syncSelection(), nil
}

func (m Model) handleAction(msg ActionMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if msg.Action == "settings" && errors.Is(msg.Err, settings.ErrUpdateInFlight) {
			m = m.AddLog("Settings update still in flight, try again")
			return m, nil
		}
		m = m.AddLog("%s failed: %v", msg.Action, msg.Err)
		return m, nil
	}
	switch msg.Action {
	case "captions":
		m = m.AddLog("Transcription started")
	case "speech":
		m = m.AddLog("Voice-over ready: %s", msg.Detail)
	case "export":
		m = m.AddLog("Export ready: %s", msg.Detail)
	case "settings":
		m = m.AddLog("Settings saved")
		return m, nil
	}
	// Refresh immediately so the status change shows without waiting a tick.
	return m, fetchProjects(m.Client)
}
