package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"clipcaption/types"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("🎬 ClipCaption Demo"))
	b.WriteString("\n\n")

	if !m.Connected {
		b.WriteString(ErrorStyle.Render("❌ Not connected to API server"))
		if m.Err != nil {
			b.WriteString("\n" + InfoStyle.Render("   "+m.Err.Error()))
		}
		b.WriteString("\n\n")
	} else if len(m.Projects) == 0 {
		b.WriteString(InfoStyle.Render("No projects yet. Upload a video through the API to get started."))
		b.WriteString("\n\n")
	} else {
		b.WriteString(m.renderProjectList())
		b.WriteString("\n")
	}

	if p := m.selected(); p != nil {
		b.WriteString(BoxStyle.Render(m.renderProjectDetail(p)))
		b.WriteString("\n\n")
		if m.Preview != nil {
			b.WriteString(m.renderPreview())
			b.WriteString("\n")
		}
	}

	if len(m.Logs) > 0 {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		for _, entry := range m.Logs {
			line := fmt.Sprintf("   %s %s", entry.Timestamp.Format("15:04:05"), entry.Message)
			b.WriteString(InfoStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(InfoStyle.Render("↑/↓ select | space play/pause | +/- font | p position | c captions | v voice-over | e export | r refresh | q quit"))
	return b.String()
}

// previewRows is the height of the simulated video frame. The caption line
// lands on the first, middle or last row depending on the position setting.
const previewRows = 5

// renderPreview paints the caption preview: a fixed-height frame with the
// active caption placed and colored per the current settings, plus a playhead
// line underneath.
func (m Model) renderPreview() string {
	position, active := m.Preview.Snapshot()
	s := m.Settings.Current()

	captionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(s.Color))

	row := -1
	text := ""
	if active != nil {
		text = active.Text
		switch s.Position {
		case types.PositionTop:
			row = 0
		case types.PositionMiddle:
			row = previewRows / 2
		default:
			row = previewRows - 1
		}
	}

	var frame strings.Builder
	for i := 0; i < previewRows; i++ {
		if i == row {
			frame.WriteString(captionStyle.Render(text))
		}
		if i < previewRows-1 {
			frame.WriteString("\n")
		}
	}

	state := "⏸ paused"
	if m.Preview.Playing() {
		state = "▶ playing"
	}

	var b strings.Builder
	b.WriteString(BoxStyle.Render(frame.String()))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("%s  %05.1fs  |  %dpx %s %s", state, position, s.FontSize, s.Position, s.Color)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderProjectList() string {
	var b strings.Builder
	for i, p := range m.Projects {
		line := fmt.Sprintf("%-24s %s", truncate(p.Name, 24), statusBadge(p))
		if i == m.Cursor {
			b.WriteString(SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderProjectDetail(p *types.Project) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Project: %s\n", p.Name))
	b.WriteString(fmt.Sprintf("Status:  %s\n", statusBadge(p)))
	if p.Error != "" {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error:   %s\n", p.Error)))
	}
	b.WriteString(fmt.Sprintf("Video:   %s (%d bytes)\n", p.VideoFileID, p.VideoSize))
	if p.Language != "" {
		b.WriteString(fmt.Sprintf("Language: %s, %d caption segments\n", p.Language, len(p.Captions)))
	}
	if p.Settings != nil {
		b.WriteString(fmt.Sprintf("Captions: %dpx %s %s\n", p.Settings.FontSize, p.Settings.Position, p.Settings.Color))
	}
	if p.AudioFileID != "" {
		b.WriteString(fmt.Sprintf("Voice-over: %s\n", p.AudioFileID))
	}
	if p.GeneratedVideoFileID != "" {
		b.WriteString(fmt.Sprintf("Export: %s\n", p.GeneratedVideoFileID))
	}
	return strings.TrimRight(b.String(), "\n")
}

func statusBadge(p *types.Project) string {
	switch p.Status {
	case types.StatusReady:
		return ReadyStyle.Render("✅ ready")
	case types.StatusProcessing:
		return ProcessingStyle.Render("⏳ processing")
	case types.StatusFailed:
		return ErrorStyle.Render("❌ failed")
	default:
		return string(p.Status)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
