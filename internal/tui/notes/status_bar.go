package notes

import (
	"ambient/internal/tui/messages"
	"ambient/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var (
	modeStyle      = lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	hintStyle      = theme.HelpHint
	statusBarStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderTop(true).BorderForeground(theme.Border)
)

// StatusBarModel shows the focused area, key hints and the last status message.
type StatusBarModel struct {
	Message string
	Level   messages.StatusLevel
	Focus   focusField
	Editing bool
	Saving  bool
	Width   int
}

func (m *StatusBarModel) Set(level messages.StatusLevel, text string) {
	m.Level = level
	m.Message = text
}

// View renders the status bar (2 fixed lines)
func (m StatusBarModel) View() string {
	mode := "[New]"
	if m.Editing {
		mode = "[Edit]"
	}
	if m.Saving {
		mode = "[Saving…]"
	}
	top := modeStyle.Render(mode) + " " + hintStyle.Render(m.RenderHintsRaw())
	return statusBarStyle.Width(m.Width).Render(top + "\n" + m.renderMessage())
}

// RenderHintsRaw returns the unstyled keybind hints for the focused area.
func (m StatusBarModel) RenderHintsRaw() string {
	switch m.Focus {
	case focusDate:
		return "tab:next  ctrl+d:calendar  ctrl+s:save  esc:clear"
	case focusTable:
		return "j/k:navigate  enter/e:edit  tab:form  ?:help  q:quit"
	}
	return "tab:next  shift+tab:prev  ctrl+s:save  esc:clear"
}

func (m StatusBarModel) renderMessage() string {
	switch m.Level {
	case messages.StatusSuccess:
		return theme.Ok.Render(m.Message)
	case messages.StatusError:
		return theme.Error.Render(m.Message)
	}
	return hintStyle.Render(m.Message)
}
