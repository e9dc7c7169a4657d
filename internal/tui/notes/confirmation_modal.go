package notes

import (
	"strings"

	"ambient/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	confirmModalBoxStyle = theme.ModalBox
	confirmTitleStyle    = theme.Title
	confirmYesStyle      = theme.Ok
	confirmNoStyle       = theme.Error
)

// ConfirmationModal displays a simple yes/no confirmation dialog
type ConfirmationModal struct {
	Message string
	Details string
	Width   int
}

// ConfirmationResultMsg is sent when the user answers
type ConfirmationResultMsg struct {
	Confirmed bool
}

func NewConfirmationModal(message, details string, width int) *ConfirmationModal {
	return &ConfirmationModal{Message: message, Details: details, Width: width}
}

// Update handles key events for the confirmation modal
func (m *ConfirmationModal) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		return confirmResult(true)
	case "n", "esc":
		return confirmResult(false)
	}
	return nil
}

func confirmResult(ok bool) tea.Cmd {
	return func() tea.Msg {
		return ConfirmationResultMsg{Confirmed: ok}
	}
}

func (m *ConfirmationModal) View() string {
	var b strings.Builder
	b.WriteString(confirmTitleStyle.Render(m.Message))
	b.WriteString("\n")
	if m.Details != "" {
		b.WriteString("\n" + m.Details + "\n")
	}
	b.WriteString("\n")
	b.WriteString(confirmYesStyle.Render("[y]") + " Yes  ")
	b.WriteString(confirmNoStyle.Render("[n/esc]") + " No")

	return confirmModalBoxStyle.Width(m.Width).Render(b.String())
}
