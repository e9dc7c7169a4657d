package messages

import (
	"ambient/internal/notes/data"

	tea "github.com/charmbracelet/bubbletea"
)

// NotesSavedMsg carries the result of one save request back to the UI.
// Notes is nil when Err is set.
type NotesSavedMsg struct {
	Notes     []data.Note
	Title     string
	EditingID string
	Err       error
}

// StatusMsg replaces the status line text
type StatusMsg struct {
	Text  string
	Level StatusLevel
}

type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusSuccess
	StatusError
)

// SetStatus returns a command that replaces the status line text
func SetStatus(level StatusLevel, text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text, Level: level}
	}
}
