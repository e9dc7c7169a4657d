package tui

import (
	"time"

	"ambient/internal/logs"
	"ambient/internal/tui/messages"
	noteview "ambient/internal/tui/notes"
	"ambient/internal/tui/shared"
	"ambient/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

// AppModel is the root model. It owns global keys and the help overlay
// and hands everything else to the note editor.
type AppModel struct {
	editor   noteview.EditorModel
	showHelp bool
	width    int
	height   int
	ready    bool
}

func NewAppModel(svc noteview.Saver) AppModel {
	return AppModel{editor: noteview.NewEditorModel(svc, time.Now)}
}

// Run starts the TUI on the alternate screen and blocks until it exits.
func Run(svc noteview.Saver) error {
	p := tea.NewProgram(NewAppModel(svc), tea.WithAltScreen())
	_, err := p.Run()
	if err != nil {
		logs.Logger.Errorw("tui exited with error", "error", err)
	}
	return err
}

func (m AppModel) Init() tea.Cmd {
	return m.editor.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.editor.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if !m.editor.InModalState() {
			switch msg.String() {
			case "q":
				if m.editor.Saving() {
					return m, messages.SetStatus(messages.StatusInfo, "Save in progress, quit again when it finishes")
				}
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	if !m.ready {
		return theme.Muted.Render("Loading...")
	}
	if m.showHelp {
		return shared.RenderHelpPopup("Ambient - Keyboard Shortcuts", helpSections, m.width, m.height)
	}
	return m.editor.View()
}

var helpSections = []shared.HelpSection{
	{
		Title: "Form",
		Binds: []shared.HelpBind{
			{Key: "tab", Desc: "Next field"},
			{Key: "shift+tab", Desc: "Previous field"},
			{Key: "ctrl+s", Desc: "Save and export"},
			{Key: "ctrl+d", Desc: "Pick date from calendar"},
			{Key: "esc", Desc: "Clear form / cancel edit"},
		},
	},
	{
		Title: "Date field",
		Binds: []shared.HelpBind{
			{Key: "2024-03-15", Desc: "Full date"},
			{Key: "03-15", Desc: "This year"},
			{Key: "today, +3, -1", Desc: "Relative to today"},
		},
	},
	{
		Title: "Notes table",
		Binds: []shared.HelpBind{
			{Key: "j / k", Desc: "Navigate notes"},
			{Key: "enter / e", Desc: "Edit selected note"},
			{Key: "?", Desc: "Show this help"},
			{Key: "q", Desc: "Quit"},
			{Key: "ctrl+c", Desc: "Force quit"},
		},
	},
}
