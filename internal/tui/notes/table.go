package notes

import (
	"strings"

	"ambient/internal/notes/data"
	"ambient/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NoteTable lists the collection newest first. Rows and notes share indexes.
type NoteTable struct {
	table table.Model
	notes []data.Note
	width int
}

func NewNoteTable(notes []data.Note) NoteTable {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(theme.TextBright).
		Background(theme.Surface).
		Bold(true)

	t := NoteTable{
		table: table.New(
			table.WithHeight(8),
			table.WithStyles(styles),
		),
	}
	t.SetWidth(80)
	t.SetNotes(notes)
	return t
}

func (t *NoteTable) SetNotes(notes []data.Note) {
	t.notes = notes
	rows := make([]table.Row, len(notes))
	for i, n := range notes {
		rows[i] = table.Row{n.Date, n.Title, firstLine(n.Content), n.ShortID()}
	}
	t.table.SetRows(rows)
	if len(rows) == 0 {
		t.table.SetCursor(0)
	} else if t.table.Cursor() >= len(rows) {
		t.table.SetCursor(len(rows) - 1)
	}
}

// Select moves the cursor onto the note with id, if present.
func (t *NoteTable) Select(id string) {
	if i := data.FindIndex(t.notes, id); i >= 0 {
		t.table.SetCursor(i)
	}
}

// Selected returns the note under the cursor.
func (t NoteTable) Selected() (data.Note, bool) {
	i := t.table.Cursor()
	if i < 0 || i >= len(t.notes) {
		return data.Note{}, false
	}
	return t.notes[i], true
}

func (t NoteTable) Len() int {
	return len(t.notes)
}

func (t *NoteTable) Focus() { t.table.Focus() }
func (t *NoteTable) Blur()  { t.table.Blur() }

func (t *NoteTable) SetWidth(w int) {
	t.width = w
	dateW, idW := 10, 8
	rest := w - dateW - idW - 8
	if rest < 20 {
		rest = 20
	}
	titleW := rest * 2 / 5
	t.table.SetColumns([]table.Column{
		{Title: "Date", Width: dateW},
		{Title: "Title", Width: titleW},
		{Title: "Content", Width: rest - titleW},
		{Title: "ID", Width: idW},
	})
	t.table.SetWidth(w)
}

func (t *NoteTable) SetHeight(h int) {
	if h < 3 {
		h = 3
	}
	t.table.SetHeight(h)
}

func (t NoteTable) Update(msg tea.Msg) (NoteTable, tea.Cmd) {
	var cmd tea.Cmd
	t.table, cmd = t.table.Update(msg)
	return t, cmd
}

func (t NoteTable) View() string {
	if len(t.notes) == 0 {
		return theme.Muted.Render("No notes yet. Fill in the form and press ctrl+s.")
	}
	return t.table.View()
}

func firstLine(s string) string {
	line, _, more := strings.Cut(s, "\n")
	if more {
		return line + " …"
	}
	return line
}
