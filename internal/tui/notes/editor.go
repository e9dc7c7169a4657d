package notes

import (
	"errors"
	"fmt"
	"time"

	"ambient/internal/logs"
	"ambient/internal/notes/data"
	"ambient/internal/notes/service"
	"ambient/internal/tui/messages"
	"ambient/internal/tui/shared"
	"ambient/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// formHeight is the number of lines the form and its header take up.
const formHeight = 19

// Saver is the part of the note service the editor uses.
type Saver interface {
	List() []data.Note
	Save(draft data.Draft, editingID string) ([]data.Note, error)
	ExportLocation() string
}

// EditorModel is the note form above the note table.
type EditorModel struct {
	svc        Saver
	form       FormModel
	table      NoteTable
	datePicker *shared.DatePickerModel
	confirm    *ConfirmationModal
	status     StatusBarModel
	focus      focusField
	editingID  string
	saving     bool
	width      int
	height     int
}

func NewEditorModel(svc Saver, now func() time.Time) EditorModel {
	m := EditorModel{
		svc:   svc,
		form:  NewFormModel(now),
		table: NewNoteTable(svc.List()),
	}
	m.status.Set(messages.StatusInfo, fmt.Sprintf("%d note(s), exporting to %s", m.table.Len(), svc.ExportLocation()))
	m.setFocus(focusTitle)
	return m
}

func (m EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.NotesSavedMsg:
		return m.handleSaved(msg)

	case messages.StatusMsg:
		m.status.Set(msg.Level, msg.Text)
		return m, nil

	case ConfirmationResultMsg:
		m.confirm = nil
		if msg.Confirmed {
			return m, m.clearForm()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m EditorModel) handleKey(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	if m.confirm != nil {
		return m, m.confirm.Update(msg)
	}
	if m.datePicker != nil {
		return m.updateDatePicker(msg)
	}

	switch msg.String() {
	case "ctrl+s":
		return m.save()
	case "ctrl+d":
		return m.openDatePicker()
	case "tab":
		return m, m.setFocus((m.focus + 1) % 4)
	case "shift+tab":
		return m, m.setFocus((m.focus + 3) % 4)
	case "esc":
		return m.requestClear()
	}

	var cmd tea.Cmd
	if m.focus == focusTable {
		switch msg.String() {
		case "enter", "e":
			return m.startEdit()
		}
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m *EditorModel) setFocus(f focusField) tea.Cmd {
	m.focus = f
	m.status.Focus = f
	if f == focusTable {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
	return m.form.Focus(f)
}

// save validates the form and starts the save. Only one save runs at a time.
func (m EditorModel) save() (EditorModel, tea.Cmd) {
	if m.saving {
		m.status.Set(messages.StatusInfo, "Save already in progress")
		return m, nil
	}

	draft, err := m.form.Draft()
	if err != nil {
		m.status.Set(messages.StatusError, err.Error())
		var vErr *data.ValidationError
		if errors.As(err, &vErr) {
			return m, m.setFocus(fieldFocus(vErr.Field))
		}
		return m, nil
	}

	m.saving = true
	m.status.Saving = true
	m.status.Set(messages.StatusInfo, "Saving…")

	svc, editingID := m.svc, m.editingID
	return m, func() tea.Msg {
		notes, err := svc.Save(draft, editingID)
		return messages.NotesSavedMsg{Notes: notes, Title: draft.Title, EditingID: editingID, Err: err}
	}
}

func (m EditorModel) handleSaved(msg messages.NotesSavedMsg) (EditorModel, tea.Cmd) {
	m.saving = false
	m.status.Saving = false

	if msg.Err != nil {
		logs.Logger.Warnw("save from form failed", "editing", msg.EditingID, "error", msg.Err)
		m.status.Set(messages.StatusError, saveFailure(msg.Err))
		return m, nil
	}

	m.table.SetNotes(msg.Notes)
	verb := "Saved"
	if msg.EditingID != "" {
		verb = "Updated"
		m.table.Select(msg.EditingID)
	} else if len(msg.Notes) > 0 {
		m.table.Select(msg.Notes[0].ID)
	}

	m.form.Reset()
	m.editingID = ""
	m.status.Editing = false
	m.status.Set(messages.StatusSuccess, fmt.Sprintf("%s %q, exported to %s", verb, msg.Title, m.svc.ExportLocation()))
	return m, m.setFocus(focusTitle)
}

func saveFailure(err error) string {
	var exportErr *service.ExportError
	var persistErr *service.PersistenceError
	switch {
	case errors.As(err, &exportErr):
		return fmt.Sprintf("Not saved: %v. Press ctrl+s to retry.", err)
	case errors.As(err, &persistErr):
		return fmt.Sprintf("Not saved, export restored: %v. Press ctrl+s to retry.", err)
	}
	return "Not saved: " + err.Error()
}

// startEdit loads the selected note into the form.
func (m EditorModel) startEdit() (EditorModel, tea.Cmd) {
	if m.saving {
		m.status.Set(messages.StatusInfo, "Wait for the current save to finish")
		return m, nil
	}
	note, ok := m.table.Selected()
	if !ok {
		return m, nil
	}

	m.form.Load(note)
	m.editingID = note.ID
	m.status.Editing = true
	m.status.Set(messages.StatusInfo, fmt.Sprintf("Editing %s %q", note.ShortID(), note.Title))
	logs.Logger.Debugw("editing note", "id", note.ID)
	return m, m.setFocus(focusTitle)
}

func (m EditorModel) requestClear() (EditorModel, tea.Cmd) {
	if !m.form.Dirty() {
		return m, m.clearForm()
	}
	details := "The new note has not been saved."
	if m.editingID != "" {
		details = "Changes to the note being edited will be lost."
	}
	m.confirm = NewConfirmationModal("Discard unsaved changes?", details, 50)
	return m, nil
}

func (m *EditorModel) clearForm() tea.Cmd {
	wasEditing := m.editingID != ""
	m.form.Reset()
	m.editingID = ""
	m.status.Editing = false
	if wasEditing {
		m.status.Set(messages.StatusInfo, "Edit cancelled")
	} else {
		m.status.Set(messages.StatusInfo, "Form cleared")
	}
	return m.setFocus(focusTitle)
}

func (m EditorModel) openDatePicker() (EditorModel, tea.Cmd) {
	dp := shared.NewDatePickerModel(m.form.DateValue(), "Note Date")
	dp.SetSize(m.width, m.height)
	m.datePicker = &dp
	return m, dp.Init()
}

func (m EditorModel) updateDatePicker(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	var cmd tea.Cmd
	*m.datePicker, cmd = m.datePicker.Update(msg)

	if d, ok := m.datePicker.Picked(); ok {
		m.form.SetDate(d)
		m.datePicker = nil
		return m, m.setFocus(focusContent)
	}
	if m.datePicker.Cancelled() {
		m.datePicker = nil
		return m, m.setFocus(m.focus)
	}
	return m, cmd
}

// InModalState reports whether keys belong to a text field or an overlay.
func (m EditorModel) InModalState() bool {
	return m.focus != focusTable || m.datePicker != nil || m.confirm != nil
}

func (m EditorModel) Saving() bool {
	return m.saving
}

func (m EditorModel) EditingID() string {
	return m.editingID
}

func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.form.SetWidth(width - 2)
	m.table.SetWidth(width)
	m.table.SetHeight(height - formHeight - 4)
	m.status.Width = width
	if m.datePicker != nil {
		m.datePicker.SetSize(width, height)
	}
}

func (m EditorModel) View() string {
	if m.datePicker != nil {
		return m.datePicker.View()
	}
	if m.confirm != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	header := theme.Title.Render("New ambient idea")
	if m.editingID != "" {
		header = theme.Editing.Render("Editing note " + shortID(m.editingID))
	}

	tableLabel := theme.FieldLabel
	if m.focus == focusTable {
		tableLabel = theme.FieldLabelFocused
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.form.View(header),
		"",
		tableLabel.Render(fmt.Sprintf("Notes (%d)", m.table.Len())),
		m.table.View(),
		m.status.View(),
	)
}

func fieldFocus(field string) focusField {
	switch field {
	case "date":
		return focusDate
	case "content":
		return focusContent
	}
	return focusTitle
}

func shortID(id string) string {
	return data.Note{ID: id}.ShortID()
}
