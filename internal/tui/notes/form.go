package notes

import (
	"strings"
	"time"

	"ambient/internal/notes/data"
	"ambient/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusField int

const (
	focusTitle focusField = iota
	focusDate
	focusContent
	focusTable
)

func (f focusField) String() string {
	switch f {
	case focusTitle:
		return "title"
	case focusDate:
		return "date"
	case focusContent:
		return "content"
	}
	return "notes"
}

// formValues is what the fields held when the form was last reset or loaded.
type formValues struct {
	title, date, content string
}

// FormModel holds the three note fields
type FormModel struct {
	title    textinput.Model
	date     textinput.Model
	content  textarea.Model
	dateErr  string
	focus    focusField
	baseline formValues
	width    int
	now      func() time.Time
}

func NewFormModel(now func() time.Time) FormModel {
	f := FormModel{
		title:   newTitleInput(),
		date:    newDateInput(),
		content: newContentArea(),
		now:     now,
		width:   60,
	}
	f.Reset()
	return f
}

// Reset empties the form and puts today's date in the date field.
func (f *FormModel) Reset() {
	f.title.Reset()
	f.content.Reset()
	f.date.SetValue(data.FormatDate(f.now()))
	f.dateErr = ""
	f.baseline = f.values()
}

// Load fills the form from an existing note.
func (f *FormModel) Load(n data.Note) {
	f.title.SetValue(n.Title)
	f.date.SetValue(n.Date)
	f.content.SetValue(n.Content)
	f.dateErr = ""
	f.baseline = f.values()
}

func (f FormModel) values() formValues {
	return formValues{title: f.title.Value(), date: f.date.Value(), content: f.content.Value()}
}

// Dirty reports input that differs from the last reset or load.
func (f FormModel) Dirty() bool {
	return f.values() != f.baseline
}

// Focus moves the cursor to field, blurring the others.
func (f *FormModel) Focus(field focusField) tea.Cmd {
	if f.focus == focusDate && field != focusDate {
		f.normalizeDate()
	}
	f.focus = field
	f.title.Blur()
	f.date.Blur()
	f.content.Blur()

	switch field {
	case focusTitle:
		return f.title.Focus()
	case focusDate:
		return f.date.Focus()
	case focusContent:
		return f.content.Focus()
	}
	return nil
}

// normalizeDate rewrites shorthand like "tomorrow" as yyyy-MM-dd, or records the error.
func (f *FormModel) normalizeDate() {
	if strings.TrimSpace(f.date.Value()) == "" {
		f.dateErr = ""
		return
	}
	normalized, err := ValidateDateInput(f.date.Value(), f.now())
	if err != nil {
		f.dateErr = err.Error()
		return
	}
	f.dateErr = ""
	f.date.SetValue(normalized)
}

func (f *FormModel) SetDate(t time.Time) {
	f.date.SetValue(data.FormatDate(t))
	f.dateErr = ""
}

// DateValue returns the parsed date field, or the zero time.
func (f FormModel) DateValue() time.Time {
	d, err := data.ParseDateInput(f.date.Value(), f.now())
	if err != nil {
		return time.Time{}
	}
	return d
}

// Draft collects the fields. A date that cannot be parsed is a ValidationError.
func (f FormModel) Draft() (data.Draft, error) {
	draft := data.Draft{
		Title:   strings.TrimSpace(f.title.Value()),
		Content: strings.TrimRight(f.content.Value(), " \t\n"),
	}
	if strings.TrimSpace(f.date.Value()) != "" {
		d, err := data.ParseDateInput(f.date.Value(), f.now())
		if err != nil {
			return data.Draft{}, &data.ValidationError{Field: "date", Msg: err.Error()}
		}
		draft.Date = d
	}
	return draft, draft.Validate()
}

// Update forwards msg to the focused field.
func (f FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case focusTitle:
		f.title, cmd = f.title.Update(msg)
	case focusDate:
		f.date, cmd = f.date.Update(msg)
		f.dateErr = ""
	case focusContent:
		f.content, cmd = f.content.Update(msg)
	}
	return f, cmd
}

func (f *FormModel) SetWidth(w int) {
	f.width = w
	inner := w - 4
	if inner < 20 {
		inner = 20
	}
	f.title.Width = inner
	f.content.SetWidth(inner)
}

func (f FormModel) View(header string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(f.field("Title", focusTitle, f.title.View()))
	b.WriteString("\n")

	date := f.field("Date", focusDate, f.date.View())
	if f.dateErr != "" {
		date = lipgloss.JoinHorizontal(lipgloss.Center, date, "  ", theme.Error.Render(f.dateErr))
	}
	b.WriteString(date)
	b.WriteString("\n")
	b.WriteString(f.field("Content", focusContent, f.content.View()))
	return b.String()
}

func (f FormModel) field(label string, field focusField, body string) string {
	labelStyle, boxStyle := theme.FieldLabel, theme.FieldBox
	if f.focus == field {
		labelStyle, boxStyle = theme.FieldLabelFocused, theme.FieldBoxFocused
	}
	width := f.width
	if field == focusDate {
		width = 30
	}
	return labelStyle.Render(label) + "\n" + boxStyle.Width(width).Render(body)
}
