package notes

import (
	"time"

	"ambient/internal/notes/data"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
)

// newTitleInput creates the single-line title field
func newTitleInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Slow pads under tape hiss"
	ti.Prompt = ""
	ti.CharLimit = 256
	return ti
}

// newDateInput creates a text input configured for date entry
func newDateInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "yyyy-MM-dd, today, +3"
	ti.Prompt = ""
	ti.CharLimit = 20
	ti.Width = 24
	return ti
}

func newContentArea() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "What does it sound like?"
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetHeight(6)
	return ta
}

// ValidateDateInput checks a date field value and returns it normalized to yyyy-MM-dd.
func ValidateDateInput(s string, now time.Time) (string, error) {
	d, err := data.ParseDateInput(s, now)
	if err != nil {
		return "", err
	}
	return data.FormatDate(d), nil
}
