package data

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DateLayout = "2006-01-02"

	// ExportFileName is shared by every note; all notes go to one export file.
	ExportFileName = "ambient_ideas.txt"
)

// Note is one ambient music idea.
type Note struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"` // always DateLayout
	Content  string `json:"content"`
	FileName string `json:"fileName"`
}

// Draft is the user input for a save, before an id is attached.
type Draft struct {
	Title   string
	Date    time.Time
	Content string
}

type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// Validate reports the first missing or malformed field.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Msg: "title is required"}
	}
	if strings.ContainsAny(d.Title, "\r\n") {
		return &ValidationError{Field: "title", Msg: "title must be a single line"}
	}
	if d.Date.IsZero() {
		return &ValidationError{Field: "date", Msg: "date is required"}
	}
	if !InDateRange(d.Date) {
		return &ValidationError{Field: "date", Msg: "year must be between 0001 and 9999"}
	}
	if strings.TrimSpace(d.Content) == "" {
		return &ValidationError{Field: "content", Msg: "content is required"}
	}
	if strings.Contains(d.Content, "\r") {
		return &ValidationError{Field: "content", Msg: "content must not contain carriage returns"}
	}
	return nil
}

// FormatDate normalizes t to YYYY-MM-DD in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use yyyy-MM-dd", s)
	}
	return t, nil
}

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}

// Upsert merges draft into notes and returns a new slice; notes is not modified.
// A matching editingID replaces that note in place and keeps its id. Anything
// else, including an editingID that is no longer present, prepends a new note
// with an id from newID.
func Upsert(notes []Note, draft Draft, editingID string, newID func() string) []Note {
	note := Note{
		Title:    draft.Title,
		Date:     FormatDate(draft.Date),
		Content:  draft.Content,
		FileName: ExportFileName,
	}

	if editingID != "" {
		if i := FindIndex(notes, editingID); i >= 0 {
			note.ID = editingID
			updated := make([]Note, len(notes))
			copy(updated, notes)
			updated[i] = note
			return updated
		}
	}

	note.ID = newID()
	updated := make([]Note, 0, len(notes)+1)
	updated = append(updated, note)
	return append(updated, notes...)
}

// FindIndex returns the position of id in notes, or -1.
func FindIndex(notes []Note, id string) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Draft returns the editable fields of n.
func (n Note) Draft() (Draft, error) {
	date, err := ParseDate(n.Date)
	if err != nil {
		return Draft{}, err
	}
	return Draft{Title: n.Title, Date: date, Content: n.Content}, nil
}

// ShortID is the prefix shown in listings.
func (n Note) ShortID() string {
	if len(n.ID) > 8 {
		return n.ID[:8]
	}
	return n.ID
}
