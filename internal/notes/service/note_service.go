package service

import (
	"errors"
	"fmt"
	"strings"

	"ambient/internal/logs"
	"ambient/internal/notes/data"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrAmbiguousID  = errors.New("id prefix matches more than one note")
)

// minPrefixLen is the shortest id prefix accepted by Find.
const minPrefixLen = 4

// Store is the durable home of the note collection.
type Store interface {
	Load() ([]data.Note, error)
	Save(notes []data.Note) error
}

// Exporter emits the serialized collection.
type Exporter interface {
	Export(blob []byte) error
	Location() string
}

// ExportError means the export could not be written. Nothing was persisted.
type ExportError struct {
	Location string
	Err      error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s failed: %v", e.Location, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// PersistenceError means the store write failed after a successful export.
// The export has been rolled back to the previous collection.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("saving notes failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// SaveNote merges draft into current, exports the result and persists it.
// current is never modified; on any error the caller keeps using it.
//
// The export is written first. If persisting then fails, the previous
// collection is exported again so the file and the store stay in step.
func SaveNote(store Store, exporter Exporter, draft data.Draft, editingID string, current []data.Note) ([]data.Note, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	updated := data.Upsert(current, draft, editingID, data.NewID)

	if err := exporter.Export(data.Serialize(updated)); err != nil {
		logs.Logger.Errorw("export failed", "location", exporter.Location(), "error", err)
		return nil, &ExportError{Location: exporter.Location(), Err: err}
	}

	if err := store.Save(updated); err != nil {
		logs.Logger.Errorw("persist failed, rolling back export", "error", err)
		if rbErr := exporter.Export(data.Serialize(current)); rbErr != nil {
			logs.Logger.Errorw("export rollback failed", "location", exporter.Location(), "error", rbErr)
		}
		return nil, &PersistenceError{Err: err}
	}

	logs.Logger.Infow("note saved", "id", updated[savedIndex(updated, editingID)].ID, "editing", editingID != "", "count", len(updated))
	return updated, nil
}

func savedIndex(notes []data.Note, editingID string) int {
	if i := data.FindIndex(notes, editingID); editingID != "" && i >= 0 {
		return i
	}
	return 0
}

// NoteService defines the operations the CLI and TUI use.
type NoteService interface {
	List() []data.Note
	Get(id string) (*data.Note, error)
	Find(ref string) (*data.Note, error)
	Save(draft data.Draft, editingID string) ([]data.Note, error)
	Export() error
	ExportLocation() string
	Check() (CheckReport, error)
	Reload() error
}

type noteServiceImpl struct {
	store    Store
	exporter Exporter
	notes    []data.Note
}

// NewNoteService loads the store once and serves from memory afterwards.
func NewNoteService(store Store, exporter Exporter) (NoteService, error) {
	svc := &noteServiceImpl{store: store, exporter: exporter}
	if err := svc.Reload(); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *noteServiceImpl) Reload() error {
	notes, err := s.store.Load()
	if err != nil {
		return err
	}
	s.notes = notes
	return nil
}

// List returns a copy of the collection, newest first.
func (s *noteServiceImpl) List() []data.Note {
	out := make([]data.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

func (s *noteServiceImpl) Get(id string) (*data.Note, error) {
	if i := data.FindIndex(s.notes, id); i >= 0 {
		n := s.notes[i]
		return &n, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
}

// Find resolves a full id or a unique prefix of at least four characters.
func (s *noteServiceImpl) Find(ref string) (*data.Note, error) {
	if n, err := s.Get(ref); err == nil {
		return n, nil
	}
	if len(ref) < minPrefixLen {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, ref)
	}

	var matches []data.Note
	for _, n := range s.notes {
		if strings.HasPrefix(n.ID, ref) {
			matches = append(matches, n)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, ref)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, ref)
	}
}

func (s *noteServiceImpl) Save(draft data.Draft, editingID string) ([]data.Note, error) {
	updated, err := SaveNote(s.store, s.exporter, draft, editingID, s.notes)
	if err != nil {
		return nil, err
	}
	s.notes = updated
	return s.List(), nil
}

// Export rewrites the export from the current collection.
func (s *noteServiceImpl) Export() error {
	if err := s.exporter.Export(data.Serialize(s.notes)); err != nil {
		return &ExportError{Location: s.exporter.Location(), Err: err}
	}
	logs.Logger.Infow("notes exported", "location", s.exporter.Location(), "count", len(s.notes))
	return nil
}

func (s *noteServiceImpl) ExportLocation() string {
	return s.exporter.Location()
}
