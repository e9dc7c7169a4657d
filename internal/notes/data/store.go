package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"ambient/internal/kv"
	"ambient/internal/logs"
)

// StorageKey is the slot the collection lives under.
const StorageKey = "ambientNotes"

// Store persists the whole note collection as a JSON array in one kv slot.
type Store struct {
	backend kv.Store
	key     string
	mu      sync.Mutex
}

func NewStore(backend kv.Store, key string) *Store {
	if key == "" {
		key = StorageKey
	}
	return &Store{backend: backend, key: key}
}

// Load returns the persisted collection. A missing or unparseable slot yields an
// empty collection; records that break the note invariants are skipped.
func (s *Store) Load() ([]Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.backend.Get(s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", s.key, err)
	}

	var stored []Note
	if err := json.Unmarshal(raw, &stored); err != nil {
		logs.Logger.Warnw("corrupt note store, starting empty", "key", s.key, "error", err)
		return []Note{}, nil
	}

	notes := make([]Note, 0, len(stored))
	seen := make(map[string]bool, len(stored))
	for i, n := range stored {
		if reason := invalidReason(n, seen); reason != "" {
			logs.Logger.Warnw("skipping stored note", "index", i, "id", n.ID, "reason", reason)
			continue
		}
		seen[n.ID] = true
		if n.FileName == "" {
			n.FileName = ExportFileName
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// Save replaces the persisted collection with notes.
func (s *Store) Save(notes []Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if notes == nil {
		notes = []Note{}
	}
	raw, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("error encoding notes: %w", err)
	}
	if err := s.backend.Set(s.key, raw); err != nil {
		return fmt.Errorf("error writing %s: %w", s.key, err)
	}
	logs.Logger.Debugw("note store saved", "key", s.key, "count", len(notes))
	return nil
}

func invalidReason(n Note, seen map[string]bool) string {
	switch {
	case n.ID == "":
		return "empty id"
	case seen[n.ID]:
		return "duplicate id"
	case strings.TrimSpace(n.Title) == "":
		return "empty title"
	}
	if _, err := ParseDate(n.Date); err != nil {
		return err.Error()
	}
	return ""
}
