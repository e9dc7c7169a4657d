package data

import (
	"testing"

	"ambient/internal/kv"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, kv.Store) {
	t.Helper()
	backend, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewStore(backend, ""), backend
}

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	notes, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestStore_LoadCorruptIsEmpty(t *testing.T) {
	s, backend := newTestStore(t)
	require.NoError(t, backend.Set(StorageKey, []byte(`{not json`)))

	notes, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestStore_SaveLoad(t *testing.T) {
	s, backend := newTestStore(t)
	notes := []Note{
		{ID: "b", Title: "Shimmer", Date: "2024-01-06", Content: "reverb", FileName: ExportFileName},
		{ID: "a", Title: "Drones", Date: "2024-01-05", Content: "slow pads", FileName: ExportFileName},
	}

	require.NoError(t, s.Save(notes))

	raw, err := backend.Get(StorageKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"fileName":"ambient_ideas.txt"`)

	loaded, err := s.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(notes, loaded); diff != "" {
		t.Errorf("load mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_LoadIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Save([]Note{{ID: "a", Title: "Drones", Date: "2024-01-05", Content: "slow pads", FileName: ExportFileName}}))

	first, err := s.Load()
	require.NoError(t, err)
	second, err := s.Load()
	require.NoError(t, err)

	assert.True(t, cmp.Equal(first, second))
}

func TestStore_LoadSkipsInvalidRecords(t *testing.T) {
	s, backend := newTestStore(t)
	raw := `[
		{"id":"a","title":"Drones","date":"2024-01-05","content":"slow pads"},
		{"id":"","title":"No id","date":"2024-01-05","content":"x"},
		{"id":"a","title":"Dup","date":"2024-01-05","content":"x"},
		{"id":"c","title":"Bad date","date":"Jan 5","content":"x"},
		{"id":"d","title":"","date":"2024-01-05","content":"x"}
	]`
	require.NoError(t, backend.Set(StorageKey, []byte(raw)))

	notes, err := s.Load()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "a", notes[0].ID)
	assert.Equal(t, ExportFileName, notes[0].FileName)
}

func TestStore_SaveNilWritesEmptyArray(t *testing.T) {
	s, backend := newTestStore(t)
	require.NoError(t, s.Save(nil))

	raw, err := backend.Get(StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestStore_CustomKey(t *testing.T) {
	backend, err := kv.NewSQLiteStore(t.TempDir())
	require.NoError(t, err)
	defer backend.Close()

	s := NewStore(backend, "otherNotes")
	require.NoError(t, s.Save([]Note{{ID: "a", Title: "T", Date: "2024-01-05", Content: "c"}}))

	_, err = backend.Get(StorageKey)
	assert.ErrorIs(t, err, kv.ErrNotFound)
	_, err = backend.Get("otherNotes")
	assert.NoError(t, err)
}
