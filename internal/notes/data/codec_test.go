package data

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_SingleNote(t *testing.T) {
	notes := Upsert(nil, Draft{Title: "Drones", Date: date(t, "2024-01-05"), Content: "slow pads"}, "", NewID)
	require.Len(t, notes, 1)

	want := "x 2024-01-05 Drones #hash:" + notes[0].ID + "\nslow pads\n"
	assert.Equal(t, want, string(Serialize(notes)))
}

func TestSerialize_BlankLineBetweenBlocks(t *testing.T) {
	notes := []Note{
		{ID: "b", Title: "Second idea", Date: "2024-01-06", Content: "tape hiss"},
		{ID: "a", Title: "First idea", Date: "2024-01-05", Content: "slow pads"},
	}
	want := "x 2024-01-06 Second idea #hash:b\ntape hiss\n\nx 2024-01-05 First idea #hash:a\nslow pads\n"
	assert.Equal(t, want, string(Serialize(notes)))
}

func TestSerialize_Empty(t *testing.T) {
	assert.Equal(t, "", string(Serialize(nil)))
}

func TestSerialize_Deterministic(t *testing.T) {
	notes := []Note{
		{ID: "1", Title: "Drift", Date: "2024-03-01", Content: "granular"},
		{ID: "2", Title: "Shimmer", Date: "2024-03-02", Content: "reverb\nfreeze"},
	}
	first := Serialize(notes)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Serialize(notes))
	}
}

func TestParse_RoundTrip(t *testing.T) {
	tests := map[string][]Note{
		"empty": {},
		"single": {
			{ID: "abc", Title: "Drones", Date: "2024-01-05", Content: "slow pads"},
		},
		"multiline and empty content": {
			{ID: "1", Title: "Layers", Date: "2024-02-01", Content: "pad one\n\npad two"},
			{ID: "2", Title: "Silence", Date: "2024-02-02", Content: ""},
			{ID: "3", Title: "Trailing", Date: "2024-02-03", Content: "ends with newline\n"},
			{ID: "4", Title: "Last", Date: "2024-02-04", Content: ""},
		},
		"tricky titles": {
			{ID: "t1", Title: "uses #hash:inside", Date: "2024-04-01", Content: "x marks"},
			{ID: "t2", Title: " padded ", Date: "2024-04-02", Content: "x 2024-01-01 looks like a marker"},
		},
	}

	for name, notes := range tests {
		for i := range notes {
			notes[i].FileName = ExportFileName
		}
		parsed, err := Parse(Serialize(notes))
		require.NoError(t, err, name)
		if diff := cmp.Diff(notes, parsed); diff != "" {
			t.Errorf("%s: round-trip mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestNoteString_RoundTrip(t *testing.T) {
	n := Note{ID: "abc", Title: "Drones", Date: "2024-01-05", Content: "slow pads", FileName: ExportFileName}
	parsed, err := Parse([]byte(n.String()))
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, n, parsed[0])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"no marker", "slow pads\n", 1},
		{"bad date", "x 2024-02-30 Drones #hash:abc\nslow pads\n", 1},
		{"marker only", "x 2024-01-05 Drones #hash:abc\n", 1},
		{"missing trailing newline", "x 2024-01-05 Drones #hash:abc\nslow pads", 2},
		{"duplicate id", "x 2024-01-05 A #hash:abc\na\n\nx 2024-01-06 B #hash:abc\nb\n", 4},
	}

	for _, tt := range tests {
		_, err := Parse([]byte(tt.input))
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("%s: expected ParseError, got %v", tt.name, err)
			continue
		}
		assert.Equal(t, tt.line, perr.Line, tt.name)
	}
}

func TestParse_CRLFLineEndings(t *testing.T) {
	parsed, err := Parse([]byte("x 2024-01-05 Drones #hash:abc\r\nslow pads\r\nsecond line\r\n"))
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "slow pads\nsecond line", parsed[0].Content)
}

func TestParse_RoundTripOfValidatedDrafts(t *testing.T) {
	drafts := []Draft{
		{Title: "Drones", Date: date(t, "2024-01-05"), Content: "slow pads\nunder hiss"},
		{Title: "Far", Date: date(t, "9999-12-31"), Content: "last day"},
		{Title: "Early", Date: date(t, "0001-01-02"), Content: "first day"},
	}

	var notes []Note
	for _, d := range drafts {
		require.NoError(t, d.Validate())
		notes = Upsert(notes, d, "", NewID)
	}

	parsed, err := Parse(Serialize(notes))
	require.NoError(t, err)
	assert.Equal(t, notes, parsed)
}
