package data

import (
	"fmt"
	"regexp"
	"strings"
)

// markerPattern matches "x <date> <title> #hash:<id>". The greedy title group
// makes the last " #hash:" the tag, so titles may contain the text themselves.
var markerPattern = regexp.MustCompile(`^x (\d{4}-\d{2}-\d{2}) (.*) #hash:(\S+)$`)

type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// String renders the note as one export block, trailing newline included.
func (n Note) String() string {
	return fmt.Sprintf("x %s %s #hash:%s\n%s\n", n.Date, n.Title, n.ID, n.Content)
}

// Serialize renders notes in order, blocks separated by a blank line.
func Serialize(notes []Note) []byte {
	var b strings.Builder
	for i, n := range notes {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(n.String())
	}
	return []byte(b.String())
}

// Parse reads text produced by Serialize back into notes.
//
// Content runs from the line after a marker up to a blank line that is directly
// followed by the next marker, so multi-line content survives the round trip.
func Parse(text []byte) ([]Note, error) {
	s := string(text)
	if s == "" {
		return []Note{}, nil
	}
	// A hand-edited export may come back with CRLF endings. Saved content
	// never holds '\r', so this cannot change a note's content.
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if !strings.HasSuffix(s, "\n") {
		return nil, &ParseError{Line: strings.Count(s, "\n") + 1, Msg: "missing trailing newline"}
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")

	var notes []Note
	seen := make(map[string]int)
	i := 0
	for i < len(lines) {
		m := markerPattern.FindStringSubmatch(lines[i])
		if m == nil {
			return nil, &ParseError{Line: i + 1, Msg: fmt.Sprintf("expected marker line, got %q", lines[i])}
		}
		if _, err := ParseDate(m[1]); err != nil {
			return nil, &ParseError{Line: i + 1, Msg: err.Error()}
		}
		if prev, dup := seen[m[3]]; dup {
			return nil, &ParseError{Line: i + 1, Msg: fmt.Sprintf("duplicate id %s (first on line %d)", m[3], prev)}
		}
		seen[m[3]] = i + 1

		if i+1 >= len(lines) {
			return nil, &ParseError{Line: i + 1, Msg: "marker without content line"}
		}

		start := i + 1
		end := len(lines)
		next := len(lines)
		for j := start; j+1 < len(lines); j++ {
			if lines[j] == "" && markerPattern.MatchString(lines[j+1]) {
				end = j
				next = j + 1
				break
			}
		}

		notes = append(notes, Note{
			ID:       m[3],
			Title:    m[2],
			Date:     m[1],
			Content:  strings.Join(lines[start:end], "\n"),
			FileName: ExportFileName,
		})
		i = next
	}
	return notes, nil
}
