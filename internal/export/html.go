package export

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"

	"ambient/internal/notes/data"

	"github.com/yuin/goldmark"
)

// RenderHTML renders notes as a standalone page, one <article> per note with
// the content converted from Markdown. Raw HTML in content is omitted.
func RenderHTML(notes []data.Note) ([]byte, error) {
	md := goldmark.New()

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Ambient ideas</title>\n</head>\n<body>\n")
	for _, n := range notes {
		fmt.Fprintf(&buf, "<article id=\"note-%s\">\n<h2>%s</h2>\n<time datetime=\"%s\">%s</time>\n",
			html.EscapeString(n.ID), html.EscapeString(n.Title), html.EscapeString(n.Date), html.EscapeString(n.Date))
		if err := md.Convert([]byte(n.Content), &buf); err != nil {
			return nil, fmt.Errorf("render note %s: %w", n.ID, err)
		}
		buf.WriteString("</article>\n")
	}
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

// WriteHTML renders notes and writes them to path.
func WriteHTML(notes []data.Note, path string) error {
	page, err := RenderHTML(notes)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	return writeAtomic(path, page)
}
