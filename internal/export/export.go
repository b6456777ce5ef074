// Package export renders an ordered snippet sequence into downloadable
// artifacts.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nikbrunner/snip/internal/model"
)

// Kind selects the output representation.
type Kind string

const (
	// KindText is a human-readable document with a heading block and
	// one numbered section per entry.
	KindText Kind = "text"
	// KindJSON is a machine-readable document with a meta object and a
	// snippets array.
	KindJSON Kind = "json"
)

// Meta is the heading information attached to an export.
type Meta struct {
	Title      string
	Author     string
	Source     string
	Mode       model.Mode
	ExportedAt time.Time
}

// Format renders the entries under the given kind. Indexes are 1-based
// and follow input order. Character counts are rune counts of the text
// exactly as stored.
func Format(entries []model.Entry, meta Meta, kind Kind) (string, error) {
	switch kind {
	case KindText:
		return formatText(entries, meta), nil
	case KindJSON:
		return formatJSON(entries, meta)
	default:
		return "", fmt.Errorf("unknown export kind %q", kind)
	}
}

func formatText(entries []model.Entry, meta Meta) string {
	var b strings.Builder

	b.WriteString("Snippets Export\n")
	fmt.Fprintf(&b, "Title:    %s\n", meta.Title)
	fmt.Fprintf(&b, "Author:   %s\n", meta.Author)
	fmt.Fprintf(&b, "Source:   %s\n", meta.Source)
	fmt.Fprintf(&b, "Mode:     %s\n", meta.Mode)
	fmt.Fprintf(&b, "Exported: %s\n", meta.ExportedAt.Format("2006-01-02 15:04"))
	b.WriteString(strings.Repeat("-", 40) + "\n")

	for i, e := range entries {
		fmt.Fprintf(&b, "\n%d. (%d characters)\n", i+1, utf8.RuneCountInString(e.Text))
		// Each line of a multi-line entry gets its own quote prefix.
		for _, line := range strings.Split(e.Text, "\n") {
			fmt.Fprintf(&b, "> %s\n", line)
		}
	}

	return b.String()
}

type jsonSnippet struct {
	Index          int    `json:"index"`
	CharacterCount int    `json:"characterCount"`
	Text           string `json:"text"`
}

type jsonDoc struct {
	Meta struct {
		Title      string `json:"title"`
		Author     string `json:"author"`
		Source     string `json:"source"`
		Mode       string `json:"mode"`
		ExportedAt string `json:"exportedAt"`
	} `json:"meta"`
	Snippets []jsonSnippet `json:"snippets"`
}

func formatJSON(entries []model.Entry, meta Meta) (string, error) {
	var doc jsonDoc
	doc.Meta.Title = meta.Title
	doc.Meta.Author = meta.Author
	doc.Meta.Source = meta.Source
	doc.Meta.Mode = string(meta.Mode)
	doc.Meta.ExportedAt = meta.ExportedAt.Format(time.RFC3339)

	doc.Snippets = make([]jsonSnippet, 0, len(entries))
	for i, e := range entries {
		doc.Snippets = append(doc.Snippets, jsonSnippet{
			Index:          i + 1,
			CharacterCount: utf8.RuneCountInString(e.Text),
			Text:           e.Text,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// DefaultPath returns the default export file path.
// Format: ~/Downloads/snippets-export-YYYY-MM-DD.txt (or .json)
func DefaultPath(kind Kind) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	ext := "txt"
	if kind == KindJSON {
		ext = "json"
	}
	filename := fmt.Sprintf("snippets-export-%s.%s", time.Now().Format("2006-01-02"), ext)
	return filepath.Join(home, "Downloads", filename), nil
}
