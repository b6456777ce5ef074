// Package session snapshots the full application state into a single
// portable JSON document, and restores from one.
package session

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"

	"github.com/nikbrunner/snip/internal/model"
)

// ErrInvalidFormat marks a session file that could not be understood.
// Nothing is restored when decoding fails with it.
var ErrInvalidFormat = errors.New("invalid session format")

// Document is a full snapshot: the source article, its display
// metadata, the active chunking mode, the snippet sequence rendered at
// save time, and both collections. The snippet list is informational;
// restoring re-chunks the article instead of trusting it.
type Document struct {
	Article   string                   `json:"article"`
	Title     string                   `json:"title"`
	Author    string                   `json:"author"`
	SourceURL string                   `json:"sourceUrl"`
	Mode      model.Mode               `json:"mode"`
	Snippets  []string                 `json:"snippets"`
	Liked     []model.Entry            `json:"liked"`
	Folders   map[string][]model.Entry `json:"folders"`
}

// Encode renders the document as indented JSON, suitable for a file a
// user may read or edit.
func Encode(doc Document) ([]byte, error) {
	if doc.Snippets == nil {
		doc.Snippets = []string{}
	}
	if doc.Liked == nil {
		doc.Liked = []model.Entry{}
	}
	if doc.Folders == nil {
		doc.Folders = map[string][]model.Entry{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses a session document. Any shape problem reports
// ErrInvalidFormat: not JSON, not an object, a mode outside the known
// set, or collections of the wrong type. Absent fields decode to empty
// values, so a minimal `{}` document is valid. Collection entries in
// the legacy bare-string form are normalized, same as the stores do.
func Decode(data []byte) (Document, error) {
	if !gjson.ValidBytes(data) {
		return Document{}, ErrInvalidFormat
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Document{}, ErrInvalidFormat
	}

	var raw struct {
		Article   string                     `json:"article"`
		Title     string                     `json:"title"`
		Author    string                     `json:"author"`
		SourceURL string                     `json:"sourceUrl"`
		Mode      model.Mode                 `json:"mode"`
		Snippets  []string                   `json:"snippets"`
		Liked     json.RawMessage            `json:"liked"`
		Folders   map[string]json.RawMessage `json:"folders"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, ErrInvalidFormat
	}

	if raw.Mode == "" {
		raw.Mode = model.ModeSentence
	}
	if !raw.Mode.IsValid() {
		return Document{}, ErrInvalidFormat
	}
	if liked := root.Get("liked"); liked.Exists() && !liked.IsArray() {
		return Document{}, ErrInvalidFormat
	}

	doc := Document{
		Article:   raw.Article,
		Title:     raw.Title,
		Author:    raw.Author,
		SourceURL: raw.SourceURL,
		Mode:      raw.Mode,
		Snippets:  raw.Snippets,
		Liked:     model.DecodeEntries(raw.Liked),
		Folders:   make(map[string][]model.Entry, len(raw.Folders)),
	}
	for name, entries := range raw.Folders {
		if !gjson.ParseBytes(entries).IsArray() {
			return Document{}, ErrInvalidFormat
		}
		doc.Folders[name] = model.DecodeEntries(entries)
	}

	if doc.Snippets == nil {
		doc.Snippets = []string{}
	}
	return doc, nil
}
