package model

// Mode identifies the chunking strategy that produced a snippet.
type Mode string

const (
	ModeSentence  Mode = "sentence"
	ModeParagraph Mode = "paragraph"
	ModeFixed     Mode = "fixed-length"
)

// IsValid checks if the Mode is one of the known chunking modes.
func (m Mode) IsValid() bool {
	return m == ModeSentence || m == ModeParagraph || m == ModeFixed
}

// Entry represents one saved snippet with its attribution metadata.
// Text is the identity key: within a single collection no two entries
// share the same Text.
type Entry struct {
	Text   string `json:"text"`
	Name   string `json:"name"`   // display title of the source article
	Handle string `json:"handle"` // author/attribution string
	URL    string `json:"url"`    // source locator
	Mode   Mode   `json:"mode"`
}

// ContainsText reports whether any entry in the collection has the given text.
func ContainsText(entries []Entry, text string) bool {
	for _, e := range entries {
		if e.Text == text {
			return true
		}
	}
	return false
}

// FindText returns the first entry with the given text.
func FindText(entries []Entry, text string) (Entry, bool) {
	for _, e := range entries {
		if e.Text == text {
			return e, true
		}
	}
	return Entry{}, false
}

// FilterText returns the collection without entries matching the given text.
func FilterText(entries []Entry, text string) []Entry {
	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Text != text {
			result = append(result, e)
		}
	}
	return result
}
