package model

import "github.com/tidwall/gjson"

// DecodeEntries parses a stored JSON array of entries. Older versions
// persisted liked snippets as bare strings; both representations are
// accepted here and normalized to the structured form, so the rest of
// the system only ever handles Entry values. A bare string's value is
// its text. Anything unparsable decodes to an empty collection.
func DecodeEntries(data []byte) []Entry {
	entries := []Entry{}
	if !gjson.ValidBytes(data) {
		return entries
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return entries
	}

	parsed.ForEach(func(_, el gjson.Result) bool {
		switch {
		case el.Type == gjson.String:
			if el.String() != "" {
				entries = append(entries, Entry{Text: el.String()})
			}
		case el.IsObject():
			e := Entry{
				Text:   el.Get("text").String(),
				Name:   el.Get("name").String(),
				Handle: el.Get("handle").String(),
				URL:    el.Get("url").String(),
				Mode:   Mode(el.Get("mode").String()),
			}
			if e.Text != "" {
				entries = append(entries, e)
			}
		}
		return true
	})

	return entries
}
