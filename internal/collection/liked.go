// Package collection holds the persistent snippet collections: the
// liked list and the named folders with their display order.
package collection

import (
	"encoding/json"
	"strings"

	"github.com/nikbrunner/snip/internal/model"
	"github.com/nikbrunner/snip/internal/storage"
)

// Persisted document keys. The names are carried over from the
// original web version so existing exports and stores keep working.
const (
	keyLiked   = "likedTweets"
	keyFolders = "tweetFolders"
	keyOrder   = "folderOrder"
)

// Liked is the ordered collection of liked snippets, oldest first.
// Mutations persist through the storage adapter; re-rendering is the
// caller's job.
type Liked struct {
	store *storage.Adapter
}

// NewLiked creates a Liked store over the given adapter.
func NewLiked(store *storage.Adapter) *Liked {
	return &Liked{store: store}
}

// All returns the collection, normalized to structured entries.
func (l *Liked) All() []model.Entry {
	var raw json.RawMessage
	if !l.store.Read(keyLiked, &raw) {
		return []model.Entry{}
	}
	return model.DecodeEntries(raw)
}

// IsLiked reports whether some entry has the given text. Legacy
// string-form entries match by their value.
func (l *Liked) IsLiked(text string) bool {
	return model.ContainsText(l.All(), text)
}

// Like appends the entry to the collection. Liking text that is
// already present, or empty text, is a silent no-op.
func (l *Liked) Like(e model.Entry) {
	if strings.TrimSpace(e.Text) == "" {
		return
	}

	entries := l.All()
	if model.ContainsText(entries, e.Text) {
		return
	}

	l.store.Write(keyLiked, append(entries, e))
}

// Unlike removes every entry whose text matches. Removing text that
// is not present is a no-op, not an error.
func (l *Liked) Unlike(text string) {
	l.store.Write(keyLiked, model.FilterText(l.All(), text))
}

// Replace overwrites the whole collection. Used by session restore.
func (l *Liked) Replace(entries []model.Entry) {
	if entries == nil {
		entries = []model.Entry{}
	}
	l.store.Write(keyLiked, entries)
}
