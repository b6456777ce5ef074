package collection

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/nikbrunner/snip/internal/model"
	"github.com/nikbrunner/snip/internal/storage"
)

// Folders maps folder names to ordered snippet collections, with a
// separate persisted name list that fixes the display order. Folder
// keys are case-sensitive, but creating a folder checks for a
// case-insensitive collision and reuses the existing name.
type Folders struct {
	store *storage.Adapter
}

// NewFolders creates a Folders store over the given adapter.
func NewFolders(store *storage.Adapter) *Folders {
	return &Folders{store: store}
}

// Collections returns every folder with its entries normalized to the
// structured form.
func (f *Folders) Collections() map[string][]model.Entry {
	var raw map[string]json.RawMessage
	if !f.store.Read(keyFolders, &raw) {
		return map[string][]model.Entry{}
	}

	out := make(map[string][]model.Entry, len(raw))
	for name, data := range raw {
		out[name] = model.DecodeEntries(data)
	}
	return out
}

// Get returns one folder's entries, or an empty slice for an unknown name.
func (f *Folders) Get(name string) []model.Entry {
	entries, ok := f.Collections()[name]
	if !ok {
		return []model.Entry{}
	}
	return entries
}

// Order returns the persisted display order of folder names.
func (f *Folders) Order() []string {
	var order []string
	if !f.store.Read(keyOrder, &order) || order == nil {
		return []string{}
	}
	return order
}

// Add puts the entry into the named folder, creating the folder on
// first use. A new folder name that collides case-insensitively with
// an existing one resolves to the existing folder. The entry is
// skipped when the folder already holds its text. Empty names and
// empty texts are no-ops.
func (f *Folders) Add(name string, e model.Entry) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(e.Text) == "" {
		return
	}

	cols := f.Collections()

	key := name
	for existing := range cols {
		if strings.EqualFold(existing, name) {
			key = existing
			break
		}
	}

	if _, ok := cols[key]; !ok {
		cols[key] = []model.Entry{}
		f.store.Write(keyOrder, append(f.Order(), key))
	}

	if !model.ContainsText(cols[key], e.Text) {
		cols[key] = append(cols[key], e)
	}

	f.store.Write(keyFolders, cols)
}

// Rename moves or merges the folder oldName into newName.
//
// When newName already exists (case-sensitive), oldName's entries are
// appended to its collection, skipping texts already present, and
// oldName is deleted; the destination keeps its own position in the
// order. When newName does not exist, the collection moves wholesale
// and newName takes oldName's position in the display order.
//
// liveOrder is the order currently shown to the user. It wins over
// the persisted order when locating oldName's position, since the
// persisted order may be stale relative to what is on screen; pass
// nil when no live order is observable. An empty newName or a rename
// to the same name returns without touching anything.
func (f *Folders) Rename(oldName, newName string, liveOrder []string) {
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == oldName {
		return
	}

	cols := f.Collections()
	src, ok := cols[oldName]
	if !ok {
		return
	}

	_, destExists := cols[newName]
	if destExists {
		merged := cols[newName]
		for _, e := range src {
			if !model.ContainsText(merged, e.Text) {
				merged = append(merged, e)
			}
		}
		cols[newName] = merged
	} else {
		cols[newName] = src
	}
	delete(cols, oldName)

	order := liveOrder
	if order == nil {
		order = f.Order()
	}

	oldIdx := -1
	filtered := make([]string, 0, len(order))
	for i, name := range order {
		if name == oldName {
			if oldIdx == -1 {
				oldIdx = i
			}
			continue
		}
		filtered = append(filtered, name)
	}

	if !destExists {
		if oldIdx >= 0 && oldIdx <= len(filtered) {
			filtered = append(filtered[:oldIdx], append([]string{newName}, filtered[oldIdx:]...)...)
		} else {
			filtered = append(filtered, newName)
		}
	}

	f.store.Write(keyFolders, cols)
	f.store.Write(keyOrder, filtered)
}

// Remove filters the entry with the given text out of the folder. A
// folder left empty is kept as an empty container, not deleted.
func (f *Folders) Remove(name, text string) {
	cols := f.Collections()
	entries, ok := cols[name]
	if !ok {
		return
	}

	cols[name] = model.FilterText(entries, text)
	f.store.Write(keyFolders, cols)
}

// Delete removes the folder and its entries entirely, pruning it from
// the display order.
func (f *Folders) Delete(name string) {
	cols := f.Collections()
	if _, ok := cols[name]; !ok {
		return
	}
	delete(cols, name)

	order := make([]string, 0, len(f.Order()))
	for _, n := range f.Order() {
		if n != name {
			order = append(order, n)
		}
	}

	f.store.Write(keyFolders, cols)
	f.store.Write(keyOrder, order)
}

// ReconcileOrder brings the display order back in sync with the folder
// set: names without a folder are pruned, folders missing from the
// order are appended (alphabetically, for a stable result), and
// duplicates collapse to their first position. The reconciled order is
// persisted when it changed, and returned either way. Run before any
// render of the folder listing.
func (f *Folders) ReconcileOrder() []string {
	cols := f.Collections()
	order := f.Order()

	seen := make(map[string]bool, len(order))
	reconciled := make([]string, 0, len(cols))
	for _, name := range order {
		if _, ok := cols[name]; !ok || seen[name] {
			continue
		}
		seen[name] = true
		reconciled = append(reconciled, name)
	}

	missing := make([]string, 0)
	for name := range cols {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	reconciled = append(reconciled, missing...)

	if !equalStrings(order, reconciled) {
		f.store.Write(keyOrder, reconciled)
	}
	return reconciled
}

// Replace overwrites every folder and rebuilds the display order from
// the replaced set. Used by session restore.
func (f *Folders) Replace(cols map[string][]model.Entry) {
	if cols == nil {
		cols = map[string][]model.Entry{}
	}
	f.store.Write(keyFolders, cols)
	f.ReconcileOrder()
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
