package collection_test

import (
	"encoding/json"
	"testing"

	"github.com/nikbrunner/snip/internal/collection"
	"github.com/nikbrunner/snip/internal/model"
	"github.com/nikbrunner/snip/internal/storage"
)

func newAdapter() *storage.Adapter {
	// Memory-only adapter: both backing tiers absent.
	return storage.NewAdapter(nil, nil, nil)
}

func entry(text string) model.Entry {
	return model.Entry{Text: text, Name: "Article", Handle: "@author", Mode: model.ModeSentence}
}

// seedRaw writes a raw JSON document under the given key, bypassing
// the typed stores, to simulate legacy persisted state.
func seedRaw(t *testing.T, a *storage.Adapter, key string, raw string) {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("bad seed %q: %v", raw, err)
	}
	a.Write(key, v)
}

func TestLiked_LikeIsIdempotent(t *testing.T) {
	liked := collection.NewLiked(newAdapter())

	liked.Like(entry("once"))
	liked.Like(entry("once"))

	if got := len(liked.All()); got != 1 {
		t.Errorf("expected 1 entry after double like, got %d", got)
	}
	if !liked.IsLiked("once") {
		t.Error("expected text to be liked")
	}
}

func TestLiked_PreservesInsertionOrder(t *testing.T) {
	liked := collection.NewLiked(newAdapter())

	liked.Like(entry("first"))
	liked.Like(entry("second"))
	liked.Like(entry("third"))

	all := liked.All()
	want := []string{"first", "second", "third"}
	for i, text := range want {
		if all[i].Text != text {
			t.Errorf("position %d: expected %q, got %q", i, text, all[i].Text)
		}
	}
}

func TestLiked_EmptyTextIsNoop(t *testing.T) {
	liked := collection.NewLiked(newAdapter())

	liked.Like(model.Entry{Text: ""})
	liked.Like(model.Entry{Text: "   "})

	if got := len(liked.All()); got != 0 {
		t.Errorf("expected empty collection, got %d entries", got)
	}
}

func TestLiked_UnlikeRemovesLegacyAndStructured(t *testing.T) {
	a := newAdapter()
	seedRaw(t, a, "likedTweets", `["dup",{"text":"dup","mode":"sentence"},{"text":"keep"}]`)

	liked := collection.NewLiked(a)
	liked.Unlike("dup")

	all := liked.All()
	if len(all) != 1 || all[0].Text != "keep" {
		t.Errorf("expected only keep to survive, got %+v", all)
	}
}

func TestLiked_UnlikeMissingIsNoop(t *testing.T) {
	liked := collection.NewLiked(newAdapter())
	liked.Like(entry("stay"))

	liked.Unlike("absent")

	if got := len(liked.All()); got != 1 {
		t.Errorf("expected 1 entry, got %d", got)
	}
}

func TestLiked_IsLikedAcceptsLegacyStrings(t *testing.T) {
	a := newAdapter()
	seedRaw(t, a, "likedTweets", `["legacy text"]`)

	liked := collection.NewLiked(a)
	if !liked.IsLiked("legacy text") {
		t.Error("legacy string entry should match by value")
	}
}

func TestFolders_AddCreatesImplicitly(t *testing.T) {
	folders := collection.NewFolders(newAdapter())

	folders.Add("Quotes", entry("a"))

	if got := len(folders.Get("Quotes")); got != 1 {
		t.Fatalf("expected 1 entry, got %d", got)
	}
	order := folders.Order()
	if len(order) != 1 || order[0] != "Quotes" {
		t.Errorf("expected order [Quotes], got %v", order)
	}
}

func TestFolders_AddIsIdempotentByText(t *testing.T) {
	folders := collection.NewFolders(newAdapter())

	folders.Add("Quotes", entry("same"))
	folders.Add("Quotes", entry("same"))

	if got := len(folders.Get("Quotes")); got != 1 {
		t.Errorf("expected 1 entry after duplicate add, got %d", got)
	}
}

func TestFolders_AddCaseInsensitiveCollision(t *testing.T) {
	folders := collection.NewFolders(newAdapter())

	folders.Add("Quotes", entry("a"))
	folders.Add("quotes", entry("b"))

	cols := folders.Collections()
	if len(cols) != 1 {
		t.Fatalf("expected 1 folder, got %d: %v", len(cols), folders.Order())
	}
	if got := len(cols["Quotes"]); got != 2 {
		t.Errorf("expected both entries under original casing, got %d", got)
	}
}

func TestFolders_AddRemoveRoundTrip(t *testing.T) {
	folders := collection.NewFolders(newAdapter())
	folders.Add("Notes", entry("keep"))

	folders.Add("Notes", entry("transient"))
	folders.Remove("Notes", "transient")

	got := folders.Get("Notes")
	if len(got) != 1 || got[0].Text != "keep" {
		t.Errorf("expected folder back to prior set, got %+v", got)
	}

	// Emptying a folder does not delete it.
	folders.Remove("Notes", "keep")
	if _, ok := folders.Collections()["Notes"]; !ok {
		t.Error("empty folder should persist as a container")
	}
}

func TestFolders_RenamePreservesOrderIndex(t *testing.T) {
	folders := collection.NewFolders(newAdapter())
	folders.Add("a", entry("1"))
	folders.Add("b", entry("2"))
	folders.Add("c", entry("3"))

	folders.Rename("b", "d", nil)

	order := folders.Order()
	want := []string{"a", "d", "c"}
	if len(order) != 3 {
		t.Fatalf("expected 3 names, got %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], order[i])
		}
	}

	if _, ok := folders.Collections()["b"]; ok {
		t.Error("old name should be gone")
	}
	if got := folders.Get("d"); len(got) != 1 || got[0].Text != "2" {
		t.Errorf("entries should move with the rename, got %+v", got)
	}
}

func TestFolders_RenameMergesIntoExisting(t *testing.T) {
	folders := collection.NewFolders(newAdapter())
	folders.Add("b", entry("from-b"))
	folders.Add("b", entry("shared"))
	folders.Add("d", entry("from-d"))
	folders.Add("d", entry("shared"))

	folders.Rename("b", "d", nil)

	cols := folders.Collections()
	if _, ok := cols["b"]; ok {
		t.Error("source folder should be deleted after merge")
	}

	texts := map[string]bool{}
	for _, e := range cols["d"] {
		if texts[e.Text] {
			t.Errorf("duplicate text %q after merge", e.Text)
		}
		texts[e.Text] = true
	}
	for _, want := range []string{"from-b", "from-d", "shared"} {
		if !texts[want] {
			t.Errorf("missing %q after merge", want)
		}
	}

	for _, name := range folders.Order() {
		if name == "b" {
			t.Error("order should no longer contain the source name")
		}
	}
}

func TestFolders_RenameMergeKeepsDestinationPosition(t *testing.T) {
	folders := collection.NewFolders(newAdapter())
	folders.Add("d", entry("1"))
	folders.Add("a", entry("2"))
	folders.Add("b", entry("3"))

	// order is d, a, b; merging b into d collapses to d's position.
	folders.Rename("b", "d", nil)

	order := folders.Order()
	want := []string{"d", "a"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("expected %v, got %v", want, order)
			break
		}
	}
}

func TestFolders_RenameUsesLiveOrder(t *testing.T) {
	folders := collection.NewFolders(newAdapter())
	folders.Add("a", entry("1"))
	folders.Add("b", entry("2"))
	folders.Add("c", entry("3"))

	// The displayed order diverged from the persisted one; the rename
	// must position the new name by what the user saw.
	folders.Rename("b", "z", []string{"c", "b", "a"})

	order := folders.Order()
	want := []string{"c", "z", "a"}
	if len(order) != 3 {
		t.Fatalf("expected 3 names, got %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("expected %v, got %v", want, order)
			break
		}
	}
}

func TestFolders_RenameNoops(t *testing.T) {
	folders := collection.NewFolders(newAdapter())
	folders.Add("a", entry("1"))

	folders.Rename("a", "", nil)
	folders.Rename("a", "a", nil)
	folders.Rename("missing", "x", nil)

	if _, ok := folders.Collections()["a"]; !ok {
		t.Error("folder should be untouched by no-op renames")
	}
	if _, ok := folders.Collections()["x"]; ok {
		t.Error("renaming a missing folder should not create anything")
	}
}

func TestFolders_Delete(t *testing.T) {
	folders := collection.NewFolders(newAdapter())
	folders.Add("a", entry("1"))
	folders.Add("b", entry("2"))

	folders.Delete("a")

	if _, ok := folders.Collections()["a"]; ok {
		t.Error("folder should be gone")
	}
	order := folders.Order()
	if len(order) != 1 || order[0] != "b" {
		t.Errorf("expected order [b], got %v", order)
	}
}

func TestFolders_ReconcileOrder(t *testing.T) {
	a := newAdapter()
	folders := collection.NewFolders(a)
	folders.Add("known", entry("1"))
	folders.Add("stray", entry("2"))

	// Corrupt the order: a deleted name, a duplicate, and a missing one.
	a.Write("folderOrder", []string{"ghost", "known", "known"})

	order := folders.ReconcileOrder()
	want := []string{"known", "stray"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("expected %v, got %v", want, order)
			break
		}
	}

	// The reconciled order was persisted.
	if got := folders.Order(); len(got) != 2 || got[0] != "known" {
		t.Errorf("expected persisted reconciled order, got %v", got)
	}
}

func TestFolders_LegacyStringEntries(t *testing.T) {
	a := newAdapter()
	seedRaw(t, a, "tweetFolders", `{"old":["legacy one","legacy two"]}`)

	folders := collection.NewFolders(a)
	got := folders.Get("old")
	if len(got) != 2 || got[0].Text != "legacy one" {
		t.Errorf("legacy folder entries should normalize, got %+v", got)
	}
}
