package app_test

import (
	"testing"
	"time"

	"github.com/nikbrunner/snip/internal/app"
	"github.com/nikbrunner/snip/internal/model"
	"github.com/nikbrunner/snip/internal/session"
	"github.com/nikbrunner/snip/internal/storage"
)

func newController(t *testing.T) *app.Controller {
	t.Helper()
	return app.New(app.Options{
		Store:      storage.NewAdapter(nil, nil, nil),
		Mode:       model.ModeSentence,
		UndoWindow: time.Minute,
	})
}

func TestController_SetArticleChunks(t *testing.T) {
	c := newController(t)

	c.SetArticle("One. Two. Three.", "Essay", "@writer", "https://example.com")

	s := c.State()
	if len(s.Snippets) != 3 {
		t.Fatalf("expected 3 snippets, got %v", s.Snippets)
	}
	if s.Title != "Essay" || s.Mode != model.ModeSentence {
		t.Errorf("state = %+v", s)
	}
}

func TestController_SetModeRechunks(t *testing.T) {
	c := newController(t)
	c.SetArticle("First para.\n\nSecond para.", "", "", "")

	c.SetMode(model.ModeParagraph)

	s := c.State()
	if s.Mode != model.ModeParagraph {
		t.Errorf("mode = %q", s.Mode)
	}
	if len(s.Snippets) != 2 {
		t.Errorf("expected 2 paragraph snippets, got %v", s.Snippets)
	}

	// Invalid modes leave everything alone.
	c.SetMode(model.Mode("haiku"))
	if c.State().Mode != model.ModeParagraph {
		t.Error("invalid mode should be ignored")
	}
}

func TestController_LikeCarriesMetadata(t *testing.T) {
	c := newController(t)
	c.SetArticle("Just one sentence.", "Essay", "@writer", "https://example.com/a")

	c.LikeSnippet("Just one sentence.")

	all := c.Liked().All()
	if len(all) != 1 {
		t.Fatalf("expected 1 liked entry, got %d", len(all))
	}
	e := all[0]
	if e.Name != "Essay" || e.Handle != "@writer" || e.URL != "https://example.com/a" {
		t.Errorf("entry metadata = %+v", e)
	}
	if e.Mode != model.ModeSentence {
		t.Errorf("entry mode = %q", e.Mode)
	}
}

func TestController_UnlikeThenUndo(t *testing.T) {
	c := newController(t)
	c.SetArticle("Keep me.", "Essay", "@writer", "")
	c.LikeSnippet("Keep me.")

	c.Unlike("Keep me.")
	if c.Liked().IsLiked("Keep me.") {
		t.Fatal("entry should be removed")
	}
	if !c.UndoPending() {
		t.Fatal("removal should arm the undo buffer")
	}

	if !c.Undo() {
		t.Fatal("undo should restore")
	}
	all := c.Liked().All()
	if len(all) != 1 || all[0].Name != "Essay" {
		t.Errorf("restored entry should keep its metadata, got %+v", all)
	}
}

func TestController_UnlikeMissingDoesNotArmUndo(t *testing.T) {
	c := newController(t)

	c.Unlike("never existed")

	if c.UndoPending() {
		t.Error("no-op removal should not arm the undo buffer")
	}
}

func TestController_FolderRemoveThenUndo(t *testing.T) {
	c := newController(t)
	c.SetArticle("Filed away.", "Essay", "", "")
	c.AddToFolder("Quotes", "Filed away.")

	c.RemoveFromFolder("Quotes", "Filed away.")
	if len(c.Folders().Get("Quotes")) != 0 {
		t.Fatal("entry should be removed from folder")
	}

	if !c.Undo() {
		t.Fatal("undo should restore")
	}
	got := c.Folders().Get("Quotes")
	if len(got) != 1 || got[0].Text != "Filed away." {
		t.Errorf("entry should return to its folder, got %+v", got)
	}
}

func TestController_UndoAfterExpiryIsNoop(t *testing.T) {
	c := app.New(app.Options{
		Store:      storage.NewAdapter(nil, nil, nil),
		UndoWindow: 20 * time.Millisecond,
	})
	c.SetArticle("Fleeting.", "", "", "")
	c.LikeSnippet("Fleeting.")
	c.Unlike("Fleeting.")

	time.Sleep(60 * time.Millisecond)

	if c.Undo() {
		t.Error("undo after the window should restore nothing")
	}
	if c.Liked().IsLiked("Fleeting.") {
		t.Error("expired removal must stay removed")
	}
}

func TestController_SessionRoundTrip(t *testing.T) {
	c := newController(t)
	c.SetArticle("One. Two.", "Essay", "@writer", "https://example.com")
	c.LikeSnippet("One.")
	c.AddToFolder("Openers", "One.")

	doc := c.Snapshot()
	data, err := session.Encode(doc)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := session.Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	// Restore into a fresh controller over empty stores.
	fresh := newController(t)
	fresh.RestoreSession(decoded)

	s := fresh.State()
	if s.Article != "One. Two." || s.Title != "Essay" {
		t.Errorf("state fields not restored: %+v", s)
	}
	// Same article and mode reproduce the same snippet sequence.
	if len(s.Snippets) != 2 || s.Snippets[0] != "One." {
		t.Errorf("snippets should be re-chunked: %v", s.Snippets)
	}

	liked := fresh.Liked().All()
	if len(liked) != 1 || liked[0].Text != "One." {
		t.Errorf("liked not restored: %+v", liked)
	}
	if got := fresh.Folders().Get("Openers"); len(got) != 1 {
		t.Errorf("folders not restored: %+v", got)
	}
}

func TestController_RestoreOverwritesExistingState(t *testing.T) {
	c := newController(t)
	c.SetArticle("Old text.", "Old", "", "")
	c.LikeSnippet("Old text.")
	c.AddToFolder("Stale", "Old text.")

	c.RestoreSession(session.Document{
		Article: "New text.",
		Mode:    model.ModeSentence,
		Liked:   []model.Entry{{Text: "replacement"}},
		Folders: map[string][]model.Entry{"Fresh": {{Text: "replacement"}}},
	})

	if c.Liked().IsLiked("Old text.") {
		t.Error("restore must replace, not merge, the liked collection")
	}
	if len(c.Folders().Get("Stale")) != 0 {
		t.Error("restore must replace, not merge, the folders")
	}
	if len(c.Folders().Get("Fresh")) != 1 {
		t.Error("restored folder missing")
	}
	if c.UndoPending() {
		t.Error("restore should clear the undo buffer")
	}
}
