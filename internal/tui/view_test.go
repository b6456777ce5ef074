package tui

import (
	"strings"
	"testing"

	"github.com/nikbrunner/snip/internal/tui/layout"
)

func renderPlain(a App) string {
	return layout.StripANSI(a.View())
}

func TestViewNormalMode(t *testing.T) {
	ctrl := newTestController()
	ctrl.LikeSnippet("Second point.")
	ctrl.AddToFolder("quotes", "Third point.")
	a := newTestApp(ctrl)

	out := renderPlain(a)

	for _, want := range []string{
		"Notes on Attention",
		"Snippets",
		"3 segments",
		"Liked",
		"1 saved",
		"Folders",
		"quotes/ (1)",
		"First point.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestViewEmptyStates(t *testing.T) {
	ctrl := newTestController()
	a := newTestApp(ctrl)

	out := renderPlain(a)
	if !strings.Contains(out, "(nothing liked yet)") {
		t.Errorf("empty liked pane missing placeholder:\n%s", out)
	}
	if !strings.Contains(out, "(no folders)") {
		t.Errorf("empty folder pane missing placeholder:\n%s", out)
	}
}

func TestViewOpenFolder(t *testing.T) {
	ctrl := newTestController()
	ctrl.AddToFolder("reading", "A noted passage.")
	a := newTestApp(ctrl)

	a = press(a, keyTab, keyTab)
	a = press(a, typed("l")...)

	out := renderPlain(a)
	if !strings.Contains(out, "reading") {
		t.Errorf("open folder view missing folder name:\n%s", out)
	}
	if !strings.Contains(out, "A noted passage.") {
		t.Errorf("open folder view missing entry:\n%s", out)
	}
	if !strings.Contains(out, "1 entries") {
		t.Errorf("open folder view missing count:\n%s", out)
	}
}

func TestViewFlashAndUndoHint(t *testing.T) {
	ctrl := newTestController()
	a := newTestApp(ctrl)

	a = press(a, keySpace) // like
	if out := renderPlain(a); !strings.Contains(out, "Liked") {
		t.Errorf("flash missing after like:\n%s", out)
	}

	a = press(a, keySpace) // unlike arms undo
	out := renderPlain(a)
	if !strings.Contains(out, "u to undo") {
		t.Errorf("unlike flash missing:\n%s", out)
	}

	// A key that sets no flash falls back to the pending-undo reminder.
	a = press(a, typed("k")...)
	if out := renderPlain(a); !strings.Contains(out, "u: undo") {
		t.Errorf("undo reminder missing:\n%s", out)
	}
}

func TestViewFolderPromptModal(t *testing.T) {
	ctrl := newTestController()
	ctrl.AddToFolder("essays", "seed")
	a := newTestApp(ctrl)

	a = press(a, typed("f")...)
	out := renderPlain(a)
	if !strings.Contains(out, "File into folder") {
		t.Errorf("prompt modal missing title:\n%s", out)
	}
	if !strings.Contains(out, "essays") {
		t.Errorf("prompt modal missing suggestion:\n%s", out)
	}
}

func TestViewSearchModal(t *testing.T) {
	ctrl := newTestController()
	ctrl.LikeSnippet("Remarkable passage about focus.")
	a := newTestApp(ctrl)

	a = press(a, typed("s")...)
	a = press(a, typed("focus")...)

	out := renderPlain(a)
	if !strings.Contains(out, "Search") {
		t.Errorf("search modal missing title:\n%s", out)
	}
	if !strings.Contains(out, "Remarkable passage") {
		t.Errorf("search modal missing match:\n%s", out)
	}
}

func TestViewConfirmDeleteModal(t *testing.T) {
	ctrl := newTestController()
	ctrl.AddToFolder("doomed", "one")
	ctrl.AddToFolder("doomed", "two")
	a := newTestApp(ctrl)

	a = press(a, keyTab, keyTab)
	a = press(a, typed("d")...)

	out := renderPlain(a)
	if !strings.Contains(out, `"doomed"`) {
		t.Errorf("confirm modal missing folder name:\n%s", out)
	}
	if !strings.Contains(out, "2 entries") {
		t.Errorf("confirm modal missing entry count:\n%s", out)
	}
}

func TestViewHelpModal(t *testing.T) {
	a := newTestApp(newTestController())

	a = press(a, typed("?")...)
	out := renderPlain(a)
	for _, want := range []string{"Keys", "like/unlike snippet", "cycle chunking mode"} {
		if !strings.Contains(out, want) {
			t.Errorf("help modal missing %q:\n%s", want, out)
		}
	}
}

func TestViewDimensions(t *testing.T) {
	a := newTestApp(newTestController()).WithDimensions(100, 30)

	lines := strings.Split(renderPlain(a), "\n")
	if len(lines) != 30 {
		t.Errorf("view should fill the terminal height, got %d lines", len(lines))
	}
	for i, line := range lines {
		if n := layout.VisibleLength(line); n > 100 {
			t.Errorf("line %d overflows: %d cols", i, n)
		}
	}
}
