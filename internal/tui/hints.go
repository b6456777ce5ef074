package tui

import "strings"

// Hint is a single key/description pair shown in the help bar.
type Hint struct {
	Key  string
	Desc string
}

// getContextualHints returns the hints for the focused pane in normal mode.
func (a App) getContextualHints() []Hint {
	common := []Hint{
		{Key: "j/k", Desc: "move"},
		{Key: "tab", Desc: "pane"},
	}

	var specific []Hint
	switch a.focusedPane {
	case PaneSnippets:
		specific = []Hint{
			{Key: "space", Desc: "like"},
			{Key: "f", Desc: "file"},
			{Key: "m", Desc: "mode"},
			{Key: "y", Desc: "yank"},
		}
	case PaneLiked:
		specific = []Hint{
			{Key: "d", Desc: "unlike"},
			{Key: "f", Desc: "file"},
			{Key: "y", Desc: "yank"},
			{Key: "e", Desc: "export"},
		}
	case PaneFolders:
		if a.openFolder != "" {
			specific = []Hint{
				{Key: "d", Desc: "remove"},
				{Key: "y", Desc: "yank"},
				{Key: "h", Desc: "back"},
				{Key: "e", Desc: "export"},
			}
		} else {
			specific = []Hint{
				{Key: "l", Desc: "open"},
				{Key: "r", Desc: "rename"},
				{Key: "d", Desc: "delete"},
			}
		}
	}

	tail := []Hint{
		{Key: "s", Desc: "search"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}

	hints := make([]Hint, 0, len(common)+len(specific)+len(tail))
	hints = append(hints, common...)
	hints = append(hints, specific...)
	hints = append(hints, tail...)
	return hints
}

// renderHints joins hints with a separator for the bottom help bar.
func (a App) renderHints(hints []Hint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, a.renderHint(h))
	}
	return strings.Join(parts, "  ")
}

// renderHintsInline renders hints for use inside a modal footer.
func (a App) renderHintsInline(hints []Hint) string {
	return a.renderHints(hints)
}

func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
}
