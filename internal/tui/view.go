package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/snip/internal/tui/layout"
)

// renderView creates the complete three-column view.
func (a App) renderView() string {
	if a.mode != ModeNormal {
		return a.renderModal()
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	paneWidth := layout.CalculatePaneWidth(a.width, a.layoutConfig.Pane)

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.renderSnippetPane(paneWidth, paneHeight),
		a.renderLikedPane(paneWidth, paneHeight),
		a.renderFolderPane(paneWidth, paneHeight),
	)

	header := a.renderHeader()
	helpBar := a.renderHelpBar()

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, columns, helpBar),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the article title and active mode above the columns.
func (a App) renderHeader() string {
	state := a.ctrl.State()

	title := state.Title
	if title == "" {
		title = "snip"
	}
	line := fmt.Sprintf("%s · %s", title, state.Mode)
	if state.Author != "" {
		line = fmt.Sprintf("%s · %s · %s", title, state.Author, state.Mode)
	}

	line, _ = layout.TruncateText(line, a.width-4, a.layoutConfig.Text)
	return a.styles.Header.Render(line)
}

// renderSnippetPane renders the chunked article segments.
func (a App) renderSnippetPane(width, height int) string {
	var content strings.Builder

	snippets := a.ctrl.State().Snippets
	content.WriteString(a.styles.Title.Render("Snippets") + "\n")
	content.WriteString(a.styles.Meta.Render(fmt.Sprintf("%d segments", len(snippets))) + "\n")

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	visibleHeight := layout.CalculateVisibleHeight(height, a.layoutConfig.Pane.HeaderLines)

	if len(snippets) == 0 {
		content.WriteString(a.styles.Empty.Render("(no article loaded)"))
	} else {
		offset := layout.CalculateViewportOffset(a.snippetCursor, len(snippets), visibleHeight)
		for i := offset; i < len(snippets) && i < offset+visibleHeight; i++ {
			selected := a.focusedPane == PaneSnippets && i == a.snippetCursor
			liked := a.ctrl.Liked().IsLiked(snippets[i])
			content.WriteString(a.renderTextItem(snippets[i], selected, liked, itemWidth) + "\n")
		}
	}

	return a.paneStyle(PaneSnippets).
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// renderLikedPane renders the liked collection.
func (a App) renderLikedPane(width, height int) string {
	var content strings.Builder

	liked := a.ctrl.Liked().All()
	content.WriteString(a.styles.Title.Render("Liked") + "\n")
	content.WriteString(a.styles.Meta.Render(fmt.Sprintf("%d saved", len(liked))) + "\n")

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	visibleHeight := layout.CalculateVisibleHeight(height, a.layoutConfig.Pane.HeaderLines)

	if len(liked) == 0 {
		content.WriteString(a.styles.Empty.Render("(nothing liked yet)"))
	} else {
		offset := layout.CalculateViewportOffset(a.likedCursor, len(liked), visibleHeight)
		for i := offset; i < len(liked) && i < offset+visibleHeight; i++ {
			selected := a.focusedPane == PaneLiked && i == a.likedCursor
			content.WriteString(a.renderTextItem(liked[i].Text, selected, false, itemWidth) + "\n")
		}
	}

	return a.paneStyle(PaneLiked).
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// renderFolderPane renders the folder list, or the open folder's entries.
func (a App) renderFolderPane(width, height int) string {
	var content strings.Builder

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	visibleHeight := layout.CalculateVisibleHeight(height, a.layoutConfig.Pane.HeaderLines)

	if a.openFolder != "" {
		entries := a.ctrl.Folders().Get(a.openFolder)
		content.WriteString(a.styles.Title.Render(a.openFolder) + "\n")
		content.WriteString(a.styles.Meta.Render(fmt.Sprintf("%d entries · h: back", len(entries))) + "\n")

		if len(entries) == 0 {
			content.WriteString(a.styles.Empty.Render("(empty folder)"))
		} else {
			offset := layout.CalculateViewportOffset(a.entryCursor, len(entries), visibleHeight)
			for i := offset; i < len(entries) && i < offset+visibleHeight; i++ {
				selected := a.focusedPane == PaneFolders && i == a.entryCursor
				content.WriteString(a.renderTextItem(entries[i].Text, selected, false, itemWidth) + "\n")
			}
		}
	} else {
		content.WriteString(a.styles.Title.Render("Folders") + "\n")
		content.WriteString(a.styles.Meta.Render(fmt.Sprintf("%d folders", len(a.folderOrder))) + "\n")

		if len(a.folderOrder) == 0 {
			content.WriteString(a.styles.Empty.Render("(no folders)"))
		} else {
			offset := layout.CalculateViewportOffset(a.folderCursor, len(a.folderOrder), visibleHeight)
			for i := offset; i < len(a.folderOrder) && i < offset+visibleHeight; i++ {
				name := a.folderOrder[i]
				count := len(a.ctrl.Folders().Get(name))
				line, _ := layout.TruncateWithPrefixSuffix(name, itemWidth,
					"", fmt.Sprintf("/ (%d)", count), a.layoutConfig.Text)

				selected := a.focusedPane == PaneFolders && i == a.folderCursor
				if selected {
					content.WriteString(a.styles.ItemSelected.Render(padRight(line, itemWidth)) + "\n")
				} else {
					content.WriteString(a.styles.Item.Render(line) + "\n")
				}
			}
		}
	}

	return a.paneStyle(PaneFolders).
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// renderTextItem renders one snippet line, truncated to the pane.
func (a App) renderTextItem(text string, selected, liked bool, maxWidth int) string {
	line, _ := layout.TruncateText(layout.FirstLine(text), maxWidth, a.layoutConfig.Text)

	if selected {
		return a.styles.ItemSelected.Render(padRight(line, maxWidth))
	}
	if liked {
		return a.styles.ItemLiked.Render(line)
	}
	return a.styles.Item.Render(line)
}

func (a App) paneStyle(p Pane) lipgloss.Style {
	if a.focusedPane == p {
		return a.styles.PaneActive
	}
	return a.styles.Pane
}

// renderHelpBar renders contextual hints, with the flash message (or
// undo reminder) above them.
func (a App) renderHelpBar() string {
	status := a.flash
	if status == "" && a.ctrl.UndoPending() {
		status = "u: undo"
	}

	hints := a.renderHints(a.getContextualHints())
	if status != "" {
		return a.styles.Flash.Render(status) + "\n" + a.styles.Help.Render(hints)
	}
	return a.styles.Help.Render(hints)
}

// renderModal renders the current modal dialog.
func (a App) renderModal() string {
	var body strings.Builder

	// Industrial style: thick borders, teal accent
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	switch a.mode {
	case ModeFolderPrompt:
		body.WriteString(a.styles.Title.Render("File into folder") + "\n\n")
		body.WriteString(a.prompt.Input.View() + "\n")
		body.WriteString(a.renderSuggestions())
		body.WriteString("\n" + a.renderHintsInline([]Hint{
			{Key: "↑/↓", Desc: "pick"},
			{Key: "Enter", Desc: "file"},
			{Key: "Esc", Desc: "cancel"},
		}))

	case ModeRenameFolder:
		body.WriteString(a.styles.Title.Render("Rename "+a.rename.Target) + "\n\n")
		body.WriteString(a.rename.Input.View() + "\n")
		body.WriteString("\n" + a.renderHintsInline([]Hint{
			{Key: "Enter", Desc: "rename"},
			{Key: "Esc", Desc: "cancel"},
		}))

	case ModeConfirmDelete:
		body.WriteString(a.styles.Title.Render("Delete folder") + "\n\n")
		body.WriteString(fmt.Sprintf("Delete %q and its %d entries?\n",
			a.deleteTarget, len(a.ctrl.Folders().Get(a.deleteTarget))))
		body.WriteString("\n" + a.renderHintsInline([]Hint{
			{Key: "y", Desc: "delete"},
			{Key: "n", Desc: "keep"},
		}))

	case ModeSearch:
		body.WriteString(a.styles.Title.Render("Search") + "\n\n")
		body.WriteString(a.searchS.Input.View() + "\n\n")
		body.WriteString(a.renderSearchResults(modalWidth))
		body.WriteString("\n" + a.renderHintsInline([]Hint{
			{Key: "↑/↓", Desc: "move"},
			{Key: "Enter", Desc: "copy"},
			{Key: "Esc", Desc: "cancel"},
		}))

	case ModeHelp:
		body.WriteString(a.renderHelpOverlay())
	}

	modal := modalStyle.Render(body.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

// renderSuggestions renders the folder picker under the filing prompt.
func (a App) renderSuggestions() string {
	if len(a.prompt.Suggestions) == 0 {
		return a.styles.Empty.Render("(new folder)") + "\n"
	}

	var b strings.Builder
	maxVisible := a.layoutConfig.Modal.SuggestionsVisible
	sel := a.prompt.SuggestIdx
	if sel < 0 {
		sel = 0
	}
	start, end := layout.CalculateVisibleListItems(maxVisible, sel, len(a.prompt.Suggestions))

	for i := start; i < end; i++ {
		name := a.prompt.Suggestions[i]
		if i == a.prompt.SuggestIdx {
			b.WriteString(a.styles.ItemSelected.Render(name) + "\n")
		} else {
			b.WriteString(a.styles.Item.Render(name) + "\n")
		}
	}
	return b.String()
}

// renderSearchResults renders the match list in the search overlay.
func (a App) renderSearchResults(modalWidth int) string {
	if len(a.searchS.Results) == 0 {
		return a.styles.Empty.Render("(no matches)") + "\n"
	}

	var b strings.Builder
	maxVisible := a.layoutConfig.Modal.SearchResultsVisible
	start, end := layout.CalculateVisibleListItems(maxVisible, a.searchS.Cursor, len(a.searchS.Results))

	for i := start; i < end; i++ {
		r := a.searchS.Results[i]
		origin := "Liked"
		if r.Folder != "" {
			origin = r.Folder
		}

		line, _ := layout.TruncateText(layout.FirstLine(r.Entry.Text), modalWidth-8, a.layoutConfig.Text)
		if i == a.searchS.Cursor {
			b.WriteString(a.styles.ItemSelected.Render(line) + "\n")
		} else {
			b.WriteString(a.styles.Item.Render(line) + "\n")
		}
		b.WriteString("   " + a.styles.Meta.Render(origin) + "\n")
	}
	return b.String()
}

// renderHelpOverlay renders the full keybind reference.
func (a App) renderHelpOverlay() string {
	rows := []struct{ key, desc string }{
		{"j/k", "move up/down"},
		{"gg/G", "go to top/bottom"},
		{"h/l", "switch pane, open/close folder"},
		{"tab", "next pane"},
		{"space", "like/unlike snippet"},
		{"d", "remove entry / delete folder"},
		{"u", "undo last removal"},
		{"f", "file into folder"},
		{"r", "rename folder"},
		{"m", "cycle chunking mode"},
		{"y", "copy to clipboard"},
		{"s", "search saved snippets"},
		{"e/E", "export text/json"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Keys") + "\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			a.styles.HintKey.Render(padRight(r.key, 7)),
			a.styles.HintDesc.Render(r.desc)))
	}
	b.WriteString("\n" + a.renderHintsInline([]Hint{{Key: "?/q/Esc", Desc: "close"}}))
	return b.String()
}

func padRight(s string, width int) string {
	for layout.VisibleLength(s) < width {
		s += " "
	}
	return s
}
