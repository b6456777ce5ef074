// Package tui is the interactive snippet curation interface: three
// columns (article snippets, liked, folders) with vim-style movement.
package tui

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/snip/internal/app"
	"github.com/nikbrunner/snip/internal/export"
	"github.com/nikbrunner/snip/internal/model"
	"github.com/nikbrunner/snip/internal/search"
	"github.com/nikbrunner/snip/internal/tui/layout"
)

// Pane identifies one of the three columns.
type Pane int

const (
	PaneSnippets Pane = iota
	PaneLiked
	PaneFolders
)

// UIMode is the current input mode. Everything outside ModeNormal is a
// modal overlay.
type UIMode int

const (
	ModeNormal UIMode = iota
	ModeFolderPrompt
	ModeRenameFolder
	ModeConfirmDelete
	ModeSearch
	ModeHelp
)

// App is the main bubbletea model.
type App struct {
	ctrl         *app.Controller
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	mode        UIMode
	focusedPane Pane

	// Per-pane cursors
	snippetCursor int
	likedCursor   int
	folderCursor  int
	entryCursor   int

	// openFolder is the folder whose entries fill the folder pane;
	// empty means the pane shows the folder list.
	openFolder string

	// folderOrder is the order currently on screen. Renames position
	// by this, not by whatever is persisted.
	folderOrder []string

	prompt  FolderPromptState
	rename  RenameState
	searchS SearchState

	deleteTarget string // folder pending delete confirmation
	flash        string // one-shot status message

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Controller   *app.Controller
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	cfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		cfg = *params.LayoutConfig
	}

	a := App{
		ctrl:         params.Controller,
		keys:         keys,
		styles:       styles,
		layoutConfig: cfg,
		prompt:       NewFolderPromptState(cfg),
		rename:       NewRenameState(cfg),
		searchS:      NewSearchState(cfg),
		width:        80,
		height:       24,
	}
	a.refreshFolderOrder()
	return a
}

// WithDimensions returns a copy with fixed dimensions, for tests.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// refreshFolderOrder reconciles and reloads the displayed folder order.
func (a *App) refreshFolderOrder() {
	a.folderOrder = a.ctrl.Folders().ReconcileOrder()
	if a.folderCursor >= len(a.folderOrder) && a.folderCursor > 0 {
		a.folderCursor = len(a.folderOrder) - 1
	}
}

// FocusedPane returns the pane that receives navigation keys.
func (a App) FocusedPane() Pane { return a.focusedPane }

// Mode returns the current UI mode.
func (a App) Mode() UIMode { return a.mode }

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeFolderPrompt:
			return a.updateFolderPrompt(msg)
		case ModeRenameFolder:
			return a.updateRename(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		case ModeSearch:
			return a.updateSearch(msg)
		case ModeHelp:
			return a.updateHelp(msg)
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.flash = ""

	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.setCursor(0)
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)

	case key.Matches(msg, a.keys.Bottom):
		a.setCursor(a.listLen() - 1)

	case key.Matches(msg, a.keys.NextPane):
		a.focusedPane = (a.focusedPane + 1) % 3

	case key.Matches(msg, a.keys.Right):
		if a.focusedPane == PaneFolders && a.openFolder == "" {
			if name, ok := a.selectedFolder(); ok {
				a.openFolder = name
				a.entryCursor = 0
			}
		} else if a.focusedPane < PaneFolders {
			a.focusedPane++
		}

	case key.Matches(msg, a.keys.Left):
		if a.focusedPane == PaneFolders && a.openFolder != "" {
			a.openFolder = ""
		} else if a.focusedPane > PaneSnippets {
			a.focusedPane--
		}

	case key.Matches(msg, a.keys.Like):
		if text, ok := a.selectedText(); ok && a.focusedPane == PaneSnippets {
			if a.ctrl.Liked().IsLiked(text) {
				a.ctrl.Unlike(text)
				a.flash = "Unliked (u to undo)"
			} else {
				a.ctrl.LikeSnippet(text)
				a.flash = "Liked"
			}
		}

	case key.Matches(msg, a.keys.Remove):
		a.removeSelected()

	case key.Matches(msg, a.keys.Undo):
		if a.ctrl.Undo() {
			a.refreshFolderOrder()
			a.flash = "Restored"
		}

	case key.Matches(msg, a.keys.File):
		if text, ok := a.selectedText(); ok {
			a.prompt.Reset()
			a.prompt.TargetText = text
			a.prompt.Refresh(a.folderOrder)
			a.prompt.Input.Focus()
			a.mode = ModeFolderPrompt
		}

	case key.Matches(msg, a.keys.Rename):
		if a.focusedPane == PaneFolders && a.openFolder == "" {
			if name, ok := a.selectedFolder(); ok {
				a.rename.Reset()
				a.rename.Target = name
				a.rename.Input.SetValue(name)
				a.rename.Input.Focus()
				a.mode = ModeRenameFolder
			}
		}

	case key.Matches(msg, a.keys.CycleMode):
		a.ctrl.SetMode(nextMode(a.ctrl.State().Mode))
		a.snippetCursor = 0
		a.flash = fmt.Sprintf("Mode: %s", a.ctrl.State().Mode)

	case key.Matches(msg, a.keys.Yank):
		if text, ok := a.selectedText(); ok {
			if err := clipboard.WriteAll(text); err != nil {
				a.flash = "Clipboard unavailable"
			} else {
				a.flash = "Copied to clipboard"
			}
		}

	case key.Matches(msg, a.keys.Search):
		a.searchS.Reset()
		a.searchS.Input.Focus()
		a.mode = ModeSearch

	case key.Matches(msg, a.keys.Export):
		a.exportCurrent(export.KindText)

	case key.Matches(msg, a.keys.ExportJSON):
		a.exportCurrent(export.KindJSON)

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

// removeSelected removes the item under the cursor: a liked entry, a
// folder entry, or (after confirmation) a whole folder.
func (a *App) removeSelected() {
	switch a.focusedPane {
	case PaneLiked:
		if text, ok := a.selectedText(); ok {
			a.ctrl.Unlike(text)
			a.clampCursors()
			a.flash = "Removed (u to undo)"
		}
	case PaneFolders:
		if a.openFolder != "" {
			if text, ok := a.selectedText(); ok {
				a.ctrl.RemoveFromFolder(a.openFolder, text)
				a.clampCursors()
				a.flash = "Removed (u to undo)"
			}
		} else if name, ok := a.selectedFolder(); ok {
			a.deleteTarget = name
			a.mode = ModeConfirmDelete
		}
	}
}

// exportCurrent writes the liked collection, or the open folder, to
// the default export path.
func (a *App) exportCurrent(kind export.Kind) {
	var (
		content string
		err     error
	)
	if a.focusedPane == PaneFolders && a.openFolder != "" {
		content, err = a.ctrl.ExportFolder(a.openFolder, kind)
	} else {
		content, err = a.ctrl.ExportLiked(kind)
	}
	if err != nil {
		a.flash = "Export failed"
		return
	}

	path, err := export.DefaultPath(kind)
	if err == nil {
		err = os.WriteFile(path, []byte(content), 0644)
	}
	if err != nil {
		a.flash = "Export failed"
		return
	}
	a.flash = "Exported to " + path
}

func (a App) updateFolderPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		name := a.prompt.ChosenName()
		if name != "" {
			a.ctrl.AddToFolder(name, a.prompt.TargetText)
			a.refreshFolderOrder()
			a.flash = "Filed into " + name
		}
		a.mode = ModeNormal
		return a, nil

	case tea.KeyDown, tea.KeyTab:
		if a.prompt.SuggestIdx < len(a.prompt.Suggestions)-1 {
			a.prompt.SuggestIdx++
		}
		return a, nil

	case tea.KeyUp:
		if a.prompt.SuggestIdx >= 0 {
			a.prompt.SuggestIdx--
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.prompt.Input, cmd = a.prompt.Input.Update(msg)
	a.prompt.SuggestIdx = -1
	a.prompt.Refresh(a.folderOrder)
	return a, cmd
}

func (a App) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		newName := a.rename.Input.Value()
		a.ctrl.Folders().Rename(a.rename.Target, newName, a.folderOrder)
		a.refreshFolderOrder()
		a.mode = ModeNormal
		return a, nil
	}

	var cmd tea.Cmd
	a.rename.Input, cmd = a.rename.Input.Update(msg)
	return a, cmd
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		a.ctrl.Folders().Delete(a.deleteTarget)
		a.refreshFolderOrder()
		a.flash = "Deleted " + a.deleteTarget
		a.deleteTarget = ""
		a.mode = ModeNormal
	case "n", "esc", "q":
		a.deleteTarget = ""
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		if a.searchS.Cursor < len(a.searchS.Results) {
			entry := a.searchS.Results[a.searchS.Cursor].Entry
			if err := clipboard.WriteAll(entry.Text); err != nil {
				a.flash = "Clipboard unavailable"
			} else {
				a.flash = "Copied to clipboard"
			}
		}
		a.mode = ModeNormal
		return a, nil

	case tea.KeyDown:
		if a.searchS.Cursor < len(a.searchS.Results)-1 {
			a.searchS.Cursor++
		}
		return a, nil

	case tea.KeyUp:
		if a.searchS.Cursor > 0 {
			a.searchS.Cursor--
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.searchS.Input, cmd = a.searchS.Input.Update(msg)
	a.searchS.Results = search.Everything(
		a.ctrl.Liked().All(),
		a.ctrl.Folders().Collections(),
		a.folderOrder,
		a.searchS.Input.Value(),
	)
	a.searchS.Cursor = 0
	return a, cmd
}

func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "q", "esc":
		a.mode = ModeNormal
	}
	return a, nil
}

// listLen returns the length of the focused pane's list.
func (a App) listLen() int {
	switch a.focusedPane {
	case PaneSnippets:
		return len(a.ctrl.State().Snippets)
	case PaneLiked:
		return len(a.ctrl.Liked().All())
	default:
		if a.openFolder != "" {
			return len(a.ctrl.Folders().Get(a.openFolder))
		}
		return len(a.folderOrder)
	}
}

func (a *App) cursor() *int {
	switch a.focusedPane {
	case PaneSnippets:
		return &a.snippetCursor
	case PaneLiked:
		return &a.likedCursor
	default:
		if a.openFolder != "" {
			return &a.entryCursor
		}
		return &a.folderCursor
	}
}

func (a *App) moveCursor(delta int) {
	c := a.cursor()
	next := *c + delta
	if next >= 0 && next < a.listLen() {
		*c = next
	}
}

func (a *App) setCursor(pos int) {
	if pos < 0 {
		pos = 0
	}
	if n := a.listLen(); pos >= n {
		pos = n - 1
	}
	if pos >= 0 {
		*a.cursor() = pos
	}
}

// clampCursors pulls every cursor back into range after a removal.
func (a *App) clampCursors() {
	clamp := func(c *int, n int) {
		if *c >= n && *c > 0 {
			*c = n - 1
		}
	}
	clamp(&a.snippetCursor, len(a.ctrl.State().Snippets))
	clamp(&a.likedCursor, len(a.ctrl.Liked().All()))
	clamp(&a.folderCursor, len(a.folderOrder))
	if a.openFolder != "" {
		clamp(&a.entryCursor, len(a.ctrl.Folders().Get(a.openFolder)))
	}
}

// selectedText returns the snippet text under the cursor, if any.
func (a App) selectedText() (string, bool) {
	switch a.focusedPane {
	case PaneSnippets:
		snippets := a.ctrl.State().Snippets
		if a.snippetCursor < len(snippets) {
			return snippets[a.snippetCursor], true
		}
	case PaneLiked:
		liked := a.ctrl.Liked().All()
		if a.likedCursor < len(liked) {
			return liked[a.likedCursor].Text, true
		}
	case PaneFolders:
		if a.openFolder == "" {
			return "", false
		}
		entries := a.ctrl.Folders().Get(a.openFolder)
		if a.entryCursor < len(entries) {
			return entries[a.entryCursor].Text, true
		}
	}
	return "", false
}

// selectedFolder returns the folder name under the cursor in the
// folder list.
func (a App) selectedFolder() (string, bool) {
	if a.folderCursor < len(a.folderOrder) {
		return a.folderOrder[a.folderCursor], true
	}
	return "", false
}

func nextMode(m model.Mode) model.Mode {
	switch m {
	case model.ModeSentence:
		return model.ModeParagraph
	case model.ModeParagraph:
		return model.ModeFixed
	default:
		return model.ModeSentence
	}
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
