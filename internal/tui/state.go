package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/snip/internal/search"
	"github.com/nikbrunner/snip/internal/tui/layout"
)

// FolderPromptState holds state for filing a snippet into a folder.
type FolderPromptState struct {
	Input       textinput.Model // folder name input
	TargetText  string          // snippet text being filed
	Suggestions []string        // existing folder names matching the input
	SuggestIdx  int             // selected suggestion (-1 = none, use typed name)
}

// NewFolderPromptState creates a FolderPromptState with initialized input.
func NewFolderPromptState(cfg layout.LayoutConfig) FolderPromptState {
	input := textinput.New()
	input.Placeholder = "Folder name"
	input.CharLimit = cfg.Input.NameCharLimit
	input.Width = cfg.Input.StandardWidth
	return FolderPromptState{Input: input, SuggestIdx: -1}
}

// Reset clears the prompt for a new filing session.
func (f *FolderPromptState) Reset() {
	f.Input.Reset()
	f.TargetText = ""
	f.Suggestions = nil
	f.SuggestIdx = -1
}

// Refresh rebuilds the suggestion list from the known folder names and
// the current input prefix.
func (f *FolderPromptState) Refresh(known []string) {
	query := strings.ToLower(strings.TrimSpace(f.Input.Value()))
	f.Suggestions = f.Suggestions[:0]
	for _, name := range known {
		if query == "" || strings.Contains(strings.ToLower(name), query) {
			f.Suggestions = append(f.Suggestions, name)
		}
	}
	if f.SuggestIdx >= len(f.Suggestions) {
		f.SuggestIdx = len(f.Suggestions) - 1
	}
}

// ChosenName returns the selected suggestion, or the typed name when
// no suggestion is selected.
func (f *FolderPromptState) ChosenName() string {
	if f.SuggestIdx >= 0 && f.SuggestIdx < len(f.Suggestions) {
		return f.Suggestions[f.SuggestIdx]
	}
	return strings.TrimSpace(f.Input.Value())
}

// RenameState holds state for renaming a folder.
type RenameState struct {
	Input  textinput.Model // new name input
	Target string          // folder being renamed
}

// NewRenameState creates a RenameState with initialized input.
func NewRenameState(cfg layout.LayoutConfig) RenameState {
	input := textinput.New()
	input.Placeholder = "New name"
	input.CharLimit = cfg.Input.NameCharLimit
	input.Width = cfg.Input.StandardWidth
	return RenameState{Input: input}
}

// Reset clears the rename state.
func (r *RenameState) Reset() {
	r.Input.Reset()
	r.Target = ""
}

// SearchState holds state for the global fuzzy search overlay.
type SearchState struct {
	Input   textinput.Model // query input
	Results []search.Result // current matches
	Cursor  int             // selected match index
}

// NewSearchState creates a SearchState with initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Placeholder = "Search saved snippets..."
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.StandardWidth
	return SearchState{Input: input}
}

// Reset clears the search state.
func (s *SearchState) Reset() {
	s.Input.Reset()
	s.Results = nil
	s.Cursor = 0
}
