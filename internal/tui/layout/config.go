package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + header (1) + pane borders (2) + help bar (3) = 7
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// WidthOffset is subtracted before dividing by the pane count.
	// Accounts for app padding (4) and one pane's borders (2) times three.
	WidthOffset int

	// MinWidth is the minimum width for each pane.
	MinWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	// Accounts for pane border/padding on each side.
	ContentPadding int

	// HeaderLines is the line count of each pane's header block.
	HeaderLines int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// SuggestionsVisible: max folder suggestions shown in the filing prompt.
	SuggestionsVisible int

	// SearchResultsVisible: max results shown in the search overlay.
	SearchResultsVisible int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	// Character limits
	NameCharLimit   int
	SearchCharLimit int

	// Display widths
	StandardWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction: 7, // app padding (1) + header (1) + pane borders (2) + help bar (3)
			MinHeight:       5,
			WidthOffset:     10,
			MinWidth:        20,
			ContentPadding:  4,
			HeaderLines:     2,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  40,
			MinWidth:             50,
			MaxWidth:             80,
			SuggestionsVisible:   6,
			SearchResultsVisible: 10,
		},
		Input: InputConfig{
			NameCharLimit:   100,
			SearchCharLimit: 100,
			StandardWidth:   40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
