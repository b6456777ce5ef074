package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nikbrunner/snip/internal/app"
	"github.com/nikbrunner/snip/internal/chunker"
	"github.com/nikbrunner/snip/internal/config"
	"github.com/nikbrunner/snip/internal/export"
	"github.com/nikbrunner/snip/internal/importer"
	"github.com/nikbrunner/snip/internal/logger"
	"github.com/nikbrunner/snip/internal/picker"
	"github.com/nikbrunner/snip/internal/search"
	"github.com/nikbrunner/snip/internal/session"
	"github.com/nikbrunner/snip/internal/storage"
	"github.com/nikbrunner/snip/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "open":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: snip open <file>\n")
				os.Exit(1)
			}
			runTUI(os.Args[2])
			return
		case "export":
			kind := export.KindText
			if len(os.Args) >= 3 && os.Args[2] == "json" {
				kind = export.KindJSON
			}
			runExport(kind)
			return
		case "session":
			if len(os.Args) < 4 {
				fmt.Fprintf(os.Stderr, "Usage: snip session save|load <file>\n")
				os.Exit(1)
			}
			runSession(os.Args[2], os.Args[3])
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI without an article
	runTUI("")
}

func printHelp() {
	help := `snip - curate snippets from articles

Usage:
  snip                       Open interactive TUI
  snip open <file>           Open an article (.html or plain text)
  snip <query>               Quick search saved snippets, copy selection
  snip export [json]         Export liked snippets to ~/Downloads
  snip session save <file>   Save the current session
  snip session load <file>   Restore a saved session
  snip help                  Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    h/l         Switch pane, close/open folder
    gg/G        Jump to top/bottom
    tab         Next pane

  Actions:
    space       Like/unlike snippet
    d           Remove entry / delete folder
    u           Undo last removal
    f           File snippet into a folder
    r           Rename folder
    m           Cycle chunking mode
    y           Copy snippet to clipboard
    s           Global fuzzy search
    e/E         Export as text/JSON

  Other:
    ?           Show help overlay
    q           Quit

Data Storage:
  ~/.config/snip/snip.db
`
	fmt.Print(help)
}

// newController loads config and storage and builds the Controller
// every command runs against.
func newController() (*app.Controller, *zap.Logger) {
	cfgPath, err := config.DefaultFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving config path: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFile)
	store := storage.Open(cfg.DBPath(), log)

	ctrl := app.New(app.Options{
		Store:      store,
		Mode:       cfg.Mode(),
		UndoWindow: cfg.UndoWindow(),
		Chunk:      chunker.WithFixedLength(cfg.FixedChunkLength),
		Log:        log,
	})
	return ctrl, log
}

// runTUI runs the full interactive TUI, optionally with an article.
func runTUI(articlePath string) {
	ctrl, log := newController()
	defer func() { _ = log.Sync() }()

	if articlePath != "" {
		article, err := importer.Load(articlePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading article: %v\n", err)
			os.Exit(1)
		}
		ctrl.SetArticle(article.Text, article.Title, article.Author, article.SourceURL)
	}

	a := tui.NewApp(tui.AppParams{Controller: ctrl})
	p := tea.NewProgram(a, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runQuickSearch searches the saved collections and copies the
// selected snippet to the clipboard.
func runQuickSearch(query string) {
	ctrl, _ := newController()

	results := search.Everything(
		ctrl.Liked().All(),
		ctrl.Folders().Collections(),
		ctrl.Folders().ReconcileOrder(),
		query,
	)
	if len(results) == 0 {
		fmt.Printf("No snippets found for '%s'\n", query)
		return
	}

	if len(results) == 1 {
		copySnippet(results[0].Entry.Text)
		return
	}

	p := picker.New(results, query)
	program := tea.NewProgram(p)
	finalModel, err := program.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
		os.Exit(1)
	}

	finalPicker := finalModel.(picker.Picker)
	if finalPicker.Cancelled() {
		return
	}
	if e := finalPicker.SelectedEntry(); e != nil {
		copySnippet(e.Text)
	}
}

func copySnippet(text string) {
	if err := clipboard.WriteAll(text); err != nil {
		fmt.Fprintf(os.Stderr, "Error copying to clipboard: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Copied to clipboard")
}

// runExport writes the liked collection to the default export path.
func runExport(kind export.Kind) {
	ctrl, _ := newController()

	content, err := ctrl.ExportLiked(kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting export: %v\n", err)
		os.Exit(1)
	}

	path, err := export.DefaultPath(kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving export path: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d snippets to %s\n", len(ctrl.Liked().All()), path)
}

// runSession handles the session subcommand.
func runSession(action, path string) {
	ctrl, _ := newController()

	switch action {
	case "save":
		data, err := session.Encode(ctrl.Snapshot())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding session: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing session: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Session saved to %s\n", path)

	case "load":
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading session: %v\n", err)
			os.Exit(1)
		}
		doc, err := session.Decode(data)
		if err != nil {
			if errors.Is(err, session.ErrInvalidFormat) {
				fmt.Fprintf(os.Stderr, "Not a valid session file: %v\n", err)
			} else {
				fmt.Fprintf(os.Stderr, "Error decoding session: %v\n", err)
			}
			os.Exit(1)
		}
		ctrl.RestoreSession(doc)
		fmt.Printf("Session restored: %d liked, %d folders\n",
			len(doc.Liked), len(doc.Folders))

	default:
		fmt.Fprintf(os.Stderr, "Usage: snip session save|load <file>\n")
		os.Exit(1)
	}
}
