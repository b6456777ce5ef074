// Package app owns the application state and the operations the UI
// drives. All mutable state lives in one State struct behind the
// Controller; handlers never touch package-level variables.
package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/nikbrunner/snip/internal/chunker"
	"github.com/nikbrunner/snip/internal/collection"
	"github.com/nikbrunner/snip/internal/export"
	"github.com/nikbrunner/snip/internal/model"
	"github.com/nikbrunner/snip/internal/session"
	"github.com/nikbrunner/snip/internal/storage"
	"github.com/nikbrunner/snip/internal/undo"
)

// State is the current working material: the loaded article, its
// metadata, the active chunking mode and the snippet sequence rendered
// from them. The collections live in their stores, not here.
type State struct {
	Article   string
	Title     string
	Author    string
	SourceURL string
	Mode      model.Mode
	Snippets  []string
}

// Controller wires the stores, the undo buffer and the chunker around
// one State. Mutations go through its methods; the UI re-renders after
// each call.
type Controller struct {
	state   State
	liked   *collection.Liked
	folders *collection.Folders
	buffer  *undo.Buffer
	chunk   chunker.Func
	log     *zap.Logger
}

// Options configures a Controller.
type Options struct {
	Store      *storage.Adapter
	Mode       model.Mode
	UndoWindow time.Duration
	Chunk      chunker.Func // nil = chunker.Chunk
	Log        *zap.Logger
}

// New builds a Controller over the given storage adapter.
func New(opts Options) *Controller {
	if opts.Chunk == nil {
		opts.Chunk = chunker.Chunk
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	mode := opts.Mode
	if !mode.IsValid() {
		mode = model.ModeSentence
	}

	return &Controller{
		state:   State{Mode: mode, Snippets: []string{}},
		liked:   collection.NewLiked(opts.Store),
		folders: collection.NewFolders(opts.Store),
		buffer:  undo.NewBuffer(opts.UndoWindow),
		chunk:   opts.Chunk,
		log:     opts.Log,
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	s := c.state
	s.Snippets = append([]string(nil), c.state.Snippets...)
	return s
}

// Liked exposes the liked collection store.
func (c *Controller) Liked() *collection.Liked { return c.liked }

// Folders exposes the folder store.
func (c *Controller) Folders() *collection.Folders { return c.folders }

// SetArticle loads new source material and re-chunks it under the
// current mode.
func (c *Controller) SetArticle(text, title, author, sourceURL string) {
	c.state.Article = text
	c.state.Title = title
	c.state.Author = author
	c.state.SourceURL = sourceURL
	c.rechunk()
}

// SetMode switches the chunking mode and re-chunks the article.
// Invalid modes are ignored.
func (c *Controller) SetMode(mode model.Mode) {
	if !mode.IsValid() || mode == c.state.Mode {
		return
	}
	c.state.Mode = mode
	c.rechunk()
}

func (c *Controller) rechunk() {
	c.state.Snippets = c.chunk(c.state.Article, c.state.Mode)
	c.log.Debug("rechunked article",
		zap.String("mode", string(c.state.Mode)),
		zap.Int("snippets", len(c.state.Snippets)))
}

// entryFor stamps a snippet text with the current article metadata.
func (c *Controller) entryFor(text string) model.Entry {
	return model.Entry{
		Text:   text,
		Name:   c.state.Title,
		Handle: c.state.Author,
		URL:    c.state.SourceURL,
		Mode:   c.state.Mode,
	}
}

// LikeSnippet adds the snippet text to the liked collection.
func (c *Controller) LikeSnippet(text string) {
	c.liked.Like(c.entryFor(text))
}

// Unlike removes the text from the liked collection and arms the undo
// buffer with the removed entry.
func (c *Controller) Unlike(text string) {
	removed, ok := model.FindText(c.liked.All(), text)
	if !ok {
		return
	}
	c.liked.Unlike(text)
	c.buffer.Record(undo.Record{Entry: removed})
}

// AddToFolder files the snippet text into the named folder.
func (c *Controller) AddToFolder(name, text string) {
	c.folders.Add(name, c.entryFor(text))
}

// RemoveFromFolder takes the text out of the folder and arms the undo
// buffer with the removed entry and its origin.
func (c *Controller) RemoveFromFolder(name, text string) {
	removed, ok := model.FindText(c.folders.Get(name), text)
	if !ok {
		return
	}
	c.folders.Remove(name, text)
	c.buffer.Record(undo.Record{Entry: removed, Folder: &name})
}

// Undo restores the most recent removal, if it is still inside the
// window. Reports whether anything came back.
func (c *Controller) Undo() bool {
	return c.buffer.Restore(c.liked, c.folders)
}

// UndoPending reports whether an undoable removal is waiting.
func (c *Controller) UndoPending() bool {
	_, ok := c.buffer.Pending()
	return ok
}

// Snapshot captures the full application state as a session document.
func (c *Controller) Snapshot() session.Document {
	return session.Document{
		Article:   c.state.Article,
		Title:     c.state.Title,
		Author:    c.state.Author,
		SourceURL: c.state.SourceURL,
		Mode:      c.state.Mode,
		Snippets:  append([]string(nil), c.state.Snippets...),
		Liked:     c.liked.All(),
		Folders:   c.folders.Collections(),
	}
}

// RestoreSession overwrites everything from a session document: state
// fields, both collections, and the snippet sequence, which is
// regenerated by re-chunking the restored article rather than taken
// from the document. Call only with a document that decoded cleanly;
// nothing here can partially fail.
func (c *Controller) RestoreSession(doc session.Document) {
	c.state.Article = doc.Article
	c.state.Title = doc.Title
	c.state.Author = doc.Author
	c.state.SourceURL = doc.SourceURL
	c.state.Mode = doc.Mode
	c.rechunk()

	c.liked.Replace(doc.Liked)
	c.folders.Replace(doc.Folders)
	c.buffer.Clear()
	c.log.Info("session restored",
		zap.Int("liked", len(doc.Liked)),
		zap.Int("folders", len(doc.Folders)))
}

// ExportLiked renders the liked collection under the given kind.
func (c *Controller) ExportLiked(kind export.Kind) (string, error) {
	return export.Format(c.liked.All(), c.exportMeta(), kind)
}

// ExportFolder renders one folder's entries under the given kind.
func (c *Controller) ExportFolder(name string, kind export.Kind) (string, error) {
	return export.Format(c.folders.Get(name), c.exportMeta(), kind)
}

func (c *Controller) exportMeta() export.Meta {
	return export.Meta{
		Title:      c.state.Title,
		Author:     c.state.Author,
		Source:     c.state.SourceURL,
		Mode:       c.state.Mode,
		ExportedAt: time.Now(),
	}
}
