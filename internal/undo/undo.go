// Package undo holds a single-slot buffer for the most recent
// destructive collection action.
package undo

import (
	"sync"
	"time"

	"github.com/nikbrunner/snip/internal/model"
)

// DefaultWindow is how long a recorded action stays restorable.
const DefaultWindow = 4 * time.Second

// LikedTarget re-adds an entry to the liked collection.
type LikedTarget interface {
	Like(e model.Entry)
}

// FolderTarget re-adds an entry to a named folder.
type FolderTarget interface {
	Add(name string, e model.Entry)
}

// Record is one undoable removal. Folder is nil for an unlike and the
// folder name for a folder removal.
type Record struct {
	Entry  model.Entry
	Folder *string
}

// Buffer holds at most one record at a time. Recording a new action
// overwrites the previous one, and a record expires on its own after
// the window passes. All methods are safe for concurrent use.
type Buffer struct {
	mu     sync.Mutex
	window time.Duration
	rec    *Record
	gen    int
}

// NewBuffer creates a buffer with the given expiry window. A zero or
// negative window falls back to DefaultWindow.
func NewBuffer(window time.Duration) *Buffer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Buffer{window: window}
}

// Record stores the removal and arms the expiry timer, replacing any
// earlier record.
func (b *Buffer) Record(rec Record) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.rec = &rec
	b.gen++

	// The generation guard keeps a stale timer from clearing a record
	// that replaced the one it was armed for.
	gen := b.gen
	time.AfterFunc(b.window, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.gen == gen {
			b.rec = nil
		}
	})
}

// Pending reports whether a record is waiting, and what it holds.
func (b *Buffer) Pending() (Record, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rec == nil {
		return Record{}, false
	}
	return *b.rec, true
}

// Restore replays the pending record against the matching target and
// clears the buffer. It reports whether anything was restored; an
// expired or empty buffer restores nothing.
func (b *Buffer) Restore(liked LikedTarget, folders FolderTarget) bool {
	b.mu.Lock()
	rec := b.rec
	b.rec = nil
	b.gen++
	b.mu.Unlock()

	if rec == nil {
		return false
	}

	if rec.Folder != nil {
		folders.Add(*rec.Folder, rec.Entry)
	} else {
		liked.Like(rec.Entry)
	}
	return true
}

// Clear drops any pending record without restoring it.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rec = nil
	b.gen++
}
