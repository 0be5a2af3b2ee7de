// Package watcher feeds vault file events into the alias sync scheduler.
//
// It owns no timing policy: every create and write is forwarded as a raw
// scheduler event, and the scheduler applies the debounce and active-note
// gate. The watcher also keeps the note index current and tracks the active
// note (most recently created or written).
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/emcrae/magpie/internal/index"
	"github.com/emcrae/magpie/internal/scheduler"
	"github.com/emcrae/magpie/internal/vault"
)

// Watcher monitors a vault directory and emits scheduler events.
type Watcher struct {
	root   string
	db     *index.Database
	host   *vault.Host
	events chan<- scheduler.Event
	debug  bool

	fsWatcher *fsnotify.Watcher
}

// Config holds configuration options for the Watcher.
type Config struct {
	Root     string
	Database *index.Database
	Host     *vault.Host
	Events   chan<- scheduler.Event
	Debug    bool
}

// New creates a new Watcher with the given configuration.
func New(cfg Config) (*Watcher, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("vault root is required")
	}
	if cfg.Database == nil {
		return nil, fmt.Errorf("database is required")
	}
	if cfg.Host == nil {
		return nil, fmt.Errorf("host is required")
	}
	if cfg.Events == nil {
		return nil, fmt.Errorf("event channel is required")
	}

	return &Watcher{
		root:   cfg.Root,
		db:     cfg.Database,
		host:   cfg.Host,
		events: cfg.Events,
		debug:  cfg.Debug,
	}, nil
}

// Start begins watching the vault. It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.fsWatcher.Close()

	if err := w.addWatchRecursive(w.root); err != nil {
		return fmt.Errorf("failed to watch vault: %w", err)
	}

	w.logDebug("Watching vault: %s", w.root)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logDebug("Watcher error: %v", err)
		}
	}
}

// handleEvent processes a single filesystem event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if !strings.HasSuffix(path, ".md") {
		// But watch new directories.
		if event.Op&fsnotify.Create != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				_ = w.addWatchRecursive(path)
			}
		}
		return
	}

	if w.shouldIgnore(path) {
		return
	}

	w.logDebug("Event: %s %s", event.Op, path)

	switch {
	case event.Op&fsnotify.Create != 0:
		w.noteTouched(path, scheduler.NoteOpened)
	case event.Op&fsnotify.Write != 0:
		w.noteTouched(path, scheduler.NoteModified)
	case event.Op&fsnotify.Remove != 0, event.Op&fsnotify.Rename != 0:
		w.noteRemoved(path)
	}
}

// noteTouched reindexes the note, marks it active, and emits kind.
func (w *Watcher) noteTouched(path string, kind scheduler.EventKind) {
	note, ok := w.host.NoteAt(path)
	if !ok {
		return
	}

	mtime := time.Now().Unix()
	if st, err := os.Stat(path); err == nil {
		mtime = st.ModTime().Unix()
	}
	if err := w.db.Upsert(note.ID, note.Path, mtime); err != nil {
		w.logDebug("Failed to index %s: %v", note.ID, err)
	} else if err := w.host.RefreshResolver(); err != nil {
		w.logDebug("Failed to refresh resolver: %v", err)
	}

	w.host.SetActiveNote(note)
	w.events <- scheduler.Event{Kind: kind, Note: note}
}

func (w *Watcher) noteRemoved(path string) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return
	}
	id := index.NoteID(rel)
	if err := w.db.Remove(id); err != nil {
		w.logDebug("Failed to remove %s from index: %v", id, err)
		return
	}
	if err := w.host.RefreshResolver(); err != nil {
		w.logDebug("Failed to refresh resolver: %v", err)
	}
}

// addWatchRecursive adds a directory and all subdirectories to the watcher.
func (w *Watcher) addWatchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if info.IsDir() {
			if index.IgnoredDir(filepath.Base(path)) {
				return filepath.SkipDir
			}
			if err := w.fsWatcher.Add(path); err != nil {
				w.logDebug("Failed to watch %s: %v", path, err)
			}
		}
		return nil
	})
}

// shouldIgnore returns true if the path sits under an ignored directory.
func (w *Watcher) shouldIgnore(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if index.IgnoredDir(part) {
			return true
		}
	}
	return false
}

// logDebug logs a debug message if debug mode is enabled.
func (w *Watcher) logDebug(format string, args ...any) {
	if w.debug {
		fmt.Fprintf(os.Stderr, "[magpie-watcher] "+format+"\n", args...)
	}
}
