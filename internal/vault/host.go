package vault

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/emcrae/magpie/internal/atomicfile"
	"github.com/emcrae/magpie/internal/frontmatter"
	"github.com/emcrae/magpie/internal/index"
	"github.com/emcrae/magpie/internal/resolver"
)

// Host serves note I/O for the pipeline and scheduler. It owns no sync
// policy; it reads notes, resolves link targets through the index, tracks
// the active note, and performs atomic frontmatter rewrites.
type Host struct {
	root string
	db   *index.Database

	mu     sync.Mutex
	res    *resolver.Resolver
	active *Note
	locks  map[string]*sync.Mutex // Per-path write locks

	out  func(string)
	logf func(string, ...any)
}

// Option customizes a Host.
type Option func(*Host)

// WithNotifier routes user-facing notices to fn instead of stdout.
func WithNotifier(fn func(string)) Option {
	return func(h *Host) { h.out = fn }
}

// WithLogger routes log lines to fn instead of stderr.
func WithLogger(fn func(string, ...any)) Option {
	return func(h *Host) { h.logf = fn }
}

// New creates a Host rooted at root, resolving targets through db.
func New(root string, db *index.Database, opts ...Option) (*Host, error) {
	h := &Host{
		root:  root,
		db:    db,
		locks: make(map[string]*sync.Mutex),
		out: func(msg string) {
			fmt.Println(msg)
		},
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "[magpie] "+format+"\n", args...)
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	if err := h.RefreshResolver(); err != nil {
		return nil, err
	}
	return h, nil
}

// RefreshResolver rebuilds the resolver from the current index contents.
// Call after the index changes.
func (h *Host) RefreshResolver() error {
	ids, err := h.db.NoteIDs()
	if err != nil {
		return fmt.Errorf("failed to load note ids: %w", err)
	}
	res := resolver.New(ids)

	h.mu.Lock()
	h.res = res
	h.mu.Unlock()
	return nil
}

// NoteAt converts an absolute path inside the vault to a Note.
func (h *Host) NoteAt(path string) (Note, bool) {
	rel, err := filepath.Rel(h.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return Note{}, false
	}
	if !strings.HasSuffix(path, ".md") {
		return Note{}, false
	}
	return Note{ID: index.NoteID(rel), Path: path}, true
}

// ReadText returns the note's full content.
func (h *Host) ReadText(n Note) (string, error) {
	data, err := os.ReadFile(n.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", n.ID, err)
	}
	return string(data), nil
}

// ResolveLink resolves a wikilink target name to a note. fromID is the ID of
// the note containing the link; targets prefixed "./" resolve relative to it.
func (h *Host) ResolveLink(name, fromID string) (Note, bool) {
	name = strings.TrimSpace(name)
	if rel, ok := strings.CutPrefix(name, "./"); ok {
		name = path.Join(path.Dir(fromID), rel)
	}

	h.mu.Lock()
	res := h.res
	h.mu.Unlock()
	if res == nil {
		return Note{}, false
	}

	id, ok := res.Resolve(name)
	if !ok {
		return Note{}, false
	}

	notePath, err := h.db.Path(id)
	if err != nil {
		return Note{}, false
	}
	return Note{ID: id, Path: notePath}, true
}

// ActiveNote returns the note currently considered active, if any.
func (h *Host) ActiveNote() (Note, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		return Note{}, false
	}
	return *h.active, true
}

// SetActiveNote records the active note. The watch daemon calls this on
// open and write events; the note most recently touched counts as focused.
func (h *Host) SetActiveNote(n Note) {
	h.mu.Lock()
	h.active = &n
	h.mu.Unlock()
}

// TransformMetadata applies fn to the note's frontmatter fields as one
// atomic read-modify-write: the read, the transform, and the write happen
// under the note's write lock, and the file lands via temp-file rename.
func (h *Host) TransformMetadata(n Note, fn func(fields map[string]any) map[string]any) error {
	lock := h.pathLock(n.Path)
	lock.Lock()
	defer lock.Unlock()

	data, err := os.ReadFile(n.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", n.ID, err)
	}

	updated, err := frontmatter.Transform(string(data), fn)
	if err != nil {
		return fmt.Errorf("failed to update frontmatter of %s: %w", n.ID, err)
	}

	if updated == string(data) {
		return nil
	}

	if err := atomicfile.WriteFile(n.Path, []byte(updated), 0); err != nil {
		return fmt.Errorf("failed to write %s: %w", n.ID, err)
	}
	return nil
}

// Notify surfaces a user-facing message.
func (h *Host) Notify(msg string) {
	h.out(msg)
}

// Logf writes a best-effort log line.
func (h *Host) Logf(format string, args ...any) {
	h.logf(format, args...)
}

func (h *Host) pathLock(path string) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	lock, ok := h.locks[path]
	if !ok {
		lock = &sync.Mutex{}
		h.locks[path] = lock
	}
	return lock
}
