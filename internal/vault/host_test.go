package vault

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/emcrae/magpie/internal/frontmatter"
	"github.com/emcrae/magpie/internal/index"
)

func newTestHost(t *testing.T) (*Host, string) {
	t.Helper()
	root := t.TempDir()
	db, err := index.Open(root)
	if err != nil {
		t.Fatalf("index.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h, err := New(root, db, WithNotifier(func(string) {}), WithLogger(func(string, ...any) {}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return h, root
}

func addNote(t *testing.T, h *Host, root, rel, content string) Note {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := h.db.Rebuild(root); err != nil {
		t.Fatal(err)
	}
	if err := h.RefreshResolver(); err != nil {
		t.Fatal(err)
	}
	n, ok := h.NoteAt(p)
	if !ok {
		t.Fatalf("NoteAt(%s) failed", p)
	}
	return n
}

func TestNoteAt(t *testing.T) {
	h, root := newTestHost(t)

	n, ok := h.NoteAt(filepath.Join(root, "daily", "2024-01-01.md"))
	if !ok {
		t.Fatal("expected ok")
	}
	if n.ID != "daily/2024-01-01" {
		t.Errorf("ID = %q", n.ID)
	}
	if n.Name() != "2024-01-01" {
		t.Errorf("Name() = %q", n.Name())
	}
	if !n.IsMarkdown() {
		t.Error("IsMarkdown() = false")
	}

	if _, ok := h.NoteAt(filepath.Join(root, "notes.txt")); ok {
		t.Error("non-markdown path should not yield a note")
	}
	if _, ok := h.NoteAt("/elsewhere/other.md"); ok {
		t.Error("path outside the vault should not yield a note")
	}
}

func TestReadText(t *testing.T) {
	h, root := newTestHost(t)
	n := addNote(t, h, root, "a.md", "hello [[b|Bee]]")

	text, err := h.ReadText(n)
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if text != "hello [[b|Bee]]" {
		t.Errorf("text = %q", text)
	}

	if _, err := h.ReadText(Note{ID: "ghost", Path: filepath.Join(root, "ghost.md")}); err == nil {
		t.Error("expected error for missing note")
	}
}

func TestResolveLink(t *testing.T) {
	h, root := newTestHost(t)
	addNote(t, h, root, "people/freya.md", "")
	addNote(t, h, root, "daily/2024-01-01.md", "")

	t.Run("short name", func(t *testing.T) {
		n, ok := h.ResolveLink("freya", "daily/2024-01-01")
		if !ok || n.ID != "people/freya" {
			t.Errorf("got %q, %v", n.ID, ok)
		}
		if !strings.HasSuffix(n.Path, filepath.Join("people", "freya.md")) {
			t.Errorf("path = %q", n.Path)
		}
	})

	t.Run("relative target", func(t *testing.T) {
		n, ok := h.ResolveLink("./2024-01-01", "daily/2024-01-02")
		if !ok || n.ID != "daily/2024-01-01" {
			t.Errorf("got %q, %v", n.ID, ok)
		}
	})

	t.Run("miss", func(t *testing.T) {
		if _, ok := h.ResolveLink("loki", "daily/2024-01-01"); ok {
			t.Error("unknown target should not resolve")
		}
	})
}

func TestActiveNote(t *testing.T) {
	h, root := newTestHost(t)

	if _, ok := h.ActiveNote(); ok {
		t.Error("no note should be active initially")
	}

	n := addNote(t, h, root, "a.md", "")
	h.SetActiveNote(n)
	active, ok := h.ActiveNote()
	if !ok || active.ID != "a" {
		t.Errorf("active = %q, %v", active.ID, ok)
	}
}

func TestTransformMetadata(t *testing.T) {
	h, root := newTestHost(t)

	t.Run("merges into existing frontmatter", func(t *testing.T) {
		n := addNote(t, h, root, "Project Plan.md", "---\ntype: project\naliases:\n  - plan\n---\nBody\n")

		err := h.TransformMetadata(n, func(fields map[string]any) map[string]any {
			fields["aliases"] = []string{"plan", "roadmap"}
			return fields
		})
		if err != nil {
			t.Fatalf("TransformMetadata: %v", err)
		}

		text, _ := h.ReadText(n)
		fields, err := frontmatter.Parse(text)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if !reflect.DeepEqual(frontmatter.Aliases(fields), []string{"plan", "roadmap"}) {
			t.Errorf("aliases = %#v", frontmatter.Aliases(fields))
		}
		if fields["type"] != "project" {
			t.Errorf("type lost: %v", fields["type"])
		}
	})

	t.Run("creates frontmatter", func(t *testing.T) {
		n := addNote(t, h, root, "bare.md", "Just text\n")

		err := h.TransformMetadata(n, func(fields map[string]any) map[string]any {
			fields["aliases"] = []string{"shiny"}
			return fields
		})
		if err != nil {
			t.Fatalf("TransformMetadata: %v", err)
		}

		text, _ := h.ReadText(n)
		if !strings.HasPrefix(text, "---\n") {
			t.Errorf("no frontmatter created: %q", text)
		}
		if !strings.Contains(text, "Just text") {
			t.Errorf("body lost: %q", text)
		}
	})

	t.Run("no-op leaves file untouched", func(t *testing.T) {
		n := addNote(t, h, root, "still.md", "Unchanged\n")
		before, _ := os.Stat(n.Path)

		err := h.TransformMetadata(n, func(fields map[string]any) map[string]any {
			return fields
		})
		if err != nil {
			t.Fatalf("TransformMetadata: %v", err)
		}

		after, _ := os.Stat(n.Path)
		if !after.ModTime().Equal(before.ModTime()) {
			t.Error("file rewritten despite no change")
		}
	})
}
