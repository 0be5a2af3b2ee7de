package frontmatter

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("no frontmatter", func(t *testing.T) {
		fields, err := Parse("# Heading\n\nBody text\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fields != nil {
			t.Errorf("expected nil fields, got %#v", fields)
		}
	})

	t.Run("fields parsed", func(t *testing.T) {
		content := "---\ntype: project\naliases:\n  - plan\n---\nBody\n"
		fields, err := Parse(content)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fields["type"] != "project" {
			t.Errorf("type = %v", fields["type"])
		}
	})

	t.Run("empty block counts as present", func(t *testing.T) {
		fields, err := Parse("---\n---\nBody\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fields == nil {
			t.Error("expected non-nil fields for empty block")
		}
	})

	t.Run("unclosed block", func(t *testing.T) {
		_, err := Parse("---\ntype: project\nBody\n")
		if !errors.Is(err, ErrUnclosed) {
			t.Errorf("err = %v, want ErrUnclosed", err)
		}
	})
}

func TestAliases(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		want   []string
	}{
		{
			name:   "sequence of strings",
			fields: map[string]any{"aliases": []any{"plan", "roadmap"}},
			want:   []string{"plan", "roadmap"},
		},
		{
			name:   "string slice",
			fields: map[string]any{"aliases": []string{"plan"}},
			want:   []string{"plan"},
		},
		{
			name:   "single string",
			fields: map[string]any{"aliases": "plan"},
			want:   []string{"plan"},
		},
		{
			name:   "missing",
			fields: map[string]any{},
			want:   nil,
		},
		{
			name:   "non-string entries skipped",
			fields: map[string]any{"aliases": []any{"plan", 7}},
			want:   []string{"plan"},
		},
		{
			name:   "wrong type",
			fields: map[string]any{"aliases": 42},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aliases(tt.fields)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Aliases() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func setAliases(aliases []string) func(map[string]any) map[string]any {
	return func(fields map[string]any) map[string]any {
		fields["aliases"] = aliases
		return fields
	}
}

func TestTransform(t *testing.T) {
	t.Run("updates existing block", func(t *testing.T) {
		content := "---\ntype: project\naliases:\n  - plan\n---\nBody text\n"
		got, err := Transform(content, setAliases([]string{"plan", "roadmap"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		fields, err := Parse(got)
		if err != nil {
			t.Fatalf("reparse failed: %v", err)
		}
		if fields["type"] != "project" {
			t.Errorf("unrelated field lost: type = %v", fields["type"])
		}
		if !reflect.DeepEqual(Aliases(fields), []string{"plan", "roadmap"}) {
			t.Errorf("aliases = %#v", Aliases(fields))
		}
		if !strings.HasSuffix(got, "Body text\n") {
			t.Errorf("body not preserved: %q", got)
		}
	})

	t.Run("creates block when absent", func(t *testing.T) {
		got, err := Transform("Just a body\n", setAliases([]string{"plan"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(got, "---\n") {
			t.Fatalf("no frontmatter created: %q", got)
		}
		fields, err := Parse(got)
		if err != nil {
			t.Fatalf("reparse failed: %v", err)
		}
		if !reflect.DeepEqual(Aliases(fields), []string{"plan"}) {
			t.Errorf("aliases = %#v", Aliases(fields))
		}
		if !strings.Contains(got, "Just a body") {
			t.Errorf("body lost: %q", got)
		}
	})

	t.Run("no block created for no-op", func(t *testing.T) {
		content := "Just a body\n"
		got, err := Transform(content, func(fields map[string]any) map[string]any {
			return fields
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != content {
			t.Errorf("content changed: %q", got)
		}
	})

	t.Run("unclosed block", func(t *testing.T) {
		_, err := Transform("---\ntype: project\n", setAliases([]string{"x"}))
		if !errors.Is(err, ErrUnclosed) {
			t.Errorf("err = %v, want ErrUnclosed", err)
		}
	})
}
