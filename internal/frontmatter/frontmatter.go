// Package frontmatter reads and rewrites YAML frontmatter blocks in markdown
// notes.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnclosed indicates a note opens a frontmatter block that never closes.
var ErrUnclosed = fmt.Errorf("unclosed frontmatter")

// Bounds returns the index of the closing '---' line, if content starts with
// a frontmatter fence. If the block is present but unclosed, endLine is -1.
func Bounds(lines []string) (endLine int, ok bool) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return -1, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return i, true
		}
	}
	return -1, true
}

// Parse parses the frontmatter of content into a field map.
// Returns nil (and no error) when content has no frontmatter block.
func Parse(content string) (map[string]any, error) {
	lines := strings.Split(content, "\n")

	endLine, ok := Bounds(lines)
	if !ok {
		return nil, nil
	}
	if endLine == -1 {
		return nil, ErrUnclosed
	}

	var fields map[string]any
	raw := strings.Join(lines[1:endLine], "\n")
	if err := yaml.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter as YAML: %w", err)
	}

	// YAML decodes an empty document (or comments only) into a nil map; the
	// block still counts as present.
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Aliases reads the "aliases" field from a field map. It accepts a sequence
// of strings or a single string; anything else yields nil.
func Aliases(fields map[string]any) []string {
	switch v := fields["aliases"].(type) {
	case []string:
		if len(v) == 0 {
			return nil
		}
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

// Transform applies fn to the note's field map and returns the note with its
// frontmatter re-serialized. Unrelated fields survive the round trip, though
// YAML comments and key order inside the block do not.
//
// When the note has no frontmatter, fn receives an empty map; a block is
// created only if fn leaves it non-empty.
func Transform(content string, fn func(fields map[string]any) map[string]any) (string, error) {
	lines := strings.Split(content, "\n")

	endLine, present := Bounds(lines)
	if present && endLine == -1 {
		return "", ErrUnclosed
	}

	var fields map[string]any
	if present {
		raw := strings.Join(lines[1:endLine], "\n")
		if err := yaml.Unmarshal([]byte(raw), &fields); err != nil {
			return "", fmt.Errorf("failed to parse frontmatter: %w", err)
		}
	}
	if fields == nil {
		fields = map[string]any{}
	}

	fields = fn(fields)

	if !present && len(fields) == 0 {
		return content, nil
	}

	encoded, err := yaml.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	var out strings.Builder
	out.WriteString("---\n")
	out.Write(encoded)
	out.WriteString("---")

	if present {
		if endLine+1 < len(lines) {
			out.WriteString("\n")
			out.WriteString(strings.Join(lines[endLine+1:], "\n"))
		}
	} else {
		out.WriteString("\n")
		out.WriteString(content)
	}

	return out.String(), nil
}
