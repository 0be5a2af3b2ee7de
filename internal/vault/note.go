// Package vault implements the filesystem host the alias sync pipeline runs
// against: reading notes, resolving link targets, and rewriting frontmatter.
package vault

import (
	"path"
	"strings"
)

// Note identifies a markdown note in the vault.
type Note struct {
	// ID is the vault-relative path without the .md extension.
	ID string

	// Path is the absolute file path.
	Path string
}

// Name returns the note's base name without extension. This is what the
// file pattern is matched against.
func (n Note) Name() string {
	return path.Base(n.ID)
}

// IsMarkdown reports whether the note's file carries the .md extension.
func (n Note) IsMarkdown() bool {
	return strings.HasSuffix(n.Path, ".md")
}
