// Package resolver maps wikilink target names to notes in the vault.
//
// Resolution is best-match only: an exact note ID wins, then a unique short
// name (base name without path), then a unique slugified match. Ambiguous
// targets do not resolve.
package resolver

import (
	"path"
	"strings"

	goslug "github.com/gosimple/slug"
)

// Resolver resolves target names against a snapshot of known note IDs.
type Resolver struct {
	ids    map[string]struct{} // Set of all known note IDs
	shorts map[string][]string // Short name -> full IDs
	slugs  map[string][]string // Slugified ID or short name -> full IDs
}

// New builds a Resolver from note IDs (vault-relative paths without .md).
func New(noteIDs []string) *Resolver {
	r := &Resolver{
		ids:    make(map[string]struct{}, len(noteIDs)),
		shorts: make(map[string][]string),
		slugs:  make(map[string][]string),
	}

	for _, id := range noteIDs {
		r.ids[id] = struct{}{}

		short := path.Base(id)
		r.shorts[short] = append(r.shorts[short], id)

		r.addSlug(slugifyPath(id), id)
		r.addSlug(goslug.Make(short), id)
	}

	return r
}

func (r *Resolver) addSlug(key, id string) {
	for _, existing := range r.slugs[key] {
		if existing == id {
			return
		}
	}
	r.slugs[key] = append(r.slugs[key], id)
}

// Resolve returns the note ID a target name refers to. ok is false when the
// target is unknown or ambiguous.
func (r *Resolver) Resolve(name string) (id string, ok bool) {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, ".md")
	if name == "" {
		return "", false
	}

	// Full-path references resolve exactly, then by slug.
	if strings.Contains(name, "/") {
		if _, ok := r.ids[name]; ok {
			return name, true
		}
		return unique(r.slugs[slugifyPath(name)])
	}

	if _, ok := r.ids[name]; ok {
		return name, true
	}

	if id, ok := unique(r.shorts[name]); ok {
		return id, true
	}

	return unique(r.slugs[goslug.Make(name)])
}

// Exists checks whether a note ID is known.
func (r *Resolver) Exists(id string) bool {
	_, ok := r.ids[id]
	return ok
}

func unique(matches []string) (string, bool) {
	if len(matches) != 1 {
		return "", false
	}
	return matches[0], true
}

// slugifyPath slugifies each "/"-separated component of a note ID.
func slugifyPath(id string) string {
	parts := strings.Split(id, "/")
	for i, part := range parts {
		slugged := goslug.Make(part)
		if slugged == "" {
			slugged = strings.ToLower(strings.ReplaceAll(part, " ", "-"))
		}
		parts[i] = slugged
	}
	return strings.Join(parts, "/")
}
