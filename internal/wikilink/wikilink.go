// Package wikilink provides canonical scanning of Magpie wikilinks.
//
// Wikilink grammar:
//   [[target]]
//   [[target|display text]]
//
// Notes:
// - The target is trimmed of surrounding whitespace.
// - The display text (if present) is also trimmed.
// - The scanner does not understand markdown code fences; callers decide
//   which regions of a document are scanned.
package wikilink

import (
	"regexp"
	"strings"
)

// Match represents a wikilink found in text.
type Match struct {
	// Target is the note name before the pipe, trimmed.
	Target string

	// Alias is the display text after the pipe, trimmed.
	// Empty when the link has no pipe.
	Alias string

	Start   int
	End     int
	Literal string
}

// re matches [[target]] or [[target|display]].
// The target cannot contain [ or ] to avoid matching array syntax like [[[ref]]].
var re = regexp.MustCompile(`\[\[([^\]\[|]+)(?:\|([^\]]+))?\]\]`)

// FindAll finds all non-overlapping wikilinks in text.
// Matches whose target is empty after trimming are skipped.
func FindAll(text string) []Match {
	var out []Match

	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		if len(m) < 4 {
			continue
		}
		start, end := m[0], m[1]

		target := strings.TrimSpace(text[m[2]:m[3]])
		if target == "" {
			continue
		}

		var alias string
		if len(m) >= 6 && m[4] >= 0 && m[5] >= 0 {
			alias = strings.TrimSpace(text[m[4]:m[5]])
		}

		out = append(out, Match{
			Target:  target,
			Alias:   alias,
			Start:   start,
			End:     end,
			Literal: text[start:end],
		})
	}

	return out
}

// HasAlias reports whether the match carries non-empty display text.
func (m Match) HasAlias() bool {
	return m.Alias != ""
}
