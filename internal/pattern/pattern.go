// Package pattern decides which notes qualify for alias sync, using a
// user-configured regular expression over the note's base name.
package pattern

import (
	"fmt"
	"regexp"
)

// Matcher is a compiled note-name pattern. The pattern is anchored, so it
// must match the full base name (without extension), not a substring.
type Matcher struct {
	src string
	re  *regexp.Regexp
}

// Compile compiles src into an anchored Matcher. An invalid expression is an
// error; callers are expected to keep using their previous valid Matcher.
func Compile(src string) (*Matcher, error) {
	re, err := regexp.Compile(`^(?:` + src + `)$`)
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", src, err)
	}
	return &Matcher{src: src, re: re}, nil
}

// Matches reports whether name qualifies.
func (m *Matcher) Matches(name string) bool {
	return m.re.MatchString(name)
}

// Source returns the pattern source the Matcher was compiled from.
func (m *Matcher) Source() string {
	return m.src
}
