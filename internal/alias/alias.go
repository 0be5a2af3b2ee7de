// Package alias derives note aliases from wikilink display text and merges
// them with aliases already recorded in a note's frontmatter.
//
// Alias lists produced by this package are lower-cased, deduplicated under
// case-insensitive comparison, and sorted in byte order so results are
// deterministic regardless of scan order.
package alias

import (
	"sort"
	"strings"

	"github.com/emcrae/magpie/internal/wikilink"
)

// Map associates a link target name (the trimmed text before the pipe) with
// the aliases derived for it.
type Map map[string][]string

// Extract scans text for [[target|display]] links and returns the aliases
// found per target. Links without display text contribute nothing; a target
// never appears with an empty alias list.
func Extract(text string) Map {
	sets := make(map[string]map[string]struct{})

	for _, m := range wikilink.FindAll(text) {
		a := strings.ToLower(m.Alias)
		if a == "" {
			continue
		}
		set, ok := sets[m.Target]
		if !ok {
			set = make(map[string]struct{})
			sets[m.Target] = set
		}
		set[a] = struct{}{}
	}

	out := make(Map, len(sets))
	for target, set := range sets {
		if len(set) == 0 {
			continue
		}
		out[target] = sorted(set)
	}
	return out
}

// Merge returns the union of two alias lists, lower-cased, deduplicated, and
// sorted. existing may be nil. Merge is idempotent:
// Merge(Merge(a, b), b) == Merge(a, b).
func Merge(existing, incoming []string) []string {
	set := make(map[string]struct{}, len(existing)+len(incoming))
	for _, list := range [][]string{existing, incoming} {
		for _, a := range list {
			a = strings.ToLower(strings.TrimSpace(a))
			if a == "" {
				continue
			}
			set[a] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return sorted(set)
}

// Targets returns the map's target names in byte order, for deterministic
// iteration.
func (m Map) Targets() []string {
	if len(m) == 0 {
		return nil
	}
	targets := make([]string, 0, len(m))
	for target := range m {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets
}

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
