// Package pipeline orchestrates one alias sync run: filter a note by the
// configured name pattern, extract aliases from its wikilinks, and merge
// them into the frontmatter of each resolved target.
package pipeline

import (
	"fmt"
	"slices"

	"github.com/emcrae/magpie/internal/alias"
	"github.com/emcrae/magpie/internal/config"
	"github.com/emcrae/magpie/internal/frontmatter"
	"github.com/emcrae/magpie/internal/vault"
)

// Host is the collaborator surface the pipeline needs from its embedder.
// *vault.Host satisfies it; tests substitute a fake.
type Host interface {
	ReadText(n vault.Note) (string, error)
	ResolveLink(name, fromID string) (vault.Note, bool)
	ActiveNote() (vault.Note, bool)
	TransformMetadata(n vault.Note, fn func(fields map[string]any) map[string]any) error
	Notify(msg string)
	Logf(format string, args ...any)
}

// Pipeline runs alias sync for single notes.
type Pipeline struct {
	host  Host
	store *config.Store
}

// New creates a Pipeline reading its settings from store at each run.
func New(host Host, store *config.Store) *Pipeline {
	return &Pipeline{host: host, store: store}
}

// Process scans note for aliased wikilinks and merges the aliases into each
// target's frontmatter. A target that fails to resolve or update is skipped;
// the rest of the targets still run. Only a failure to read note itself
// aborts the run.
func (p *Pipeline) Process(note vault.Note) error {
	settings := p.store.Current()
	if !settings.Matcher.Matches(note.Name()) {
		return nil
	}

	text, err := p.host.ReadText(note)
	if err != nil {
		p.host.Notify(fmt.Sprintf("cannot read %s: %v", note.ID, err))
		return err
	}

	found := alias.Extract(text)
	updated := 0

	for _, target := range found.Targets() {
		dest, ok := p.host.ResolveLink(target, note.ID)
		if !ok {
			p.host.Logf("link target %q in %s does not resolve, skipping", target, note.ID)
			continue
		}
		if !dest.IsMarkdown() {
			p.host.Logf("link target %q in %s is not a markdown note, skipping", target, note.ID)
			continue
		}

		incoming := found[target]
		changed := false
		err := p.host.TransformMetadata(dest, func(fields map[string]any) map[string]any {
			existing := frontmatter.Aliases(fields)
			merged := alias.Merge(existing, incoming)
			if slices.Equal(existing, merged) {
				return fields
			}
			fields["aliases"] = merged
			changed = true
			return fields
		})
		if err != nil {
			p.host.Notify(fmt.Sprintf("cannot update aliases of %s: %v", dest.ID, err))
			continue
		}
		if changed {
			updated++
		}
	}

	if updated > 0 && settings.ShowNotice {
		p.host.Notify(fmt.Sprintf("updated aliases in %d note(s) linked from %s", updated, note.Name()))
	}
	return nil
}
