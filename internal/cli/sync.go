package cli

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emcrae/magpie/internal/index"
	"github.com/emcrae/magpie/internal/pipeline"
	"github.com/emcrae/magpie/internal/ui"
	"github.com/emcrae/magpie/internal/vault"
)

var syncCmd = &cobra.Command{
	Use:   "sync [note...]",
	Short: "Harvest wikilink aliases from notes into target frontmatter",
	Long: `Scan notes for [[target|display]] wikilinks and merge the display text into
the aliases list of each target note's frontmatter.

With no arguments, every note in the vault whose name matches the configured
file pattern is scanned. Notes can also be given explicitly, as paths
relative to the vault root or absolute paths.

Examples:
  # Scan all pattern-matching notes
  mgp sync

  # Scan one note
  mgp sync daily/2024-01-01.md`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	db, host, store, err := openVault()
	if err != nil {
		return err
	}
	defer db.Close()

	pipe := pipeline.New(host, store)

	notes, err := notesToSync(host, args)
	if err != nil {
		return err
	}

	failed := 0
	for _, note := range notes {
		if err := pipe.Process(note); err != nil {
			failed++
		}
	}

	fmt.Println(ui.Successf("scanned %d note(s)", len(notes)-failed))
	if failed > 0 {
		return fmt.Errorf("%d note(s) could not be scanned", failed)
	}
	return nil
}

// notesToSync resolves the command arguments to notes, or walks the vault
// when no arguments were given.
func notesToSync(host *vault.Host, args []string) ([]vault.Note, error) {
	if len(args) > 0 {
		notes := make([]vault.Note, 0, len(args))
		for _, arg := range args {
			path := arg
			if !filepath.IsAbs(path) {
				path = filepath.Join(resolvedVaultPath, arg)
			}
			note, ok := host.NoteAt(path)
			if !ok {
				return nil, fmt.Errorf("not a markdown note in the vault: %s", arg)
			}
			notes = append(notes, note)
		}
		return notes, nil
	}

	var notes []vault.Note
	err := filepath.WalkDir(resolvedVaultPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if index.IgnoredDir(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".md") {
			return nil
		}
		if note, ok := host.NoteAt(path); ok {
			notes = append(notes, note)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk vault: %w", err)
	}
	return notes, nil
}
