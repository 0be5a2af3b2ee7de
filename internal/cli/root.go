// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emcrae/magpie/internal/config"
	"github.com/emcrae/magpie/internal/ui"
)

var (
	// Global flags
	vaultPathFlag  string
	configPathFlag string

	// Resolved values
	resolvedVaultPath  string
	resolvedConfigPath string
	cfg                *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mgp",
	Short: "Magpie - collects wikilink aliases into note frontmatter",
	Long: `Magpie watches a vault of markdown notes and harvests the display text of
[[target|display]] wikilinks into the aliases list of each target note's
frontmatter, deduplicated and sorted.

Named for the bird with a reputation for collecting shiny things.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config resolution for commands that don't need a vault.
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		resolvedConfigPath = configPathFlag
		if resolvedConfigPath == "" {
			resolvedConfigPath = config.DefaultPath()
		}

		var err error
		cfg, err = config.LoadFrom(resolvedConfigPath)
		if err != nil {
			// Per the error policy, an unreadable config means defaults plus
			// one notice, not a dead CLI.
			fmt.Fprintln(os.Stderr, ui.Warningf("failed to load config: %v; using defaults", err))
			cfg = config.Default()
		}
		for _, warning := range cfg.Normalize() {
			fmt.Fprintln(os.Stderr, ui.Warning(warning))
		}

		// The config command only needs the config itself.
		if cmd.Name() == "config" || (cmd.Parent() != nil && cmd.Parent().Name() == "config") {
			return nil
		}

		// Resolve vault path: explicit flag > config.
		resolvedVaultPath = vaultPathFlag
		if resolvedVaultPath == "" {
			resolvedVaultPath = cfg.Vault
		}
		if resolvedVaultPath == "" {
			return fmt.Errorf(`no vault specified

Either:
  1. Use --vault-path /path/to/vault
  2. Run 'mgp config set vault /path/to/vault'`)
		}

		if _, err := os.Stat(resolvedVaultPath); os.IsNotExist(err) {
			return fmt.Errorf("vault not found: %s", resolvedVaultPath)
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vaultPathFlag, "vault-path", "", "Path to the vault (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Path to the config file")
}
