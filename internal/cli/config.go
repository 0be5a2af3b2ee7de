package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emcrae/magpie/internal/config"
	"github.com/emcrae/magpie/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("config: %s\n", ui.FilePath(resolvedConfigPath))
		fmt.Printf("vault = %q\n", cfg.Vault)
		fmt.Printf("file_pattern = %q\n", cfg.Sync.FilePattern)
		fmt.Printf("show_notice = %t\n", cfg.Sync.ShowNotice)
		fmt.Printf("debounce_ms = %d\n", cfg.Sync.DebounceMs)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting and persist it",
	Long: `Change a setting and write it back to the config file.

Keys:
  vault         Path to the vault root
  file_pattern  Regex a note's base name must fully match to be scanned
  show_notice   Whether sync runs print a summary notice (true/false)
  debounce_ms   Quiet period after an edit before syncing (1000-5000)

An invalid file_pattern is rejected and the previous value stays in effect.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := cfg.Set(key, value); err != nil {
			fmt.Fprintln(os.Stderr, ui.Errorf("%v", err))
			return err
		}

		if err := config.SaveTo(resolvedConfigPath, cfg); err != nil {
			fmt.Fprintln(os.Stderr, ui.Errorf("failed to save config: %v", err))
			return err
		}

		fmt.Println(ui.Successf("%s set", key))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
