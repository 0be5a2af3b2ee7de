package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emcrae/magpie/internal/index"
	"github.com/emcrae/magpie/internal/ui"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the note index from the filesystem",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := index.Open(resolvedVaultPath)
		if err != nil {
			return fmt.Errorf("failed to open index: %w", err)
		}
		defer db.Close()

		count, err := db.Rebuild(resolvedVaultPath)
		if err != nil {
			return fmt.Errorf("failed to rebuild index: %w", err)
		}

		fmt.Println(ui.Successf("indexed %d note(s)", count))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
