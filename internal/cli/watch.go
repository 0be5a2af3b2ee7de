package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emcrae/magpie/internal/pipeline"
	"github.com/emcrae/magpie/internal/scheduler"
	"github.com/emcrae/magpie/internal/ui"
	"github.com/emcrae/magpie/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the vault and sync aliases on note changes",
	Long: `Watch the vault directory and run alias sync automatically.

A newly created note syncs immediately. Edits are debounced: the sync runs
after the configured quiet period (debounce_ms), and only if the edited note
is still the most recently touched one. Rapid edits collapse into a single
run.

The watcher:
- Monitors all .md files in the vault
- Keeps the note index current incrementally
- Ignores .magpie/, .git/, .trash/ directories

Examples:
  # Watch the configured vault
  mgp watch

  # Watch with debug output
  mgp watch --debug`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Bool("debug", false, "Enable debug logging")
}

func runWatch(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")

	db, host, store, err := openVault()
	if err != nil {
		return err
	}
	defer db.Close()

	pipe := pipeline.New(host, store)
	sched := scheduler.New(host, pipe, store)

	w, err := watcher.New(watcher.Config{
		Root:     resolvedVaultPath,
		Database: db,
		Host:     host,
		Events:   sched.Events(),
		Debug:    debug,
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		cancel()
	}()

	go sched.Run(ctx)

	fmt.Printf("Watching vault: %s\n", ui.FilePath(resolvedVaultPath))
	fmt.Println("Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
