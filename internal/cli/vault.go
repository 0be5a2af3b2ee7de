package cli

import (
	"fmt"

	"github.com/emcrae/magpie/internal/config"
	"github.com/emcrae/magpie/internal/index"
	"github.com/emcrae/magpie/internal/vault"
)

// openVault opens the note index, rebuilds it from the filesystem, and wires
// up the host and settings store for the resolved vault.
func openVault() (*index.Database, *vault.Host, *config.Store, error) {
	db, err := index.Open(resolvedVaultPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open index: %w", err)
	}

	if _, err := db.Rebuild(resolvedVaultPath); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to build index: %w", err)
	}

	host, err := vault.New(resolvedVaultPath, db)
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	store, err := config.NewStore(cfg.Sync)
	if err != nil {
		// Normalize already replaced an invalid pattern with the default.
		db.Close()
		return nil, nil, nil, err
	}

	return db, host, store, nil
}
