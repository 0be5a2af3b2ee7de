// Package index maintains the SQLite note index for a vault.
//
// The index maps note IDs (vault-relative paths without the .md extension)
// to file paths and modification times. The resolver snapshots IDs from it;
// the watcher keeps it current incrementally.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNoteNotFound indicates the requested note ID is not in the index.
var ErrNoteNotFound = errors.New("note not found in index")

// Database is the SQLite index handle.
type Database struct {
	db *sql.DB
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id    TEXT PRIMARY KEY,
	path  TEXT NOT NULL,
	mtime INTEGER NOT NULL
);
`

// Open opens or creates the index under <vaultPath>/.magpie/index.db.
func Open(vaultPath string) (*Database, error) {
	dbDir := filepath.Join(vaultPath, ".magpie")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create .magpie directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dbDir, "index.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize index schema: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the underlying database.
func (d *Database) Close() error {
	return d.db.Close()
}

// Upsert records or updates a note.
func (d *Database) Upsert(id, path string, mtime int64) error {
	_, err := d.db.Exec(
		`INSERT INTO notes (id, path, mtime) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET path = excluded.path, mtime = excluded.mtime`,
		id, path, mtime,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert note %s: %w", id, err)
	}
	return nil
}

// Remove deletes a note from the index. Removing an unknown ID is a no-op.
func (d *Database) Remove(id string) error {
	if _, err := d.db.Exec(`DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to remove note %s: %w", id, err)
	}
	return nil
}

// Path returns the file path recorded for a note ID.
func (d *Database) Path(id string) (string, error) {
	var path string
	err := d.db.QueryRow(`SELECT path FROM notes WHERE id = ?`, id).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoteNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up note %s: %w", id, err)
	}
	return path, nil
}

// NoteIDs returns all indexed note IDs.
func (d *Database) NoteIDs() ([]string, error) {
	rows, err := d.db.Query(`SELECT id FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Rebuild replaces the index contents with the result of walking the vault.
// Returns the number of notes indexed.
func (d *Database) Rebuild(vaultPath string) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM notes`); err != nil {
		return 0, fmt.Errorf("failed to clear index: %w", err)
	}

	count := 0
	walkErr := filepath.WalkDir(vaultPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if entry.IsDir() {
			if IgnoredDir(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".md") {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return nil
		}

		rel, err := filepath.Rel(vaultPath, path)
		if err != nil {
			return nil
		}
		id := NoteID(rel)

		if _, err := tx.Exec(`INSERT OR REPLACE INTO notes (id, path, mtime) VALUES (?, ?, ?)`,
			id, path, info.ModTime().Unix()); err != nil {
			return err
		}
		count++
		return nil
	})
	if walkErr != nil {
		return 0, fmt.Errorf("failed to walk vault: %w", walkErr)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit rebuild: %w", err)
	}
	return count, nil
}

// NoteID converts a vault-relative markdown path to a note ID.
func NoteID(relPath string) string {
	return strings.TrimSuffix(filepath.ToSlash(relPath), ".md")
}

// IgnoredDir reports whether a directory is excluded from indexing and
// watching.
func IgnoredDir(name string) bool {
	switch name {
	case ".magpie", ".git", ".trash", "node_modules":
		return true
	}
	return false
}
