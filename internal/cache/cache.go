// Package cache persists render results between weft builds.
//
// The cache records, per lesson source path, the content hash that was last
// rendered and where the output went. A build consults it to skip lessons
// whose sources have not changed since the previous run.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SchemaVersion is the current cache schema version.
const SchemaVersion = "1"

// RenderCache is a SQLite-backed render cache.
type RenderCache struct {
	mu sync.Mutex
	db *sql.DB
}

// Entry describes one cached render.
type Entry struct {
	SourcePath string
	Hash       string
	OutputPath string
	RenderedAt time.Time
}

// Open opens (creating if necessary) a render cache inside dir.
func Open(dir string) (*RenderCache, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "render.db"))
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS renders (
			source_path TEXT PRIMARY KEY,
			hash TEXT NOT NULL,
			output_path TEXT NOT NULL,
			rendered_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	c := &RenderCache{db: db}

	version, err := c.getMetadataUnlocked("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}
	if version == "" {
		if err := c.setMetadataUnlocked("schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	} else if version != SchemaVersion {
		db.Close()
		return nil, fmt.Errorf("unsupported cache schema version: %s (expected %s)", version, SchemaVersion)
	}

	return c, nil
}

// Fresh reports whether sourcePath was already rendered with the given hash
// and the recorded output file still exists on disk.
func (c *RenderCache) Fresh(sourcePath, hash string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var cachedHash, outputPath string
	err := c.db.QueryRow(
		"SELECT hash, output_path FROM renders WHERE source_path = ?", sourcePath,
	).Scan(&cachedHash, &outputPath)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if cachedHash != hash {
		return false, nil
	}
	if _, err := os.Stat(outputPath); err != nil {
		// Output was removed out from under us, re-render
		return false, nil
	}
	return true, nil
}

// Store records a completed render.
func (c *RenderCache) Store(sourcePath, hash, outputPath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(`
		INSERT INTO renders (source_path, hash, output_path, rendered_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(source_path) DO UPDATE SET
			hash = excluded.hash,
			output_path = excluded.output_path,
			rendered_at = excluded.rendered_at
	`, sourcePath, hash, outputPath, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Delete removes the entry for a source path.
func (c *RenderCache) Delete(sourcePath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec("DELETE FROM renders WHERE source_path = ?", sourcePath)
	return err
}

// Entries returns all cached renders, ordered by source path.
func (c *RenderCache) Entries() ([]Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.db.Query(
		"SELECT source_path, hash, output_path, rendered_at FROM renders ORDER BY source_path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var renderedAt string
		if err := rows.Scan(&entry.SourcePath, &entry.Hash, &entry.OutputPath, &renderedAt); err != nil {
			return nil, err
		}
		entry.RenderedAt, _ = time.Parse(time.RFC3339, renderedAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Reset drops all cached renders but keeps the schema.
func (c *RenderCache) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec("DELETE FROM renders")
	return err
}

// Close releases the underlying database.
func (c *RenderCache) Close() error {
	return c.db.Close()
}

func (c *RenderCache) getMetadataUnlocked(key string) (string, error) {
	var value string
	err := c.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (c *RenderCache) setMetadataUnlocked(key, value string) error {
	_, err := c.db.Exec(
		"INSERT INTO metadata (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return err
}
