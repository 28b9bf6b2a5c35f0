// Package cache is the optional content-addressed extraction cache: a
// SQLite database mapping the hash of a source file's raw bytes to its
// previously resolved IR document. A hit skips parsing and resolution
// entirely; any version mismatch in the stored envelope is a miss, never a
// migration.
package cache

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vmihailenco/msgpack/v5"

	"bridgen/internal/ir"
)

//go:embed schema.sql
var schemaSQL string

// SchemaVersion is the envelope format version. Bump when Envelope's
// msgpack shape changes; older rows then read as misses.
const SchemaVersion uint16 = 1

// FileName is the database file created inside the cache directory.
const FileName = "bridgen-cache.db"

// Envelope is the stored payload for one source file.
type Envelope struct {
	Schema      uint16
	ToolVersion string
	IRVersion   string
	ClassName   string
	Document    []byte // IR document JSON
}

// Cache is a handle to the extraction cache database.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the cache database inside dir, creating the
// directory if needed. The database runs in WAL mode with a busy timeout;
// opening is idempotent.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, FileName))
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to cache database: %w", err)
	}

	// SQLite supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Put stores the envelope under the source hash, overwriting any previous
// row. The envelope's versions are stamped here so callers cannot store a
// stale combination.
func (c *Cache) Put(sourceHash string, env *Envelope) error {
	env.Schema = SchemaVersion
	env.ToolVersion = ir.ToolVersion
	env.IRVersion = ir.IRVersion

	payload, err := msgpack.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding cache payload: %w", err)
	}

	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO documents (source_hash, payload) VALUES (?, ?)`,
		sourceHash, payload,
	)
	if err != nil {
		return fmt.Errorf("writing cache row: %w", err)
	}
	return nil
}

// Get looks up the envelope for a source hash. A missing row, an
// undecodable payload, or any schema/tool/IR version mismatch reports a
// miss.
func (c *Cache) Get(sourceHash string) (*Envelope, bool, error) {
	var payload []byte
	err := c.db.QueryRow(
		`SELECT payload FROM documents WHERE source_hash = ?`, sourceHash,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache row: %w", err)
	}

	var env Envelope
	if err := msgpack.Unmarshal(payload, &env); err != nil {
		// A payload written by an incompatible build; treat as a miss.
		return nil, false, nil
	}
	if env.Schema != SchemaVersion || env.ToolVersion != ir.ToolVersion || env.IRVersion != ir.IRVersion {
		return nil, false, nil
	}

	return &env, true, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}
