// Package palettestore provides persistent storage for user palettes using SQLite.
package palettestore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hueflow/server/internal/palette"
)

// SavedPalette is a stored user palette with its creation time.
type SavedPalette struct {
	Name      string    `json:"name"`
	Stops     []string  `json:"stops"`
	CreatedAt time.Time `json:"created_at"`
}

// Store provides persistent storage for user palettes using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore creates a new SQLite-based palette store.
func NewStore(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for sqlite: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS palettes (
		name TEXT PRIMARY KEY,
		stops TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save inserts or replaces a palette. Stops must already be validated.
func (s *Store) Save(p palette.Palette) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO palettes (name, stops, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET stops = excluded.stops
	`,
		p.Name,
		strings.Join(p.Stops, ","),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Get retrieves a palette by name. A missing palette returns nil.
func (s *Store) Get(name string) (*SavedPalette, error) {
	row := s.db.QueryRow(`
		SELECT name, stops, created_at FROM palettes WHERE name = ?
	`, name)

	p, err := scanPalette(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a palette by name. Deleting a missing palette is not
// an error; the bool reports whether a row was removed.
func (s *Store) Delete(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM palettes WHERE name = ?`, name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns all saved palettes ordered by name.
func (s *Store) List() ([]SavedPalette, error) {
	rows, err := s.db.Query(`
		SELECT name, stops, created_at FROM palettes ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SavedPalette
	for rows.Next() {
		p, err := scanPalette(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPalette(row scanner) (*SavedPalette, error) {
	var p SavedPalette
	var stops string
	var createdAtStr string

	if err := row.Scan(&p.Name, &stops, &createdAtStr); err != nil {
		return nil, err
	}
	p.Stops = strings.Split(stops, ",")
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	return &p, nil
}
