package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists emitted job fingerprints in a SQLite database so later
// runs can seed their pipeline's seen-set and skip already-reported jobs.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the fingerprints table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS fingerprints (
		fingerprint TEXT PRIMARY KEY,
		first_seen  DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating fingerprints table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// HasSeen returns true if the given fingerprint has already been recorded.
func (s *SQLiteStore) HasSeen(fingerprint string) (bool, error) {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM fingerprints WHERE fingerprint = ?", fingerprint).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking seen status for %s: %w", fingerprint, err)
	}
	return true, nil
}

// MarkSeen records a fingerprint. If it already exists the call is a no-op.
func (s *SQLiteStore) MarkSeen(fingerprint string) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO fingerprints (fingerprint) VALUES (?)", fingerprint)
	if err != nil {
		return fmt.Errorf("marking fingerprint %s as seen: %w", fingerprint, err)
	}
	return nil
}

// LoadAll returns every recorded fingerprint, for seeding a pipeline.
func (s *SQLiteStore) LoadAll() ([]string, error) {
	rows, err := s.db.Query("SELECT fingerprint FROM fingerprints")
	if err != nil {
		return nil, fmt.Errorf("loading fingerprints: %w", err)
	}
	defer rows.Close()

	var fingerprints []string
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("scanning fingerprint: %w", err)
		}
		fingerprints = append(fingerprints, fp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fingerprints: %w", err)
	}
	return fingerprints, nil
}

// Cleanup deletes fingerprints first seen longer ago than the given duration.
func (s *SQLiteStore) Cleanup(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	_, err := s.db.Exec("DELETE FROM fingerprints WHERE first_seen < ?", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up fingerprints older than %v: %w", olderThan, err)
	}
	return nil
}

// IsEmpty returns true if no fingerprints have been recorded.
func (s *SQLiteStore) IsEmpty() (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM fingerprints").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking if store is empty: %w", err)
	}
	return count == 0, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
