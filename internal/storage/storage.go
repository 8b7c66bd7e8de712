package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// Logical keys for the persisted state. One key per collection, one for
// the singleton config, two for the viewer identity pointer.
const (
	KeyPeople      = "people"
	KeyVendors     = "vendors"
	KeyTasks       = "tasks"
	KeyDocuments   = "documents"
	KeyEventConfig = "event-config"

	KeyParticipantKind = "selected-participant-kind"
	KeyParticipantID   = "selected-participant-id"
)

// Store is a durable key-value store over a single sqlite database.
// Writes replace the whole value for a key in one statement; readers in
// other processes observe a write on their next Read.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (creating if needed) the store database at the given path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger := zerolog.New(os.Stdout).With().Str("component", "Storage").Logger()

	return &Store{db: db, log: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Read returns the value stored under key, or ok=false if the key was
// never written. A missing key is not an error.
func (s *Store) Read(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// Write replaces the value stored under key.
func (s *Store) Write(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// ReadJSON decodes the value under key into dest and reports whether a
// usable value was found. A missing key, an unreadable row, and a value
// that does not decode all read as absent; decode failures are logged
// but never propagated, so a corrupt row degrades to empty state.
func (s *Store) ReadJSON(key string, dest any) bool {
	data, ok, err := s.Read(key)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Failed to read value, treating as absent")
		return false
	}
	if !ok || len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Corrupt value, treating as absent")
		return false
	}
	return true
}

// WriteJSON encodes v and stores it under key.
func (s *Store) WriteJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %q: %w", key, err)
	}
	return s.Write(key, data)
}
