package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// SessionStore persists dashboard session values in the session_storage table.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a store backed by database.
func NewSessionStore(database *sql.DB) *SessionStore {
	return &SessionStore{db: database}
}

// GetItem returns the value stored under key.
func (s *SessionStore) GetItem(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM session_storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session item %q: %w", key, err)
	}
	return value, true, nil
}

// SetItem stores value under key, replacing any previous value.
func (s *SessionStore) SetItem(key, value string) error {
	query := `
		INSERT INTO session_storage (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
	`
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to write session item %q: %w", key, err)
	}
	return nil
}

// RemoveItem deletes key. Missing keys are not an error.
func (s *SessionStore) RemoveItem(key string) error {
	if _, err := s.db.Exec(`DELETE FROM session_storage WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove session item %q: %w", key, err)
	}
	return nil
}

// Clear removes every session item.
func (s *SessionStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session_storage`); err != nil {
		return fmt.Errorf("failed to clear session storage: %w", err)
	}
	return nil
}
