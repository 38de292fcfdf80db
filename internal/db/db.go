package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS artists (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    country     TEXT,
    formed_year INTEGER
);

CREATE TABLE IF NOT EXISTS albums (
    id     INTEGER PRIMARY KEY,
    title  TEXT NOT NULL,
    artist TEXT,
    year   INTEGER,
    label  TEXT
);

CREATE TABLE IF NOT EXISTS songs (
    id       INTEGER PRIMARY KEY,
    title    TEXT NOT NULL,
    artist   TEXT,
    album    TEXT,
    duration TEXT,
    bpm      INTEGER
);

CREATE TABLE IF NOT EXISTS synths (
    id           INTEGER PRIMARY KEY,
    name         TEXT NOT NULL,
    manufacturer TEXT,
    year         INTEGER,
    polyphony    INTEGER
);

CREATE TABLE IF NOT EXISTS presets (
    id       INTEGER PRIMARY KEY,
    name     TEXT NOT NULL,
    synth    TEXT,
    category TEXT,
    author   TEXT
);

CREATE TABLE IF NOT EXISTS session_storage (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE INDEX IF NOT EXISTS idx_songs_title ON songs(title);
CREATE INDEX IF NOT EXISTS idx_albums_year ON albums(year DESC);
`

// dataTables lists the tables FetchTableData may read.
var dataTables = map[string]bool{
	"artists": true,
	"albums":  true,
	"songs":   true,
	"synths":  true,
	"presets": true,
}

// Open opens or creates the SQLite database and initializes the schema.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}
