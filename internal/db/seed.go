package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Seed fills empty data tables with a small demo catalogue. Tables that
// already hold rows are left alone.
func Seed(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range seedData {
		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+s.table).Scan(&count); err != nil {
			return fmt.Errorf("failed to count %s: %w", s.table, err)
		}
		if count > 0 {
			continue
		}
		for _, row := range s.rows {
			if _, err := tx.ExecContext(ctx, s.insert, row...); err != nil {
				return fmt.Errorf("failed to seed %s: %w", s.table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

type seedTable struct {
	table  string
	insert string
	rows   [][]any
}

var seedData = []seedTable{
	{
		table:  "artists",
		insert: `INSERT INTO artists (id, name, country, formed_year) VALUES (?, ?, ?, ?)`,
		rows: [][]any{
			{1, "Kraftwerk", "Germany", 1970},
			{2, "Boards of Canada", "Scotland", 1986},
			{3, "Aphex Twin", "England", 1985},
			{4, "Yellow Magic Orchestra", "Japan", 1978},
			{5, "Daft Punk", "France", 1993},
		},
	},
	{
		table:  "albums",
		insert: `INSERT INTO albums (id, title, artist, year, label) VALUES (?, ?, ?, ?, ?)`,
		rows: [][]any{
			{1, "Computer World", "Kraftwerk", 1981, "Kling Klang"},
			{2, "Music Has the Right to Children", "Boards of Canada", 1998, "Warp"},
			{3, "Selected Ambient Works 85-92", "Aphex Twin", 1992, "Apollo"},
			{4, "Solid State Survivor", "Yellow Magic Orchestra", 1979, "Alfa"},
			{5, "Discovery", "Daft Punk", 2001, "Virgin"},
		},
	},
	{
		table:  "songs",
		insert: `INSERT INTO songs (id, title, artist, album, duration, bpm) VALUES (?, ?, ?, ?, ?, ?)`,
		rows: [][]any{
			{1, "Computer Love", "Kraftwerk", "Computer World", "7:15", 118},
			{2, "Numbers", "Kraftwerk", "Computer World", "3:19", 122},
			{3, "Roygbiv", "Boards of Canada", "Music Has the Right to Children", "2:31", 90},
			{4, "Xtal", "Aphex Twin", "Selected Ambient Works 85-92", "4:54", 124},
			{5, "Rydeen", "Yellow Magic Orchestra", "Solid State Survivor", "4:27", 140},
			{6, "One More Time", "Daft Punk", "Discovery", "5:20", 123},
			{7, "Digital Love", "Daft Punk", "Discovery", "4:58", 125},
		},
	},
	{
		table:  "synths",
		insert: `INSERT INTO synths (id, name, manufacturer, year, polyphony) VALUES (?, ?, ?, ?, ?)`,
		rows: [][]any{
			{1, "Minimoog Model D", "Moog", 1970, 1},
			{2, "Prophet-5", "Sequential Circuits", 1978, 5},
			{3, "Juno-106", "Roland", 1984, 6},
			{4, "DX7", "Yamaha", 1983, 16},
			{5, "CS-80", "Yamaha", 1977, 8},
		},
	},
	{
		table:  "presets",
		insert: `INSERT INTO presets (id, name, synth, category, author) VALUES (?, ?, ?, ?, ?)`,
		rows: [][]any{
			{1, "E.PIANO 1", "DX7", "Keys", "Yamaha"},
			{2, "Brass Stab", "Prophet-5", "Brass", "factory"},
			{3, "Warm Pad", "Juno-106", "Pad", "factory"},
			{4, "Blade Runner Lead", "CS-80", "Lead", "community"},
			{5, "Fat Bass", "Minimoog Model D", "Bass", "community"},
		},
	},
}
