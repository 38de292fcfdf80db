package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"adminviews/internal/tableconfig"
)

var (
	// ErrUnknownTable is returned for tables outside the schema.
	ErrUnknownTable = errors.New("no such data table")
	// ErrInvalidSort is returned for unknown sort keys or directions.
	ErrInvalidSort = errors.New("invalid sort")
)

// Source answers table queries for the dashboard.
type Source struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSource creates a Source reading from database.
func NewSource(database *sql.DB, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Source{db: database, logger: logger}
}

// FetchTableData returns all rows of table ordered by sortKey. An empty
// sortKey orders by id; direction is "asc", "desc" or empty for ascending.
func (s *Source) FetchTableData(ctx context.Context, table, sortKey, direction string) ([]tableconfig.Row, error) {
	if !dataTables[table] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	cols, err := s.columns(ctx, table)
	if err != nil {
		return nil, err
	}

	orderBy := "id"
	if sortKey != "" {
		if !cols[sortKey] {
			return nil, fmt.Errorf("%w: table %q has no column %q", ErrInvalidSort, table, sortKey)
		}
		orderBy = sortKey
	}
	switch strings.ToLower(direction) {
	case "", "asc":
		orderBy += " ASC"
	case "desc":
		orderBy += " DESC"
	default:
		return nil, fmt.Errorf("%w: direction %q", ErrInvalidSort, direction)
	}
	if sortKey != "" && sortKey != "id" {
		orderBy += ", id ASC"
	}

	// table and orderBy are checked against the schema above
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY %s", table, orderBy)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	var results []tableconfig.Row
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		row := make(tableconfig.Row, len(names))
		for i, name := range names {
			if b, ok := values[i].([]byte); ok {
				row[name] = string(b)
			} else {
				row[name] = values[i]
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", table, err)
	}

	s.logger.Debug("fetched table", "table", table, "order", orderBy, "rows", len(results))
	return results, nil
}

func (s *Source) columns(ctx context.Context, table string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to read schema of %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name      string
			typ       string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan schema of %s: %w", table, err)
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
