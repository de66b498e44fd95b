package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "modernc.org/sqlite"

	"scoreboard/internal/scoring"
)

// DefaultTable is read when no table name is configured
const DefaultTable = "activities"

// SQLiteSource reads every row of one table from a SQLite file, read-only
type SQLiteSource struct {
	path  string
	table string
}

// NewSQLiteSource creates a source for a table in a SQLite database file
func NewSQLiteSource(path, table string) *SQLiteSource {
	if table == "" {
		table = DefaultTable
	}
	return &SQLiteSource{path: path, table: table}
}

func (s *SQLiteSource) Kind() string     { return KindSQLite }
func (s *SQLiteSource) Location() string { return s.path + "#" + s.table }

// Fetch opens the database read-only and loads the table
func (s *SQLiteSource) Fetch(ctx context.Context) (scoring.Batch, error) {
	dsn := "file:" + (&url.URL{Path: s.path}).EscapedPath() + "?mode=ro"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return scoring.Batch{}, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	return readTable(ctx, db, s.table)
}

// readTable loads all rows of table into a Batch
func readTable(ctx context.Context, db *sql.DB, table string) (scoring.Batch, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return scoring.Batch{}, fmt.Errorf("querying table %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return scoring.Batch{}, fmt.Errorf("reading columns: %w", err)
	}

	batch := scoring.Batch{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return scoring.Batch{}, fmt.Errorf("scanning row: %w", err)
		}
		batch.Rows = append(batch.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return scoring.Batch{}, fmt.Errorf("iterating rows: %w", err)
	}

	return batch, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
