package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"scoreboard/internal/scoring"
)

// Kinds reported by Source.Kind, used as metric labels
const (
	KindHTTP   = "http"
	KindFile   = "file"
	KindSQLite = "sqlite"
)

var (
	// ErrEmptyLocation is returned when no source location is configured
	ErrEmptyLocation = errors.New("source location is empty")

	// ErrUnsupportedFormat is returned for exports that are neither xlsx nor csv
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// Source produces one raw activity batch per call
type Source interface {
	Fetch(ctx context.Context) (scoring.Batch, error)
	Kind() string
	Location() string
}

// Options selects and configures a Source
type Options struct {
	Location string
	Table    string // SQLite table name
	Token    string // bearer token for HTTP sources
}

// Open picks a Source from the location: http(s) URLs are downloaded,
// .db/.sqlite files are read as a table, anything else as a local export file.
func Open(opts Options) (Source, error) {
	loc := strings.TrimSpace(opts.Location)
	if loc == "" {
		return nil, ErrEmptyLocation
	}

	if u, err := url.Parse(loc); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return NewHTTPSource(loc, opts.Token), nil
	}

	switch strings.ToLower(filepath.Ext(loc)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteSource(loc, opts.Table), nil
	case ".xlsx", ".csv":
		return NewFileSource(loc), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, loc)
	}
}
