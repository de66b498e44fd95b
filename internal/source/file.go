package source

import (
	"context"
	"fmt"
	"os"

	"scoreboard/internal/scoring"
)

// FileSource reads an export from local disk
type FileSource struct {
	path string
}

// NewFileSource creates a source for a local .xlsx or .csv file
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Kind() string     { return KindFile }
func (s *FileSource) Location() string { return s.path }

// Fetch reads and decodes the file
func (s *FileSource) Fetch(ctx context.Context) (scoring.Batch, error) {
	if err := ctx.Err(); err != nil {
		return scoring.Batch{}, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return scoring.Batch{}, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	format, err := DetectFormat(s.path, nil)
	if err != nil {
		return scoring.Batch{}, err
	}

	batch, err := Decode(format, f)
	if err != nil {
		return scoring.Batch{}, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	return batch, nil
}
