package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/bevtrends/bevtrends/internal/cocktail"
)

// SnapshotFileName is the JSON document holding the crawl snapshot.
const SnapshotFileName = "iba.json"

// File stores the snapshot as one JSON array under a data directory.
type File struct {
	path string
}

// NewFile creates the data directory and returns a file-backed store.
func NewFile(dataDir string) (*File, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dataDir, err)
	}
	return &File{path: filepath.Join(dataDir, SnapshotFileName)}, nil
}

// Path returns the snapshot file location.
func (f *File) Path() string {
	return f.path
}

// Load reads and parses the snapshot. A missing or unparsable file is
// treated as no cache, never an error.
func (f *File) Load(ctx context.Context) ([]cocktail.Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("snapshot load canceled: %w", err)
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, false, nil
	}
	var records []cocktail.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, nil
	}
	return records, true, nil
}

// Save writes the full record sequence, replacing any prior content. The
// write goes to a temp file first and is renamed into place so readers
// never observe a partial snapshot.
func (f *File) Save(ctx context.Context, records []cocktail.Record) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("snapshot save canceled: %w", err)
	}
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), SnapshotFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace snapshot %s: %w", f.path, err)
	}
	return nil
}
