package store

import (
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"library-system/library"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONFile persists snapshots as a single JSON document. Writes go to a
// temp file first and rename into place so a crash never leaves a
// half-written snapshot behind.
type JSONFile struct {
	path string
}

// NewJSONFile points the store at path. The file need not exist yet.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Close is a no-op; the file is opened per operation.
func (j *JSONFile) Close() error { return nil }

// Save writes the snapshot atomically.
func (j *JSONFile) Save(snap *library.Snapshot) error {
	if dir := filepath.Dir(j.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := j.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, j.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot file. A missing file yields an empty snapshot
// so first runs work without setup.
func (j *JSONFile) Load() (*library.Snapshot, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &library.Snapshot{Name: "Library"}, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap library.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
