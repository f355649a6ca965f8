// Package fs persists shipper state to the local file system.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/vitalwave/ecgship/internal/domain"
)

const cursorFileName = "cursor.json"

// CursorFileStore implements ports.CursorStore using a JSON file.
type CursorFileStore struct {
	dir string
}

// NewCursorFileStore creates a CursorFileStore for the given directory.
func NewCursorFileStore(dir string) *CursorFileStore {
	return &CursorFileStore{dir: dir}
}

// Load retrieves the last saved cursor from disk.
// Returns a zero cursor and nil error if no cursor file exists.
func (s *CursorFileStore) Load(ctx context.Context) (domain.Cursor, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Cursor{}, nil
		}
		return domain.Cursor{}, err
	}

	var cursor domain.Cursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return domain.Cursor{}, err
	}
	return cursor, nil
}

// Save persists the cursor atomically. Uses atomic write (write to temp
// file, then rename) to prevent corruption on crash.
func (s *CursorFileStore) Save(ctx context.Context, cursor domain.Cursor) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}

	path := s.Path()
	tmp := path + ".tmp"

	data, err := json.MarshalIndent(cursor, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the full path to the cursor file.
func (s *CursorFileStore) Path() string {
	return filepath.Join(s.dir, cursorFileName)
}
