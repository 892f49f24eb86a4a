package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteStream copies r to path chunk by chunk, in arrival order.
// Creates the parent directory if it doesn't exist and truncates any existing file.
// On a read or write error the partially written file is left in place.
func WriteStream(path string, r io.Reader) (int64, error) {
	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		return n, fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return n, fmt.Errorf("failed to close %s: %w", path, err)
	}
	return n, nil
}
