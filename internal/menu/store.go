package menu

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/henri123lemoine/arbor/internal/debug"
)

// lockPath returns the advisory lock file used for a menu file.
func lockPath(path string) string {
	return path + ".lock"
}

// Load reads and decodes the menu file at path.
// The format is chosen from the file extension.
func Load(path string) (Forest, error) {
	defer debug.Timed("menu.Load " + path)()

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	// Shared (read) lock - blocks while a writer holds the exclusive lock.
	// A lock we cannot take (read-only directory) is not fatal.
	fileLock := flock.New(lockPath(path))
	if err := fileLock.RLock(); err != nil {
		debug.Log("menu lock %s unavailable: %v", path, err)
	} else {
		defer fileLock.Unlock()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu: %w", err)
	}

	forest, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	debug.Log("loaded %d nodes (depth %d) from %s", forest.Count(), forest.Depth(), path)
	return forest, nil
}

// Save encodes forest and writes it to path atomically.
func Save(path string, forest Forest) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := Marshal(forest, format)
	if err != nil {
		return fmt.Errorf("encode menu: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create menu dir: %w", err)
	}

	// Exclusive lock - blocks until readers are done
	fileLock := flock.New(lockPath(path))
	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("lock menu: %w", err)
	}
	defer fileLock.Unlock()

	// Write to temp file then rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write menu: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace menu: %w", err)
	}
	return nil
}
