package files

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetProjectRoot finds the project root directory by looking for go.mod
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("go.mod not found in any parent directory")
}

// GetDataDir returns the data directory under the project root, creating it
// if needed. Falls back to the user cache dir when no project root exists
// (installed binary case).
func GetDataDir() (string, error) {
	root, err := GetProjectRoot()
	if err != nil {
		cache, cacheErr := os.UserCacheDir()
		if cacheErr != nil {
			return "", err
		}
		root = filepath.Join(cache, "audiosense")
	}

	dataDir := filepath.Join(root, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dataDir, nil
}
