package config

import (
	"os"
	"path/filepath"
)

// DefaultLogFile returns the log path under the user cache directory,
// falling back to the working directory.
func DefaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "prism.log"
	}
	return filepath.Join(dir, "prism", "prism.log")
}
