package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// expandHome expands ~ to the user's home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// ExpandPath expands ~ and normalizes the path.
func ExpandPath(path string) string {
	return filepath.Clean(expandHome(path))
}
