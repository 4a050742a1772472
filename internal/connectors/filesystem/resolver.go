package filesystem

import (
	"path/filepath"
	"strings"
)

// ResolvePath converts a user supplied location to an absolute local path.
// Handles file:// URIs and bare paths.
func ResolvePath(uri string) (string, error) {
	path := strings.TrimPrefix(uri, "file://")
	return filepath.Abs(path)
}
