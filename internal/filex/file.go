package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDBDir creates the directory holding a SQLite database file.
// In-memory databases and bare file names need nothing.
func EnsureDBDir(dsn string) (string, error) {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		if strings.Contains(path[i:], "mode=memory") {
			return "", nil
		}
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return "", nil
	}

	dir := filepath.Dir(path)
	if dir == "." {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
