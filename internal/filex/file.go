// Package filex holds small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureParentDir creates the directory that will hold path, if missing,
// and returns it.
func EnsureParentDir(path string) (string, error) {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SQLiteFile returns the database file named by an SQLite DSN such as
// "data/auth.db" or "file:data/auth.db?_pragma=busy_timeout(5000)".
// ok is false for in-memory databases.
func SQLiteFile(dsn string) (path string, ok bool) {
	path = strings.TrimPrefix(dsn, "file:")

	query := ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, query = path[:i], path[i+1:]
	}

	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return "", false
	}
	return path, true
}
