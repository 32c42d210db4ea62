package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const ConfigFileName = "strcheck.toml"

// FindConfig returns the nearest strcheck.toml at or above start (a file or
// directory). ok is false when the filesystem root is reached first.
func FindConfig(start string) (path string, ok bool, err error) {
	dir, err := filepath.Abs(cmpOr(start, "."))
	if err != nil {
		return "", false, fmt.Errorf("resolve %q: %w", start, err)
	}
	if st, err := os.Stat(dir); err == nil && !st.IsDir() {
		dir = filepath.Dir(dir)
	}
	for prev := ""; dir != prev; prev, dir = dir, filepath.Dir(dir) {
		path = filepath.Join(dir, ConfigFileName)
		_, err := os.Stat(path)
		switch {
		case err == nil:
			return path, true, nil
		case !errors.Is(err, os.ErrNotExist):
			return "", false, fmt.Errorf("stat %q: %w", path, err)
		}
	}
	return "", false, nil
}

func cmpOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
