// Package textfile loads and saves the plain-text documents the cipher
// works on.
package textfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const Ext = ".txt"

var ErrNoPath = errors.New("no file path given")

// NormalizePath appends the .txt extension unless the name already ends
// with it in any letter case.
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasSuffix(strings.ToLower(path), Ext) {
		return path
	}
	return path + Ext
}

func Load(path string) (string, error) {
	if path == "" {
		return "", ErrNoPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", path, err)
	}
	return string(data), nil
}

// Save writes text to the normalized path and returns the path written.
func Save(path, text string) (string, error) {
	if path == "" {
		return "", ErrNoPath
	}
	path = NormalizePath(path)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create dir for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}
