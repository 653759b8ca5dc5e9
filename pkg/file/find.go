package file

import (
	"os"
	"path/filepath"
	"strings"
)

// FindByExt walks dir and returns every regular file with the given
// extension (case-insensitive, leading dot expected).
func FindByExt(dir, ext string) ([]string, error) {
	var matches []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo,
		err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.EqualFold(filepath.Ext(path), ext) {
			matches = append(matches, path)
		}
		return nil
	})

	return matches, err
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
