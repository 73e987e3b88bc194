package pipeline

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Discover walks root and returns every regular file as a '/'-separated path
// relative to root, in lexical order. Directories, symlinks, devices and
// other special files are excluded.
func Discover(fsys afero.Fs, root string) ([]string, error) {
	var files []string
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
