package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/backmassage/mediacompress/internal/config"
)

// Scaffold creates the output and temp roots and mirrors every directory of
// the input root into both, without files. With cfg.DeleteExisting set,
// pre-existing output and temp roots are removed first; otherwise either
// existing is an error.
func Scaffold(fsys afero.Fs, cfg *config.Config) error {
	for _, root := range []struct {
		path string
		err  error
	}{
		{cfg.OutputDir, config.ErrOutputExists},
		{cfg.TempDir, config.ErrTempExists},
	} {
		exists, err := afero.Exists(fsys, root.path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", root.path, err)
		}
		if !exists {
			continue
		}
		if !cfg.DeleteExisting {
			return fmt.Errorf("%w: %s", root.err, root.path)
		}
		if err := fsys.RemoveAll(root.path); err != nil {
			return fmt.Errorf("remove %s: %w", root.path, err)
		}
	}

	return afero.Walk(fsys, cfg.InputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(cfg.InputDir, path)
		if err != nil {
			return err
		}
		perm := info.Mode().Perm() | 0o700
		for _, root := range []string{cfg.OutputDir, cfg.TempDir} {
			dir := filepath.Join(root, rel)
			if err := fsys.MkdirAll(dir, perm); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		return nil
	})
}
