package pipeline

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// Reclaim removes the temp tree. It refuses when any file is left in it: a
// leftover candidate means a file escaped resolution.
func Reclaim(fsys afero.Fs, tempRoot string) error {
	left, err := Discover(fsys, tempRoot)
	if err != nil {
		return fmt.Errorf("enumerate temp directory: %w", err)
	}
	if len(left) > 0 {
		shown := left
		if len(shown) > 5 {
			shown = shown[:5]
		}
		return fmt.Errorf("%w: %d files left (%s)", ErrTempNotEmpty, len(left), strings.Join(shown, ", "))
	}
	if err := fsys.RemoveAll(tempRoot); err != nil {
		return fmt.Errorf("remove temp directory: %w", err)
	}
	return nil
}
