//go:build !linux && !darwin

package pipeline

import (
	"os"
	"time"
)

// accessTime falls back to the modification time where the platform's stat
// structure is not inspected.
func accessTime(fi os.FileInfo) time.Time {
	return fi.ModTime()
}
