package state

import (
	"os"

	"github.com/Maphikza/zcash-viewer/internal/logger"
)

// ResetLocalState removes the local wallet state directory at path so the next
// sync starts from nothing. A missing directory is a no-op. Removal failures
// are logged and swallowed; the caller never sees them.
func ResetLocalState(path string) {
	if !Exists(path) {
		return
	}

	if err := os.RemoveAll(path); err != nil {
		logger.Warn("Failed to delete local wallet state", "path", path, "error", err.Error())
		return
	}
	logger.Debug("Local wallet state removed", "path", path)
}

// Exists reports whether a state directory is present at path
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
