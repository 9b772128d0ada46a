package util

import (
	"os"
	"path/filepath"
	"strings"
)

// VideoExtensions is the allow-list of video file extensions considered by a scan.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mkv":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
}

// HasVideoExtension reports whether name ends in an allow-listed extension.
// The match is case-insensitive.
func HasVideoExtension(name string) bool {
	return VideoExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsTrashDirName reports whether a directory name is a per-volume trash
// (".Trash" or ".Trash-<uid>").
func IsTrashDirName(name string) bool {
	return name == ".Trash" || strings.HasPrefix(name, ".Trash-")
}

// HomeTrashDirs returns the per-user trash directories that a scan must not
// descend into.
func HomeTrashDirs() []string {
	var dirs []string
	if dh := os.Getenv("XDG_DATA_HOME"); dh != "" {
		dirs = append(dirs, filepath.Join(dh, "Trash"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "Trash"))
	}
	return dirs
}

// EnsureDirectory creates a directory if it doesn't exist.
func EnsureDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}
