//go:build darwin

package trash

import (
	"fmt"
	"os"
	"path/filepath"
)

// New returns the Finder trash of the current user.
func New() Trasher {
	return &MacTrasher{}
}

// MacTrasher renames files into ~/.Trash.
type MacTrasher struct {
	// Dir overrides ~/.Trash.
	Dir string
}

func (m *MacTrasher) dir() (string, error) {
	if m.Dir != "" {
		return m.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".Trash"), nil
}

// Trash moves path into the trash directory, renaming on collision.
func (m *MacTrasher) Trash(path string) error {
	src, err := sourcePath(path)
	if err != nil {
		return err
	}
	dir, err := m.dir()
	if err != nil {
		return fmt.Errorf("locate trash: %w", err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create trash: %w", err)
	}

	base := filepath.Base(src)
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		dst := filepath.Join(dir, candidateName(base, attempt))
		if exists(dst) {
			continue
		}
		return rename(src, dst)
	}
	return fmt.Errorf("no free name for %s in %s", base, dir)
}
