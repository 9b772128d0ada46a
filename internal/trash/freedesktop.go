//go:build unix && !darwin

package trash

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

const deletionDateLayout = "2006-01-02T15:04:05"

// New returns the freedesktop.org trash of the current user.
func New() Trasher {
	return &FreedesktopTrasher{}
}

// FreedesktopTrasher implements the freedesktop.org Trash specification.
// Files on the home filesystem go to $XDG_DATA_HOME/Trash; files on other
// filesystems go to $topdir/.Trash-$uid.
type FreedesktopTrasher struct {
	// DataHome overrides $XDG_DATA_HOME.
	DataHome string
	// Now overrides the clock used for DeletionDate.
	Now func() time.Time
}

func (f *FreedesktopTrasher) dataHome() (string, error) {
	if f.DataHome != "" {
		return f.DataHome, nil
	}
	if dh := os.Getenv("XDG_DATA_HOME"); dh != "" {
		return dh, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

func (f *FreedesktopTrasher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// HomeTrashDir returns the home trash location.
func (f *FreedesktopTrasher) HomeTrashDir() (string, error) {
	dh, err := f.dataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dh, "Trash"), nil
}

// Trash moves path into the matching trash directory and writes its
// .trashinfo entry.
func (f *FreedesktopTrasher) Trash(path string) error {
	src, err := sourcePath(path)
	if err != nil {
		return err
	}

	trashDir, topdir, err := f.trashDirFor(src)
	if err != nil {
		return err
	}
	filesDir := filepath.Join(trashDir, "files")
	infoDir := filepath.Join(trashDir, "info")
	for _, d := range []string{filesDir, infoDir} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return fmt.Errorf("create trash directory: %w", err)
		}
	}

	// Path= is relative for topdir trashes and absolute for the home trash.
	recorded := src
	if topdir != "" {
		if rel, err := filepath.Rel(topdir, src); err == nil {
			recorded = rel
		}
	}

	base := filepath.Base(src)
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := candidateName(base, attempt)
		dst := filepath.Join(filesDir, name)
		infoPath := filepath.Join(infoDir, name+".trashinfo")

		info, err := os.OpenFile(infoPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("create trash info: %w", err)
		}
		if exists(dst) {
			_ = info.Close()
			_ = os.Remove(infoPath)
			continue
		}

		_, werr := info.WriteString(trashInfo(recorded, f.now()))
		cerr := info.Close()
		if werr != nil || cerr != nil {
			_ = os.Remove(infoPath)
			return fmt.Errorf("write trash info: %w", errors.Join(werr, cerr))
		}

		if err := rename(src, dst); err != nil {
			_ = os.Remove(infoPath)
			return err
		}
		return nil
	}

	return fmt.Errorf("no free name for %s in %s", base, trashDir)
}

// trashDirFor picks the home trash when src shares its filesystem and the
// topdir trash otherwise. topdir is empty for the home trash.
func (f *FreedesktopTrasher) trashDirFor(src string) (trashDir, topdir string, err error) {
	home, err := f.HomeTrashDir()
	if err != nil {
		return "", "", fmt.Errorf("locate trash: %w", err)
	}
	if err := os.MkdirAll(home, 0700); err != nil {
		return "", "", fmt.Errorf("create trash directory: %w", err)
	}

	var homeSt, srcSt unix.Stat_t
	if err := unix.Stat(home, &homeSt); err != nil {
		return "", "", fmt.Errorf("stat %s: %w", home, err)
	}
	if err := unix.Stat(filepath.Dir(src), &srcSt); err != nil {
		return "", "", fmt.Errorf("stat %s: %w", filepath.Dir(src), err)
	}
	if homeSt.Dev == srcSt.Dev {
		return home, "", nil
	}

	topdir, err = mountPoint(filepath.Dir(src))
	if err != nil {
		return "", "", err
	}
	return filepath.Join(topdir, ".Trash-"+strconv.Itoa(unix.Getuid())), topdir, nil
}

// mountPoint walks up from dir until the device ID changes.
func mountPoint(dir string) (string, error) {
	var st unix.Stat_t
	if err := unix.Stat(dir, &st); err != nil {
		return "", fmt.Errorf("stat %s: %w", dir, err)
	}
	dev := st.Dev

	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir, nil
		}
		var pst unix.Stat_t
		if err := unix.Stat(parent, &pst); err != nil {
			return "", fmt.Errorf("stat %s: %w", parent, err)
		}
		if pst.Dev != dev {
			return dir, nil
		}
		dir = parent
	}
}

func trashInfo(path string, deleted time.Time) string {
	var b strings.Builder
	b.WriteString("[Trash Info]\n")
	b.WriteString("Path=" + escapePath(path) + "\n")
	b.WriteString("DeletionDate=" + deleted.Format(deletionDateLayout) + "\n")
	return b.String()
}

// escapePath percent-encodes each segment and keeps the separators.
func escapePath(p string) string {
	segs := strings.Split(filepath.ToSlash(p), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
