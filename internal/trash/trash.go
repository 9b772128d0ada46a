// Package trash moves files into the platform's recycle location.
package trash

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// maxNameAttempts bounds the collision-suffix retries.
const maxNameAttempts = 16

// ErrUnsupported is returned on platforms without a trash implementation.
var ErrUnsupported = errors.New("trash is not supported on this platform")

// Trasher moves a single file into the trash.
type Trasher interface {
	Trash(path string) error
}

// Replaceable so tests can simulate EXDEV.
var renameFunc = os.Rename

// CrossDeviceError reports a rename that failed because source and trash
// live on different filesystems. Files are never copied and deleted.
type CrossDeviceError struct {
	Src string
	Dst string
	Err error
}

func (e *CrossDeviceError) Error() string {
	return fmt.Sprintf("cannot move %q to %q across filesystems: %v", e.Src, e.Dst, e.Err)
}

func (e *CrossDeviceError) Unwrap() error { return e.Err }

// IsCrossDevice reports whether err is a CrossDeviceError.
func IsCrossDevice(err error) bool {
	var e *CrossDeviceError
	return errors.As(err, &e)
}

func rename(src, dst string) error {
	if err := renameFunc(src, dst); err != nil {
		if isEXDEV(err) {
			return &CrossDeviceError{Src: src, Dst: dst, Err: err}
		}
		return err
	}
	return nil
}

// candidateName returns base for the first attempt and base with a short
// random suffix before the extension afterwards.
func candidateName(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s.%s%s", stem, uuid.NewString()[:8], ext)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// sourcePath resolves path to an absolute path of an existing entry.
func sourcePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Lstat(abs); err != nil {
		return "", err
	}
	return abs, nil
}
