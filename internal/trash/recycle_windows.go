//go:build windows && (amd64 || arm64)

package trash

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// SHFileOperationW values from shellapi.h.
const (
	foDelete          = 0x0003
	fofSilent         = 0x0004
	fofNoConfirmation = 0x0010
	fofAllowUndo      = 0x0040
	fofNoErrorUI      = 0x0400
)

var (
	shell32              = windows.NewLazySystemDLL("shell32.dll")
	procSHFileOperationW = shell32.NewProc("SHFileOperationW")
)

// shFileOpStruct mirrors SHFILEOPSTRUCTW with 64-bit natural alignment.
type shFileOpStruct struct {
	hwnd                  uintptr
	wFunc                 uint32
	pFrom                 *uint16
	pTo                   *uint16
	fFlags                uint16
	fAnyOperationsAborted int32
	hNameMappings         uintptr
	lpszProgressTitle     *uint16
}

// New returns the Recycle Bin of the current user.
func New() Trasher {
	return &RecycleBin{}
}

// RecycleBin sends files to the Windows Recycle Bin via the shell.
type RecycleBin struct{}

// Trash recycles path without prompting.
func (RecycleBin) Trash(path string) error {
	src, err := sourcePath(path)
	if err != nil {
		return err
	}
	from, err := doubleNullPath(src)
	if err != nil {
		return err
	}
	if err := procSHFileOperationW.Find(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	op := shFileOpStruct{
		wFunc:  foDelete,
		pFrom:  &from[0],
		fFlags: fofAllowUndo | fofNoConfirmation | fofSilent | fofNoErrorUI,
	}
	r1, _, _ := procSHFileOperationW.Call(uintptr(unsafe.Pointer(&op)))
	if r1 != 0 {
		return fmt.Errorf("recycle %s: shell error 0x%x", src, r1)
	}
	if op.fAnyOperationsAborted != 0 {
		return fmt.Errorf("recycle %s: operation aborted", src)
	}
	return nil
}

// doubleNullPath encodes path as the double-NUL-terminated list pFrom expects.
func doubleNullPath(path string) ([]uint16, error) {
	u, err := windows.UTF16FromString(path)
	if err != nil {
		return nil, err
	}
	return append(u, 0), nil
}

func isEXDEV(error) bool { return false }
