//go:build windows

package purge

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// shFileOperationW mirrors the SHFILEOPSTRUCTW layout (shellapi.h); no
// ecosystem Go binding for the shell's recycle-bin operation exists in
// the retrieval pack, so the call is made directly through
// golang.org/x/sys/windows' lazy-DLL loader, matching the pattern the
// pack's POSIX trash path documents for "no library covers this."
type shFileOperationW struct {
	hwnd                  uintptr
	wFunc                 uint32
	pFrom                 *uint16
	pTo                   *uint16
	fFlags                uint16
	fAnyOperationsAborted int32
	hNameMappings         uintptr
	lpszProgressTitle     *uint16
}

const (
	foDelete          = 0x0003
	fofAllowUndo      = 0x0040
	fofNoConfirmation = 0x0010
	fofSilent         = 0x0004
)

var (
	shell32              = windows.NewLazySystemDLL("shell32.dll")
	procSHFileOperationW = shell32.NewProc("SHFileOperationW")
)

// trashFile sends path to the Windows recycle bin via SHFileOperationW
// with FOF_ALLOWUNDO, the documented mechanism for a "soft delete."
func trashFile(path string) error {
	// pFrom must be double-NUL-terminated.
	from, err := windows.UTF16FromString(path)
	if err != nil {
		return err
	}
	from = append(from, 0)

	op := shFileOperationW{
		wFunc:  foDelete,
		pFrom:  &from[0],
		fFlags: fofAllowUndo | fofNoConfirmation | fofSilent,
	}

	ret, _, _ := procSHFileOperationW.Call(uintptr(unsafe.Pointer(&op)))
	if ret != 0 {
		return windows.Errno(ret)
	}
	return nil
}
