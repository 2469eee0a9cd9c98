//go:build windows

package directio

import (
	"os"

	"golang.org/x/sys/windows"
)

// platformOpen opens path with FILE_FLAG_SEQUENTIAL_SCAN, the Windows
// analogue of posix_fadvise(SEQUENTIAL): it tells the cache manager to
// read ahead aggressively and discard pages behind the read cursor.
// direct additionally requests FILE_FLAG_NO_BUFFERING, which (like
// O_DIRECT) imposes sector-aligned reads; callers outside the large-file
// hash refiner should pass false.
func platformOpen(path string, direct bool) (Reader, error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}

	flags := uint32(windows.FILE_FLAG_SEQUENTIAL_SCAN)
	if direct {
		flags |= windows.FILE_FLAG_NO_BUFFERING
	}

	handle, err := windows.CreateFile(
		pathPtr,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ,
		nil,
		windows.OPEN_EXISTING,
		flags,
		0,
	)
	if err != nil {
		if direct {
			return openBuffered(path)
		}
		return nil, err
	}

	return os.NewFile(uintptr(handle), path), nil
}
