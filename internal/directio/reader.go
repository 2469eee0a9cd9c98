// Package directio opens files for sequential streaming reads with
// platform advice hints (posix_fadvise on POSIX, FILE_FLAG_SEQUENTIAL_SCAN
// on Windows), grounded on
// original_source/duplicate/utils/fs/common.py's readopen/checksum: the
// hash refiner streams whole files once each, so the kernel should never
// bother caching what it reads.
package directio

import (
	"io"
	"os"
)

// Reader streams a file sequentially and releases any page-cache pressure
// it created once closed.
type Reader interface {
	io.ReadCloser
}

// Open returns a Reader over path, applying the platform's best available
// sequential-read advice. direct requests unbuffered reads on Windows
// (FILE_FLAG_NO_BUFFERING, which imposes sector-aligned reads) and adds a
// FADV_NOREUSE hint on POSIX, where O_DIRECT is never used; the hash
// refiner is the only caller that passes true.
func Open(path string, direct bool) (Reader, error) {
	return platformOpen(path, direct)
}

// openBuffered is the portable fallback used whenever a platform-specific
// open fails or direct I/O isn't applicable: a plain buffered os.File.
func openBuffered(path string) (Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
