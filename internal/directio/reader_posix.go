//go:build !windows

package directio

import (
	"os"

	"golang.org/x/sys/unix"
)

// fadviseFile wraps an *os.File with posix_fadvise hints. Every Read
// drops the byte range it just returned from the page cache, so a
// one-shot streaming hash pass over a large file doesn't leave pages
// behind that the rest of the system actually wants back; Close issues a
// final whole-file DONTNEED to catch whatever the last chunk left
// resident. True O_DIRECT is deliberately not used: it requires aligned
// buffers and offsets that the signature and side-sum refiners' small,
// arbitrarily-positioned reads can't guarantee, and per-chunk
// FADV_DONTNEED already gets the workload's actual goal (bounded page
// cache growth for a sequential, read-once pass) without that alignment
// burden. See DESIGN.md's directio entry for the full tradeoff.
type fadviseFile struct {
	*os.File
	offset int64
}

func (f *fadviseFile) Read(p []byte) (int, error) {
	n, err := f.File.Read(p)
	if n > 0 {
		_ = unix.Fadvise(int(f.File.Fd()), f.offset, int64(n), unix.FADV_DONTNEED)
		f.offset += int64(n)
	}
	return n, err
}

func (f *fadviseFile) Close() error {
	_ = unix.Fadvise(int(f.File.Fd()), 0, 0, unix.FADV_DONTNEED)
	return f.File.Close()
}

func platformOpen(path string, direct bool) (Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
	if direct {
		_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_NOREUSE)
	}

	return &fadviseFile{File: f}, nil
}
