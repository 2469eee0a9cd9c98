//go:build !windows

package devcache

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// platformResolver reports the optimal I/O block size for path's
// filesystem via statfs(2), and names the device from major:minor through
// the /sys/dev/block symlink convention on Linux. Neither probe is
// load-bearing for correctness: nothing in the pipeline reads Info.Name,
// and a failed Statfs falls back to a conservative default chunk unit.
func platformResolver(path string, dev uint64) (Info, error) {
	var stat unix.Statfs_t
	blockSize := int64(defaultBlockSize)
	if err := unix.Statfs(path, &stat); err == nil && stat.Bsize > 0 {
		blockSize = int64(stat.Bsize)
	}

	return Info{
		Name:      deviceName(dev),
		BlockSize: blockSize,
	}, nil
}

const defaultBlockSize = 4 << 10

// deviceName resolves a POSIX dev_t to a kernel device name via the
// /sys/dev/block/{major}:{minor} symlink, e.g. "8:0" -> "sda". Falls back
// to the raw major:minor pair when /sys isn't mounted (containers,
// non-Linux POSIX).
func deviceName(dev uint64) string {
	major := unix.Major(dev)
	minor := unix.Minor(dev)
	link := fmt.Sprintf("/sys/dev/block/%d:%d", major, minor)
	if target, err := os.Readlink(link); err == nil {
		return filepath.Base(target)
	}
	return fmt.Sprintf("%d:%d", major, minor)
}
