//go:build windows

package devcache

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows"
)

const defaultBlockSize = 4 << 10

// platformResolver reports the allocation unit size for path's volume via
// GetDiskFreeSpace, and names the device from the volume's root path
// (e.g. "C:\"). Mirrors platformResolver's graceful-degradation contract
// on POSIX: a failed probe falls back to defaultBlockSize rather than
// erroring the whole refinement pass.
func platformResolver(path string, dev uint64) (Info, error) {
	root := filepath.VolumeName(path) + `\`
	rootPtr, err := windows.UTF16PtrFromString(root)
	if err != nil {
		return Info{Name: fmt.Sprintf("dev%d", dev), BlockSize: defaultBlockSize}, nil
	}

	var sectorsPerCluster, bytesPerSector, freeClusters, totalClusters uint32
	if err := windows.GetDiskFreeSpace(rootPtr, &sectorsPerCluster, &bytesPerSector, &freeClusters, &totalClusters); err != nil {
		return Info{Name: root, BlockSize: defaultBlockSize}, nil
	}

	return Info{
		Name:      root,
		BlockSize: int64(sectorsPerCluster) * int64(bytesPerSector),
	}, nil
}
