package walker

import (
	"os"
	"time"

	"github.com/finder-tools/dupfind/internal/config"
	"github.com/finder-tools/dupfind/internal/dedupe"
)

// admissionOK evaluates the admission predicate (§4.1), short-circuiting on
// the first failing check: size bounds, include/exclude glob, then
// hidden/archived/system attribute policy.
func admissionOK(path string, info os.FileInfo, typ dedupe.TypeBits, opts config.Options, matcher *globMatcher) bool {
	// info is always an Lstat result, including for symlinks: a symlink's
	// "size" is the length of its target text, which is what the
	// signature refiner later hashes.
	size := info.Size()

	if size == 0 {
		if !opts.ScanEmpties || opts.MinSize != 0 {
			return false
		}
	} else if size < opts.MinSize || size > opts.MaxSize {
		return false
	}

	if matcher.excluded(path) || !matcher.included(path) {
		return false
	}

	if !opts.ScanHidden && isHidden(path, info) {
		return false
	}
	if !opts.ScanArchived && isArchived(path, info) {
		return false
	}
	if !opts.ScanSystem && isSystem(path, info) {
		return false
	}

	return true
}

func unixNanoTime(nanos int64) time.Time {
	return time.Unix(0, nanos)
}

func isHidden(path string, info os.FileInfo) bool {
	return platformIsHidden(path, info)
}
